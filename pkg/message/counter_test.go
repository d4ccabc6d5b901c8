package message

import (
	"errors"
	"sync"
	"testing"
)

func TestCounter_Uninitialized(t *testing.T) {
	c := NewCounter()
	if c.Initialized() {
		t.Error("Initialized() = true, want false")
	}
	if _, ok := c.Current(); ok {
		t.Error("Current() ok = true, want false")
	}
	if _, err := c.Next(); !errors.Is(err, ErrCounterUninitialized) {
		t.Errorf("Next() error = %v, want ErrCounterUninitialized", err)
	}
}

func TestCounter_NextIncrementsThenReturns(t *testing.T) {
	c := NewCounter()
	if err := c.SetHex("0000000f"); err != nil {
		t.Fatalf("SetHex() error = %v", err)
	}

	want := []string{"00000010", "00000011", "00000012"}
	for i, w := range want {
		got, err := c.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if got != w {
			t.Errorf("Next() #%d = %s, want %s", i, got, w)
		}
	}
	if cur, _ := c.Current(); cur != "00000012" {
		t.Errorf("Current() = %s, want 00000012", cur)
	}
}

func TestCounter_Wraps(t *testing.T) {
	c := NewCounter()
	c.Set(0xFFFFFFFF)
	got, err := c.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got != "00000000" {
		t.Errorf("Next() = %s, want 00000000", got)
	}
}

func TestCounter_Reset(t *testing.T) {
	c := NewCounter()
	c.Set(7)
	c.Reset()
	if c.Initialized() {
		t.Error("Initialized() = true after Reset")
	}
}

func TestCounter_Concurrent(t *testing.T) {
	c := NewCounter()
	c.Set(0)

	var wg sync.WaitGroup
	seen := make(chan string, 1000)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v, _ := c.Next()
				seen <- v
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[string]bool)
	for v := range seen {
		if unique[v] {
			t.Fatalf("duplicate counter value %s", v)
		}
		unique[v] = true
	}
	if cur, _ := c.Current(); cur != FormatCounter(1000) {
		t.Errorf("Current() = %s, want %s", cur, FormatCounter(1000))
	}
}

func TestParseCounter(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"00000000", 0, false},
		{"A1B2C3D4", 0xA1B2C3D4, false},
		{"a1b2c3d4", 0xA1B2C3D4, false},
		{" 1F\n", 0x1F, false},
		{"FFFFFFFF", 0xFFFFFFFF, false},
		{"", 0, true},
		{"123456789", 0, true},
		{"XYZ", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseCounter(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidCounter) {
				t.Errorf("ParseCounter(%q) error = %v, want ErrInvalidCounter", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCounter(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCounter(%q) = %08X, want %08X", tc.in, got, tc.want)
		}
	}
}
