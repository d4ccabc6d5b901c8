package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologFactory_Scope(t *testing.T) {
	var buf bytes.Buffer
	f := NewZerologFactoryFrom(zerolog.New(&buf).Level(zerolog.DebugLevel))

	log := f.NewLogger("purifier")
	log.Infof("connected: %v", true)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Unmarshal(%q) error = %v", buf.String(), err)
	}
	if entry["scope"] != "purifier" {
		t.Errorf("scope = %v, want purifier", entry["scope"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "connected: true" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestZerologFactory_Level(t *testing.T) {
	var buf bytes.Buffer
	f := NewZerologFactoryFrom(zerolog.New(&buf).Level(zerolog.WarnLevel))
	log := f.NewLogger("transport-coap")

	log.Debug("hidden")
	log.Tracef("hidden %d", 1)
	log.Info("hidden")
	log.Warn("shown")
	log.Errorf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered entries: %s", out)
	}
	if n := strings.Count(out, "shown"); n != 2 {
		t.Errorf("entries = %d, want 2", n)
	}
}

func TestNewZerologFactory_Console(t *testing.T) {
	var buf bytes.Buffer
	f := NewZerologFactory(&buf, zerolog.InfoLevel)
	f.NewLogger("cli").Info("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("output = %q, want message", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"trace", zerolog.TraceLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
