// Package purifier is the client driver for the air purifier's secure CoAP
// protocol.
//
// A Client keeps a live, encrypted status subscription to one device. It runs
// the key-synchronization handshake, opens the status observation, watches
// notification cadence for staleness and reconnects on its own. Settings are
// validated and encoded against the attribute table before they are sent.
//
// # Usage
//
//	tr, err := transport.NewCoAP(transport.CoAPConfig{Address: "192.168.1.20"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tr.Close()
//
//	client, err := purifier.NewClient(purifier.Config{
//	    Transport: tr,
//	    OnConnected: func(up bool) { log.Printf("connected=%v", up) },
//	    OnStatus: func(s purifier.Status) { log.Printf("%v", s.Values) },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client.Start()
//	defer client.Destroy()
//
//	ack, err := client.Control(ctx, command.Settings{"power": "on", "mode": "sleep"})
//
// # Concurrency
//
// All connection state is owned by a single event-loop goroutine. Network
// results, watchdog expiry and API calls are delivered to it as messages.
// Callbacks run on that goroutine, one at a time, and must not block.
package purifier
