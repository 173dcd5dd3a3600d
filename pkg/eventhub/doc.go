// Package eventhub fans out real-time events to the open server-sent event
// connections of a single tenant.
//
// A Hub keeps one channel per tenant key. A channel is created on the first
// Subscribe for that key and removed the moment its last subscriber is
// unsubscribed, so idle tenants cost nothing. Publish encodes an event once and
// writes the resulting frame to every current subscriber of the tenant, in
// subscription order.
//
// Basic usage:
//
//	hub := eventhub.New(eventhub.WithLogger(log))
//	defer hub.Close()
//
//	stream := eventhub.NewStream(64)
//	tok, err := hub.Subscribe("acme", stream)
//	if err != nil {
//		return err
//	}
//	defer hub.Unsubscribe(tok)
//
//	// from any request handler, after a state change
//	hub.Publish(ctx, "acme", eventhub.Structured(map[string]any{
//		"type": "order.created",
//		"id":   42,
//	}))
//
//	// in the streaming handler
//	return stream.Serve(r.Context(), w)
//
// Delivery is best-effort and at-most-once. Sinks must never block in
// WriteFrame; Stream satisfies this by dropping frames for a subscriber whose
// buffer is full. A broken sink does not affect its siblings and is removed
// only through its own Unsubscribe call, usually driven by the HTTP request
// context being cancelled.
package eventhub
