// Package paymenthub is a client for the PaymentHub payments API.
//
// A Client is built once from a Config and is safe for concurrent use.
// Each call is synchronous: it builds the request, sends it over a pooled
// connection, and returns the raw Response. Decode and CheckDelete turn a
// Response into a value or a typed error.
//
//	client, err := paymenthub.New(paymenthub.Config{
//		APIKey:      "user:secret",
//		Environment: paymenthub.Test,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	resp, err := client.Get(ctx, "/v1/monitor", nil)
//	if err != nil {
//		return err
//	}
//	status, err := paymenthub.Decode[MonitorStatus](client, resp)
//
// Only GET requests that fail before a response arrives are retried, with
// jittered exponential backoff. Every error belongs to one family that
// can be tested with IsConfiguration, IsSerialization, IsConnection,
// IsAPI and IsDeserialization.
package paymenthub
