// Package eventrelay carries hub events between back office instances.
//
// A browser holds its event stream open against one instance while the write
// that triggers an event may land on another. RedisPublisher encodes the event
// once and PUBLISHes the payload on "<prefix>:<tenant key>". Every instance
// runs a Relay that PSUBSCRIBEs "<prefix>:*" and republishes each payload into
// its local hub as a raw event, so subscribers receive byte-identical frames
// whichever instance the event came from.
//
// LocalPublisher satisfies the same Publisher interface for single-instance
// deployments without Redis.
package eventrelay
