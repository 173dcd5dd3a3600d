package eventhub

import "errors"

var (
	// ErrHubClosed is returned when subscribing to a closed hub.
	ErrHubClosed = errors.New("eventhub: hub is closed")

	// ErrEmptyTenantKey is returned when a tenant key is empty.
	ErrEmptyTenantKey = errors.New("eventhub: empty tenant key")

	// ErrNilSink is returned when subscribing a nil sink.
	ErrNilSink = errors.New("eventhub: nil sink")

	// ErrUncomparableSink is returned when the sink's dynamic type cannot be
	// compared with ==, such as a func or a struct holding a slice.
	ErrUncomparableSink = errors.New("eventhub: sink type is not comparable")

	// ErrDuplicateSubscription is returned when the same sink is already
	// subscribed to the tenant.
	ErrDuplicateSubscription = errors.New("eventhub: sink already subscribed to tenant")

	// ErrEncodeEvent is returned when a structured event cannot be encoded.
	ErrEncodeEvent = errors.New("eventhub: failed to encode event")

	// ErrStreamClosed is returned by Stream.WriteFrame after Close.
	ErrStreamClosed = errors.New("eventhub: stream is closed")

	// ErrSlowConsumer is returned by Stream.WriteFrame when its buffer is full
	// and the frame was dropped.
	ErrSlowConsumer = errors.New("eventhub: subscriber buffer full, frame dropped")

	// ErrStreamingUnsupported is returned when the response writer cannot flush.
	ErrStreamingUnsupported = errors.New("eventhub: response writer does not support flushing")
)
