package eventhub

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultStreamBuffer is used when NewStream gets a non-positive buffer size.
const DefaultStreamBuffer = 64

// Stream is a Sink that queues frames for one server-sent events response.
// WriteFrame never blocks: when the queue is full the frame is dropped.
type Stream struct {
	frames chan []byte
	done   chan struct{}

	mu     sync.RWMutex
	closed bool

	dropped   atomic.Uint64
	heartbeat time.Duration
	retry     time.Duration
}

// NewStream creates a stream holding up to buffer undelivered frames.
func NewStream(buffer int, opts ...StreamOption) *Stream {
	if buffer <= 0 {
		buffer = DefaultStreamBuffer
	}
	s := &Stream{
		frames:    make(chan []byte, buffer),
		done:      make(chan struct{}),
		heartbeat: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WriteFrame queues frame for delivery.
func (s *Stream) WriteFrame(frame []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStreamClosed
	}

	select {
	case s.frames <- frame:
		return nil
	default:
		s.dropped.Add(1)
		return ErrSlowConsumer
	}
}

// Close stops Serve and rejects further frames. It is idempotent.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.done)
	}
	return nil
}

// Done is closed when the stream is closed.
func (s *Stream) Done() <-chan struct{} { return s.done }

// Dropped returns how many frames were discarded because the queue was full.
func (s *Stream) Dropped() uint64 { return s.dropped.Load() }

// Serve writes the event-stream headers and then copies queued frames to w,
// flushing after each one, until ctx is done or the stream is closed.
// Frames queued before Close are still written; a cancelled ctx discards
// them. A write error is returned as is; a cancelled ctx or closed stream
// returns nil.
func (s *Stream) Serve(ctx context.Context, w http.ResponseWriter) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return ErrStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if s.retry > 0 {
		if _, err := w.Write([]byte("retry: " + strconv.FormatInt(s.retry.Milliseconds(), 10) + "\n\n")); err != nil {
			return err
		}
	}
	flusher.Flush()

	var tick <-chan time.Time
	if s.heartbeat > 0 {
		ticker := time.NewTicker(s.heartbeat)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return s.drain(w, flusher)
		case frame := <-s.frames:
			if _, err := w.Write(frame); err != nil {
				return err
			}
			flusher.Flush()
		case <-tick:
			if _, err := w.Write(Comment("ping")); err != nil {
				return err
			}
			flusher.Flush()
		}
	}
}

// drain writes the frames queued before Close. WriteFrame rejects new frames
// once the stream is closed, so the queue only shrinks.
func (s *Stream) drain(w http.ResponseWriter, flusher http.Flusher) error {
	defer flusher.Flush()
	for {
		select {
		case frame := <-s.frames:
			if _, err := w.Write(frame); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}
