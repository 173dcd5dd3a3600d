package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// Errors groups the non-nil errors under "errors", keyed by position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.String(strconv.Itoa(i), err.Error()))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func TenantKey(key string) slog.Attr {
	return slog.String("tenant_key", key)
}

func SubscriptionID(id string) slog.Attr {
	return slog.String("subscription_id", id)
}

// Subscribers records the live subscriber count of a tenant channel.
func Subscribers(n int) slog.Attr {
	return slog.Int("subscribers", n)
}

// Delivered records how many sinks accepted a published frame.
func Delivered(n int) slog.Attr {
	return slog.Int("delivered", n)
}

func EventType(eventType string) slog.Attr {
	return slog.String("event_type", eventType)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records d in milliseconds under "duration_ms".
func Duration(d time.Duration) slog.Attr {
	return slog.Int64("duration_ms", d.Milliseconds())
}
