package eventhub_test

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"github.com/dmitrymomot/backoffice/pkg/eventhub"
)

// TestHub_SubscriberCountProperty checks that the subscriber count always
// equals subscribes minus effective unsubscribes and that the channel
// disappears exactly when the count reaches zero.
func TestHub_SubscriberCountProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hub := eventhub.New()
		var tokens []eventhub.Token
		active := make(map[string]bool)

		steps := rapid.IntRange(1, 80).Draw(rt, "steps")
		for range steps {
			if len(tokens) == 0 || rapid.Bool().Draw(rt, "subscribe") {
				tok, err := hub.Subscribe("acme", &recordingSink{})
				if err != nil {
					rt.Fatalf("subscribe: %v", err)
				}
				tokens = append(tokens, tok)
				active[tok.ID()] = true
			} else {
				tok := tokens[rapid.IntRange(0, len(tokens)-1).Draw(rt, "victim")]
				removed := hub.Unsubscribe(tok)
				if removed != active[tok.ID()] {
					rt.Fatalf("unsubscribe returned %v, subscription active: %v", removed, active[tok.ID()])
				}
				delete(active, tok.ID())
			}

			if got := hub.SubscriberCount("acme"); got != len(active) {
				rt.Fatalf("subscriber count %d, want %d", got, len(active))
			}
			wantChannels := 0
			if len(active) > 0 {
				wantChannels = 1
			}
			if got := hub.Len(); got != wantChannels {
				rt.Fatalf("live channels %d, want %d", got, wantChannels)
			}
		}

		if got := hub.Publish(context.Background(), "acme", eventhub.Raw("x")); got != len(active) {
			rt.Fatalf("delivered %d, want %d", got, len(active))
		}
	})
}

// TestHub_TenantIsolationProperty checks that a publish reaches exactly the
// subscribers of its own tenant.
func TestHub_TenantIsolationProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hub := eventhub.New()
		tenants := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{3,8}`), 1, 5, rapid.ID[string]).Draw(rt, "tenants")

		sinks := make(map[string][]*recordingSink)
		for _, tenant := range tenants {
			n := rapid.IntRange(0, 4).Draw(rt, "subscribers")
			for range n {
				s := &recordingSink{}
				if _, err := hub.Subscribe(tenant, s); err != nil {
					rt.Fatalf("subscribe: %v", err)
				}
				sinks[tenant] = append(sinks[tenant], s)
			}
		}

		target := rapid.SampledFrom(tenants).Draw(rt, "target")
		if got := hub.Publish(context.Background(), target, eventhub.Raw("ping")); got != len(sinks[target]) {
			rt.Fatalf("delivered %d, want %d", got, len(sinks[target]))
		}

		for tenant, list := range sinks {
			for _, s := range list {
				want := 0
				if tenant == target {
					want = 1
				}
				if got := len(s.Frames()); got != want {
					rt.Fatalf("tenant %s subscriber got %d frames, want %d", tenant, got, want)
				}
			}
		}
	})
}
