package notify_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsmkit/fsmkit/pkg/fsm"
	"github.com/fsmkit/fsmkit/pkg/notify"
)

func TestHub_PublishSubscribe(t *testing.T) {
	t.Run("subscriber receives published changes", func(t *testing.T) {
		h := notify.NewHub(4)
		defer h.Close()

		sub := h.Subscribe(context.Background())

		h.Publish(notify.Change{Machine: "m1", From: "a", To: "b", Event: "go", Kind: notify.KindTransition})

		select {
		case c := <-sub.Receive():
			assert.Equal(t, "m1", c.Machine)
			assert.Equal(t, "a", c.From)
			assert.Equal(t, "b", c.To)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for change")
		}
	})

	t.Run("slow subscriber is evicted, publish never blocks", func(t *testing.T) {
		h := notify.NewHub(1)
		defer h.Close()

		sub := h.Subscribe(context.Background())

		// Fill the buffer, then overflow it.
		h.Publish(notify.Change{Event: "one"})
		h.Publish(notify.Change{Event: "two"})

		c, ok := <-sub.Receive()
		require.True(t, ok)
		assert.Equal(t, "one", c.Event)

		// Eviction closes the channel once the buffered record is drained.
		select {
		case _, ok := <-sub.Receive():
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("subscriber was not evicted")
		}
	})

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		h := notify.NewHub(4)
		defer h.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub := h.Subscribe(ctx)
		cancel()

		select {
		case _, ok := <-sub.Receive():
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("subscription was not cleaned up")
		}
	})

	t.Run("publish after subscriber close does not panic", func(t *testing.T) {
		h := notify.NewHub(4)
		defer h.Close()

		sub := h.Subscribe(context.Background())
		keeper := h.Subscribe(context.Background())

		// A subscriber may close itself while still registered; the hub
		// evicts it on the next publish instead of crashing the publisher.
		sub.Close()
		h.Publish(notify.Change{Event: "one"})
		h.Publish(notify.Change{Event: "two"})

		select {
		case c := <-keeper.Receive():
			assert.Equal(t, "one", c.Event)
		case <-time.After(time.Second):
			t.Fatal("remaining subscriber did not receive the change")
		}

		_, ok := <-sub.Receive()
		assert.False(t, ok)
	})

	t.Run("subscriber close is idempotent", func(t *testing.T) {
		h := notify.NewHub(4)
		defer h.Close()

		sub := h.Subscribe(context.Background())
		sub.Close()
		sub.Close()
	})

	t.Run("subscribe after close returns closed subscriber", func(t *testing.T) {
		h := notify.NewHub(4)
		h.Close()

		sub := h.Subscribe(context.Background())
		_, ok := <-sub.Receive()
		assert.False(t, ok)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		h := notify.NewHub(4)
		h.Close()
		h.Close()
	})
}

func TestChangeOf(t *testing.T) {
	t.Parallel()

	c := notify.ChangeOf("m", fsm.StringState("a"), fsm.StringState("b"), fsm.StringEvent("go"))
	assert.Equal(t, notify.KindTransition, c.Kind)

	c = notify.ChangeOf("m", fsm.StringState("a"), fsm.StringState("a"), fsm.StringEvent("go"))
	assert.Equal(t, notify.KindSelfLoop, c.Kind)
}

func TestHub_MachineIntegration(t *testing.T) {
	t.Parallel()

	const (
		idle    = fsm.StringState("idle")
		running = fsm.StringState("running")
		start   = fsm.StringEvent("start")
		tick    = fsm.StringEvent("tick")
	)

	h := notify.NewHub(8)
	defer h.Close()
	sub := h.Subscribe(context.Background())

	m := fsm.MustNew(idle,
		fsm.WithLabel("worker"),
		fsm.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		fsm.WithStateChangeCallback(h.Callback("worker")),
		fsm.WithTransition(idle, running, start),
		fsm.WithInternalTransition(running, tick),
	)

	ctx := context.Background()
	_, err := m.Execute(ctx, start)
	require.NoError(t, err)

	// Internal transitions never reach the hub.
	_, err = m.Execute(ctx, tick)
	require.NoError(t, err)

	select {
	case c := <-sub.Receive():
		assert.Equal(t, notify.Change{
			Machine: "worker",
			From:    "idle",
			To:      "running",
			Event:   "start",
			Kind:    notify.KindTransition,
		}, c)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change")
	}

	select {
	case c := <-sub.Receive():
		t.Fatalf("unexpected change from internal transition: %+v", c)
	case <-time.After(50 * time.Millisecond):
	}
}
