package bus

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/repeat-backend/internal/platform/logger"
	"github.com/yungbote/repeat-backend/internal/realtime"
)

type recordingBus struct {
	published []realtime.SSEMessage
}

func (b *recordingBus) Publish(_ context.Context, msg realtime.SSEMessage) error {
	b.published = append(b.published, msg)
	return nil
}
func (b *recordingBus) StartForwarder(context.Context, func(realtime.SSEMessage)) error { return nil }
func (b *recordingBus) Close() error                                                    { return nil }

func TestEmitterPublishes(t *testing.T) {
	rb := &recordingBus{}
	e := &Emitter{Bus: rb, Log: logger.Nop()}
	e.Emit(context.Background(), realtime.SSEMessage{Channel: realtime.ChannelAll, Event: realtime.SSEEventDeckCreated})
	if len(rb.published) != 1 || rb.published[0].Event != realtime.SSEEventDeckCreated {
		t.Fatalf("published = %+v", rb.published)
	}

	var nilEmitter *Emitter
	nilEmitter.Emit(context.Background(), realtime.SSEMessage{})
}

func TestNewRedisBusRequiresClient(t *testing.T) {
	if _, err := NewRedisBus(logger.Nop(), nil, ""); err == nil {
		t.Fatal("expected error without redis client")
	}
	if _, err := NewRedisBus(nil, goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"}), ""); err == nil {
		t.Fatal("expected error without logger")
	}
}

func TestRedisBusRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis bus tests")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	b, err := NewRedisBus(logger.Nop(), rdb, "repeat:test:"+time.Now().Format("150405.000000000"))
	if err != nil {
		t.Fatalf("NewRedisBus: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan realtime.SSEMessage, 1)
	if err := b.StartForwarder(ctx, func(m realtime.SSEMessage) { got <- m }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	want := realtime.SSEMessage{Channel: realtime.ChannelAll, Event: realtime.SSEEventReviewRecorded, Data: map[string]any{"quality": float64(4)}}
	if err := b.Publish(ctx, want); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case m := <-got:
		if m.Event != want.Event || m.Channel != want.Channel {
			t.Fatalf("forwarded %+v", m)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for forwarded message")
	}
}
