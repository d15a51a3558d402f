package realtime

import "context"

type Emitter interface {
	Emit(ctx context.Context, msg SSEMessage)
}

type HubEmitter struct{ Hub *SSEHub }

func (e *HubEmitter) Emit(ctx context.Context, msg SSEMessage) {
	if e == nil || e.Hub == nil {
		return
	}
	e.Hub.Broadcast(msg)
}

// NopEmitter drops everything. The CLI uses it.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, SSEMessage) {}
