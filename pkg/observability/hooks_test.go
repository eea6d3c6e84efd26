package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopResolveHooks{}
	r.OnResolveStart(ctx, 10)
	r.OnResolveComplete(ctx, ResolveStats{Candidates: 10, Accepted: 4}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "resolve")
	c.OnCacheMiss(ctx, "resolve")
	c.OnCacheSet(ctx, "resolve", 1024)

	s := NoopSourceHooks{}
	s.OnLoadStart(ctx, "file")
	s.OnLoadComplete(ctx, "file", 3, 2, time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Resolve().(NoopResolveHooks); !ok {
		t.Error("Resolve() should return NoopResolveHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Source().(NoopSourceHooks); !ok {
		t.Error("Source() should return NoopSourceHooks by default")
	}

	customResolve := &testResolveHooks{}
	SetResolveHooks(customResolve)
	if Resolve() != customResolve {
		t.Error("SetResolveHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customSource := &testSourceHooks{}
	SetSourceHooks(customSource)
	if Source() != customSource {
		t.Error("SetSourceHooks should set custom hooks")
	}

	Reset()
	if _, ok := Resolve().(NoopResolveHooks); !ok {
		t.Error("Reset() should restore NoopResolveHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testResolveHooks{}
	SetResolveHooks(custom)
	SetResolveHooks(nil)

	if Resolve() != custom {
		t.Error("SetResolveHooks(nil) should not replace existing hooks")
	}
	Reset()
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testResolveHooks{}
	SetResolveHooks(h)

	ctx := context.Background()
	Resolve().OnResolveStart(ctx, 5)
	Resolve().OnResolveComplete(ctx, ResolveStats{Candidates: 5, Accepted: 2}, time.Millisecond, nil)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.starts != 1 || h.completes != 1 {
		t.Errorf("starts=%d completes=%d, want 1/1", h.starts, h.completes)
	}
	if h.last.Accepted != 2 {
		t.Errorf("last.Accepted = %d, want 2", h.last.Accepted)
	}
}

type testResolveHooks struct {
	mu        sync.Mutex
	starts    int
	completes int
	last      ResolveStats
}

func (h *testResolveHooks) OnResolveStart(context.Context, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *testResolveHooks) OnResolveComplete(_ context.Context, s ResolveStats, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completes++
	h.last = s
}

type testCacheHooks struct{ NoopCacheHooks }

type testSourceHooks struct{ NoopSourceHooks }
