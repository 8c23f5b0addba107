package services

import (
	"context"
	"sync"
)

// slot serializes requests for one logical concern (active-profile fetch,
// admin listing): starting a new request cancels whatever was in flight, so
// a stale response can never overwrite newer state.
type slot struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// begin cancels the previous request for this slot, if any, and returns a
// context owned by the new one.
func (s *slot) begin(ctx context.Context) (context.Context, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return ctx, cancel
}

// Cancel aborts the in-flight request, if any. Called on view teardown.
func (s *slot) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
