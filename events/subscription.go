package events

//go:generate mockgen -destination=mocks/subscription.go . ISubscription,ISubscriptionManager

import (
	"context"
	"sync"
)

// ISubscription is a change notification handle. Notifications carry no
// payload; the receiver re-reads whatever state it watches.
type ISubscription interface {
	// Chan returns a read-only channel for self-handling events
	Chan() <-chan struct{}
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
	// Watch calls cb on each event until parentCtx is done or the
	// subscription is cancelled. If callNow is true, cb runs once first.
	Watch(parentCtx context.Context, cb func(), callNow bool) ISubscription
}

// ISubscriptionManager fans change notifications out to subscribers
type ISubscriptionManager interface {
	Subscribe() ISubscription
	Unsubscribe(ch chan struct{})
	// Emit notifies every subscriber; a subscriber with a pending
	// notification is skipped, so bursts collapse into one event
	Emit(ctx context.Context)
}

type Subscription struct {
	ch     chan struct{}
	mgr    *SubscriptionManager
	mu     sync.Mutex
	cancel context.CancelFunc
	once   sync.Once
}

// Chan returns a read-only channel for self-handling events.
func (s *Subscription) Chan() <-chan struct{} { return s.ch }

// Cancel unsubscribes and closes the channel. Safe for repeated calls.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.mu.Lock()
		cancel := s.cancel
		s.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		s.mgr.Unsubscribe(s.ch)
	})
}

// Watch starts a goroutine that calls cb on each event.
func (s *Subscription) Watch(parentCtx context.Context, cb func(), callNow bool) ISubscription {
	ctx, cancel := context.WithCancel(parentCtx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	if callNow {
		cb()
	}

	go func() {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-s.ch:
				if !ok {
					return
				}
				cb()
			}
		}
	}()

	return s
}

type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers map[chan struct{}]struct{}
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subscribers: make(map[chan struct{}]struct{}),
	}
}

func (m *SubscriptionManager) Subscribe() ISubscription {
	ch := make(chan struct{}, 1)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	return &Subscription{ch: ch, mgr: m}
}

func (m *SubscriptionManager) Unsubscribe(ch chan struct{}) {
	m.mu.Lock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
	m.mu.Unlock()
}

// Count returns the number of live subscriptions
func (m *SubscriptionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}

// Emit sends notification to all subscribers (non-blocking if their channel is full).
func (m *SubscriptionManager) Emit(ctx context.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for sub := range m.subscribers {
		select {
		case <-ctx.Done():
			return
		case sub <- struct{}{}:
		default:
		}
	}
}
