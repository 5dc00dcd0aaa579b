package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"golang.org/x/sync/singleflight"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Store is the session's cart read model: the last authoritative snapshot
// plus a load status. All writes flow through full reloads or wholesale
// replacement, never incremental patches.
type Store struct {
	client port.CartAPI

	mu      sync.RWMutex
	items   []domain.CartItem
	status  Status
	loadErr error

	// gen tracks the most recently requested load so that reloads settling
	// out of order are discarded: latest write wins.
	gen atomic.Uint64
	sfg singleflight.Group
}

func New(client port.CartAPI) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}

	return &Store{client: client}, nil
}

const loadKey = "load"

// Load refreshes the snapshot from the remote store. An unauthenticated
// session resets to the empty read-only cart without a network call.
// Concurrent loads are collapsed into a single request; reloads are
// idempotent so joining an in-flight fetch is safe here.
func (s *Store) Load(ctx context.Context, authenticated bool) error {
	return s.load(ctx, authenticated, false)
}

// Reload always issues a fresh fetch, never joining an in-flight one. The
// synchronizer uses it after a mutation: an older in-flight fetch would
// still observe pre-mutation server state.
func (s *Store) Reload(ctx context.Context, authenticated bool) error {
	return s.load(ctx, authenticated, true)
}

func (s *Store) load(ctx context.Context, authenticated, fresh bool) error {
	if !authenticated {
		s.replace(nil, StatusIdle, nil)
		return nil
	}

	gen := s.gen.Add(1)

	s.mu.Lock()
	s.status = StatusLoading
	s.loadErr = nil
	s.mu.Unlock()

	if fresh {
		s.sfg.Forget(loadKey)
	}

	v, err, _ := s.sfg.Do(loadKey, func() (any, error) {
		snapshot, err := s.client.GetCart(ctx)
		if err != nil {
			return nil, fmt.Errorf("client.GetCart: %w", err)
		}
		return snapshot, nil
	})

	if gen != s.gen.Load() {
		// superseded by a newer load, discard this settlement
		return nil
	}

	if err != nil {
		if ctx.Err() != nil {
			// cancelled by navigation or logout: keep the previous
			// snapshot, do not park an error
			s.setStatus(StatusIdle)
			return ctx.Err()
		}
		s.setError(err)
		return err
	}

	snapshot := v.(domain.CartSnapshot)
	s.replace(snapshot.Items, StatusIdle, nil)
	return nil
}

// Replace swaps the entire item collection atomically.
func (s *Store) Replace(items []domain.CartItem) {
	s.replace(items, StatusIdle, nil)
}

// Clear resets the store to the empty cart locally. It never touches the
// remote store: server-side rows survive and reappear on the next Load.
func (s *Store) Clear() {
	s.gen.Add(1) // invalidate in-flight loads
	s.replace(nil, StatusIdle, nil)
}

func (s *Store) Snapshot() domain.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)

	return domain.CartSnapshot{Items: items}
}

// Status returns the load state and, in StatusError, the parked error for
// passive UI consumption such as a retry banner.
func (s *Store) Status() (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.loadErr
}

func (s *Store) replace(items []domain.CartItem, status Status, loadErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = items
	s.status = status
	s.loadErr = loadErr
}

func (s *Store) setStatus(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = status
	s.loadErr = nil
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusError
	s.loadErr = err
}
