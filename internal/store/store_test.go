package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockCartAPI struct {
	mu    sync.Mutex
	items []domain.CartItem
	err   error
	calls int

	// when set, GetCart blocks until released
	block chan struct{}
}

func (m *mockCartAPI) GetCart(ctx context.Context) (domain.CartSnapshot, error) {
	m.mu.Lock()
	m.calls++
	block := m.block
	err := m.err
	items := make([]domain.CartItem, len(m.items))
	copy(items, m.items)
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return domain.CartSnapshot{}, ctx.Err()
		}
	}

	if err != nil {
		return domain.CartSnapshot{}, err
	}
	return domain.CartSnapshot{Items: items}, nil
}

func (m *mockCartAPI) AddItem(_ context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) (domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return domain.CartItem{}, m.err
	}

	item := domain.CartItem{ID: uuid.New(), ProductID: productID, VariantID: variantID, Quantity: quantity}
	m.items = append(m.items, item)
	return item, nil
}

func (m *mockCartAPI) UpdateItemQuantity(_ context.Context, itemID uuid.UUID, quantity int) (domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return domain.CartItem{}, m.err
	}

	for i := range m.items {
		if m.items[i].ID == itemID {
			m.items[i].Quantity = quantity
			return m.items[i], nil
		}
	}
	return domain.CartItem{}, domain.RemoteRejection{Status: 404, Message: "item not found"}
}

func (m *mockCartAPI) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	for i, item := range m.items {
		if item.ID == itemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.RemoteRejection{Status: 404, Message: "item not found"}
}

func (m *mockCartAPI) setItems(items []domain.CartItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = items
}

func (m *mockCartAPI) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func randomItems(n int) []domain.CartItem {
	items := make([]domain.CartItem, 0, n)
	for range n {
		items = append(items, domain.CartItem{
			ID:        uuid.New(),
			ProductID: uuid.New(),
			Quantity:  1,
			AddedAt:   time.Now().UTC(),
		})
	}
	return items
}

func TestLoad_Unauthenticated(t *testing.T) {
	mock := &mockCartAPI{items: randomItems(2)}

	s, err := store.New(mock)
	require.NoError(t, err)

	err = s.Load(t.Context(), false)
	require.NoError(t, err)

	assert.Empty(t, s.Snapshot().Items)
	assert.Equal(t, 0, mock.callCount(), "unauthenticated load must not hit the network")

	status, loadErr := s.Status()
	assert.Equal(t, store.StatusIdle, status)
	assert.NoError(t, loadErr)
}

func TestLoad_Authenticated(t *testing.T) {
	items := randomItems(3)
	mock := &mockCartAPI{items: items}

	s, err := store.New(mock)
	require.NoError(t, err)

	err = s.Load(t.Context(), true)
	require.NoError(t, err)

	assert.Equal(t, items, s.Snapshot().Items)

	status, loadErr := s.Status()
	assert.Equal(t, store.StatusIdle, status)
	assert.NoError(t, loadErr)
}

func TestLoad_FailureParksError(t *testing.T) {
	items := randomItems(1)
	mock := &mockCartAPI{items: items}

	s, err := store.New(mock)
	require.NoError(t, err)

	require.NoError(t, s.Load(t.Context(), true))

	mock.mu.Lock()
	mock.err = domain.TransportFailure{Err: errors.New("connection refused")}
	mock.mu.Unlock()

	err = s.Load(t.Context(), true)
	require.Error(t, err)

	// recoverable: previous snapshot survives, error is parked for the UI
	assert.Equal(t, items, s.Snapshot().Items)

	status, loadErr := s.Status()
	assert.Equal(t, store.StatusError, status)
	assert.Error(t, loadErr)

	// retry succeeds and clears the parked error
	mock.mu.Lock()
	mock.err = nil
	mock.mu.Unlock()

	require.NoError(t, s.Load(t.Context(), true))

	status, loadErr = s.Status()
	assert.Equal(t, store.StatusIdle, status)
	assert.NoError(t, loadErr)
}

func TestReload_LatestWins(t *testing.T) {
	stale := randomItems(1)
	firstFetch := make(chan struct{})
	mock := &mockCartAPI{items: stale, block: firstFetch}

	s, err := store.New(mock)
	require.NoError(t, err)

	// first load hangs on the network
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.Load(context.Background(), true)
	}()

	// wait until the first load is in flight
	require.Eventually(t, func() bool {
		return mock.callCount() == 1
	}, time.Second, time.Millisecond)

	// the cart changes server-side and a newer reload is requested
	fresh := randomItems(2)
	mock.mu.Lock()
	mock.items = fresh
	mock.block = nil
	mock.mu.Unlock()

	require.NoError(t, s.Reload(context.Background(), true))
	assert.Equal(t, fresh, s.Snapshot().Items)

	// the stale in-flight load settles last and must be discarded
	close(firstFetch)
	require.NoError(t, <-firstDone)
	assert.Equal(t, fresh, s.Snapshot().Items, "stale settlement must not overwrite newer snapshot")
}

func TestLoad_ConcurrentLoadsShareOneFetch(t *testing.T) {
	items := randomItems(2)
	fetch := make(chan struct{})
	mock := &mockCartAPI{items: items, block: fetch}

	s, err := store.New(mock)
	require.NoError(t, err)

	const callers = 5
	done := make(chan error, callers)
	for range callers {
		go func() {
			done <- s.Load(context.Background(), true)
		}()
	}

	require.Eventually(t, func() bool {
		return mock.callCount() >= 1
	}, time.Second, time.Millisecond)

	// give the remaining callers a chance to pile onto the same flight
	time.Sleep(50 * time.Millisecond)
	close(fetch)

	for range callers {
		require.NoError(t, <-done)
	}

	assert.Equal(t, items, s.Snapshot().Items)
	assert.Less(t, mock.callCount(), callers, "concurrent loads should be deduplicated")
}

func TestLoad_Cancellation(t *testing.T) {
	items := randomItems(2)
	mock := &mockCartAPI{items: items}

	s, err := store.New(mock)
	require.NoError(t, err)

	require.NoError(t, s.Load(t.Context(), true))

	block := make(chan struct{})
	defer close(block)
	mock.mu.Lock()
	mock.block = block
	mock.mu.Unlock()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err = s.Load(ctx, true)
	require.ErrorIs(t, err, context.Canceled)

	// cancellation keeps the previous snapshot and parks no error
	assert.Equal(t, items, s.Snapshot().Items)

	status, loadErr := s.Status()
	assert.Equal(t, store.StatusIdle, status)
	assert.NoError(t, loadErr)
}

func TestReplace(t *testing.T) {
	s, err := store.New(&mockCartAPI{})
	require.NoError(t, err)

	items := randomItems(3)
	s.Replace(items)
	assert.Equal(t, items, s.Snapshot().Items)

	// wholesale swap, not a merge
	next := randomItems(1)
	s.Replace(next)
	assert.Equal(t, next, s.Snapshot().Items)
}

func TestClear_LocalOnly(t *testing.T) {
	items := randomItems(2)
	mock := &mockCartAPI{items: items}

	s, err := store.New(mock)
	require.NoError(t, err)

	require.NoError(t, s.Load(t.Context(), true))
	require.NotEmpty(t, s.Snapshot().Items)

	s.Clear()
	assert.Empty(t, s.Snapshot().Items)

	// server-side rows survive a local clear
	require.NoError(t, s.Load(t.Context(), true))
	assert.Equal(t, items, s.Snapshot().Items)
}
