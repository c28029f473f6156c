package relationship

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	store.AddAccount("alice", "alice@example.com")
	store.AddAccount("bob", "bob@example.com")
	store.AddAccount("carol", "carol@example.com")
	return NewService(store, NewResolver(store, nil)), store
}

// assertSymmetric checks the cross-record invariants for a pair.
func assertSymmetric(t *testing.T, store *MemoryStore, a, b string) {
	t.Helper()
	ctx := context.Background()
	sa, err := store.ReadSnapshot(ctx, a)
	require.NoError(t, err)
	sb, err := store.ReadSnapshot(ctx, b)
	require.NoError(t, err)

	assert.Equal(t, sa.Friends.Contains(b), sb.Friends.Contains(a), "friendship must be symmetric")
	assert.Equal(t, sa.RequestsSent.Contains(b), sb.RequestsReceived.Contains(a), "sent/received must mirror")
	assert.Equal(t, sa.RequestsReceived.Contains(b), sb.RequestsSent.Contains(a), "received/sent must mirror")

	if sa.Friends.Contains(b) {
		assert.False(t, sa.RequestsSent.Contains(b), "friends must have no pending edge")
		assert.False(t, sa.RequestsReceived.Contains(b), "friends must have no pending edge")
	}
}

func TestSendThenAccept(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	status, err := svc.SendRequest(ctx, "alice", SendInput{TargetUID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, StatusSent, status)

	sa, _ := store.ReadSnapshot(ctx, "alice")
	sb, _ := store.ReadSnapshot(ctx, "bob")
	assert.Equal(t, []string{"bob"}, []string(sa.RequestsSent))
	assert.Equal(t, []string{"alice"}, []string(sb.RequestsReceived))
	assertSymmetric(t, store, "alice", "bob")

	status, err = svc.AcceptRequest(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, status)

	sa, _ = store.ReadSnapshot(ctx, "alice")
	sb, _ = store.ReadSnapshot(ctx, "bob")
	assert.Empty(t, sa.RequestsSent)
	assert.Empty(t, sb.RequestsReceived)
	assert.True(t, sa.Friends.Contains("bob"))
	assert.True(t, sb.Friends.Contains("alice"))
	assertSymmetric(t, store, "alice", "bob")
}

func TestSendIsIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "alice", SendInput{TargetUID: "bob"})
	require.NoError(t, err)

	status, err := svc.SendRequest(ctx, "alice", SendInput{TargetUID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadySent, status)

	sa, _ := store.ReadSnapshot(ctx, "alice")
	assert.Equal(t, []string{"bob"}, []string(sa.RequestsSent))
}

func TestSendToExistingFriend(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "alice", SendInput{TargetUID: "bob"})
	require.NoError(t, err)
	_, err = svc.AcceptRequest(ctx, "bob", "alice")
	require.NoError(t, err)

	status, err := svc.SendRequest(ctx, "alice", SendInput{TargetUID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyFriends, status)
	assertSymmetric(t, store, "alice", "bob")
}

func TestCrossedRequestsAutoAccept(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "alice", SendInput{TargetUID: "bob"})
	require.NoError(t, err)

	status, err := svc.SendRequest(ctx, "bob", SendInput{TargetUID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, StatusAutoAccepted, status)

	sa, _ := store.ReadSnapshot(ctx, "alice")
	sb, _ := store.ReadSnapshot(ctx, "bob")
	assert.True(t, sa.Friends.Contains("bob"))
	assert.True(t, sb.Friends.Contains("alice"))
	assert.Empty(t, sa.RequestsSent)
	assert.Empty(t, sa.RequestsReceived)
	assert.Empty(t, sb.RequestsSent)
	assert.Empty(t, sb.RequestsReceived)
	assertSymmetric(t, store, "alice", "bob")
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "alice", SendInput{TargetUID: "bob"})
	require.NoError(t, err)

	status, err := svc.CancelRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, status)

	sa, _ := store.ReadSnapshot(ctx, "alice")
	sb, _ := store.ReadSnapshot(ctx, "bob")
	assert.Empty(t, sa.RequestsSent)
	assert.Empty(t, sb.RequestsReceived)

	// And again: still success, no further change.
	status, err = svc.CancelRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, status)
	assertSymmetric(t, store, "alice", "bob")
}

func TestDeclineIsIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "alice", SendInput{TargetUID: "bob"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		status, err := svc.DeclineRequest(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.Equal(t, StatusDeclined, status)
	}

	sa, _ := store.ReadSnapshot(ctx, "alice")
	assert.Empty(t, sa.RequestsSent)
	assertSymmetric(t, store, "alice", "bob")
}

func TestAcceptAfterCancelIsNoOp(t *testing.T) {
	// The race the idempotence rules exist for: sender cancels, recipient
	// accepts. Whichever lands second sees a harmless success.
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "alice", SendInput{TargetUID: "bob"})
	require.NoError(t, err)
	_, err = svc.CancelRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	status, err := svc.AcceptRequest(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, StatusNoOp, status)

	sb, _ := store.ReadSnapshot(ctx, "bob")
	assert.Empty(t, sb.Friends)
	assertSymmetric(t, store, "alice", "bob")
}

func TestSendResolvesEmail(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	status, err := svc.SendRequest(ctx, "alice", SendInput{TargetEmail: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, StatusSent, status)

	sb, _ := store.ReadSnapshot(ctx, "bob")
	assert.True(t, sb.RequestsReceived.Contains("alice"))
}

func TestSendValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "alice", SendInput{})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = svc.SendRequest(ctx, "alice", SendInput{TargetUID: "alice"})
	assert.ErrorIs(t, err, ErrSelfAction)

	_, err = svc.SendRequest(ctx, "alice", SendInput{TargetEmail: "nobody@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.SendRequest(ctx, "alice", SendInput{TargetUID: "ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// conflictStore fails the first n UpdatePair calls with ErrTxConflict.
type conflictStore struct {
	Store
	remaining int
}

func (c *conflictStore) UpdatePair(ctx context.Context, a, b string, fn UpdateFunc) (Decision, error) {
	if c.remaining > 0 {
		c.remaining--
		return Decision{}, ErrTxConflict
	}
	return c.Store.UpdatePair(ctx, a, b, fn)
}

func TestRetryOnTxConflict(t *testing.T) {
	mem := NewMemoryStore()
	mem.AddAccount("alice", "")
	mem.AddAccount("bob", "")

	flaky := &conflictStore{Store: mem, remaining: 2}
	svc := NewService(flaky, NewResolver(mem, nil))

	status, err := svc.SendRequest(context.Background(), "alice", SendInput{TargetUID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, StatusSent, status)

	sb, _ := mem.ReadSnapshot(context.Background(), "bob")
	assert.True(t, sb.RequestsReceived.Contains("alice"))
}

func TestRetryExhaustion(t *testing.T) {
	mem := NewMemoryStore()
	mem.AddAccount("alice", "")
	mem.AddAccount("bob", "")

	flaky := &conflictStore{Store: mem, remaining: maxTxAttempts}
	svc := NewService(flaky, NewResolver(mem, nil))

	_, err := svc.SendRequest(context.Background(), "alice", SendInput{TargetUID: "bob"})
	assert.ErrorIs(t, err, ErrTxExhausted)

	// Nothing may have been written along the way.
	sb, _ := mem.ReadSnapshot(context.Background(), "bob")
	assert.Empty(t, sb.RequestsReceived)
}
