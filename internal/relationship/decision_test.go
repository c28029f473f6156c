package relationship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highshore/rumi-talk/internal/models"
)

func snap(uid string, exists bool) Snapshot {
	return Snapshot{
		UID:              uid,
		Exists:           exists,
		Friends:          models.IDSet{},
		RequestsSent:     models.IDSet{},
		RequestsReceived: models.IDSet{},
	}
}

func TestDecideSend(t *testing.T) {
	t.Run("new request creates a pending edge on both sides", func(t *testing.T) {
		dec, err := Decide(ActionSend, snap("a", true), snap("b", true))
		require.NoError(t, err)
		assert.Equal(t, StatusSent, dec.Status)
		assert.Equal(t, []string{"b"}, dec.Actor.AddRequestsSent)
		assert.Equal(t, []string{"a"}, dec.Other.AddRequestsReceived)
	})

	t.Run("self request is rejected", func(t *testing.T) {
		_, err := Decide(ActionSend, snap("a", true), snap("a", true))
		assert.ErrorIs(t, err, ErrSelfAction)
	})

	t.Run("missing target is rejected", func(t *testing.T) {
		_, err := Decide(ActionSend, snap("a", true), snap("b", false))
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("sender without a row can still send", func(t *testing.T) {
		actor := snap("a", false)
		dec, err := Decide(ActionSend, actor, snap("b", true))
		require.NoError(t, err)
		assert.Equal(t, StatusSent, dec.Status)
	})

	t.Run("already friends is a no-op", func(t *testing.T) {
		actor := snap("a", true)
		actor.Friends = models.IDSet{"b"}
		other := snap("b", true)
		other.Friends = models.IDSet{"a"}

		dec, err := Decide(ActionSend, actor, other)
		require.NoError(t, err)
		assert.Equal(t, StatusAlreadyFriends, dec.Status)
		assert.True(t, dec.Actor.Empty())
		assert.True(t, dec.Other.Empty())
	})

	t.Run("one-sided friendship still reads as already friends", func(t *testing.T) {
		// A corrupted asymmetric state must not grow a pending edge on top.
		other := snap("b", true)
		other.Friends = models.IDSet{"a"}

		dec, err := Decide(ActionSend, snap("a", true), other)
		require.NoError(t, err)
		assert.Equal(t, StatusAlreadyFriends, dec.Status)
	})

	t.Run("resend is idempotent", func(t *testing.T) {
		actor := snap("a", true)
		actor.RequestsSent = models.IDSet{"b"}
		other := snap("b", true)
		other.RequestsReceived = models.IDSet{"a"}

		dec, err := Decide(ActionSend, actor, other)
		require.NoError(t, err)
		assert.Equal(t, StatusAlreadySent, dec.Status)
		assert.True(t, dec.Actor.Empty())
	})

	t.Run("crossed requests auto-accept", func(t *testing.T) {
		actor := snap("a", true)
		actor.RequestsReceived = models.IDSet{"b"}
		other := snap("b", true)
		other.RequestsSent = models.IDSet{"a"}

		dec, err := Decide(ActionSend, actor, other)
		require.NoError(t, err)
		assert.Equal(t, StatusAutoAccepted, dec.Status)

		afterActor := dec.Actor.Apply(actor)
		afterOther := dec.Other.Apply(other)
		assert.True(t, afterActor.Friends.Contains("b"))
		assert.True(t, afterOther.Friends.Contains("a"))
		assert.False(t, afterActor.RequestsReceived.Contains("b"))
		assert.False(t, afterOther.RequestsSent.Contains("a"))
	})

	t.Run("reverse edge visible on only one record still auto-accepts", func(t *testing.T) {
		other := snap("b", true)
		other.RequestsSent = models.IDSet{"a"}

		dec, err := Decide(ActionSend, snap("a", true), other)
		require.NoError(t, err)
		assert.Equal(t, StatusAutoAccepted, dec.Status)
	})
}

func TestDecideAccept(t *testing.T) {
	t.Run("pending request becomes friendship on both sides", func(t *testing.T) {
		actor := snap("b", true)
		actor.RequestsReceived = models.IDSet{"a"}
		other := snap("a", true)
		other.RequestsSent = models.IDSet{"b"}

		dec, err := Decide(ActionAccept, actor, other)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, dec.Status)

		afterActor := dec.Actor.Apply(actor)
		afterOther := dec.Other.Apply(other)
		assert.True(t, afterActor.Friends.Contains("a"))
		assert.True(t, afterOther.Friends.Contains("b"))
		assert.Empty(t, afterActor.RequestsReceived)
		assert.Empty(t, afterOther.RequestsSent)
	})

	t.Run("no pending request is a success no-op", func(t *testing.T) {
		dec, err := Decide(ActionAccept, snap("b", true), snap("a", true))
		require.NoError(t, err)
		assert.Equal(t, StatusNoOp, dec.Status)
		assert.True(t, dec.Actor.Empty())
	})

	t.Run("self accept is rejected", func(t *testing.T) {
		_, err := Decide(ActionAccept, snap("a", true), snap("a", true))
		assert.ErrorIs(t, err, ErrSelfAction)
	})

	t.Run("missing sender account is rejected", func(t *testing.T) {
		_, err := Decide(ActionAccept, snap("b", true), snap("a", false))
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDecideDeclineAndCancel(t *testing.T) {
	t.Run("decline removes the edge from both sides", func(t *testing.T) {
		actor := snap("b", true)
		actor.RequestsReceived = models.IDSet{"a"}
		other := snap("a", true)
		other.RequestsSent = models.IDSet{"b"}

		dec, err := Decide(ActionDecline, actor, other)
		require.NoError(t, err)
		assert.Equal(t, StatusDeclined, dec.Status)
		assert.Empty(t, dec.Actor.Apply(actor).RequestsReceived)
		assert.Empty(t, dec.Other.Apply(other).RequestsSent)
	})

	t.Run("decline with no edge succeeds without writes", func(t *testing.T) {
		dec, err := Decide(ActionDecline, snap("b", true), snap("a", true))
		require.NoError(t, err)
		assert.Equal(t, StatusDeclined, dec.Status)
		assert.True(t, dec.Actor.Empty())
	})

	t.Run("cancel removes the edge from both sides", func(t *testing.T) {
		actor := snap("a", true)
		actor.RequestsSent = models.IDSet{"b"}
		other := snap("b", true)
		other.RequestsReceived = models.IDSet{"a"}

		dec, err := Decide(ActionCancel, actor, other)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, dec.Status)
		assert.Empty(t, dec.Actor.Apply(actor).RequestsSent)
		assert.Empty(t, dec.Other.Apply(other).RequestsReceived)
	})

	t.Run("cancel with no edge succeeds without writes", func(t *testing.T) {
		dec, err := Decide(ActionCancel, snap("a", true), snap("b", true))
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, dec.Status)
		assert.True(t, dec.Actor.Empty())
	})

	t.Run("decline half-removes nothing when only one side has the edge", func(t *testing.T) {
		// Repair path: the edge is cleared from both views even when only
		// one record still holds it.
		other := snap("a", true)
		other.RequestsSent = models.IDSet{"b"}

		dec, err := Decide(ActionDecline, snap("b", true), other)
		require.NoError(t, err)
		assert.Equal(t, StatusDeclined, dec.Status)
		assert.False(t, dec.Other.Apply(other).RequestsSent.Contains("b"))
	})
}
