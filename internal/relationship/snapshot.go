package relationship

import "github.com/highshore/rumi-talk/internal/models"

// Snapshot is one user's relationship state as read at the start of a
// transaction. Exists refers to the account, not the relationship row: a
// registered user who has never touched the friend system has Exists=true
// and three empty sets.
type Snapshot struct {
	UID              string
	Exists           bool
	Friends          models.IDSet
	RequestsSent     models.IDSet
	RequestsReceived models.IDSet
}

// Delta is the set of field mutations to apply to one user's row. Adds and
// removes are applied as set operations, so replaying a delta is harmless.
type Delta struct {
	AddFriends             []string
	RemoveFriends          []string
	AddRequestsSent        []string
	RemoveRequestsSent     []string
	AddRequestsReceived    []string
	RemoveRequestsReceived []string
}

// Empty reports whether the delta carries no mutations.
func (d *Delta) Empty() bool {
	if d == nil {
		return true
	}
	return len(d.AddFriends) == 0 && len(d.RemoveFriends) == 0 &&
		len(d.AddRequestsSent) == 0 && len(d.RemoveRequestsSent) == 0 &&
		len(d.AddRequestsReceived) == 0 && len(d.RemoveRequestsReceived) == 0
}

// Apply returns the snapshot's sets with the delta applied. Removes run
// after adds within each field, matching how the store commits them.
func (d *Delta) Apply(s Snapshot) Snapshot {
	out := Snapshot{
		UID:              s.UID,
		Exists:           s.Exists,
		Friends:          s.Friends.Clone(),
		RequestsSent:     s.RequestsSent.Clone(),
		RequestsReceived: s.RequestsReceived.Clone(),
	}
	if d == nil {
		return out
	}
	for _, id := range d.AddFriends {
		out.Friends = out.Friends.Add(id)
	}
	for _, id := range d.RemoveFriends {
		out.Friends = out.Friends.Remove(id)
	}
	for _, id := range d.AddRequestsSent {
		out.RequestsSent = out.RequestsSent.Add(id)
	}
	for _, id := range d.RemoveRequestsSent {
		out.RequestsSent = out.RequestsSent.Remove(id)
	}
	for _, id := range d.AddRequestsReceived {
		out.RequestsReceived = out.RequestsReceived.Add(id)
	}
	for _, id := range d.RemoveRequestsReceived {
		out.RequestsReceived = out.RequestsReceived.Remove(id)
	}
	return out
}
