package relationship

import "fmt"

// Action is one of the four mutating friend operations.
type Action string

const (
	ActionSend    Action = "send"
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionCancel  Action = "cancel"
)

// Status is the outcome tag returned to the caller.
type Status string

const (
	StatusSent           Status = "sent"
	StatusAutoAccepted   Status = "auto_accepted"
	StatusAlreadySent    Status = "already_sent"
	StatusAlreadyFriends Status = "already_friends"
	StatusAccepted       Status = "accepted"
	StatusNoOp           Status = "noop"
	StatusDeclined       Status = "declined"
	StatusCancelled      Status = "cancelled"
)

// Decision is what the state machine hands back: an outcome tag plus the
// writes required on each side. Both deltas are nil for pure no-ops.
type Decision struct {
	Status Status
	Actor  *Delta
	Other  *Delta
}

// Decide computes the next relationship state for a pair of users given one
// action. It is a pure function of its inputs; the transaction plumbing
// that feeds it consistent snapshots and commits its deltas lives in the
// Store and Service.
//
// Decline and Cancel never fail: racing counterparts (sender cancels while
// recipient accepts) are normal traffic, and the losing side must see a
// harmless success rather than an error.
func Decide(action Action, actor, other Snapshot) (Decision, error) {
	switch action {
	case ActionSend:
		return decideSend(actor, other)
	case ActionAccept:
		return decideAccept(actor, other)
	case ActionDecline:
		return decideDecline(actor, other), nil
	case ActionCancel:
		return decideCancel(actor, other), nil
	}
	return Decision{}, fmt.Errorf("relationship: unknown action %q", action)
}

func decideSend(actor, other Snapshot) (Decision, error) {
	if actor.UID == other.UID {
		return Decision{}, ErrSelfAction
	}
	// The target must be a real account. The actor's own row may not exist
	// yet; it is created lazily by the write.
	if !other.Exists {
		return Decision{}, ErrUserNotFound
	}

	if actor.Friends.Contains(other.UID) || other.Friends.Contains(actor.UID) {
		return Decision{Status: StatusAlreadyFriends}, nil
	}
	if actor.RequestsSent.Contains(other.UID) {
		return Decision{Status: StatusAlreadySent}, nil
	}

	// Crossed requests: the other side already has a pending request toward
	// the actor, in either record's view. Collapse the reverse edge straight
	// into friendship instead of leaving two redundant pending edges.
	if actor.RequestsReceived.Contains(other.UID) || other.RequestsSent.Contains(actor.UID) {
		return Decision{
			Status: StatusAutoAccepted,
			Actor: &Delta{
				AddFriends:             []string{other.UID},
				RemoveRequestsReceived: []string{other.UID},
			},
			Other: &Delta{
				AddFriends:         []string{actor.UID},
				RemoveRequestsSent: []string{actor.UID},
			},
		}, nil
	}

	return Decision{
		Status: StatusSent,
		Actor:  &Delta{AddRequestsSent: []string{other.UID}},
		Other:  &Delta{AddRequestsReceived: []string{actor.UID}},
	}, nil
}

func decideAccept(actor, other Snapshot) (Decision, error) {
	if actor.UID == other.UID {
		return Decision{}, ErrSelfAction
	}
	if !other.Exists {
		return Decision{}, ErrUserNotFound
	}

	// Already accepted, already declined, or never sent — indistinguishable
	// here and all fine to report as success.
	if !actor.RequestsReceived.Contains(other.UID) {
		return Decision{Status: StatusNoOp}, nil
	}

	return Decision{
		Status: StatusAccepted,
		Actor: &Delta{
			AddFriends:             []string{other.UID},
			RemoveRequestsReceived: []string{other.UID},
		},
		Other: &Delta{
			AddFriends:         []string{actor.UID},
			RemoveRequestsSent: []string{actor.UID},
		},
	}, nil
}

func decideDecline(actor, other Snapshot) Decision {
	dec := Decision{Status: StatusDeclined}
	if !actor.RequestsReceived.Contains(other.UID) && !other.RequestsSent.Contains(actor.UID) {
		return dec
	}
	dec.Actor = &Delta{RemoveRequestsReceived: []string{other.UID}}
	dec.Other = &Delta{RemoveRequestsSent: []string{actor.UID}}
	return dec
}

func decideCancel(actor, other Snapshot) Decision {
	dec := Decision{Status: StatusCancelled}
	if !actor.RequestsSent.Contains(other.UID) && !other.RequestsReceived.Contains(actor.UID) {
		return dec
	}
	dec.Actor = &Delta{RemoveRequestsSent: []string{other.UID}}
	dec.Other = &Delta{RemoveRequestsReceived: []string{actor.UID}}
	return dec
}
