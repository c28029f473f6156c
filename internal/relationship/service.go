package relationship

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// maxTxAttempts bounds how often a lost transaction race is retried before
// the operation fails as internal.
const maxTxAttempts = 3

// Service orchestrates friend operations: resolve the counterpart, run the
// state machine inside one atomic read-modify-write unit, and retry the
// whole unit when a concurrent transaction wins the race. Either both
// sides of an edge change or neither does.
type Service struct {
	store    Store
	resolver *Resolver
}

func NewService(store Store, resolver *Resolver) *Service {
	return &Service{store: store, resolver: resolver}
}

// SendInput identifies the target of a friend request by uid or by email.
type SendInput struct {
	TargetUID   string `json:"targetId"`
	TargetEmail string `json:"targetEmail"`
}

// SendRequest sends a friend request from actorUID to the resolved target.
func (s *Service) SendRequest(ctx context.Context, actorUID string, in SendInput) (Status, error) {
	otherUID, err := s.resolver.Resolve(ctx, in.TargetUID, in.TargetEmail)
	if err != nil {
		return "", err
	}
	if otherUID == actorUID {
		return "", ErrSelfAction
	}
	return s.run(ctx, ActionSend, actorUID, otherUID)
}

// AcceptRequest accepts a pending request sent by fromUID.
func (s *Service) AcceptRequest(ctx context.Context, actorUID, fromUID string) (Status, error) {
	fromUID = strings.TrimSpace(fromUID)
	if fromUID == "" {
		return "", ErrInvalidTarget
	}
	if fromUID == actorUID {
		return "", ErrSelfAction
	}
	return s.run(ctx, ActionAccept, actorUID, fromUID)
}

// DeclineRequest removes a pending request from fromUID. Declining an edge
// that no longer exists is a success.
func (s *Service) DeclineRequest(ctx context.Context, actorUID, fromUID string) (Status, error) {
	fromUID = strings.TrimSpace(fromUID)
	if fromUID == "" {
		return "", ErrInvalidTarget
	}
	return s.run(ctx, ActionDecline, actorUID, fromUID)
}

// CancelRequest withdraws a request the actor sent to toUID. Cancelling an
// edge that no longer exists is a success.
func (s *Service) CancelRequest(ctx context.Context, actorUID, toUID string) (Status, error) {
	toUID = strings.TrimSpace(toUID)
	if toUID == "" {
		return "", ErrInvalidTarget
	}
	return s.run(ctx, ActionCancel, actorUID, toUID)
}

// Overview returns the caller's own relationship snapshot.
func (s *Service) Overview(ctx context.Context, uid string) (Snapshot, error) {
	return s.store.ReadSnapshot(ctx, uid)
}

func (s *Service) run(ctx context.Context, action Action, actorUID, otherUID string) (Status, error) {
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		decision, err := s.store.UpdatePair(ctx, actorUID, otherUID, func(actor, other Snapshot) (Decision, error) {
			return Decide(action, actor, other)
		})
		if errors.Is(err, ErrTxConflict) {
			logrus.WithFields(logrus.Fields{
				"action":  action,
				"actor":   actorUID,
				"other":   otherUID,
				"attempt": attempt,
			}).Debug("relationship transaction conflict, retrying")
			continue
		}
		if err != nil {
			return "", err
		}
		return decision.Status, nil
	}
	return "", ErrTxExhausted
}
