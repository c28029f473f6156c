package relationship

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/highshore/rumi-talk/internal/models"
)

// UpdateFunc receives the pair's snapshots as read inside the transaction
// and returns the decision to commit. Returning an error aborts the unit
// with nothing written.
type UpdateFunc func(actor, other Snapshot) (Decision, error)

// Store is the transactional accessor for relationship state. UpdatePair
// must guarantee that the snapshots handed to fn and the deltas it returns
// belong to the same atomic unit: no concurrent write may interleave
// between the read and the commit. Implementations signal a lost race with
// ErrTxConflict so the caller can retry.
type Store interface {
	ReadSnapshot(ctx context.Context, uid string) (Snapshot, error)
	UpdatePair(ctx context.Context, actorUID, otherUID string, fn UpdateFunc) (Decision, error)
}

// Directory resolves secondary keys to canonical uids.
type Directory interface {
	UIDByEmail(ctx context.Context, email string) (string, error)
}

// GormStore implements Store and Directory on Postgres. Row locks are taken
// in uid order so two transactions on the same pair cannot deadlock by
// locking in opposite orders; rows that do not exist yet cannot be locked,
// which is why concurrent lazy inserts surface as unique violations and go
// through the conflict-retry path instead.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ReadSnapshot returns one user's relationship state outside a pair
// transaction. Missing relationship rows read as empty sets.
func (s *GormStore) ReadSnapshot(ctx context.Context, uid string) (Snapshot, error) {
	var snap Snapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := accountExists(tx, uid)
		if err != nil {
			return err
		}
		snap, err = loadSnapshot(tx, uid, exists, false)
		return err
	})
	return snap, err
}

// UIDByEmail implements Directory via the unique index on users.email.
func (s *GormStore) UIDByEmail(ctx context.Context, email string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("uid").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return user.UID, nil
}

func (s *GormStore) UpdatePair(ctx context.Context, actorUID, otherUID string, fn UpdateFunc) (Decision, error) {
	var decision Decision
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actorExists, err := accountExists(tx, actorUID)
		if err != nil {
			return err
		}
		otherExists, err := accountExists(tx, otherUID)
		if err != nil {
			return err
		}

		snaps := make(map[string]Snapshot, 2)
		ordered := []string{actorUID, otherUID}
		sort.Strings(ordered)
		for _, uid := range ordered {
			exists := actorExists
			if uid == otherUID {
				exists = otherExists
			}
			snap, err := loadSnapshot(tx, uid, exists, true)
			if err != nil {
				return err
			}
			snaps[uid] = snap
		}

		decision, err = fn(snaps[actorUID], snaps[otherUID])
		if err != nil {
			return err
		}

		if err := commitDelta(tx, snaps[actorUID], decision.Actor); err != nil {
			return err
		}
		return commitDelta(tx, snaps[otherUID], decision.Other)
	})
	if err != nil {
		return Decision{}, classifyTxError(err)
	}
	return decision, nil
}

func accountExists(tx *gorm.DB, uid string) (bool, error) {
	var count int64
	if err := tx.Model(&models.User{}).Where("uid = ?", uid).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// loadSnapshot reads one relationship row, FOR UPDATE when locked is set.
// hasRow is tracked through Snapshot by leaving nil sets for absent rows;
// commitDelta uses that to choose insert vs update.
func loadSnapshot(tx *gorm.DB, uid string, exists, locked bool) (Snapshot, error) {
	q := tx
	if locked {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row models.UserRelationship
	err := q.Where("uid = ?", uid).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Snapshot{UID: uid, Exists: exists}, nil
	}
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		UID:              uid,
		Exists:           exists,
		Friends:          row.Friends,
		RequestsSent:     row.RequestsSent,
		RequestsReceived: row.RequestsReceived,
	}, nil
}

func commitDelta(tx *gorm.DB, before Snapshot, delta *Delta) error {
	if delta.Empty() {
		return nil
	}
	after := delta.Apply(before)

	hadRow := before.Friends != nil || before.RequestsSent != nil || before.RequestsReceived != nil
	if !hadRow {
		return tx.Create(&models.UserRelationship{
			UID:              after.UID,
			Friends:          orEmpty(after.Friends),
			RequestsSent:     orEmpty(after.RequestsSent),
			RequestsReceived: orEmpty(after.RequestsReceived),
		}).Error
	}

	return tx.Model(&models.UserRelationship{}).Where("uid = ?", after.UID).Updates(map[string]interface{}{
		"friends":           orEmpty(after.Friends),
		"requests_sent":     orEmpty(after.RequestsSent),
		"requests_received": orEmpty(after.RequestsReceived),
	}).Error
}

func orEmpty(s models.IDSet) models.IDSet {
	if s == nil {
		return models.IDSet{}
	}
	return s
}

// classifyTxError folds Postgres abort conditions into ErrTxConflict:
// serialization failures, deadlocks, and duplicate-key errors from two
// transactions lazily creating the same relationship row.
func classifyTxError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "23505":
			return ErrTxConflict
		}
	}
	return err
}
