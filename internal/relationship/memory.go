package relationship

import (
	"context"
	"sync"

	"github.com/highshore/rumi-talk/internal/models"
)

// MemoryStore is an in-memory Store and Directory. It serializes every
// UpdatePair behind one mutex, which trivially satisfies the atomicity
// contract. Used by tests and local development.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]string // uid -> email
	rows     map[string]Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]string),
		rows:     make(map[string]Snapshot),
	}
}

// AddAccount registers a uid (and optional email) as an existing account.
func (m *MemoryStore) AddAccount(uid, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[uid] = email
}

func (m *MemoryStore) ReadSnapshot(ctx context.Context, uid string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(uid), nil
}

func (m *MemoryStore) UIDByEmail(ctx context.Context, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for uid, e := range m.accounts {
		if e == email {
			return uid, nil
		}
	}
	return "", ErrUserNotFound
}

func (m *MemoryStore) UpdatePair(ctx context.Context, actorUID, otherUID string, fn UpdateFunc) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	actor := m.snapshotLocked(actorUID)
	other := m.snapshotLocked(otherUID)

	decision, err := fn(actor, other)
	if err != nil {
		return Decision{}, err
	}

	if !decision.Actor.Empty() {
		m.rows[actorUID] = decision.Actor.Apply(actor)
	}
	if !decision.Other.Empty() {
		m.rows[otherUID] = decision.Other.Apply(other)
	}
	return decision, nil
}

func (m *MemoryStore) snapshotLocked(uid string) Snapshot {
	_, exists := m.accounts[uid]
	row, ok := m.rows[uid]
	if !ok {
		return Snapshot{UID: uid, Exists: exists, Friends: models.IDSet{}, RequestsSent: models.IDSet{}, RequestsReceived: models.IDSet{}}
	}
	return Snapshot{
		UID:              uid,
		Exists:           exists,
		Friends:          row.Friends.Clone(),
		RequestsSent:     row.RequestsSent.Clone(),
		RequestsReceived: row.RequestsReceived.Clone(),
	}
}
