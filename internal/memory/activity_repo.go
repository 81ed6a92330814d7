package memory

import (
	"context"
	"sync"

	"github.com/cwrk-planet/activity-service/internal/domain"
	"github.com/cwrk-planet/activity-service/internal/seed"
)

type entry struct {
	mu       sync.Mutex
	activity domain.Activity
}

// ActivityRepository holds the activity catalog in memory.
// The set of activities is fixed at construction, so the index map is only
// read afterwards; each roster is guarded by its own mutex.
type ActivityRepository struct {
	index           map[string]*entry
	names           []string
	enforceCapacity bool
}

func NewActivityRepository(list []seed.Activity, enforceCapacity bool) *ActivityRepository {
	r := &ActivityRepository{
		index:           make(map[string]*entry, len(list)),
		names:           make([]string, 0, len(list)),
		enforceCapacity: enforceCapacity,
	}
	for _, a := range list {
		if _, dup := r.index[a.Name]; dup {
			continue
		}
		r.index[a.Name] = &entry{activity: domain.Activity{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
		}.Clone()}
		r.names = append(r.names, a.Name)
	}
	return r
}

// Names returns activity names in seed order.
func (r *ActivityRepository) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *ActivityRepository) List(ctx context.Context) (map[string]domain.Activity, error) {
	out := make(map[string]domain.Activity, len(r.index))
	for name, e := range r.index {
		out[name] = e.snapshot()
	}
	return out, nil
}

func (r *ActivityRepository) Get(ctx context.Context, name string) (domain.Activity, error) {
	e, ok := r.index[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	return e.snapshot(), nil
}

// Join appends email to the roster and returns the updated activity.
// A non-nil commit runs with the activity still locked, so commits on one
// activity observe rosters in mutation order.
func (r *ActivityRepository) Join(ctx context.Context, name, email string, commit func(domain.Activity)) (domain.Activity, error) {
	e, ok := r.index[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.activity.HasParticipant(email) {
		return domain.Activity{}, domain.ErrAlreadySignedUp
	}
	if r.enforceCapacity && e.activity.Full() {
		return domain.Activity{}, domain.ErrActivityFull
	}
	e.activity.Participants = append(e.activity.Participants, email)

	return e.commit(commit), nil
}

// Leave removes email from the roster and returns the updated activity.
// commit behaves as in Join.
func (r *ActivityRepository) Leave(ctx context.Context, name, email string, commit func(domain.Activity)) (domain.Activity, error) {
	e, ok := r.index[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.activity.HasParticipant(email) {
		return domain.Activity{}, domain.ErrNotSignedUp
	}
	e.activity.Participants = e.activity.Without(email)

	return e.commit(commit), nil
}

func (e *entry) snapshot() domain.Activity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activity.Clone()
}

// commit must be called with e.mu held.
func (e *entry) commit(fn func(domain.Activity)) domain.Activity {
	a := e.activity.Clone()
	if fn != nil {
		fn(a.Clone())
	}
	return a
}
