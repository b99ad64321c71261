package session

import (
	"sync"
	"time"

	"ai-travel-planner/internal/itinerary"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DefaultTTL is how long an untouched session survives.
const DefaultTTL = 30 * time.Minute

// Session holds the state of one interactive planning session: the current
// itinerary, its cached total cost and the destination. It is private to one
// user; there is no cross-session sharing.
type Session struct {
	ID          string
	Destination string
	Itinerary   itinerary.Itinerary
	TotalCost   float64
	Demo        bool
	CreatedAt   time.Time

	mu sync.Mutex
}

// WithLock runs fn while holding the session's mutation lock, so at most one
// generation or refinement is in flight per session. Applying the cost
// adjustment and the activity overwrite under one critical section is what
// keeps the budget invariant from being half-applied.
func (s *Session) WithLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// Store keeps sessions in an in-process TTL cache. Expiry is garbage
// collection of abandoned sessions, not persistence: nothing outlives the
// process.
type Store struct {
	cache *cache.Cache
}

// NewStore creates a session store. A non-positive ttl selects DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: cache.New(ttl, 10*time.Minute)}
}

// Create registers a new session for the given destination.
func (s *Store) Create(destination string, demo bool) *Session {
	sess := &Session{
		ID:          uuid.NewString(),
		Destination: destination,
		Demo:        demo,
		CreatedAt:   time.Now(),
	}
	s.cache.SetDefault(sess.ID, sess)
	return sess
}

// Get returns the session with the given ID. Access slides the expiry
// forward so an active session never times out mid-conversation.
func (s *Store) Get(id string) (*Session, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	sess := v.(*Session)
	s.cache.SetDefault(id, sess)
	return sess, true
}

// Delete removes a session immediately.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Count reports the number of live sessions, expired entries included until
// the next cleanup pass.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
