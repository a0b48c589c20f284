package memory

import (
	"sync"
	"sync/atomic"
	"time"

	"report-automation-be/pkg/questionnaire"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps in-progress questionnaires. Sessions that are not
// touched for the TTL are dropped, which is how abandoned workflows go away.
type SessionRepository struct {
	cache *cache.Cache
}

// sessionEntry serializes every request against one session. removed is
// checked under mu so a caller queued behind a finalize sees the session gone.
type sessionEntry struct {
	mu      sync.Mutex
	removed atomic.Bool
	session *questionnaire.Session
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 4 * time.Hour
	}
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

// Save registers a new session.
func (r *SessionRepository) Save(sessionID string, session *questionnaire.Session) {
	r.cache.Set(sessionID, &sessionEntry{session: session}, cache.DefaultExpiration)
}

// Acquire locks the session for exclusive use and refreshes its expiry. The
// returned release func must be called once the caller is done with it.
func (r *SessionRepository) Acquire(sessionID string) (*questionnaire.Session, func(), bool) {
	x, found := r.cache.Get(sessionID)
	if !found {
		return nil, nil, false
	}
	e := x.(*sessionEntry)
	e.mu.Lock()
	if e.removed.Load() {
		e.mu.Unlock()
		return nil, nil, false
	}
	_ = r.cache.Replace(sessionID, e, cache.DefaultExpiration)
	return e.session, e.mu.Unlock, true
}

// Get returns the session without locking it.
func (r *SessionRepository) Get(sessionID string) (*questionnaire.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*sessionEntry).session, true
	}
	return nil, false
}

// Delete drops the session. Callers holding it through Acquire keep their
// lock; anyone waiting on it is turned away once it is released.
func (r *SessionRepository) Delete(sessionID string) {
	if x, found := r.cache.Get(sessionID); found {
		x.(*sessionEntry).removed.Store(true)
	}
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
