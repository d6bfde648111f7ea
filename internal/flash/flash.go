package flash

import (
	"net/http"
	"sync"
	"time"
)

// CookieName is the cookie that carries the flash token.
const CookieName = "recipebox_flash"

// DefaultTTL bounds how long an unread message is kept.
const DefaultTTL = 10 * time.Minute

// Category classifies a message for display.
type Category string

const (
	Success Category = "success"
	Danger  Category = "danger"
)

// Message is a single notification.
type Message struct {
	Text     string
	Category Category
}

// NewSuccess returns a success message.
func NewSuccess(text string) Message {
	return Message{Text: text, Category: Success}
}

// NewDanger returns a failure message.
func NewDanger(text string) Message {
	return Message{Text: text, Category: Danger}
}

type entry struct {
	messages []Message
	created  time.Time
}

// Store keeps pending messages keyed by cookie token.
// It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	gen     TokenGenerator
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithGenerator overrides the token generator (default UUIDv7Generator).
func WithGenerator(gen TokenGenerator) Option {
	return func(s *Store) { s.gen = gen }
}

// WithTTL overrides how long unread messages are kept (default DefaultTTL).
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty flash store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		gen:     UUIDv7Generator{},
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add queues msg for the next request from the same client.
//
// The client's token is reused only while it still has pending messages.
// Any other token, including one the store never issued, is replaced by a
// freshly generated one set as a cookie on w. Must be called before the
// response header is written.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, msg Message) {
	token := tokenFrom(r)

	s.mu.Lock()
	now := s.now()
	s.sweepLocked(now)
	e, ok := s.entries[token]
	if !ok {
		token = s.gen.Generate()
		e = &entry{created: now}
		s.entries[token] = e
	}
	e.messages = append(e.messages, msg)
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns and forgets every message pending for the request's token.
// Returns nil when there are none. The cookie is expired on w whenever the
// request carried one.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	token := tokenFrom(r)
	if token == "" {
		return nil
	}

	s.mu.Lock()
	e, ok := s.entries[token]
	delete(s.entries, token)
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if !ok || s.expired(e, s.now()) {
		return nil
	}
	return e.messages
}

// Peek returns the messages pending for the request's token without
// consuming them. Returns nil when there are none.
func (s *Store) Peek(r *http.Request) []Message {
	token := tokenFrom(r)
	if token == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok || s.expired(e, s.now()) {
		return nil
	}
	return append([]Message(nil), e.messages...)
}

// Pending returns the number of tokens with unread messages.
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) sweepLocked(now time.Time) {
	for token, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, token)
		}
	}
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return now.Sub(e.created) > s.ttl
}

func tokenFrom(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
