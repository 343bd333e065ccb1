package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"localspot/internal/model"
)

// Error messages are shown verbatim in the auth flow, so they are written
// for humans, not operators.
var (
	errInvalidCredentials = errors.New("invalid email or password")
	errAccountExists      = errors.New("an account with this email already exists")
	errWeakPassword       = errors.New("password must be at least 6 characters")
	errBadEmail           = errors.New("enter a valid email address")
)

type account struct {
	userID string
	salt   []byte
	digest []byte
}

// MemoryProvider is an in-process AuthProvider keeping accounts and the
// current session in memory. Subscribers are notified on every sign-in
// and sign-out, including the initial resolution performed by Start.
type MemoryProvider struct {
	mu          sync.Mutex
	accounts    map[string]account // keyed by lowercased email
	session     *model.Session
	subscribers []func(*model.Session)
}

// NewMemoryProvider creates an empty provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{accounts: make(map[string]account)}
}

// Start performs the initial session resolution. A fresh provider always
// resolves to anonymous, but subscribers still get the event.
func (p *MemoryProvider) Start() {
	p.notify(p.Session())
}

// Session returns the current session, or nil when anonymous.
func (p *MemoryProvider) Session() *model.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return nil
	}
	s := *p.session
	return &s
}

// OnSessionChange registers a callback fired on every session change.
func (p *MemoryProvider) OnSessionChange(fn func(*model.Session)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// SignUp registers a new account and signs it in.
func (p *MemoryProvider) SignUp(ctx context.Context, email, password string) error {
	key, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if len(password) < 6 {
		return errWeakPassword
	}

	p.mu.Lock()
	if _, exists := p.accounts[key]; exists {
		p.mu.Unlock()
		return errAccountExists
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		p.mu.Unlock()
		return errors.New("could not create account, try again")
	}
	acct := account{
		userID: uuid.New().String(),
		salt:   salt,
		digest: digest(salt, password),
	}
	p.accounts[key] = acct
	session := &model.Session{UserID: acct.userID, Email: key}
	p.session = session
	p.mu.Unlock()

	p.notify(session)
	return nil
}

// SignIn authenticates an existing account.
func (p *MemoryProvider) SignIn(ctx context.Context, email, password string) error {
	key, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	p.mu.Lock()
	acct, exists := p.accounts[key]
	if !exists || subtle.ConstantTimeCompare(acct.digest, digest(acct.salt, password)) != 1 {
		p.mu.Unlock()
		return errInvalidCredentials
	}
	session := &model.Session{UserID: acct.userID, Email: key}
	p.session = session
	p.mu.Unlock()

	p.notify(session)
	return nil
}

// SignOut clears the session.
func (p *MemoryProvider) SignOut() {
	p.mu.Lock()
	p.session = nil
	p.mu.Unlock()
	p.notify(nil)
}

func (p *MemoryProvider) notify(s *model.Session) {
	p.mu.Lock()
	subs := make([]func(*model.Session), len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return "", errBadEmail
	}
	return email, nil
}

func digest(salt []byte, password string) []byte {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(password))
	return h.Sum(nil)
}
