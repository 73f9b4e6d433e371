// Package auth owns the user directory and login sessions.
//
// Passwords are bcrypt hashes and sessions are HS256 JWTs. The Manager keeps
// one "current user" for single-user callers such as the CLI (Signup, Login,
// Logout, Resume, Current). The HTTP layer never touches it: it uses Register,
// Authorize and Authenticate, which only issue or check tokens.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"workboard/internal/model"
	"workboard/internal/persist"
)

type Options struct {
	Backend    persist.Backend
	Secret     []byte // empty: LoadOrInitSecret
	TTL        time.Duration
	Issuer     string
	BcryptCost int
	Debounce   time.Duration
	Logger     *slog.Logger
	Now        func() time.Time
}

type SignupInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
}

type ProfilePatch struct {
	Name        *string `json:"name,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
	Language    *string `json:"language,omitempty"`
}

// Session is what a successful login or signup hands back. User carries no password hash.
type Session struct {
	User      model.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

type Manager struct {
	dir    *Directory
	hasher *PasswordHasher
	tokens *TokenIssuer
	now    func() time.Time
	log    *slog.Logger

	mu      sync.RWMutex
	current *model.User
}

func NewManager(ctx context.Context, opts Options) (*Manager, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	secret := opts.Secret
	if len(secret) == 0 {
		if opts.Backend == nil {
			return nil, fmt.Errorf("auth: no signing secret and no backend to keep one")
		}
		s, err := LoadOrInitSecret(ctx, opts.Backend)
		if err != nil {
			return nil, fmt.Errorf("signing secret: %w", err)
		}
		secret = s
	}
	dir, err := LoadDirectory(ctx, opts.Backend, opts.Debounce, log)
	if err != nil {
		return nil, err
	}
	tokens := NewTokenIssuer(secret, opts.TTL, opts.Issuer)
	tokens.now = now
	return &Manager{
		dir:    dir,
		hasher: NewPasswordHasher(opts.BcryptCost),
		tokens: tokens,
		now:    now,
		log:    log,
	}, nil
}

func (m *Manager) Tokens() *TokenIssuer { return m.tokens }

func (m *Manager) Directory() *Directory { return m.dir }

// Signup creates an account and makes it the current user.
func (m *Manager) Signup(ctx context.Context, in SignupInput) (Session, error) {
	sess, err := m.Register(ctx, in)
	if err != nil {
		return Session{}, err
	}
	m.setCurrent(&sess.User)
	return sess, nil
}

// Register creates an account and issues its token without touching the current user.
// An existing email leaves the directory untouched.
func (m *Manager) Register(ctx context.Context, in SignupInput) (Session, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(in.Email))
	if err != nil {
		return Session{}, ErrInvalidEmail
	}
	if err := checkPassword(in.Password); err != nil {
		return Session{}, err
	}
	email := normalizeEmail(addr.Address)
	if _, ok := m.dir.ByEmail(email); ok {
		return Session{}, ErrUserExists
	}
	hash, err := m.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	now := m.now().UTC()
	u, err := m.dir.insert(model.User{
		Email:        email,
		Name:         name,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		PasswordHash: hash,
		Status:       model.UserActive,
		Timezone:     "UTC",
		Language:     "en",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return Session{}, err
	}
	m.log.Info("user signed up", "user", u.ID)
	return m.issue(u)
}

// Login checks credentials and makes the user current.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	sess, err := m.Authorize(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	m.setCurrent(&sess.User)
	return sess, nil
}

// Authorize checks credentials and issues a token without touching the current user.
func (m *Manager) Authorize(ctx context.Context, email, password string) (Session, error) {
	u, ok := m.dir.ByEmail(email)
	if !ok {
		m.hasher.Burn(password)
		return Session{}, ErrInvalidCredentials
	}
	if !m.hasher.Verify(password, u.PasswordHash) || u.Status != model.UserActive {
		return Session{}, ErrInvalidCredentials
	}
	return m.issue(u)
}

func (m *Manager) issue(u model.User) (Session, error) {
	token, exp, err := m.tokens.Issue(u)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{User: u.Public(), Token: token, ExpiresAt: exp}, nil
}

func (m *Manager) Logout(ctx context.Context) {
	m.setCurrent(nil)
}

func (m *Manager) setCurrent(u *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u == nil {
		m.current = nil
		return
	}
	cp := *u
	m.current = &cp
}

// Current returns the logged-in user without its password hash.
func (m *Manager) Current() (model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return model.User{}, false
	}
	return m.current.Public(), true
}

// Authenticate resolves a token to its user without touching the current user.
func (m *Manager) Authenticate(token string) (model.User, error) {
	claims, err := m.tokens.Verify(token)
	if err != nil {
		return model.User{}, err
	}
	u, ok := m.dir.ByID(claims.UserID)
	if !ok || u.Status != model.UserActive {
		return model.User{}, ErrInvalidToken
	}
	return u.Public(), nil
}

// Resume restores the current user from a previously issued token.
func (m *Manager) Resume(ctx context.Context, token string) (model.User, error) {
	claims, err := m.tokens.Verify(token)
	if err != nil {
		return model.User{}, err
	}
	u, ok := m.dir.ByID(claims.UserID)
	if !ok || u.Status != model.UserActive {
		return model.User{}, ErrInvalidToken
	}
	m.setCurrent(&u)
	return u.Public(), nil
}

// UpdateProfile patches the current user.
func (m *Manager) UpdateProfile(ctx context.Context, p ProfilePatch) (model.User, error) {
	cur, ok := m.Current()
	if !ok {
		return model.User{}, ErrNotLoggedIn
	}
	u, err := m.UpdateUser(ctx, cur.ID, p)
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// UpdateUser patches the user with the given id.
func (m *Manager) UpdateUser(ctx context.Context, id string, p ProfilePatch) (model.User, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return model.User{}, ProfileError{Field: "name", Reason: "must not be empty"}
	}
	if p.Timezone != nil {
		if _, err := time.LoadLocation(*p.Timezone); err != nil || *p.Timezone == "" {
			return model.User{}, ProfileError{Field: "timezone", Reason: "unknown time zone"}
		}
	}
	if p.Language != nil && strings.TrimSpace(*p.Language) == "" {
		return model.User{}, ProfileError{Field: "language", Reason: "must not be empty"}
	}

	u, err := m.dir.update(id, func(u *model.User) error {
		if p.Name != nil {
			u.Name = strings.TrimSpace(*p.Name)
		}
		if p.DisplayName != nil {
			u.DisplayName = strings.TrimSpace(*p.DisplayName)
		}
		if p.Avatar != nil {
			u.Avatar = strings.TrimSpace(*p.Avatar)
		}
		if p.PhoneNumber != nil {
			u.PhoneNumber = strings.TrimSpace(*p.PhoneNumber)
		}
		if p.Timezone != nil {
			u.Timezone = *p.Timezone
		}
		if p.Language != nil {
			u.Language = strings.TrimSpace(*p.Language)
		}
		now := m.now().UTC()
		if !now.After(u.UpdatedAt) {
			now = u.UpdatedAt.Add(time.Nanosecond)
		}
		u.UpdatedAt = now
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	m.mu.Lock()
	if m.current != nil && m.current.ID == u.ID {
		cp := u
		m.current = &cp
	}
	m.mu.Unlock()
	return u.Public(), nil
}

// User looks a user up by id.
func (m *Manager) User(id string) (model.User, error) {
	u, ok := m.dir.ByID(id)
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u.Public(), nil
}

// Flush writes pending directory changes.
func (m *Manager) Flush(ctx context.Context) error {
	return m.dir.Flush(ctx)
}
