package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"workboard/internal/persist"
)

func newTestManager(t *testing.T, backend persist.Backend) *Manager {
	t.Helper()
	m, err := NewManager(context.Background(), Options{Backend: backend, BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestSignup_CreatesUserWithDefaults(t *testing.T) {
	m := newTestManager(t, persist.NewMemory())
	sess, err := m.Signup(context.Background(), SignupInput{Email: " Ada@Example.com ", Password: "password1", Name: "Ada"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	u := sess.User
	if u.Email != "ada@example.com" || u.Status != "ACTIVE" || u.Timezone != "UTC" || u.Language != "en" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if len(u.ID) != 21 {
		t.Fatalf("expected 21-char nanoid, got %q", u.ID)
	}
	if u.PasswordHash != "" {
		t.Fatalf("session user must not carry the password hash")
	}
	if sess.Token == "" {
		t.Fatalf("expected a token")
	}
	if cur, ok := m.Current(); !ok || cur.ID != u.ID {
		t.Fatalf("expected signed-up user to be current")
	}
	stored, _ := m.Directory().ByID(u.ID)
	if stored.PasswordHash == "" || strings.Contains(stored.PasswordHash, "password1") {
		t.Fatalf("expected a bcrypt hash to be stored, got %q", stored.PasswordHash)
	}
}

func TestSignup_DuplicateEmailLeavesDirectoryUnchanged(t *testing.T) {
	m := newTestManager(t, persist.NewMemory())
	ctx := context.Background()
	if _, err := m.Signup(ctx, SignupInput{Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	_, err := m.Signup(ctx, SignupInput{Email: "A@example.com", Password: "password2"})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if n := m.Directory().Len(); n != 1 {
		t.Fatalf("expected one user, got %d", n)
	}
}

func TestSignup_Validation(t *testing.T) {
	m := newTestManager(t, persist.NewMemory())
	ctx := context.Background()
	if _, err := m.Signup(ctx, SignupInput{Email: "nope", Password: "password1"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := m.Signup(ctx, SignupInput{Email: "a@example.com", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if m.Directory().Len() != 0 {
		t.Fatalf("failed signups must not add users")
	}
}

func TestLogin_WrongPasswordAndUnknownEmail(t *testing.T) {
	m := newTestManager(t, persist.NewMemory())
	ctx := context.Background()
	if _, err := m.Signup(ctx, SignupInput{Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	m.Logout(ctx)

	if _, err := m.Login(ctx, "a@example.com", "password2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := m.Login(ctx, "b@example.com", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, ok := m.Current(); ok {
		t.Fatalf("failed logins must not set a current user")
	}

	sess, err := m.Login(ctx, "A@EXAMPLE.COM", "password1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u, err := m.Authenticate(sess.Token); err != nil || u.Email != "a@example.com" {
		t.Fatalf("Authenticate: %+v %v", u, err)
	}
}

func TestLogout_ThenProfileUpdateFails(t *testing.T) {
	m := newTestManager(t, persist.NewMemory())
	ctx := context.Background()
	if _, err := m.Signup(ctx, SignupInput{Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	m.Logout(ctx)
	if _, ok := m.Current(); ok {
		t.Fatalf("expected no current user after logout")
	}
	name := "New"
	if _, err := m.UpdateProfile(ctx, ProfilePatch{Name: &name}); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestUpdateProfile_MergesAndAdvancesUpdatedAt(t *testing.T) {
	m := newTestManager(t, persist.NewMemory())
	ctx := context.Background()
	sess, _ := m.Signup(ctx, SignupInput{Email: "a@example.com", Password: "password1", Name: "A"})

	lang := "nb"
	u, err := m.UpdateProfile(ctx, ProfilePatch{Language: &lang})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.Language != "nb" || u.Name != "A" || u.Timezone != "UTC" {
		t.Fatalf("unexpected user after patch: %+v", u)
	}
	if !u.UpdatedAt.After(sess.User.UpdatedAt) {
		t.Fatalf("expected updatedAt to advance")
	}
	bad := "Mars/Olympus"
	var pe ProfileError
	if _, err := m.UpdateProfile(ctx, ProfilePatch{Timezone: &bad}); !errors.As(err, &pe) {
		t.Fatalf("expected ProfileError, got %v", err)
	}
}

func TestResume_RestoresUserAcrossManagers(t *testing.T) {
	backend := persist.NewMemory()
	ctx := context.Background()
	m := newTestManager(t, backend)
	sess, err := m.Signup(ctx, SignupInput{Email: "a@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if err := m.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	// Same backend: same secret and the persisted directory.
	m2 := newTestManager(t, backend)
	u, err := m2.Resume(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if u.ID != sess.User.ID {
		t.Fatalf("expected %q, got %q", sess.User.ID, u.ID)
	}
	if _, err := m2.Resume(ctx, sess.Token+"x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLogin_UnknownEmailCostsOneComparison(t *testing.T) {
	m := newTestManager(t, persist.NewMemory())
	ctx := context.Background()
	if _, err := m.Signup(ctx, SignupInput{Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	var costs []int
	m.hasher.compare = func(hash, password []byte) error {
		cost, err := bcrypt.Cost(hash)
		if err != nil {
			t.Fatalf("compared against a non-bcrypt hash %q: %v", hash, err)
		}
		costs = append(costs, cost)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	if _, err := m.Login(ctx, "a@example.com", "password2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := m.Login(ctx, "nobody@example.com", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if len(costs) != 2 || costs[0] != costs[1] || costs[1] != bcrypt.MinCost {
		t.Fatalf("expected one comparison per login at cost %d; got %v", bcrypt.MinCost, costs)
	}
}

func TestRegisterAndAuthorize_LeaveCurrentUserAlone(t *testing.T) {
	m := newTestManager(t, persist.NewMemory())
	ctx := context.Background()

	reg, err := m.Register(ctx, SignupInput{Email: "a@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	sess, err := m.Authorize(ctx, "a@example.com", "password1")
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if _, ok := m.Current(); ok {
		t.Fatalf("Register/Authorize must not set a current user")
	}
	for _, tok := range []string{reg.Token, sess.Token} {
		if u, err := m.Authenticate(tok); err != nil || u.ID != reg.User.ID {
			t.Fatalf("Authenticate: %+v %v", u, err)
		}
	}

	if _, err := m.Login(ctx, "a@example.com", "password1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u, ok := m.Current(); !ok || u.ID != reg.User.ID {
		t.Fatalf("Login should set the current user; got %+v %v", u, ok)
	}
}
