package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	nanoid "github.com/jaevor/go-nanoid"

	"workboard/internal/model"
	"workboard/internal/persist"
)

type usersFile struct {
	Users []model.User `json:"users"`
}

// Directory is the local user collection, persisted under persist.KeyUsers.
// Users are never hard-deleted.
type Directory struct {
	mu      sync.RWMutex
	users   []model.User
	byEmail map[string]int

	newID func() string
	saver *persist.DebouncedSaver
}

func LoadDirectory(ctx context.Context, backend persist.Backend, debounce time.Duration, log *slog.Logger) (*Directory, error) {
	gen, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}
	d := &Directory{byEmail: map[string]int{}, newID: gen}
	if backend == nil {
		return d, nil
	}
	d.saver = persist.NewDebouncedSaver(persist.SaverOptions{
		Backend:  backend,
		Key:      persist.KeyUsers,
		Debounce: debounce,
		Logger:   log,
	})

	b, err := backend.Get(ctx, persist.KeyUsers)
	if err != nil {
		if errors.Is(err, persist.ErrNotFound) {
			return d, nil
		}
		return nil, fmt.Errorf("load users: %w", err)
	}
	var f usersFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	for _, u := range f.Users {
		u.Email = normalizeEmail(u.Email)
		if _, dup := d.byEmail[u.Email]; dup {
			continue
		}
		d.byEmail[u.Email] = len(d.users)
		d.users = append(d.users, u)
	}
	return d, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (d *Directory) ByEmail(email string) (model.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.byEmail[normalizeEmail(email)]
	if !ok {
		return model.User{}, false
	}
	return d.users[i], true
}

func (d *Directory) ByID(id string) (model.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

// insert adds u with a fresh id unless its email is taken.
func (d *Directory) insert(u model.User) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u.Email = normalizeEmail(u.Email)
	if _, ok := d.byEmail[u.Email]; ok {
		return model.User{}, ErrUserExists
	}
	u.ID = d.newID()
	d.byEmail[u.Email] = len(d.users)
	d.users = append(d.users, u)
	d.changedLocked()
	return u, nil
}

func (d *Directory) update(id string, fn func(u *model.User) error) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].ID != id {
			continue
		}
		u := d.users[i]
		if err := fn(&u); err != nil {
			return model.User{}, err
		}
		d.users[i] = u
		d.changedLocked()
		return u, nil
	}
	return model.User{}, ErrUserNotFound
}

func (d *Directory) changedLocked() {
	if d.saver == nil {
		return
	}
	d.saver.Notify(&usersFile{Users: append([]model.User(nil), d.users...)})
}

func (d *Directory) Flush(ctx context.Context) error {
	return d.saver.Flush(ctx)
}
