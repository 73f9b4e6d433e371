package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

const (
	prefixWorkspace = "ws"
	prefixSpace     = "spc"
	prefixList      = "lst"
	prefixTask      = "tsk"
	prefixComment   = "cmt"
	prefixChecklist = "chk"
	prefixItem      = "cki"
	prefixField     = "fld"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// nextIDLocked returns an id unused by any entity in the arena.
func (s *Store) nextIDLocked(prefix string) (string, error) {
	for {
		id, err := newRandomID(prefix)
		if err != nil {
			return "", err
		}
		if !s.idExistsLocked(id) {
			return id, nil
		}
	}
}

func (s *Store) idExistsLocked(id string) bool {
	if _, ok := s.workspaces[id]; ok {
		return true
	}
	if _, ok := s.spaces[id]; ok {
		return true
	}
	if _, ok := s.lists[id]; ok {
		return true
	}
	_, ok := s.tasks[id]
	return ok
}
