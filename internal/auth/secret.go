package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"workboard/internal/persist"
)

// LoadOrInitSecret returns the signing key kept under persist.KeySecret, generating one on first use.
func LoadOrInitSecret(ctx context.Context, backend persist.Backend) ([]byte, error) {
	b, err := backend.Get(ctx, persist.KeySecret)
	if err == nil && len(strings.TrimSpace(string(b))) > 0 {
		return []byte(strings.TrimSpace(string(b))), nil
	}
	if err != nil && !errors.Is(err, persist.ErrNotFound) {
		return nil, err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	enc := base64.RawURLEncoding.EncodeToString(raw)
	if err := backend.Put(ctx, persist.KeySecret, []byte(enc)); err != nil {
		return nil, err
	}
	return []byte(enc), nil
}
