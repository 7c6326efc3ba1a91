package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/zerohunger/portal/internal/domain"
)

const (
	nonceSize    = 24
	keyInfo      = "zero-hunger portal session cookie"
	maxCookieLen = 4000
)

// CookieStore seals the whole session into the cookie; nothing is kept server side,
// so Delete cannot revoke a cookie another request still holds.
type CookieStore struct {
	key [32]byte
	now func() time.Time
}

// NewCookieStore derives the sealing key from secret.
func NewCookieStore(secret string) (*CookieStore, error) {
	if len(secret) < 32 {
		return nil, errors.New("cookie store secret must be at least 32 bytes")
	}
	store := &CookieStore{now: time.Now}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	if _, err := io.ReadFull(kdf, store.key[:]); err != nil {
		return nil, fmt.Errorf("derive cookie key: %w", err)
	}
	return store, nil
}

func (s *CookieStore) Load(_ context.Context, token string) (*domain.Session, error) {
	box, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return nil, ErrNotFound
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrNotFound
	}
	var sess domain.Session
	if err := json.Unmarshal(plain, &sess); err != nil {
		return nil, ErrNotFound
	}
	if sess.Expired(s.now()) {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *CookieStore) Save(_ context.Context, sess *domain.Session) (string, error) {
	plain, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("session nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, &s.key)
	token := base64.RawURLEncoding.EncodeToString(sealed)
	if len(token) > maxCookieLen {
		return "", fmt.Errorf("sealed session is %d bytes, over the cookie limit", len(token))
	}
	return token, nil
}

func (s *CookieStore) Delete(context.Context, string) error {
	return nil
}
