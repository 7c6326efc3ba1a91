package domain

import (
	"errors"
	"time"
)

// ErrIncompletePair rejects a sign-in missing the credential or a routable role.
var ErrIncompletePair = errors.New("credential and role must be set together")

// Session is the server-held {credential, role} pair bound to a browser cookie.
type Session struct {
	ID           string    `json:"id"`
	Credential   string    `json:"credential,omitempty"`
	Role         Role      `json:"role,omitempty"`
	FlashMessage string    `json:"flash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Authenticated is true only when both halves of the pair are present.
func (s *Session) Authenticated() bool {
	return s != nil && s.Credential != "" && s.Role != ""
}

// SignIn sets credential and role together. A half-empty pair leaves the session unchanged.
func (s *Session) SignIn(credential string, role Role) error {
	if credential == "" || !role.Valid() {
		return ErrIncompletePair
	}
	s.Credential = credential
	s.Role = role
	return nil
}

// SignOut clears credential and role together.
func (s *Session) SignOut() {
	s.Credential = ""
	s.Role = ""
}

// Expired reports whether the session outlived its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Flash queues a one-shot message for the next rendered page.
func (s *Session) Flash(msg string) {
	s.FlashMessage = msg
}

// TakeFlash returns and clears the queued message.
func (s *Session) TakeFlash() string {
	msg := s.FlashMessage
	s.FlashMessage = ""
	return msg
}
