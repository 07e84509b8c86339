package models

import (
	"strings"
	"time"
)

// UserSession is the persisted login record.
type UserSession struct {
	UserID       string    `json:"userId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	DateOfBirth  string    `json:"dateOfBirth,omitempty"`
	Interests    []string  `json:"interests,omitempty"`
	Newsletter   bool      `json:"newsletter"`
	SignupTime   time.Time `json:"signupTime"`
	LoginTime    time.Time `json:"loginTime,omitzero"`
	LastActivity time.Time `json:"lastActivity,omitzero"`
}

// StartedAt is the login time when present, otherwise the signup time.
func (s *UserSession) StartedAt() time.Time {
	if !s.LoginTime.IsZero() {
		return s.LoginTime
	}
	return s.SignupTime
}

// WellFormed reports whether the record carries an identity and a start time. Anything else
// was not written by a signup or login.
func (s *UserSession) WellFormed() bool {
	return s.UserID != "" && !s.StartedAt().IsZero()
}

func (s *UserSession) ValidAt(now time.Time, ttl time.Duration) bool {
	start := s.StartedAt()
	if start.IsZero() {
		return false
	}
	return now.Before(start.Add(ttl))
}

// DisplayName prefers the full name and falls back to the email's local part.
func (s *UserSession) DisplayName() string {
	if s.FirstName != "" {
		return strings.TrimSpace(s.FirstName + " " + s.LastName)
	}
	local, _, _ := strings.Cut(s.Email, "@")
	return local
}

// Initial is the upper-cased first letter of the display name, used for the avatar.
func (s *UserSession) Initial() string {
	name := s.DisplayName()
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return ""
}
