package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyFirstName         = errors.New("first name is required")
	ErrEmptyLastName          = errors.New("last name is required")
	ErrInvalidEmail           = errors.New("email must contain '@'")
	ErrEmptyActivationToken   = errors.New("activation token is required")
	ErrInvalidActivationToken = errors.New("activation token does not match")
)

// User is a shop account. It is pending until activated with the token issued at creation.
type User struct {
	ID              int64
	FirstName       string
	LastName        string
	Email           string
	Active          bool
	ActivationToken string
}

// NewUser builds a pending user ensuring required invariants.
func NewUser(firstName, lastName, email string) (*User, error) {
	user := &User{}
	if err := user.UpdateProfile(firstName, lastName, email); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile trims and validates the personal fields.
func (u *User) UpdateProfile(firstName, lastName, email string) error {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return ErrEmptyFirstName
	}
	lastName = strings.TrimSpace(lastName)
	if lastName == "" {
		return ErrEmptyLastName
	}
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.Email = email
	return nil
}

// IssueActivationToken resets the user to pending with a fresh token.
func (u *User) IssueActivationToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyActivationToken
	}
	u.ActivationToken = token
	u.Active = false
	return nil
}

// MatchesToken reports whether token equals the stored activation token.
func (u *User) MatchesToken(token string) bool {
	return u.ActivationToken != "" && u.ActivationToken == token
}

// Activate moves a pending user to active. It reports false when the user
// already was active; the token is checked in both cases.
func (u *User) Activate(token string) (bool, error) {
	if !u.MatchesToken(token) {
		return false, ErrInvalidActivationToken
	}
	if u.Active {
		return false, nil
	}
	u.Active = true
	return true, nil
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.UpdateProfile(u.FirstName, u.LastName, u.Email); err != nil {
		return err
	}
	if strings.TrimSpace(u.ActivationToken) == "" {
		return ErrEmptyActivationToken
	}
	return nil
}
