package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/mmynk/santa/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticator checks logins against the configured roster. Credentials
// are plain values from the config file, compared in constant time; there
// is no registration and no stored hash.
type Authenticator struct {
	participants map[string]models.Participant
}

// NewAuthenticator builds an authenticator from the configured groups. A
// person appearing in several groups is expected to carry the same password
// in each; the first occurrence wins.
func NewAuthenticator(groups []models.Group) *Authenticator {
	participants := make(map[string]models.Participant)
	for _, g := range groups {
		for _, p := range g.Participants {
			if _, ok := participants[p.Username]; !ok {
				participants[p.Username] = p
			}
		}
	}
	return &Authenticator{participants: participants}
}

// Authenticate verifies the username and password, returning the participant
// if valid.
func (a *Authenticator) Authenticate(username, password string) (*models.Participant, error) {
	p, ok := a.participants[username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(p.Password), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return &p, nil
}
