// Package session holds the key/value store the current user is read from.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// UserKey is where the authenticated user blob is kept.
const UserKey = "user"

var ErrNoUser = errors.New("no user in session")

// Session is a string key/value store scoped to one caller.
type Session interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// User is the JSON blob stored under UserKey.
type User struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// Memory is a Session backed by a plain map. It is not safe for concurrent use;
// each request gets its own.
type Memory struct {
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) {
	m.values[key] = value
}

// SetUser encodes u under UserKey.
func SetUser(s Session, u User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	s.Set(UserKey, string(raw))
	return nil
}

// CurrentUser decodes the user blob. A missing key yields ErrNoUser.
func CurrentUser(s Session) (*User, error) {
	raw, ok := s.Get(UserKey)
	if !ok || raw == "" || raw == "null" {
		return nil, ErrNoUser
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}
	return &u, nil
}
