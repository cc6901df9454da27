package domain

import (
	"maps"
	"strings"
	"time"
)

// User is identified by a unique name and holds an opaque progress map.
// Users are created lazily on first reference and never deleted.
type User struct {
	Name      string         `json:"name"`
	Progress  map[string]any `json:"progress"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewUser creates a user with empty progress.
func NewUser(name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyUserName
	}

	now := time.Now().UTC()
	return &User{
		Name:      name,
		Progress:  map[string]any{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// MergeProgress shallow-merges the given keys into the progress map.
func (u *User) MergeProgress(progress map[string]any) {
	if u.Progress == nil {
		u.Progress = map[string]any{}
	}
	maps.Copy(u.Progress, progress)
	u.UpdatedAt = time.Now().UTC()
}

// Clone returns a copy with its own top-level progress map.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Progress = maps.Clone(u.Progress)
	return &c
}
