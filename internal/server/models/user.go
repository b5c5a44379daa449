// Package models defines server-side entities persisted in the database.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is a registered account. PasswordHash is a bcrypt hash; the plaintext
// password is never kept.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a user with normalised fields, a fresh id and a bcrypt hash
// of password computed at the given cost.
func NewUser(userName, email, password string, cost int) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.NewString(),
		UserName:     NormalizeUserName(userName),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}

// Touch refreshes the modification timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now().UTC()
}

func NormalizeUserName(userName string) string {
	return strings.TrimSpace(userName)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
