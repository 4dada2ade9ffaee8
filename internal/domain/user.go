package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user or judge id is already registered")
)

// User is a confirmed mapping between a chat-platform identity and a
// judge-site account.
type User struct {
	ID        string
	JudgeID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
