package models

import "time"

type Role string

const (
	Admin     Role = "admin"
	Evaluator Role = "evaluator"
	Viewer    Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case Admin, Evaluator, Viewer:
		return true
	}
	return false
}

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Session: кто выполняет запрос. Передаётся явно через контекст, не хранится глобально.
type Session struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
