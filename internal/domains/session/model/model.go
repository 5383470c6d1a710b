package model

import (
	"time"
)

const (
	TableName  = "sessions"
	EntityName = "session"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldExpiresAt = "expires_at"

	// CachePrefix keys resolved sessions in Redis.
	CachePrefix = "session:get"
)

// Session is a login kept server side and referenced by the session cookie.
// The users columns are read through the join and never written.
type Session struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	UserAgent string    `db:"user_agent"`
	IP        string    `db:"ip"`
	CreatedAt time.Time `db:"created_at"`

	Username string `db:"username" table:"users"`
	Email    string `db:"email"    table:"users"`
	Role     string `db:"role"     table:"users"`
	Active   bool   `db:"active"   table:"users"`
}

func (Session) GetJoinQuery() string {
	return "JOIN users ON users.id = sessions.user_id"
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
