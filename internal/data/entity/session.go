package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a bearer credential. The Token value is what clients send in
// the Authorization header; a session stays valid until it expires or
// RevokedAt is set by logout.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
