// File: internal/domain/user.go
package domain

import "time"

// User is the authenticated account as returned by the server. The
// password never crosses back over the wire.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
