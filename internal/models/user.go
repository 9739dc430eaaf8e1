package models

import (
	"time"

	"github.com/anveshk/nestmark/internal/types"
)

// User is produced by the session lookup and consumed read-only everywhere
// else.
type User struct {
	ID            types.UserId
	Name          string
	Email         string
	EmailVerified bool
	Image         *string
	CreatedAt     time.Time
}

// AsAPIUser maps the stored user to the wire shape the session endpoint and
// bridge return.
func (u *User) AsAPIUser() *types.User {
	return &types.User{
		Id:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Image:         u.Image,
		CreatedAt:     u.CreatedAt,
	}
}
