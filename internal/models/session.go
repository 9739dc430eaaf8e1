package models

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/anveshk/nestmark/internal/errors"
	"github.com/jackc/pgx/v5"
)

// SessionService resolves session cookies to users. Sessions are created by
// the external auth provider; this side only reads them.
type SessionService struct {
	Pool DB
}

// User looks up the user owning a live session token. Expired or unknown
// tokens come back as ErrUnauthorized so the caller can treat every failure
// the same way: no active session.
func (ss *SessionService) User(ctx context.Context, token string) (*User, error) {
	tokenHash := ss.hash(token)
	var user User

	row := ss.Pool.QueryRow(ctx, `
		SELECT users.id, users.name, users.email, users.email_verified, users.image, users.created_at
		FROM users
		JOIN sessions ON users.id = sessions.user_id
		WHERE sessions.token_hash = $1 AND sessions.expires_at > NOW()`, tokenHash)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.EmailVerified, &user.Image, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.ErrUnauthorized
		}
		return nil, fmt.Errorf("session user: %w", err)
	}

	_, err = ss.Pool.Exec(ctx, `
		UPDATE sessions SET last_used_at = NOW() WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}
	return &user, nil
}

func (ss *SessionService) hash(token string) string {
	tokenHash := sha256.Sum256([]byte(token))
	return base64.URLEncoding.EncodeToString(tokenHash[:])
}
