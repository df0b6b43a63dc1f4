package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
)

// UserRepository handles user data access
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (pubkey, username, alias, description, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		user.Pubkey,
		user.Username,
		user.Alias,
		user.Description,
		user.AvatarURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return apperr.FromPostgres(err, "user")
	}

	return nil
}

// GetByPubkey retrieves a user by pubkey, skipping tombstoned rows
func (r *UserRepository) GetByPubkey(ctx context.Context, pubkey string) (*domain.User, error) {
	query := `
		SELECT pubkey, username, alias, description, avatar_url, created_at, updated_at
		FROM users
		WHERE pubkey = $1 AND deleted_at IS NULL
	`

	var user domain.User
	err := r.db.Pool.QueryRow(ctx, query, pubkey).Scan(
		&user.Pubkey,
		&user.Username,
		&user.Alias,
		&user.Description,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UsernameExists checks whether a username is taken by a live user
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM users
			WHERE username = $1 AND deleted_at IS NULL
		)
	`

	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return exists, nil
}

// Update applies a partial profile update
func (r *UserRepository) Update(ctx context.Context, pubkey string, update *domain.UserUpdate) error {
	query := `
		UPDATE users
		SET username = COALESCE($2, username),
		    alias = COALESCE($3, alias),
		    description = COALESCE($4, description),
		    avatar_url = COALESCE($5, avatar_url),
		    updated_at = NOW()
		WHERE pubkey = $1 AND deleted_at IS NULL
	`

	tag, err := r.db.Pool.Exec(ctx, query, pubkey,
		update.Username, update.Alias, update.Description, update.AvatarURL)
	if err != nil {
		return apperr.FromPostgres(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}

	return nil
}

// SoftDelete tombstones a user
func (r *UserRepository) SoftDelete(ctx context.Context, pubkey string) error {
	query := `
		UPDATE users
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE pubkey = $1 AND deleted_at IS NULL
	`

	tag, err := r.db.Pool.Exec(ctx, query, pubkey)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}

	return nil
}
