package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Dayasagar88/Chai-or-Nodejs/internal/user/domain"
)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, full_name, password_hash, avatar_url, cover_image_url, refresh_token, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.PasswordHash, &user.AvatarURL, &user.CoverImageURL,
		&user.RefreshToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 OR username = $2
		LIMIT 1;
	`

	return scanUser(r.db.QueryRow(ctx, query, email, username))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
		LIMIT 1;
	`

	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, username, email, full_name, password_hash, avatar_url, cover_image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, user.ID, user.Username, user.Email, user.FullName, user.PasswordHash,
		user.AvatarURL, user.CoverImageURL, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) SetRefreshToken(ctx context.Context, id string, token *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET refresh_token = $2, updated_at = now()
		WHERE id = $1
	`, id, token)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserMissing
	}

	return nil
}

// RotateRefreshToken is the compare-and-swap behind refresh rotation. The
// comparison and the write happen in one statement so two racing refreshes
// can never both succeed.
func (r *PostgresRepository) RotateRefreshToken(ctx context.Context, id, expected, next string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET refresh_token = $3, updated_at = now()
		WHERE id = $1 AND refresh_token IS NOT DISTINCT FROM $2
	`, id, expected, next)
	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now()
		WHERE id = $1
	`, id, hash)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserMissing
	}

	return nil
}

func (r *PostgresRepository) UpdateProfileFields(ctx context.Context, id string, fields domain.ProfileFields) (*domain.User, error) {
	query := `
		UPDATE users SET
			full_name = COALESCE($2, full_name),
			email = COALESCE($3, email),
			avatar_url = COALESCE($4, avatar_url),
			cover_image_url = COALESCE($5, cover_image_url),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns + `
	`

	user, err := scanUser(r.db.QueryRow(ctx, query, id,
		fields.FullName, fields.Email, fields.AvatarURL, fields.CoverImageURL))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserMissing
	}

	return user, nil
}
