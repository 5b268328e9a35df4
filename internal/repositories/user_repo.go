package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wanderly/trailhead/internal/database"
	"github.com/wanderly/trailhead/internal/models"
)

// UserRepository owns the users table. Every default lookup filters on
// active = TRUE, so deactivated accounts are invisible to login, protect
// and the reset flows.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

const userColumns = `id, name, email, photo, role, password_hash, password_changed_at, password_reset_token, password_reset_expires, active, created_at, updated_at`

// rowScanner interface for scanning user rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	var passwordChangedAt, passwordResetExpires *time.Time
	var passwordResetToken *string

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &user.Photo, &user.Role,
		&user.PasswordHash, &passwordChangedAt, &passwordResetToken,
		&passwordResetExpires, &user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	user.PasswordChangedAt = passwordChangedAt
	user.PasswordResetToken = passwordResetToken
	user.PasswordResetExpires = passwordResetExpires

	return &user, nil
}

func scanUserRows(rows pgx.Rows) ([]*models.User, error) {
	defer rows.Close()

	users := make([]*models.User, 0)

	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND active`

	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND active`

	return scanUserRow(r.pool.QueryRow(ctx, query, email))
}

// GetByResetTokenHash finds the user whose persisted reset-token digest
// matches and whose reset window has not yet expired.
func (r *UserRepository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE password_reset_token = $1 AND password_reset_expires > NOW() AND active`

	return scanUserRow(r.pool.QueryRow(ctx, query, tokenHash))
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE active ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	return scanUserRows(rows)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.New().String()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Active = true

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	query := `
		INSERT INTO users (id, name, email, photo, role, password_hash, password_changed_at, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.Photo, user.Role,
		user.PasswordHash, user.PasswordChangedAt, user.Active,
		user.CreatedAt, user.UpdatedAt,
	))
}

// UpdateCredentials replaces the password hash, records the change time and
// clears any outstanding reset-token pair in a single row update.
func (r *UserRepository) UpdateCredentials(ctx context.Context, id, passwordHash string, changedAt time.Time) (*models.User, error) {
	query := `
		UPDATE users
		SET password_hash = $1, password_changed_at = $2,
		    password_reset_token = NULL, password_reset_expires = NULL,
		    updated_at = NOW()
		WHERE id = $3 AND active
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query, passwordHash, changedAt, id))
}

// SetResetToken persists the (digest, expiry) pair. This deliberately skips
// the full credential validation path: no password is being supplied here.
func (r *UserRepository) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET password_reset_token = $1, password_reset_expires = $2, updated_at = NOW()
		WHERE id = $3 AND active`

	result, err := r.pool.Exec(ctx, query, tokenHash, expiresAt, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ClearResetToken removes a persisted reset-token pair, used both on
// redemption and to roll back when the reset email never went out.
func (r *UserRepository) ClearResetToken(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET password_reset_token = NULL, password_reset_expires = NULL, updated_at = NOW()
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	return nil
}

// UpdateProfile changes name/email only; credential fields have their own
// mutation paths.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, email string) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, updated_at = NOW()
		WHERE id = $3 AND active
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query, name, email, id))
}

// Deactivate soft-deletes an account. The row stays but no default lookup
// will return it again.
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE users SET active = FALSE, updated_at = NOW() WHERE id = $1 AND active`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ClearExpiredResetTokens sweeps reset-token pairs whose window has passed.
func (r *UserRepository) ClearExpiredResetTokens(ctx context.Context) (int64, error) {
	query := `
		UPDATE users
		SET password_reset_token = NULL, password_reset_expires = NULL
		WHERE password_reset_expires IS NOT NULL AND password_reset_expires < NOW()`

	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired reset tokens: %w", err)
	}

	return result.RowsAffected(), nil
}
