package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/squareonerentals/squareone/internal/database"
	"github.com/squareonerentals/squareone/internal/models"
)

type PasswordResetRepository struct {
	db *database.DB
}

func NewPasswordResetRepository(db *database.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, userID, token string, expiresAt time.Time) (*models.PasswordReset, error) {
	reset := &models.PasswordReset{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO password_resets (id, user_id, token, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Pool.Exec(ctx, query,
		reset.ID, reset.UserID, reset.Token, reset.ExpiresAt, reset.Used, reset.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return reset, nil
}

func (r *PasswordResetRepository) GetByToken(ctx context.Context, token string) (*models.PasswordReset, error) {
	query := `
		SELECT id, user_id, token, expires_at, used, created_at
		FROM password_resets WHERE token = $1`

	var reset models.PasswordReset
	err := r.db.Pool.QueryRow(ctx, query, token).
		Scan(&reset.ID, &reset.UserID, &reset.Token, &reset.ExpiresAt, &reset.Used, &reset.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &reset, nil
}

// MarkUsed burns the token. The used guard in the WHERE clause makes
// concurrent redemption attempts race safely: only one wins.
func (r *PasswordResetRepository) MarkUsed(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE password_resets SET used = TRUE WHERE id = $1 AND NOT used`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrTokenInvalid
	}
	return nil
}

// DeleteExpired removes tokens past their expiry, returning the count.
func (r *PasswordResetRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM password_resets WHERE expires_at < $1`, time.Now())
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return tag.RowsAffected(), nil
}
