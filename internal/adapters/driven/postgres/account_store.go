package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AccountStore = (*AccountStore)(nil)

const accountColumns = `id, username, email, password_hash, role, refresh_token, refresh_token_expiry, created_at`

// AccountStore implements driven.AccountStore using PostgreSQL
type AccountStore struct {
	db *DB
}

// NewAccountStore creates a new AccountStore
func NewAccountStore(db *DB) *AccountStore {
	return &AccountStore{db: db}
}

// Create inserts an account and assigns its ID
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (username, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	err := s.db.QueryRowContext(ctx, query,
		account.Username,
		account.Email,
		account.PasswordHash,
		string(account.Role),
		createdAt,
	).Scan(&account.ID, &account.CreatedAt)
	return mapError(err)
}

// Get retrieves an account by ID
func (s *AccountStore) Get(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(s.db.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves an account by exact username
func (s *AccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return scanAccount(s.db.QueryRowContext(ctx, query, username))
}

// ExistsByUsernameOrEmail reports whether either value is taken
func (s *AccountStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1 OR email = $2)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, username, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// SetRefreshToken overwrites the refresh token and expiry together
func (s *AccountStore) SetRefreshToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	query := `UPDATE accounts SET refresh_token = $1, refresh_token_expiry = $2 WHERE id = $3`
	result, err := s.db.ExecContext(ctx, query, token, expiry, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// RotateRefreshToken swaps presented for token in a single conditional
// update. Of several concurrent callers presenting the same token, one wins.
func (s *AccountStore) RotateRefreshToken(ctx context.Context, id int64, presented, token string, expiry, now time.Time) error {
	query := `
		UPDATE accounts
		SET refresh_token = $1, refresh_token_expiry = $2
		WHERE id = $3
			AND refresh_token = $4
			AND refresh_token_expiry > $5
	`
	result, err := s.db.ExecContext(ctx, query, token, expiry, id, presented, now)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ClearRefreshToken removes the refresh token and expiry together
func (s *AccountStore) ClearRefreshToken(ctx context.Context, id int64) error {
	query := `UPDATE accounts SET refresh_token = NULL, refresh_token_expiry = NULL WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// ClearExpiredRefreshTokens clears every refresh token expired at now
func (s *AccountStore) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE accounts
		SET refresh_token = NULL, refresh_token_expiry = NULL
		WHERE refresh_token_expiry IS NOT NULL AND refresh_token_expiry <= $1
	`
	result, err := s.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var (
		account      domain.Account
		role         string
		refreshToken sql.NullString
		expiry       sql.NullTime
	)

	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&role,
		&refreshToken,
		&expiry,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	// Empty stays unset; unknown values fall back to the default role
	if role != "" {
		account.Role = domain.ParseRole(role)
	}
	account.RefreshToken = StringPtr(refreshToken)
	account.RefreshTokenExpiry = TimePtr(expiry)
	return &account, nil
}
