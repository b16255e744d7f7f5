package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/malekjani/devops-capstone-project/internal/models"
	"github.com/malekjani/devops-capstone-project/internal/redis"
)

// ErrNotFound is returned when no account matches the requested id.
var ErrNotFound = errors.New("account not found")

const accountViewKeyPrefix = "account:view:"

// accountCache is the slice of ViewCache behavior the repository depends on.
type accountCache interface {
	Get(ctx context.Context, key string) (*models.Account, bool)
	Set(ctx context.Context, key string, value *models.Account)
	Delete(ctx context.Context, key string)
}

// AccountRepository persists accounts in PostgreSQL (source of truth) with an
// optional Redis read-through cache for single-account lookups. The cache is
// warmed on every write and invalidated on delete; pass a nil Redis client to
// run without it.
type AccountRepository struct {
	db    *sql.DB
	cache accountCache
}

func NewAccountRepository(db *sql.DB, redisClient *goredis.Client) *AccountRepository {
	r := &AccountRepository{db: db}
	if redisClient != nil {
		r.cache = redis.NewViewCache[models.Account](redisClient, time.Hour)
	}
	return r
}

func cacheKey(id int64) string {
	return accountViewKeyPrefix + strconv.FormatInt(id, 10)
}

// Create inserts the account and fills in the database-assigned id.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (name, email, address, phone_number, date_joined)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		account.Name, account.Email, account.Address,
		account.PhoneNumber, account.DateJoined,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	if r.cache != nil {
		r.cache.Set(ctx, cacheKey(account.ID), account)
	}
	return nil
}

// GetByID fetches one account, trying the cache before PostgreSQL.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if r.cache != nil {
		if account, ok := r.cache.Get(ctx, cacheKey(id)); ok {
			return account, nil
		}
	}

	query := `
		SELECT id, name, email, address, phone_number, date_joined
		FROM accounts
		WHERE id = $1
	`
	var account models.Account
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Name, &account.Email,
		&account.Address, &account.PhoneNumber, &account.DateJoined,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey(id), &account)
	}
	return &account, nil
}

// Update overwrites every field except id. Returns ErrNotFound when the row
// does not exist.
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, email = $3, address = $4, phone_number = $5, date_joined = $6
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		account.ID, account.Name, account.Email,
		account.Address, account.PhoneNumber, account.DateJoined,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	if r.cache != nil {
		r.cache.Set(ctx, cacheKey(account.ID), account)
	}
	return nil
}

// Delete removes the row if present. Deleting an id that does not exist is
// not an error.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM accounts WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if r.cache != nil {
		r.cache.Delete(ctx, cacheKey(id))
	}
	return nil
}

// List returns every account ordered by id.
func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT id, name, email, address, phone_number, date_joined
		FROM accounts
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(
			&account.ID, &account.Name, &account.Email,
			&account.Address, &account.PhoneNumber, &account.DateJoined,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}
