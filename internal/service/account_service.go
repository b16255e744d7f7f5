package service

import (
	"context"

	"github.com/malekjani/devops-capstone-project/internal/models"
)

// AccountStore is the persistence surface the service depends on.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Account, error)
}

// AccountService implements the account lifecycle on top of an AccountStore.
// Store sentinels (repository.ErrNotFound) pass through unchanged so the
// handler layer can map them to HTTP statuses.
type AccountService struct {
	store AccountStore
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

// Create persists a new account. A zero date_joined defaults to today.
func (s *AccountService) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	account.ID = 0
	if account.DateJoined.IsZero() {
		account.DateJoined = models.Today()
	}
	if err := s.store.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*models.Account, error) {
	return s.store.GetByID(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}

// Update replaces every field except id on an existing account. A zero
// date_joined in the incoming data keeps the stored value.
func (s *AccountService) Update(ctx context.Context, id int64, account *models.Account) (*models.Account, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = account.Name
	existing.Email = account.Email
	existing.Address = account.Address
	existing.PhoneNumber = account.PhoneNumber
	if !account.DateJoined.IsZero() {
		existing.DateJoined = account.DateJoined
	}

	if err := s.store.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete is idempotent: deleting an absent id succeeds.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
