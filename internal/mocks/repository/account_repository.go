// Package repository contains hand-written test doubles for the domain
// repository interfaces, built on testify's mock package.
package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a mock whose expectations are asserted on
// test cleanup.
func NewMockAccountRepository(t *testing.T) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	args := m.Called(ctx, id)

	var account *entity.Account
	if v := args.Get(0); v != nil {
		account = v.(*entity.Account)
	}

	return account, args.Error(1)
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	args := m.Called(ctx, username)

	var account *entity.Account
	if v := args.Get(0); v != nil {
		account = v.(*entity.Account)
	}

	return account, args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	args := m.Called(ctx)

	var accounts []*entity.Account
	if v := args.Get(0); v != nil {
		accounts = v.([]*entity.Account)
	}

	return accounts, args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}
