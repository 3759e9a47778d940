package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
)

// newDiscardLogger returns a logger that swallows everything, for tests.
func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTxManager runs the callback directly against a fixed repository
// factory, without any real transaction.
type stubTxManager struct {
	factory repository.RepositoryFactory
}

func (tm *stubTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

// stubRepoFactory hands out the repositories it was built with.
type stubRepoFactory struct {
	accountRepo  repository.AccountRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func (f *stubRepoFactory) AccountRepo() repository.AccountRepository {
	return f.accountRepo
}

func (f *stubRepoFactory) ProductRepo() repository.ProductRepository {
	return f.productRepo
}

func (f *stubRepoFactory) CategoryRepo() repository.CategoryRepository {
	return f.categoryRepo
}

// fakeAccountRepo is an in-memory account store keyed by normalized username.
type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[string]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*entity.Account)}
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.ID == id {
			cloned := *account

			return &cloned, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[username]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cloned := *account

	return &cloned, nil
}

func (r *fakeAccountRepo) List(ctx context.Context) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := make([]*entity.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		cloned := *account
		accounts = append(accounts, &cloned)
	}

	return accounts, nil
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Username]; ok {
		return domainerrors.ErrAccountAlreadyExists
	}

	r.nextID++
	account.ID = r.nextID
	cloned := *account
	r.accounts[account.Username] = &cloned

	return nil
}

// fakeInventoryRepo is an in-memory product store whose UpdateStock behaves
// like the SQL compare-and-swap: the write only lands when the expected value
// still matches.
type fakeInventoryRepo struct {
	mu      sync.Mutex
	product entity.Product
}

func newFakeInventoryRepo(product entity.Product) *fakeInventoryRepo {
	return &fakeInventoryRepo{product: product}
}

func (r *fakeInventoryRepo) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.product.ID != id {
		return nil, repository.ErrProductNotFound
	}
	cloned := r.product

	return &cloned, nil
}

func (r *fakeInventoryRepo) FindByName(ctx context.Context, normalizedName string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entity.NormalizeProductName(r.product.Name) != normalizedName {
		return nil, repository.ErrProductNotFound
	}
	cloned := r.product

	return &cloned, nil
}

func (r *fakeInventoryRepo) List(ctx context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cloned := r.product

	return []*entity.Product{&cloned}, nil
}

func (r *fakeInventoryRepo) ListByCategoryID(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	return r.List(ctx)
}

func (r *fakeInventoryRepo) Search(ctx context.Context, term string) ([]*entity.Product, error) {
	return r.List(ctx)
}

func (r *fakeInventoryRepo) ExistsByName(ctx context.Context, normalizedName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return entity.NormalizeProductName(r.product.Name) == normalizedName, nil
}

func (r *fakeInventoryRepo) Create(ctx context.Context, product *entity.Product) error {
	return nil
}

func (r *fakeInventoryRepo) Update(ctx context.Context, product *entity.Product) error {
	return nil
}

func (r *fakeInventoryRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (r *fakeInventoryRepo) UpdateStock(ctx context.Context, id int64, newStock, expectedStock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.product.ID != id || r.product.Stock != expectedStock {
		return repository.ErrStockConflict
	}
	r.product.Stock = newStock

	return nil
}
