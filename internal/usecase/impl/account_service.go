// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with a hashed password. The username is
// normalized before the uniqueness check so "Alice" and " alice " collide.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AccountOutput, error) {
	username := entity.NormalizeUsername(input.Username)
	if username == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("username must not be empty")
	}
	if input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("password must not be empty")
	}

	srv.log(ctx).Info("Starting registration", slog.String("username", username))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	account := &entity.Account{
		Username:     username,
		Name:         input.Name,
		PasswordHash: hashedPassword,
		Role:         entity.RoleFromString(input.Role),
	}

	// The unique constraint on the username column is the arbiter for
	// concurrent registrations; no pre-check read is needed.
	if err := srv.accountRepo.Create(ctx, account); err != nil {
		srv.log(ctx).Warn("Failed to create account", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("accountID", account.ID))

	return toAccountOutput(account), nil
}

// Login verifies the credentials and mints a session token. Unknown username
// and wrong password both map to the same error so the response does not
// reveal which half failed.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	username := entity.NormalizeUsername(input.Username)

	account, err := srv.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown username", slog.String("username", username))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("account not found during login")
		}

		return nil, errors.Wrap(err, "failed to find account during login")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login attempt with wrong password", slog.String("username", username))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch during login")
	}

	token, err := srv.tokenService.Generate(account.ID, account.Username, account.Role.String())
	if err != nil {
		srv.log(ctx).Error("Failed to generate token during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token during login")
	}

	srv.log(ctx).Debug("Login completed", slog.Int64("accountID", account.ID))

	return &usecase.LoginOutput{
		Token:   token,
		Account: toAccountOutput(account),
	}, nil
}

// VerifyToken checks a session token and returns its claims. Verification is
// stateless; no storage is consulted.
func (srv *accountService) VerifyToken(ctx context.Context, tokenString string) (*service.Claims, error) {
	claims, err := srv.tokenService.Validate(tokenString)
	if err != nil {
		srv.log(ctx).Debug("Token verification failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to verify token")
	}

	return claims, nil
}

// GetAccount retrieves a single account by its identifier.
func (srv *accountService) GetAccount(ctx context.Context, id int64) (*usecase.AccountOutput, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("account not found")
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	return toAccountOutput(account), nil
}

// ListAccounts retrieves all accounts ordered by username.
func (srv *accountService) ListAccounts(ctx context.Context) ([]*usecase.AccountOutput, error) {
	accounts, err := srv.accountRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	outputs := make([]*usecase.AccountOutput, 0, len(accounts))
	for _, account := range accounts {
		outputs = append(outputs, toAccountOutput(account))
	}

	return outputs, nil
}

// toAccountOutput strips the password hash from an account before it leaves
// the use case layer.
func toAccountOutput(account *entity.Account) *usecase.AccountOutput {
	if account == nil {
		return nil
	}

	return &usecase.AccountOutput{
		ID:       account.ID,
		Username: account.Username,
		Name:     account.Name,
		Role:     account.Role,
	}
}
