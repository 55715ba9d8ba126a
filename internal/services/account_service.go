package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"petromart/internal/models/db_models"
	"petromart/internal/models/request_models"
	"petromart/internal/models/response_models"
	"petromart/internal/repositories"
	mem "petromart/pkg/memcache"
	"petromart/pkg/utils"
)

const resetTokenTTL = 30 * time.Minute

type AccountServiceInterface interface {
	Register(ctx context.Context, req request_models.RegisterRequest) (response_models.AuthResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (response_models.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (response_models.AccountResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type AccountService struct {
	accountRepo repositories.IAccountRepository
	tokens      *utils.TokenMaker
	resetTokens mem.ResetTokenStore
	mail        IMailService
	logger      *zap.Logger
}

func NewAccountService(
	accountRepo repositories.IAccountRepository,
	tokens *utils.TokenMaker,
	resetTokens mem.ResetTokenStore,
	mail IMailService,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		resetTokens: resetTokens,
		mail:        mail,
		logger:      logger,
	}
}

func (s *AccountService) Register(ctx context.Context, req request_models.RegisterRequest) (response_models.AuthResponse, error) {
	existing, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return response_models.AuthResponse{}, utils.ErrDatabaseError
	}
	if existing != nil {
		return response_models.AuthResponse{}, utils.ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return response_models.AuthResponse{}, err
	}

	role := db_models.RoleCustomer
	if req.Role == string(db_models.RoleSeller) {
		role = db_models.RoleSeller
	}

	account := &db_models.Account{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         role,
		Status:       db_models.AccountStatusActive,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return response_models.AuthResponse{}, utils.ErrDatabaseError
	}

	return s.authResponse(account)
}

func (s *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (response_models.AuthResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return response_models.AuthResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AuthResponse{}, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return response_models.AuthResponse{}, utils.ErrInvalidCredentials
	}

	return s.authResponse(account)
}

func (s *AccountService) authResponse(account *db_models.Account) (response_models.AuthResponse, error) {
	token, err := s.tokens.CreateToken(account.ID, string(account.Role))
	if err != nil {
		return response_models.AuthResponse{}, err
	}
	return response_models.AuthResponse{
		Token: token,
		Account: response_models.AccountResponse{
			ID:       account.ID,
			Email:    account.Email,
			FullName: account.FullName,
			Phone:    account.Phone,
			Role:     string(account.Role),
		},
	}, nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID string) (response_models.AccountResponse, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return response_models.AccountResponse{}, utils.RecordNotFound
	}
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AccountResponse{}, utils.RecordNotFound
	}
	return response_models.AccountResponse{
		ID:       account.ID,
		Email:    account.Email,
		FullName: account.FullName,
		Phone:    account.Phone,
		Role:     string(account.Role),
	}, nil
}

// ForgotPassword never reveals whether the email exists.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return err
	}
	s.resetTokens.Set(token, account.Email, resetTokenTTL)

	go func() {
		if err := s.mail.SendPasswordReset(account.Email, token); err != nil {
			s.logger.Warn("failed to send password reset mail", zap.Error(err))
		}
	}()
	return nil
}

func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email := s.resetTokens.Consume(token)
	if email == "" {
		return utils.ErrInvalidResetToken
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrInvalidResetToken
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.accountRepo.UpdatePassword(ctx, account.ID, hash); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
