package service

import (
	"context"
	"errors"

	"checkout/internal/core/domain"
	"checkout/internal/core/port"
	"checkout/internal/core/utils"

	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// UserService handles registration, login and the point balance reads
// and charges that sit outside any order saga.
type UserService struct {
	repo         port.Repository
	tokenService port.TokenService
	logger       *zap.Logger
}

func NewUserService(repo port.Repository, tokenService port.TokenService, logger *zap.Logger) (*UserService, error) {
	return &UserService{repo: repo, tokenService: tokenService, logger: logger}, nil
}

func (s *UserService) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	exUser, err := s.repo.GetUserByLogin(ctx, user.Login)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("get user", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return nil, domain.ErrInternal
	}
	user.Password = hashed

	newUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("create user", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return newUser, nil
}

func (s *UserService) LoginUser(ctx context.Context, login string, password string) (string, error) {
	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	if err := utils.ComparePassword(password, user.Password); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}
	return token, nil
}

func (s *UserService) GetPointBalance(ctx context.Context, userID uint64) (*domain.PointBalance, error) {
	balance, err := s.repo.GetPointBalance(ctx, userID)
	if err != nil {
		s.logger.Error("get point balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}

func (s *UserService) ChargePoints(ctx context.Context, userID uint64, amount decimal.Decimal) (*domain.PointBalance, error) {
	var balance *domain.PointBalance
	err := s.repo.WithinTransaction(ctx, func(ctx context.Context, tx port.Repository) error {
		b, err := tx.GetPointBalanceForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if err := b.Charge(amount); err != nil {
			return err
		}
		balance = b
		return tx.UpdatePointBalance(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}
