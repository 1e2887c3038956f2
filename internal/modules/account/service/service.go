package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gradebench/webapp/internal/entity"
	"github.com/gradebench/webapp/internal/modules/account/repository"
	"github.com/gradebench/webapp/pkg/apperror"
)

type AccountService interface {
	// Authenticate resolves a basic-auth credential pair to an account.
	// The username is the account email.
	Authenticate(ctx context.Context, email, password string) (*entity.Account, error)
	ImportCSV(ctx context.Context, path string) (*ImportResult, error)
}

type accountService struct {
	repo repository.AccountRepository
}

func NewAccountService(repo repository.AccountRepository) AccountService {
	return &accountService{repo: repo}
}

func (s *accountService) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrUnauthorized
	}

	return account, nil
}
