package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookcatalog/internal/domains/user"
	"bookcatalog/internal/shared/apperror"
	"bookcatalog/pkg/token"
)

const bcryptCost = 10

type userService struct {
	repo   user.Repository
	tokens *token.Manager
}

// NewUserService wires the repository and the credential issuer.
func NewUserService(repo user.Repository, tokens *token.Manager) user.Service {
	return &userService{repo: repo, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.Validation, err.Error(), err)
	}
	if !req.Role.Valid() {
		return nil, user.ErrInvalidRole
	}

	if taken, err := s.repo.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	} else if taken {
		return nil, user.ErrUsernameExists
	}
	if taken, err := s.repo.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	} else if taken {
		return nil, user.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		Age:          req.Age,
		Role:         req.Role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.Validation, err.Error(), err)
	}

	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		// Unknown usernames and wrong passwords look identical; any
		// other failure keeps its own kind.
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	signed, err := s.tokens.Generate(u.Username, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &user.LoginResponse{Token: signed}, nil
}

func (s *userService) Create(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.Validation, err.Error(), err)
	}

	role := req.Role
	if role == "" {
		role = user.RoleClient
	}
	if !role.Valid() {
		return nil, user.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	createdAt := time.Now()
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}

	return s.repo.Create(ctx, &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		Age:          req.Age,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    createdAt,
	})
}

func (s *userService) GetAll(ctx context.Context) ([]user.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req user.UpdateUserRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.Validation, err.Error(), err)
	}
	if req.Role != nil && !req.Role.Valid() {
		return nil, user.ErrInvalidRole
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(existing)
	return s.repo.Update(ctx, existing)
}

func (s *userService) Replace(ctx context.Context, id uuid.UUID, req user.ReplaceUserRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.Validation, err.Error(), err)
	}
	if !req.Role.Valid() {
		return nil, user.ErrInvalidRole
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Username = req.Username
	existing.Email = req.Email
	existing.Age = req.Age
	existing.Role = req.Role
	return s.repo.Update(ctx, existing)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
