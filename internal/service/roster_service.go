package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// RosterService lets Tier-2 technicians manage accounts: creating
// technicians, changing roles and deactivating users. Deactivated
// Tier-1 technicians drop out of the assignment rotation.
type RosterService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewRosterService constructs the service.
func NewRosterService(users repository.UserRepository, bcryptCost int) *RosterService {
	return &RosterService{users: users, bcryptCost: bcryptCost}
}

// AccountInput describes account creation payload.
type AccountInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AccountUpdateInput describes mutable account fields; nil means keep.
type AccountUpdateInput struct {
	Name   *string
	Role   *domain.Role
	Active *bool
}

// CreateAccount creates an account with any role.
func (s *RosterService) CreateAccount(ctx context.Context, actor *domain.User, input AccountInput) (*domain.User, error) {
	if !actor.Role.Can(domain.CapabilityManageRoster) {
		return nil, apperrors.NewForbidden("only Tier-2 technicians may manage accounts")
	}
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email, password required", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateAccount changes role, name or active flag.
func (s *RosterService) UpdateAccount(ctx context.Context, actor *domain.User, id string, input AccountUpdateInput) (*domain.User, error) {
	if !actor.Role.Can(domain.CapabilityManageRoster) {
		return nil, apperrors.NewForbidden("only Tier-2 technicians may manage accounts")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		user.Name = name
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": *input.Role})
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListAccounts returns accounts matching the filter.
func (s *RosterService) ListAccounts(ctx context.Context, actor *domain.User, filter repository.UserFilter) ([]domain.User, error) {
	if !actor.Role.Can(domain.CapabilityManageRoster) {
		return nil, apperrors.NewForbidden("only Tier-2 technicians may list accounts")
	}
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
