package service

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TechnicianRotator selects the next Tier-1 technician for a new ticket.
type TechnicianRotator interface {
	NextTier1Technician(ctx context.Context) (*domain.User, error)
}

// RotationService implements round-robin assignment over the active
// Tier-1 pool, ordered by account creation time. The cursor lives in the
// persistence layer and advances atomically, so concurrent creations do
// not double-assign. If the pool changes size between calls the wrap is
// computed against the current size, which may skip or repeat a
// technician for one cycle; no stronger fairness is guaranteed.
type RotationService struct {
	users  repository.UserRepository
	cursor repository.RotationCursorRepository
}

// NewRotationService builds the rotator.
func NewRotationService(users repository.UserRepository, cursor repository.RotationCursorRepository) *RotationService {
	return &RotationService{users: users, cursor: cursor}
}

// NextTier1Technician returns the next technician in rotation, or nil
// when the Tier-1 pool is empty.
func (s *RotationService) NextTier1Technician(ctx context.Context) (*domain.User, error) {
	pool, err := s.users.ListActiveByRole(ctx, domain.RoleTier1)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(pool) == 0 {
		return nil, nil
	}
	position, err := s.cursor.Advance(ctx, len(pool))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &pool[position], nil
}
