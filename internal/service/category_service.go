package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// CategoryService manages categories and their SLA thresholds.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryInput describes category create/update payload.
type CategoryInput struct {
	Name               string
	Description        string
	ResponseSLAHours   int
	ResolutionSLAHours int
}

func (i *CategoryInput) validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if i.ResponseSLAHours <= 0 || i.ResolutionSLAHours <= 0 {
		return apperrors.NewValidationError("SLA hours must be positive", map[string]any{
			"response_sla_hours":   i.ResponseSLAHours,
			"resolution_sla_hours": i.ResolutionSLAHours,
		})
	}
	return nil
}

// Create adds a category; names are unique.
func (s *CategoryService) Create(ctx context.Context, actor *domain.User, input CategoryInput) (*domain.Category, error) {
	if !actor.Role.Can(domain.CapabilityManageCategories) {
		return nil, apperrors.NewForbidden("only technicians may manage categories")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("category name already exists", map[string]any{"name": name})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	category := &domain.Category{
		Name:               name,
		Description:        strings.TrimSpace(input.Description),
		ResponseSLAHours:   input.ResponseSLAHours,
		ResolutionSLAHours: input.ResolutionSLAHours,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// Update edits a category. Already-created tickets keep the SLA deadline
// computed at their creation time.
func (s *CategoryService) Update(ctx context.Context, actor *domain.User, id string, input CategoryInput) (*domain.Category, error) {
	if !actor.Role.Can(domain.CapabilityManageCategories) {
		return nil, apperrors.NewForbidden("only technicians may manage categories")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	name := strings.TrimSpace(input.Name)
	if name != category.Name {
		if _, err := s.categories.GetByName(ctx, name); err == nil {
			return nil, apperrors.NewConflict("category name already exists", map[string]any{"name": name})
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
	}

	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.ResponseSLAHours = input.ResponseSLAHours
	category.ResolutionSLAHours = input.ResolutionSLAHours
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// List returns all categories; any authenticated caller may read them
// (requesters need them to open tickets).
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}
