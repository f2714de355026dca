package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func TestCategoryCreate(t *testing.T) {
	service := NewCategoryService(newFakeCategoryRepo())
	ctx := context.Background()
	tier1 := &domain.User{ID: "tech", Role: domain.RoleTier1}
	endUser := &domain.User{ID: "user", Role: domain.RoleEndUser}

	category, err := service.Create(ctx, tier1, CategoryInput{
		Name: "Hardware", ResponseSLAHours: 2, ResolutionSLAHours: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hardware", category.Name)

	_, err = service.Create(ctx, tier1, CategoryInput{
		Name: "Hardware", ResponseSLAHours: 1, ResolutionSLAHours: 4,
	})
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))

	_, err = service.Create(ctx, tier1, CategoryInput{
		Name: "Broken", ResponseSLAHours: 0, ResolutionSLAHours: 8,
	})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = service.Create(ctx, endUser, CategoryInput{
		Name: "Nope", ResponseSLAHours: 1, ResolutionSLAHours: 2,
	})
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestCategoryUpdate(t *testing.T) {
	repo := newFakeCategoryRepo()
	repo.add(domain.Category{ID: "cat-1", Name: "Hardware", ResponseSLAHours: 2, ResolutionSLAHours: 8})
	repo.add(domain.Category{ID: "cat-2", Name: "Software", ResponseSLAHours: 4, ResolutionSLAHours: 24})

	service := NewCategoryService(repo)
	ctx := context.Background()
	tier1 := &domain.User{ID: "tech", Role: domain.RoleTier1}

	updated, err := service.Update(ctx, tier1, "cat-1", CategoryInput{
		Name: "Hardware", ResponseSLAHours: 1, ResolutionSLAHours: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.ResolutionSLAHours)

	_, err = service.Update(ctx, tier1, "cat-1", CategoryInput{
		Name: "Software", ResponseSLAHours: 1, ResolutionSLAHours: 6,
	})
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))

	_, err = service.Update(ctx, tier1, "missing", CategoryInput{
		Name: "X", ResponseSLAHours: 1, ResolutionSLAHours: 2,
	})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
