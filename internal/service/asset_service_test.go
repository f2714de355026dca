package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func TestAssetLifecycle(t *testing.T) {
	users := newFakeUserRepo()
	owner := users.add(domain.User{Name: "Dana", Role: domain.RoleEndUser, Active: true})

	service := NewAssetService(newFakeAssetRepo(), users)
	ctx := context.Background()
	tier1 := &domain.User{ID: "tech", Role: domain.RoleTier1}
	endUser := &domain.User{ID: "user", Role: domain.RoleEndUser}

	asset, err := service.Create(ctx, tier1, AssetInput{
		Type: "laptop", Brand: "Lenovo", Model: "T14", SerialNumber: "SN-001", AssignedToID: &owner.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, asset.ID)

	_, err = service.Create(ctx, tier1, AssetInput{Type: "laptop", SerialNumber: "SN-001"})
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))

	ghost := "no-such-user"
	_, err = service.Create(ctx, tier1, AssetInput{Type: "monitor", SerialNumber: "SN-002", AssignedToID: &ghost})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	_, err = service.Create(ctx, endUser, AssetInput{Type: "laptop", SerialNumber: "SN-003"})
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	updated, err := service.Update(ctx, tier1, asset.ID, AssetInput{
		Type: "laptop", Brand: "Lenovo", Model: "T14s", SerialNumber: "SN-001",
	})
	require.NoError(t, err)
	assert.Equal(t, "T14s", updated.Model)
	assert.Nil(t, updated.AssignedToID)

	require.NoError(t, service.Delete(ctx, tier1, asset.ID))
	err = service.Delete(ctx, tier1, asset.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
