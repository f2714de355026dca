package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func TestCreateAccountRequiresTier2(t *testing.T) {
	users := newFakeUserRepo()
	service := NewRosterService(users, 4)
	ctx := context.Background()
	tier2 := &domain.User{ID: "lead", Role: domain.RoleTier2}
	tier1 := &domain.User{ID: "tech", Role: domain.RoleTier1}

	_, err := service.CreateAccount(ctx, tier1, AccountInput{
		Name: "New Tech", Email: "new@example.com", Password: "pw", Role: domain.RoleTier1,
	})
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	account, err := service.CreateAccount(ctx, tier2, AccountInput{
		Name: "New Tech", Email: "New@Example.com", Password: "pw", Role: domain.RoleTier1,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", account.Email)
	assert.Equal(t, domain.RoleTier1, account.Role)
	assert.True(t, account.Active)

	_, err = service.CreateAccount(ctx, tier2, AccountInput{
		Name: "Dup", Email: "new@example.com", Password: "pw", Role: domain.RoleTier1,
	})
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))

	_, err = service.CreateAccount(ctx, tier2, AccountInput{
		Name: "Bad Role", Email: "bad@example.com", Password: "pw", Role: "ADMIN",
	})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestUpdateAccountDeactivation(t *testing.T) {
	users := newFakeUserRepo()
	tech := users.add(domain.User{Name: "Tech", Email: "tech@example.com", Role: domain.RoleTier1, Active: true})

	service := NewRosterService(users, 4)
	ctx := context.Background()
	tier2 := &domain.User{ID: "lead", Role: domain.RoleTier2}

	inactive := false
	updated, err := service.UpdateAccount(ctx, tier2, tech.ID, AccountUpdateInput{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	// deactivated technicians leave the rotation pool
	pool, err := users.ListActiveByRole(ctx, domain.RoleTier1)
	require.NoError(t, err)
	assert.Empty(t, pool)

	role := domain.RoleTier2
	updated, err = service.UpdateAccount(ctx, tier2, tech.ID, AccountUpdateInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTier2, updated.Role)

	_, err = service.UpdateAccount(ctx, tier2, "missing", AccountUpdateInput{})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
