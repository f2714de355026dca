package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestRotationCyclesInCreationOrder(t *testing.T) {
	users := newFakeUserRepo()
	a := users.add(domain.User{Name: "A", Role: domain.RoleTier1, Active: true})
	b := users.add(domain.User{Name: "B", Role: domain.RoleTier1, Active: true})
	c := users.add(domain.User{Name: "C", Role: domain.RoleTier1, Active: true})
	users.add(domain.User{Name: "Lead", Role: domain.RoleTier2, Active: true})

	rotator := NewRotationService(users, &fakeCursor{})
	ctx := context.Background()

	var got []string
	for i := 0; i < 5; i++ {
		tech, err := rotator.NextTier1Technician(ctx)
		require.NoError(t, err)
		require.NotNil(t, tech)
		got = append(got, tech.ID)
	}
	assert.Equal(t, []string{a.ID, b.ID, c.ID, a.ID, b.ID}, got)
}

func TestRotationSkipsInactiveTechnicians(t *testing.T) {
	users := newFakeUserRepo()
	active := users.add(domain.User{Name: "A", Role: domain.RoleTier1, Active: true})
	users.add(domain.User{Name: "B", Role: domain.RoleTier1, Active: false})

	rotator := NewRotationService(users, &fakeCursor{})

	for i := 0; i < 3; i++ {
		tech, err := rotator.NextTier1Technician(context.Background())
		require.NoError(t, err)
		require.NotNil(t, tech)
		assert.Equal(t, active.ID, tech.ID)
	}
}

func TestRotationEmptyPool(t *testing.T) {
	users := newFakeUserRepo()
	users.add(domain.User{Name: "Lead", Role: domain.RoleTier2, Active: true})

	rotator := NewRotationService(users, &fakeCursor{})
	tech, err := rotator.NextTier1Technician(context.Background())
	require.NoError(t, err)
	assert.Nil(t, tech)
}
