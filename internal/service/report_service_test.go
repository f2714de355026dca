package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func closedTicket(due time.Time, closedAt time.Time) domain.Ticket {
	return domain.Ticket{
		Status:   domain.TicketStatusClosed,
		SLADueAt: due,
		ClosedAt: &closedAt,
	}
}

func TestCompliancePercent(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	due := base.Add(8 * time.Hour)

	t.Run("empty set is fully compliant", func(t *testing.T) {
		assert.Equal(t, 100, CompliancePercent(nil))
	})

	t.Run("all compliant", func(t *testing.T) {
		closed := []domain.Ticket{
			closedTicket(due, base.Add(2*time.Hour)),
			closedTicket(due, base.Add(6*time.Hour)),
		}
		assert.Equal(t, 100, CompliancePercent(closed))
	})

	t.Run("none compliant", func(t *testing.T) {
		closed := []domain.Ticket{
			closedTicket(due, base.Add(9*time.Hour)),
			closedTicket(due, base.Add(30*time.Hour)),
		}
		assert.Equal(t, 0, CompliancePercent(closed))
	})

	t.Run("mixed rounds to nearest percent", func(t *testing.T) {
		closed := []domain.Ticket{
			closedTicket(due, base.Add(6*time.Hour)),
			closedTicket(due, base.Add(7*time.Hour)),
			closedTicket(due, base.Add(9*time.Hour)),
		}
		// 2 of 3 -> 66.66 -> 67
		assert.Equal(t, 67, CompliancePercent(closed))
	})
}

func TestReportSummary(t *testing.T) {
	tickets := newFakeTicketRepo()
	ctx := context.Background()

	due := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	onTime := due.Add(-time.Hour)
	late := due.Add(time.Hour)
	seed := []domain.Ticket{
		{CategoryID: "Hardware", Status: domain.TicketStatusOpen},
		{CategoryID: "Hardware", Status: domain.TicketStatusInProgress},
		{CategoryID: "Software", Status: domain.TicketStatusClosed, SLADueAt: due, ClosedAt: &onTime},
		{CategoryID: "Software", Status: domain.TicketStatusClosed, SLADueAt: due, ClosedAt: &late},
	}
	for i := range seed {
		require.NoError(t, tickets.Create(ctx, &seed[i]))
	}

	service := NewReportService(tickets)
	tier1 := &domain.User{ID: "tech", Role: domain.RoleTier1}

	summary, err := service.Summary(ctx, tier1)
	require.NoError(t, err)
	assert.Equal(t, 50, summary.CompliancePercent)
	assert.Equal(t, 1, summary.OpenCount)
	assert.Equal(t, 1, summary.InProgressCount)
	assert.Equal(t, 2, summary.ClosedCount)
	assert.Equal(t, 2, summary.CountsByCategory["Software"])
}

func TestReportSummaryForbiddenForEndUser(t *testing.T) {
	service := NewReportService(newFakeTicketRepo())
	endUser := &domain.User{ID: "u", Role: domain.RoleEndUser}

	_, err := service.Summary(context.Background(), endUser)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}
