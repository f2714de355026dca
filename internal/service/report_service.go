package service

import (
	"context"
	"math"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ReportSummary aggregates SLA compliance and ticket tallies. Everything
// is recomputed on demand from storage; nothing is cached.
type ReportSummary struct {
	CompliancePercent int
	OpenCount         int
	InProgressCount   int
	ClosedCount       int
	CountsByStatus    map[domain.TicketStatus]int
	CountsByCategory  map[string]int
}

// ReportService answers aggregate queries over the ticket set.
type ReportService struct {
	tickets repository.TicketRepository
}

// NewReportService constructs the reporter.
func NewReportService(tickets repository.TicketRepository) *ReportService {
	return &ReportService{tickets: tickets}
}

// CompliancePercent computes the share of closed tickets resolved before
// their SLA deadline, rounded to the nearest whole percent. An empty set
// is 100% compliant by convention.
func CompliancePercent(closed []domain.Ticket) int {
	if len(closed) == 0 {
		return 100
	}
	compliant := 0
	for i := range closed {
		if closed[i].SLACompliant() {
			compliant++
		}
	}
	return int(math.Round(float64(compliant) / float64(len(closed)) * 100))
}

// Summary builds the full compliance report.
func (s *ReportService) Summary(ctx context.Context, actor *domain.User) (*ReportSummary, error) {
	if !actor.Role.Can(domain.CapabilityViewReports) {
		return nil, apperrors.NewForbidden("only technicians may view reports")
	}

	closed, err := s.tickets.ListClosed(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	byStatus, err := s.tickets.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	byCategory, err := s.tickets.CountByCategory(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &ReportSummary{
		CompliancePercent: CompliancePercent(closed),
		OpenCount:         byStatus[domain.TicketStatusOpen],
		InProgressCount:   byStatus[domain.TicketStatusInProgress],
		ClosedCount:       byStatus[domain.TicketStatusClosed],
		CountsByStatus:    byStatus,
		CountsByCategory:  byCategory,
	}, nil
}
