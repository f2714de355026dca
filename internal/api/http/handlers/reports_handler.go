package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ReportsHandler serves SLA compliance aggregates.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs the handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Summary GET /reports/summary (technicians).
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	summary, err := h.service.Summary(c.Context(), user)
	if err != nil {
		return err
	}

	byStatus := make(map[string]int, len(summary.CountsByStatus))
	for status, count := range summary.CountsByStatus {
		byStatus[string(status)] = count
	}
	return c.JSON(fiber.Map{"data": dto.ReportResponse{
		CompliancePercent: summary.CompliancePercent,
		OpenCount:         summary.OpenCount,
		InProgressCount:   summary.InProgressCount,
		ClosedCount:       summary.ClosedCount,
		CountsByStatus:    byStatus,
		CountsByCategory:  summary.CountsByCategory,
	}})
}
