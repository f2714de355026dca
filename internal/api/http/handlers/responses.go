package handlers

import (
	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:           ticket.ID,
		ExternalKey:  ticket.ExternalKey,
		CategoryID:   ticket.CategoryID,
		TechnicianID: ticket.TechnicianID,
		Subject:      ticket.Subject,
		Status:       ticket.Status,
		Priority:     ticket.Priority,
		CreatedAt:    ticket.CreatedAt,
		SLADueAt:     ticket.SLADueAt,
		ClosedAt:     ticket.ClosedAt,
	}
}

func ticketDetail(ticket *domain.Ticket, comments []domain.Comment, attachments []domain.Attachment) dto.TicketDetailResponse {
	response := dto.TicketDetailResponse{
		ID:           ticket.ID,
		ExternalKey:  ticket.ExternalKey,
		RequesterID:  ticket.RequesterID,
		CategoryID:   ticket.CategoryID,
		TechnicianID: ticket.TechnicianID,
		Subject:      ticket.Subject,
		Description:  ticket.Description,
		Status:       ticket.Status,
		Priority:     ticket.Priority,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
		SLADueAt:     ticket.SLADueAt,
		ClosedAt:     ticket.ClosedAt,
		Comments:     make([]dto.CommentResponse, 0, len(comments)),
		Attachments:  make([]dto.AttachmentResponse, 0, len(attachments)),
	}
	for _, comment := range comments {
		response.Comments = append(response.Comments, commentResponse(&comment))
	}
	for _, attachment := range attachments {
		response.Attachments = append(response.Attachments, dto.AttachmentResponse{
			ID:        attachment.ID,
			FileName:  attachment.FileName,
			SizeBytes: attachment.SizeBytes,
			CreatedAt: attachment.CreatedAt,
		})
	}
	return response
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

func categoryResponse(category *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:                 category.ID,
		Name:               category.Name,
		Description:        category.Description,
		ResponseSLAHours:   category.ResponseSLAHours,
		ResolutionSLAHours: category.ResolutionSLAHours,
		CreatedAt:          category.CreatedAt,
	}
}

func assetResponse(asset *domain.Asset) dto.AssetResponse {
	return dto.AssetResponse{
		ID:           asset.ID,
		Type:         asset.Type,
		Brand:        asset.Brand,
		Model:        asset.Model,
		SerialNumber: asset.SerialNumber,
		AssignedToID: asset.AssignedToID,
		CreatedAt:    asset.CreatedAt,
	}
}

func notificationResponse(notification *domain.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        notification.ID,
		TicketID:  notification.TicketID,
		Message:   notification.Message,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
}
