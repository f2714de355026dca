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

// AssetService manages the hardware inventory.
type AssetService struct {
	assets repository.AssetRepository
	users  repository.UserRepository
}

// NewAssetService constructs the service.
func NewAssetService(assets repository.AssetRepository, users repository.UserRepository) *AssetService {
	return &AssetService{assets: assets, users: users}
}

// AssetInput describes asset create/update payload.
type AssetInput struct {
	Type         string
	Brand        string
	Model        string
	SerialNumber string
	AssignedToID *string
}

// Create registers an inventory item; serial numbers are unique.
func (s *AssetService) Create(ctx context.Context, actor *domain.User, input AssetInput) (*domain.Asset, error) {
	if !actor.Role.Can(domain.CapabilityManageAssets) {
		return nil, apperrors.NewForbidden("only technicians may manage inventory")
	}
	serial := strings.TrimSpace(input.SerialNumber)
	if strings.TrimSpace(input.Type) == "" || serial == "" {
		return nil, apperrors.NewValidationError("type and serial number required", nil)
	}
	if _, err := s.assets.GetBySerialNumber(ctx, serial); err == nil {
		return nil, apperrors.NewConflict("serial number already registered", map[string]any{"serial_number": serial})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	if err := s.checkAssignee(ctx, input.AssignedToID); err != nil {
		return nil, err
	}

	asset := &domain.Asset{
		Type:         strings.TrimSpace(input.Type),
		Brand:        strings.TrimSpace(input.Brand),
		Model:        strings.TrimSpace(input.Model),
		SerialNumber: serial,
		AssignedToID: input.AssignedToID,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, apperrors.MapError(err)
	}
	return asset, nil
}

// Update edits an inventory item, including its assignment.
func (s *AssetService) Update(ctx context.Context, actor *domain.User, id string, input AssetInput) (*domain.Asset, error) {
	if !actor.Role.Can(domain.CapabilityManageAssets) {
		return nil, apperrors.NewForbidden("only technicians may manage inventory")
	}
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("asset", map[string]any{"asset_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.checkAssignee(ctx, input.AssignedToID); err != nil {
		return nil, err
	}

	asset.Type = strings.TrimSpace(input.Type)
	asset.Brand = strings.TrimSpace(input.Brand)
	asset.Model = strings.TrimSpace(input.Model)
	asset.SerialNumber = strings.TrimSpace(input.SerialNumber)
	asset.AssignedToID = input.AssignedToID
	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, apperrors.MapError(err)
	}
	return asset, nil
}

// List returns inventory items for technicians.
func (s *AssetService) List(ctx context.Context, actor *domain.User, filter repository.AssetFilter) ([]domain.Asset, error) {
	if !actor.Role.Can(domain.CapabilityManageAssets) {
		return nil, apperrors.NewForbidden("only technicians may view inventory")
	}
	assets, err := s.assets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assets, nil
}

// Delete removes an inventory item.
func (s *AssetService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !actor.Role.Can(domain.CapabilityManageAssets) {
		return apperrors.NewForbidden("only technicians may manage inventory")
	}
	if err := s.assets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("asset", map[string]any{"asset_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *AssetService) checkAssignee(ctx context.Context, assignedToID *string) error {
	if assignedToID == nil {
		return nil
	}
	if _, err := s.users.GetByID(ctx, *assignedToID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": *assignedToID})
		}
		return apperrors.MapError(err)
	}
	return nil
}
