package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/immunitrack/vaccine-tracker-api/internal/models"
)

type LocationHandler struct {
	db *gorm.DB
}

func NewLocationHandler(db *gorm.DB) *LocationHandler {
	return &LocationHandler{db: db}
}

type OperatingHoursInput struct {
	Open  string `json:"open" doc:"Opening time, e.g. 08:00"`
	Close string `json:"close" doc:"Closing time, e.g. 17:00"`
}

type ListLocationsInput struct {
	ListParams
}

func (h *LocationHandler) HandleList(ctx context.Context, input *ListLocationsInput) (*ListOutput[models.Location], error) {
	p := input.ListParams
	p.normalize()

	query := h.db.Model(&models.Location{}).Where("is_active = ?", true)
	if p.Search != "" {
		query = query.Where("LOWER(location_name) LIKE ?", searchPattern(p.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	var locations []models.Location
	err := query.Order("location_name ASC").Offset(p.offset()).Limit(p.Limit).Find(&locations).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewListOutput(locations, NewPagination(p.Page, p.Limit, total)), nil
}

type GetLocationInput struct {
	ID string `path:"id"`
}

func (h *LocationHandler) HandleGet(ctx context.Context, input *GetLocationInput) (*ItemOutput[models.Location], error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Location not found")
	}

	var location models.Location
	if err := h.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Location not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewItemOutput(location), nil
}

type CreateLocationInput struct {
	Body struct {
		LocationName   string              `json:"locationName" maxLength:"100"`
		Address        AddressInput        `json:"address"`
		Capacity       int                 `json:"capacity" minimum:"1"`
		ContactNumber  string              `json:"contactNumber" pattern:"^[+]?[1-9][0-9]{0,15}$"`
		OperatingHours OperatingHoursInput `json:"operatingHours"`
	}
}

func (h *LocationHandler) HandleCreate(ctx context.Context, input *CreateLocationInput) (*ItemOutput[models.Location], error) {
	location := models.Location{
		LocationName:  input.Body.LocationName,
		Address:       input.Body.Address.toModel(),
		Capacity:      input.Body.Capacity,
		ContactNumber: input.Body.ContactNumber,
		OperatingHours: models.OperatingHours{
			Open:  input.Body.OperatingHours.Open,
			Close: input.Body.OperatingHours.Close,
		},
		IsActive: true,
	}

	if err := h.db.Create(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("Location with this name already exists")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewItemOutput(location), nil
}

type UpdateLocationInput struct {
	ID   string `path:"id"`
	Body struct {
		LocationName   *string              `json:"locationName,omitempty" maxLength:"100"`
		Address        *AddressInput        `json:"address,omitempty"`
		Capacity       *int                 `json:"capacity,omitempty" minimum:"1"`
		ContactNumber  *string              `json:"contactNumber,omitempty" pattern:"^[+]?[1-9][0-9]{0,15}$"`
		OperatingHours *OperatingHoursInput `json:"operatingHours,omitempty"`
		IsActive       *bool                `json:"isActive,omitempty"`
	}
}

func (h *LocationHandler) HandleUpdate(ctx context.Context, input *UpdateLocationInput) (*ItemOutput[models.Location], error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Location not found")
	}

	var location models.Location
	if err := h.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Location not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	if input.Body.LocationName != nil {
		location.LocationName = *input.Body.LocationName
	}
	if input.Body.Address != nil {
		location.Address = input.Body.Address.toModel()
	}
	if input.Body.Capacity != nil {
		location.Capacity = *input.Body.Capacity
	}
	if input.Body.ContactNumber != nil {
		location.ContactNumber = *input.Body.ContactNumber
	}
	if input.Body.OperatingHours != nil {
		location.OperatingHours = models.OperatingHours{
			Open:  input.Body.OperatingHours.Open,
			Close: input.Body.OperatingHours.Close,
		}
	}
	if input.Body.IsActive != nil {
		location.IsActive = *input.Body.IsActive
	}

	if err := h.db.Save(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("Location with this name already exists")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewItemOutput(location), nil
}

type DeleteLocationInput struct {
	ID string `path:"id"`
}

func (h *LocationHandler) HandleDelete(ctx context.Context, input *DeleteLocationInput) (*MessageOutput, error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Location not found")
	}

	var location models.Location
	if err := h.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Location not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	location.IsActive = false
	if err := h.db.Save(&location).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewMessageOutput("Location deleted successfully"), nil
}
