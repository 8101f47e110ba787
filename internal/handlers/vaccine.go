package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/immunitrack/vaccine-tracker-api/internal/models"
)

type VaccineHandler struct {
	db *gorm.DB
}

func NewVaccineHandler(db *gorm.DB) *VaccineHandler {
	return &VaccineHandler{db: db}
}

type ListVaccinesInput struct {
	ListParams
}

// HandleList returns active vaccines only; soft-deleted ones stay
// reachable through HandleGet.
func (h *VaccineHandler) HandleList(ctx context.Context, input *ListVaccinesInput) (*ListOutput[models.Vaccine], error) {
	p := input.ListParams
	p.normalize()

	query := h.db.Model(&models.Vaccine{}).Where("is_active = ?", true)
	if p.Search != "" {
		pattern := searchPattern(p.Search)
		query = query.Where("LOWER(vaccine_name) LIKE ? OR LOWER(manufacturer) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	var vaccines []models.Vaccine
	err := query.Order("vaccine_name ASC").Offset(p.offset()).Limit(p.Limit).Find(&vaccines).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewListOutput(vaccines, NewPagination(p.Page, p.Limit, total)), nil
}

type GetVaccineInput struct {
	ID string `path:"id"`
}

func (h *VaccineHandler) HandleGet(ctx context.Context, input *GetVaccineInput) (*ItemOutput[models.Vaccine], error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Vaccine not found")
	}

	var vaccine models.Vaccine
	if err := h.db.First(&vaccine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Vaccine not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewItemOutput(vaccine), nil
}

type CreateVaccineInput struct {
	Body struct {
		VaccineName   string  `json:"vaccineName" maxLength:"100"`
		Manufacturer  string  `json:"manufacturer" maxLength:"100"`
		Description   string  `json:"description" maxLength:"500"`
		Price         float64 `json:"price" minimum:"0"`
		DosesRequired int     `json:"dosesRequired" minimum:"1" maximum:"5"`
	}
}

func (h *VaccineHandler) HandleCreate(ctx context.Context, input *CreateVaccineInput) (*ItemOutput[models.Vaccine], error) {
	vaccine := models.Vaccine{
		VaccineName:   input.Body.VaccineName,
		Manufacturer:  input.Body.Manufacturer,
		Description:   input.Body.Description,
		Price:         input.Body.Price,
		DosesRequired: input.Body.DosesRequired,
		IsActive:      true,
	}

	if err := h.db.Create(&vaccine).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("Vaccine with this name already exists")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewItemOutput(vaccine), nil
}

type UpdateVaccineInput struct {
	ID   string `path:"id"`
	Body struct {
		VaccineName   *string  `json:"vaccineName,omitempty" maxLength:"100"`
		Manufacturer  *string  `json:"manufacturer,omitempty" maxLength:"100"`
		Description   *string  `json:"description,omitempty" maxLength:"500"`
		Price         *float64 `json:"price,omitempty" minimum:"0"`
		DosesRequired *int     `json:"dosesRequired,omitempty" minimum:"1" maximum:"5"`
		IsActive      *bool    `json:"isActive,omitempty"`
	}
}

func (h *VaccineHandler) HandleUpdate(ctx context.Context, input *UpdateVaccineInput) (*ItemOutput[models.Vaccine], error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Vaccine not found")
	}

	var vaccine models.Vaccine
	if err := h.db.First(&vaccine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Vaccine not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	if input.Body.VaccineName != nil {
		vaccine.VaccineName = *input.Body.VaccineName
	}
	if input.Body.Manufacturer != nil {
		vaccine.Manufacturer = *input.Body.Manufacturer
	}
	if input.Body.Description != nil {
		vaccine.Description = *input.Body.Description
	}
	if input.Body.Price != nil {
		vaccine.Price = *input.Body.Price
	}
	if input.Body.DosesRequired != nil {
		vaccine.DosesRequired = *input.Body.DosesRequired
	}
	if input.Body.IsActive != nil {
		vaccine.IsActive = *input.Body.IsActive
	}

	if err := h.db.Save(&vaccine).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("Vaccine with this name already exists")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewItemOutput(vaccine), nil
}

type DeleteVaccineInput struct {
	ID string `path:"id"`
}

// HandleDelete is a soft delete: the record stays for existing sessions,
// it just disappears from default listings.
func (h *VaccineHandler) HandleDelete(ctx context.Context, input *DeleteVaccineInput) (*MessageOutput, error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Vaccine not found")
	}

	var vaccine models.Vaccine
	if err := h.db.First(&vaccine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Vaccine not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	vaccine.IsActive = false
	if err := h.db.Save(&vaccine).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewMessageOutput("Vaccine deleted successfully"), nil
}
