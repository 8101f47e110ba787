package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/immunitrack/vaccine-tracker-api/internal/models"
)

type PersonHandler struct {
	db *gorm.DB
}

func NewPersonHandler(db *gorm.DB) *PersonHandler {
	return &PersonHandler{db: db}
}

type AddressInput struct {
	Street  string `json:"street" doc:"Street address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country,omitempty"`
}

func (a AddressInput) toModel() models.Address {
	country := a.Country
	if country == "" {
		country = "United States"
	}
	return models.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: country,
	}
}

type ListPersonsInput struct {
	ListParams
}

func (h *PersonHandler) HandleList(ctx context.Context, input *ListPersonsInput) (*ListOutput[models.Person], error) {
	p := input.ListParams
	p.normalize()

	query := h.db.Model(&models.Person{})
	if p.Search != "" {
		pattern := searchPattern(p.Search)
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	var persons []models.Person
	err := query.Order("created_at DESC").Offset(p.offset()).Limit(p.Limit).Find(&persons).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewListOutput(persons, NewPagination(p.Page, p.Limit, total)), nil
}

type GetPersonInput struct {
	ID string `path:"id"`
}

func (h *PersonHandler) HandleGet(ctx context.Context, input *GetPersonInput) (*ItemOutput[models.Person], error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Person not found")
	}

	var person models.Person
	if err := h.db.First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Person not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewItemOutput(person), nil
}

type CreatePersonInput struct {
	Body struct {
		FullName      string       `json:"fullName" maxLength:"100" doc:"Full name"`
		Email         string       `json:"email" format:"email"`
		ContactNumber string       `json:"contactNumber" pattern:"^[+]?[1-9][0-9]{0,15}$"`
		DOB           time.Time    `json:"dob" doc:"Date of birth"`
		Gender        string       `json:"gender" enum:"Male,Female,Other"`
		Address       AddressInput `json:"address"`
	}
}

func (h *PersonHandler) HandleCreate(ctx context.Context, input *CreatePersonInput) (*ItemOutput[models.Person], error) {
	person := models.Person{
		FullName:      input.Body.FullName,
		Email:         input.Body.Email,
		ContactNumber: input.Body.ContactNumber,
		DOB:           input.Body.DOB,
		Gender:        input.Body.Gender,
		Address:       input.Body.Address.toModel(),
	}

	if err := h.db.Create(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("Person with this email already exists")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewItemOutput(person), nil
}

type UpdatePersonInput struct {
	ID   string `path:"id"`
	Body struct {
		FullName      *string       `json:"fullName,omitempty" maxLength:"100"`
		Email         *string       `json:"email,omitempty" format:"email"`
		ContactNumber *string       `json:"contactNumber,omitempty" pattern:"^[+]?[1-9][0-9]{0,15}$"`
		DOB           *time.Time    `json:"dob,omitempty"`
		Gender        *string       `json:"gender,omitempty" enum:"Male,Female,Other"`
		Address       *AddressInput `json:"address,omitempty"`
	}
}

func (h *PersonHandler) HandleUpdate(ctx context.Context, input *UpdatePersonInput) (*ItemOutput[models.Person], error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Person not found")
	}

	var person models.Person
	if err := h.db.First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Person not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	if input.Body.FullName != nil {
		person.FullName = *input.Body.FullName
	}
	if input.Body.Email != nil {
		person.Email = *input.Body.Email
	}
	if input.Body.ContactNumber != nil {
		person.ContactNumber = *input.Body.ContactNumber
	}
	if input.Body.DOB != nil {
		person.DOB = *input.Body.DOB
	}
	if input.Body.Gender != nil {
		person.Gender = *input.Body.Gender
	}
	if input.Body.Address != nil {
		person.Address = input.Body.Address.toModel()
	}

	if err := h.db.Save(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("Person with this email already exists")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewItemOutput(person), nil
}

type DeletePersonInput struct {
	ID string `path:"id"`
}

func (h *PersonHandler) HandleDelete(ctx context.Context, input *DeletePersonInput) (*MessageOutput, error) {
	id, ok := parseID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Person not found")
	}

	var person models.Person
	if err := h.db.First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Person not found")
		}
		return nil, huma.Error500InternalServerError("Server error")
	}

	// Hard delete. Sessions referencing this person are left in place.
	if err := h.db.Unscoped().Delete(&person).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	return NewMessageOutput("Person deleted successfully"), nil
}
