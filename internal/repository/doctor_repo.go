package repository

import (
	"context"
	"errors"

	"docfinder/internal/models"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// DoctorQuery is the set of listing criteria. All filters are optional and
// combine with logical AND. Page and Limit are always set by the caller.
type DoctorQuery struct {
	Specialization string
	Gender         string
	MinExperience  *int
	MaxFee         *int
	IsOnline       *bool
	IsHomeVisit    *bool
	Search         string
	Sort           string
	Page           int
	Limit          int
}

// UpdateDoctorParams carries a partial doctor update; only non-nil fields are
// merged into the stored document.
type UpdateDoctorParams struct {
	Name                  *string                `json:"name" validate:"omitempty,min=1"`
	Specializations       *[]string              `json:"specializations" validate:"omitempty,min=1"`
	PrimarySpecialization *string                `json:"primarySpecialization" validate:"omitempty,min=1"`
	Qualifications        *[]string              `json:"qualifications" validate:"omitempty,min=1"`
	Experience            *int                   `json:"experience" validate:"omitempty,min=0"`
	Gender                *string                `json:"gender" validate:"omitempty,oneof=male female other"`
	Languages             *[]string              `json:"languages"`
	Clinics               *[]models.Clinic       `json:"clinics" validate:"omitempty,min=1,dive"`
	Availability          *[]models.Availability `json:"availability" validate:"omitempty,dive"`
	About                 *string                `json:"about"`
	ProfileImage          *string                `json:"profileImage"`
	Rating                *float64               `json:"rating" validate:"omitempty,min=0,max=5"`
	ReviewsCount          *int                   `json:"reviewsCount" validate:"omitempty,min=0"`
	IsConsultOnline       *bool                  `json:"isConsultOnline"`
	IsHomeVisit           *bool                  `json:"isHomeVisit"`
}

type DoctorRepository interface {
	Insert(ctx context.Context, d *models.Doctor) error
	InsertMany(ctx context.Context, docs []models.Doctor) error
	FindByID(ctx context.Context, id string) (*models.Doctor, error)
	// List returns one page of matches plus the total count of the full
	// filtered set (ignoring pagination).
	List(ctx context.Context, q DoctorQuery) ([]models.Doctor, int64, error)
	Update(ctx context.Context, id string, params UpdateDoctorParams) (*models.Doctor, error)
	Delete(ctx context.Context, id string) error
}
