package repository

import (
	"context"
	"errors"
	"time"

	"docfinder/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UpdateUserParams carries the profile fields a user may change. Only non-nil
// fields are applied. Email and password deliberately have no place here;
// they change through their own paths.
type UpdateUserParams struct {
	Name           *string
	Phone          *string
	Gender         *string
	DateOfBirth    *time.Time
	Address        *models.Address
	MedicalHistory *models.MedicalHistory
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, params UpdateUserParams) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
