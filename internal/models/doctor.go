package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Clinic is a practice location where a doctor consults.
type Clinic struct {
	Name            string `bson:"name" json:"name" validate:"required"`
	Address         string `bson:"address" json:"address" validate:"required"`
	City            string `bson:"city" json:"city" validate:"required"`
	State           string `bson:"state" json:"state" validate:"required"`
	Pincode         string `bson:"pincode" json:"pincode" validate:"required"`
	ConsultationFee int    `bson:"consultation_fee" json:"consultationFee" validate:"min=0"`
}

// Slot is a bookable time window within a day.
type Slot struct {
	StartTime string `bson:"start_time" json:"startTime" validate:"required"`
	EndTime   string `bson:"end_time" json:"endTime" validate:"required"`
}

// Availability lists a doctor's slots for one weekday.
type Availability struct {
	Day   string `bson:"day" json:"day" validate:"required"`
	Slots []Slot `bson:"slots" json:"slots" validate:"dive"`
}

// Doctor represents a bookable medical practitioner.
type Doctor struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                  string             `bson:"name" json:"name" validate:"required"`
	Specializations       []string           `bson:"specializations" json:"specializations" validate:"required,min=1"`
	PrimarySpecialization string             `bson:"primary_specialization" json:"primarySpecialization" validate:"required"`
	Qualifications        []string           `bson:"qualifications" json:"qualifications" validate:"required,min=1"`
	// Experience is a pointer so that an absent value fails required
	// validation while an explicit 0 (a new practitioner) is accepted.
	Experience            *int               `bson:"experience" json:"experience" validate:"required,min=0"`
	Gender                string             `bson:"gender" json:"gender" validate:"required,oneof=male female other"`
	Languages             []string           `bson:"languages" json:"languages"`
	Clinics               []Clinic           `bson:"clinics" json:"clinics" validate:"required,min=1,dive"`
	Availability          []Availability     `bson:"availability" json:"availability" validate:"dive"`
	About                 string             `bson:"about,omitempty" json:"about,omitempty"`
	ProfileImage          string             `bson:"profile_image" json:"profileImage"`
	Rating                float64            `bson:"rating" json:"rating" validate:"min=0,max=5"`
	ReviewsCount          int                `bson:"reviews_count" json:"reviewsCount"`
	IsConsultOnline       bool               `bson:"is_consult_online" json:"isConsultOnline"`
	IsHomeVisit           bool               `bson:"is_home_visit" json:"isHomeVisit"`
	CreatedAt             time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time          `bson:"updated_at" json:"updated_at"`
}

// DefaultLanguages and DefaultProfileImage are applied when a doctor is
// created without explicit values.
var DefaultLanguages = []string{"English", "Hindi"}

const DefaultProfileImage = "/images/default-doctor.png"
