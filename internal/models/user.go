package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is the user's postal address.
type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Pincode string `bson:"pincode,omitempty" json:"pincode,omitempty"`
}

// MedicalHistory holds self-reported medical background for a patient.
type MedicalHistory struct {
	Conditions  []string `bson:"conditions,omitempty" json:"conditions,omitempty"`
	Allergies   []string `bson:"allergies,omitempty" json:"allergies,omitempty"`
	Medications []string `bson:"medications,omitempty" json:"medications,omitempty"`
}

// User represents a patient account. The password is only ever stored as a
// bcrypt hash and is never serialized to JSON.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Email          string               `bson:"email" json:"email"`
	PasswordHash   string               `bson:"password_hash" json:"-"`
	Phone          string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender         string               `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth    *time.Time           `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	Address        *Address             `bson:"address,omitempty" json:"address,omitempty"`
	MedicalHistory *MedicalHistory      `bson:"medical_history,omitempty" json:"medicalHistory,omitempty"`
	Appointments   []primitive.ObjectID `bson:"appointments,omitempty" json:"appointments,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}
