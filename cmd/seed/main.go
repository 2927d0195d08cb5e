package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"docfinder/internal/config"
	"docfinder/internal/database"
	"docfinder/internal/models"
	"docfinder/internal/repository"
	"docfinder/internal/services"
)

// Seeds a demo user and a handful of doctors for local development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables:", err)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()

	db, client, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout.Std(), sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repository.NewMongoUserRepo(db, cfg.Collections.Users)
	doctorRepo := repository.NewMongoDoctorRepo(db, cfg.Collections.Doctors)

	authSvc := services.NewAuthService(userRepo, cfg.App.JWT.Secret, cfg.App.JWT.TTLDays, logger)
	doctorSvc := services.NewDoctorService(doctorRepo, logger)

	if _, _, err := authSvc.Signup(ctx, "Demo User", "demo@example.com", "password123"); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			sugar.Info("Demo user already exists, skipping")
		} else {
			sugar.Fatalf("failed to seed demo user: %v", err)
		}
	} else {
		sugar.Info("Seeded demo user demo@example.com")
	}

	bulkErrs, err := doctorSvc.CreateBulk(ctx, sampleDoctors())
	if err != nil {
		sugar.Fatalf("failed to seed doctors: %v", err)
	}
	if len(bulkErrs) > 0 {
		sugar.Fatalf("sample doctors failed validation: %+v", bulkErrs)
	}
	sugar.Infof("Seeded %d doctors", len(sampleDoctors()))
}

func years(n int) *int { return &n }

func sampleDoctors() []models.Doctor {
	return []models.Doctor{
		{
			Name:                  "Dr. Ananya Sharma",
			Specializations:       []string{"General Physician", "Internal Medicine"},
			PrimarySpecialization: "General Physician",
			Qualifications:        []string{"MBBS", "MD (General Medicine)"},
			Experience:            years(12),
			Gender:                "female",
			Clinics: []models.Clinic{{
				Name:            "City Care Clinic",
				Address:         "14 MG Road",
				City:            "Bengaluru",
				State:           "Karnataka",
				Pincode:         "560001",
				ConsultationFee: 600,
			}},
			Availability: []models.Availability{{
				Day:   "Monday",
				Slots: []models.Slot{{StartTime: "09:00", EndTime: "13:00"}},
			}},
			About:           "General physician focusing on preventive care.",
			Rating:          4.6,
			ReviewsCount:    182,
			IsConsultOnline: true,
		},
		{
			Name:                  "Dr. Rohan Mehta",
			Specializations:       []string{"Dentistry"},
			PrimarySpecialization: "Dentistry",
			Qualifications:        []string{"BDS", "MDS (Orthodontics)"},
			Experience:            years(8),
			Gender:                "male",
			Clinics: []models.Clinic{{
				Name:            "Smile Studio",
				Address:         "22 Link Road",
				City:            "Mumbai",
				State:           "Maharashtra",
				Pincode:         "400050",
				ConsultationFee: 450,
			}},
			Availability: []models.Availability{{
				Day:   "Wednesday",
				Slots: []models.Slot{{StartTime: "10:00", EndTime: "18:00"}},
			}},
			Rating:       4.2,
			ReviewsCount: 74,
			IsHomeVisit:  true,
		},
		{
			Name:                  "Dr. Kavita Nair",
			Specializations:       []string{"Dermatology", "Cosmetology"},
			PrimarySpecialization: "Dermatology",
			Qualifications:        []string{"MBBS", "MD (Dermatology)"},
			Experience:            years(15),
			Gender:                "female",
			Clinics: []models.Clinic{{
				Name:            "Skin & You",
				Address:         "5 Park Street",
				City:            "Kolkata",
				State:           "West Bengal",
				Pincode:         "700016",
				ConsultationFee: 900,
			}},
			Rating:          4.8,
			ReviewsCount:    311,
			IsConsultOnline: true,
		},
	}
}
