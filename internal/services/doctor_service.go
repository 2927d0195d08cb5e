package services

import (
	"context"

	"go.uber.org/zap"

	"docfinder/internal/models"
	"docfinder/internal/repository"
	"docfinder/internal/utils"
)

// BulkValidationError points at one rejected record in a bulk create.
type BulkValidationError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// DoctorService owns catalog reads and writes.
type DoctorService struct {
	doctorRepo repository.DoctorRepository
	logger     *zap.Logger
}

func NewDoctorService(doctorRepo repository.DoctorRepository, logger *zap.Logger) *DoctorService {
	return &DoctorService{doctorRepo: doctorRepo, logger: logger}
}

// List runs the filter/sort/paginate query and derives pagination metadata
// from the full filtered count.
func (s *DoctorService) List(ctx context.Context, q repository.DoctorQuery) ([]models.Doctor, models.Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	doctors, total, err := s.doctorRepo.List(ctx, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return doctors, models.NewPagination(total, q.Page, q.Limit), nil
}

func (s *DoctorService) Get(ctx context.Context, id string) (*models.Doctor, error) {
	return s.doctorRepo.FindByID(ctx, id)
}

func applyDoctorDefaults(d *models.Doctor) {
	if len(d.Languages) == 0 {
		d.Languages = append([]string{}, models.DefaultLanguages...)
	}
	if d.ProfileImage == "" {
		d.ProfileImage = models.DefaultProfileImage
	}
}

// Create validates one doctor record, fills defaults and inserts it.
func (s *DoctorService) Create(ctx context.Context, d *models.Doctor) error {
	if err := utils.Validate.StructCtx(ctx, d); err != nil {
		return err
	}
	applyDoctorDefaults(d)
	return s.doctorRepo.Insert(ctx, d)
}

// CreateBulk validates every record before touching the store. Any failure
// rejects the whole batch with per-index errors and nothing is inserted.
func (s *DoctorService) CreateBulk(ctx context.Context, docs []models.Doctor) ([]BulkValidationError, error) {
	var bulkErrs []BulkValidationError
	for i := range docs {
		if err := utils.Validate.StructCtx(ctx, &docs[i]); err != nil {
			bulkErrs = append(bulkErrs, BulkValidationError{Index: i, Error: "Missing required fields"})
		}
	}
	if len(bulkErrs) > 0 {
		return bulkErrs, nil
	}

	for i := range docs {
		applyDoctorDefaults(&docs[i])
	}
	return nil, s.doctorRepo.InsertMany(ctx, docs)
}

// Update merges the provided fields after re-validating them.
func (s *DoctorService) Update(ctx context.Context, id string, params repository.UpdateDoctorParams) (*models.Doctor, error) {
	if err := utils.Validate.StructCtx(ctx, &params); err != nil {
		return nil, err
	}
	return s.doctorRepo.Update(ctx, id, params)
}

func (s *DoctorService) Delete(ctx context.Context, id string) error {
	return s.doctorRepo.Delete(ctx, id)
}
