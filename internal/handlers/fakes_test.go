package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"docfinder/internal/handlers"
	"docfinder/internal/middleware"
	"docfinder/internal/models"
	"docfinder/internal/repository"
	"docfinder/internal/routes"
	"docfinder/internal/services"
)

const testSecret = "test-secret-123"

func intp(n int) *int { return &n }

func expYears(d models.Doctor) int {
	if d.Experience == nil {
		return 0
	}
	return *d.Experience
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users       map[string]*models.User
	lastUpdate  *repository.UpdateUserParams
	updateCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return duplicateKeyErr()
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	r.users[u.ID.Hex()] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id string, params repository.UpdateUserParams) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	r.lastUpdate = &params
	r.updateCalls++

	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Phone != nil {
		u.Phone = *params.Phone
	}
	if params.Gender != nil {
		u.Gender = *params.Gender
	}
	if params.DateOfBirth != nil {
		u.DateOfBirth = params.DateOfBirth
	}
	if params.Address != nil {
		u.Address = params.Address
	}
	if params.MedicalHistory != nil {
		u.MedicalHistory = params.MedicalHistory
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

// fakeDoctorRepo is an in-memory DoctorRepository with just enough
// filter/sort behavior to exercise the listing contract.
type fakeDoctorRepo struct {
	docs            []models.Doctor
	lastQuery       *repository.DoctorQuery
	insertManyCalls int
	insertCalls     int
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{}
}

func (r *fakeDoctorRepo) Insert(_ context.Context, d *models.Doctor) error {
	d.ID = primitive.NewObjectID()
	r.insertCalls++
	r.docs = append(r.docs, *d)
	return nil
}

func (r *fakeDoctorRepo) InsertMany(_ context.Context, docs []models.Doctor) error {
	r.insertManyCalls++
	for i := range docs {
		docs[i].ID = primitive.NewObjectID()
		r.docs = append(r.docs, docs[i])
	}
	return nil
}

func (r *fakeDoctorRepo) FindByID(_ context.Context, id string) (*models.Doctor, error) {
	for i := range r.docs {
		if r.docs[i].ID.Hex() == id {
			cp := r.docs[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrDoctorNotFound
}

func (r *fakeDoctorRepo) matches(d models.Doctor, q repository.DoctorQuery) bool {
	if q.Specialization != "" {
		found := false
		for _, s := range d.Specializations {
			if s == q.Specialization {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Gender != "" && d.Gender != q.Gender {
		return false
	}
	if q.MinExperience != nil && expYears(d) < *q.MinExperience {
		return false
	}
	if q.MaxFee != nil {
		ok := false
		for _, cl := range d.Clinics {
			if cl.ConsultationFee <= *q.MaxFee {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if q.IsOnline != nil && d.IsConsultOnline != *q.IsOnline {
		return false
	}
	if q.IsHomeVisit != nil && d.IsHomeVisit != *q.IsHomeVisit {
		return false
	}
	return true
}

func (r *fakeDoctorRepo) List(_ context.Context, q repository.DoctorQuery) ([]models.Doctor, int64, error) {
	qq := q
	r.lastQuery = &qq

	filtered := []models.Doctor{}
	for _, d := range r.docs {
		if r.matches(d, q) {
			filtered = append(filtered, d)
		}
	}

	switch q.Sort {
	case "experience-high":
		sort.SliceStable(filtered, func(i, j int) bool { return expYears(filtered[i]) > expYears(filtered[j]) })
	case "experience-low":
		sort.SliceStable(filtered, func(i, j int) bool { return expYears(filtered[i]) < expYears(filtered[j]) })
	default:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Rating > filtered[j].Rating })
	}

	total := int64(len(filtered))
	start := (q.Page - 1) * q.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + q.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

func (r *fakeDoctorRepo) Update(_ context.Context, id string, params repository.UpdateDoctorParams) (*models.Doctor, error) {
	for i := range r.docs {
		if r.docs[i].ID.Hex() != id {
			continue
		}
		d := &r.docs[i]
		if params.Name != nil {
			d.Name = *params.Name
		}
		if params.Experience != nil {
			d.Experience = params.Experience
		}
		if params.Rating != nil {
			d.Rating = *params.Rating
		}
		if params.About != nil {
			d.About = *params.About
		}
		if params.IsConsultOnline != nil {
			d.IsConsultOnline = *params.IsConsultOnline
		}
		cp := *d
		return &cp, nil
	}
	return nil, repository.ErrDoctorNotFound
}

func (r *fakeDoctorRepo) Delete(_ context.Context, id string) error {
	for i := range r.docs {
		if r.docs[i].ID.Hex() == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return repository.ErrDoctorNotFound
}

// newTestApp wires the full route table over fake repositories.
func newTestApp(t *testing.T, userRepo repository.UserRepository, doctorRepo repository.DoctorRepository) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	authSvc := services.NewAuthService(userRepo, testSecret, 7, logger)
	doctorSvc := services.NewDoctorService(doctorRepo, logger)

	app := fiber.New()
	routes.Setup(app, routes.Deps{
		Auth:        handlers.NewAuthHandler(authSvc, logger, false, 7),
		Doctors:     handlers.NewDoctorHandler(doctorSvc, logger),
		RequireAuth: middleware.RequireAuth(testSecret),
	})
	return app
}

// doJSON issues a request against the app and decodes the JSON response.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp, out
}
