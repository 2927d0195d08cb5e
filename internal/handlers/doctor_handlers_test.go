package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfinder/internal/models"
)

func seedDoctors(repo *fakeDoctorRepo, n int) {
	for i := 0; i < n; i++ {
		_ = repo.Insert(context.Background(), &models.Doctor{
			Name:                  "Dr. Test",
			Specializations:       []string{"General Physician"},
			PrimarySpecialization: "General Physician",
			Experience:            intp(5 + i),
			Gender:                "female",
			Clinics:               []models.Clinic{{Name: "Clinic", ConsultationFee: 300 + 50*i}},
			Rating:                3.5,
		})
	}
}

func validDoctorPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":                  "Dr. Ananya Sharma",
		"specializations":       []string{"Dentistry"},
		"primarySpecialization": "Dentistry",
		"qualifications":        []string{"BDS"},
		"experience":            10,
		"gender":                "female",
		"clinics": []map[string]interface{}{{
			"name":            "Smile Studio",
			"address":         "22 Link Road",
			"city":            "Mumbai",
			"state":           "Maharashtra",
			"pincode":         "400050",
			"consultationFee": 450,
		}},
	}
}

func TestListDoctors_PassesCriteriaToRepository(t *testing.T) {
	repo := newFakeDoctorRepo()
	seedDoctors(repo, 3)
	app := newTestApp(t, newFakeUserRepo(), repo)

	resp, body := doJSON(t, app, http.MethodGet,
		"/api/v1/doctors?minExperience=10&sort=experience-low&isOnline=false", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	q := repo.lastQuery
	require.NotNil(t, q)
	require.NotNil(t, q.MinExperience)
	assert.Equal(t, 10, *q.MinExperience)
	assert.Equal(t, "experience-low", q.Sort)
	require.NotNil(t, q.IsOnline)
	assert.False(t, *q.IsOnline)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
}

func TestListDoctors_Pagination(t *testing.T) {
	repo := newFakeDoctorRepo()
	seedDoctors(repo, 7)
	app := newTestApp(t, newFakeUserRepo(), repo)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/doctors?page=2&limit=5", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].([]interface{})
	assert.Len(t, data, 2)

	p := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(7), p["total"])
	assert.Equal(t, float64(2), p["page"])
	assert.Equal(t, float64(5), p["limit"])
	assert.Equal(t, float64(2), p["totalPages"])
	assert.Equal(t, false, p["hasNextPage"])
	assert.Equal(t, true, p["hasPrevPage"])
}

func TestListDoctors_EmptyResult(t *testing.T) {
	repo := newFakeDoctorRepo()
	seedDoctors(repo, 3)
	app := newTestApp(t, newFakeUserRepo(), repo)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/doctors?minExperience=50", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].([]interface{})
	assert.Empty(t, data)

	p := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(0), p["total"])
	assert.Equal(t, float64(0), p["totalPages"])
}

func TestCreateDoctor_AppliesDefaults(t *testing.T) {
	repo := newFakeDoctorRepo()
	app := newTestApp(t, newFakeUserRepo(), repo)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/doctors", validDoctorPayload(), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)

	doc := body["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{"English", "Hindi"}, doc["languages"])
	assert.Equal(t, "/images/default-doctor.png", doc["profileImage"])
	assert.Equal(t, 1, repo.insertCalls)
}

func TestCreateDoctor_MissingRequiredFields(t *testing.T) {
	repo := newFakeDoctorRepo()
	app := newTestApp(t, newFakeUserRepo(), repo)

	payload := validDoctorPayload()
	delete(payload, "name")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/doctors", payload, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, 0, repo.insertCalls)
}

func TestCreateDoctor_MissingExperience(t *testing.T) {
	repo := newFakeDoctorRepo()
	app := newTestApp(t, newFakeUserRepo(), repo)

	// Absent experience is not the same as zero experience.
	payload := validDoctorPayload()
	delete(payload, "experience")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/doctors", payload, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, 0, repo.insertCalls)
}

func TestCreateDoctor_ZeroExperienceIsValid(t *testing.T) {
	repo := newFakeDoctorRepo()
	app := newTestApp(t, newFakeUserRepo(), repo)

	payload := validDoctorPayload()
	payload["experience"] = 0

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/doctors", payload, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)

	doc := body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), doc["experience"])
	assert.Equal(t, 1, repo.insertCalls)
}

func TestCreateDoctors_Bulk(t *testing.T) {
	repo := newFakeDoctorRepo()
	app := newTestApp(t, newFakeUserRepo(), repo)

	batch := []map[string]interface{}{validDoctorPayload(), validDoctorPayload(), validDoctorPayload()}
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/doctors", batch, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)
	assert.Equal(t, 1, repo.insertManyCalls)
	assert.Len(t, repo.docs, 3)
}

func TestCreateDoctors_BulkMissingExperienceRejected(t *testing.T) {
	repo := newFakeDoctorRepo()
	app := newTestApp(t, newFakeUserRepo(), repo)

	bad := validDoctorPayload()
	delete(bad, "experience")
	batch := []map[string]interface{}{validDoctorPayload(), bad}

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/doctors", batch, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	first := errs[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["index"])
	assert.Equal(t, "Missing required fields", first["error"])
	assert.Equal(t, 0, repo.insertManyCalls)
	assert.Empty(t, repo.docs)
}

func TestCreateDoctors_BulkRejectsWholeBatch(t *testing.T) {
	repo := newFakeDoctorRepo()
	app := newTestApp(t, newFakeUserRepo(), repo)

	bad := validDoctorPayload()
	delete(bad, "primarySpecialization")
	batch := []map[string]interface{}{validDoctorPayload(), validDoctorPayload(), bad}

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/doctors", batch, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["error"])

	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	first := errs[0].(map[string]interface{})
	assert.Equal(t, float64(2), first["index"])
	assert.Equal(t, "Missing required fields", first["error"])

	// Nothing from the batch may be written.
	assert.Equal(t, 0, repo.insertManyCalls)
	assert.Empty(t, repo.docs)
}

func TestGetDoctor_NotFound(t *testing.T) {
	app := newTestApp(t, newFakeUserRepo(), newFakeDoctorRepo())

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/doctors/64a000000000000000000000", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Doctor not found", body["error"])
}

func TestUpdateDoctor(t *testing.T) {
	repo := newFakeDoctorRepo()
	seedDoctors(repo, 1)
	app := newTestApp(t, newFakeUserRepo(), repo)
	id := repo.docs[0].ID.Hex()

	resp, body := doJSON(t, app, http.MethodPut, "/api/v1/doctors/"+id, map[string]interface{}{
		"experience": 20,
		"about":      "Updated bio",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", body)

	doc := body["data"].(map[string]interface{})
	assert.Equal(t, float64(20), doc["experience"])
	assert.Equal(t, "Updated bio", doc["about"])
	assert.Equal(t, repo.docs[0].Name, doc["name"])
}

func TestUpdateDoctor_InvalidRating(t *testing.T) {
	repo := newFakeDoctorRepo()
	seedDoctors(repo, 1)
	app := newTestApp(t, newFakeUserRepo(), repo)
	id := repo.docs[0].ID.Hex()

	resp, body := doJSON(t, app, http.MethodPut, "/api/v1/doctors/"+id, map[string]interface{}{
		"rating": 9.5,
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestDeleteDoctor(t *testing.T) {
	repo := newFakeDoctorRepo()
	seedDoctors(repo, 1)
	app := newTestApp(t, newFakeUserRepo(), repo)
	id := repo.docs[0].ID.Hex()

	resp, body := doJSON(t, app, http.MethodDelete, "/api/v1/doctors/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Doctor deleted successfully", body["message"])
	assert.Empty(t, repo.docs)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/doctors/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
