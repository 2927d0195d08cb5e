package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docfinder/internal/models"
	"docfinder/internal/repository"
	"docfinder/internal/services"
	"docfinder/internal/utils"
)

// DoctorHandler exposes the provider catalog endpoints.
type DoctorHandler struct {
	svc *services.DoctorService
	log *zap.Logger
}

func NewDoctorHandler(svc *services.DoctorService, log *zap.Logger) *DoctorHandler {
	return &DoctorHandler{svc: svc, log: log}
}

// parseListQuery translates the request's query string into catalog criteria.
// Absent parameters stay nil so the repository builds a purely conjunctive
// filter from what was actually asked for.
func parseListQuery(c *fiber.Ctx) repository.DoctorQuery {
	q := repository.DoctorQuery{
		Specialization: c.Query("specialization"),
		Gender:         c.Query("gender"),
		Search:         c.Query("search"),
		Sort:           c.Query("sort"),
	}

	if v := c.Query("minExperience"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.MinExperience = &n
		}
	}
	if v := c.Query("maxFee"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.MaxFee = &n
		}
	}
	if v := c.Query("isOnline"); v != "" {
		b := v == "true"
		q.IsOnline = &b
	}
	if v := c.Query("isHomeVisit"); v != "" {
		b := v == "true"
		q.IsHomeVisit = &b
	}

	q.Page, _ = strconv.Atoi(c.Query("page", "1"))
	q.Limit, _ = strconv.Atoi(c.Query("limit", "10"))
	return q
}

// List returns one page of matching doctors plus pagination metadata.
func (h *DoctorHandler) List(c *fiber.Ctx) error {
	doctors, pagination, err := h.svc.List(c.Context(), parseListQuery(c))
	if err != nil {
		h.log.Error("list doctors failed", zap.Error(err))
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       doctors,
		"pagination": pagination,
	})
}

// Create accepts either a single doctor object or an array for bulk insert.
// A bulk batch with any invalid record is rejected whole, with per-index
// errors and no partial writes.
func (h *DoctorHandler) Create(c *fiber.Ctx) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) > 0 && body[0] == '[' {
		return h.createBulk(c, body)
	}

	var doc models.Doctor
	if err := json.Unmarshal(body, &doc); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.svc.Create(c.Context(), &doc); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return utils.JSONError(c, fiber.StatusBadRequest, utils.FormatValidationError(err))
		}
		h.log.Error("create doctor failed", zap.Error(err))
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, doc)
}

func (h *DoctorHandler) createBulk(c *fiber.Ctx, body []byte) error {
	var docs []models.Doctor
	if err := json.Unmarshal(body, &docs); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(docs) == 0 {
		return utils.JSONError(c, fiber.StatusBadRequest, "Empty doctor list")
	}

	bulkErrs, err := h.svc.CreateBulk(c.Context(), docs)
	if err != nil {
		h.log.Error("bulk create doctors failed", zap.Error(err))
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if len(bulkErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Validation failed",
			"errors":  bulkErrs,
		})
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, docs)
}

// Get returns one doctor by id.
func (h *DoctorHandler) Get(c *fiber.Ctx) error {
	doc, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "Doctor not found")
		}
		h.log.Error("get doctor failed", zap.Error(err))
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, doc)
}

// Update merges the provided fields into the stored document.
func (h *DoctorHandler) Update(c *fiber.Ctx) error {
	var params repository.UpdateDoctorParams
	if err := c.BodyParser(&params); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	doc, err := h.svc.Update(c.Context(), c.Params("id"), params)
	if err != nil {
		var ve validator.ValidationErrors
		switch {
		case errors.As(err, &ve):
			return utils.JSONError(c, fiber.StatusBadRequest, utils.FormatValidationError(err))
		case errors.Is(err, repository.ErrDoctorNotFound):
			return utils.JSONError(c, fiber.StatusNotFound, "Doctor not found")
		default:
			h.log.Error("update doctor failed", zap.Error(err))
			return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}
	return utils.JSONSuccess(c, fiber.StatusOK, doc)
}

// Delete removes a doctor by id.
func (h *DoctorHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "Doctor not found")
		}
		h.log.Error("delete doctor failed", zap.Error(err))
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return utils.JSONMessage(c, fiber.StatusOK, "Doctor deleted successfully")
}
