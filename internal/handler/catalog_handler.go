package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wizariya/store-api/internal/models"
	"github.com/wizariya/store-api/internal/service"
	appErrors "github.com/wizariya/store-api/pkg/errors"
	"github.com/wizariya/store-api/pkg/response"
)

type catalogService interface {
	Grades() []models.GradeDescriptor
	Pricing() service.PricingTable
	ListSubjects(ctx context.Context, rawGrade string) ([]models.Subject, error)
	CreateSubject(ctx context.Context, req service.CreateSubjectRequest) (*models.Subject, error)
	UpdateSubject(ctx context.Context, id string, req service.UpdateSubjectRequest) (*models.Subject, error)
}

// CatalogHandler exposes the grade, subject and pricing endpoints.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler constructs a catalog handler.
func NewCatalogHandler(svc catalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Grades godoc
// @Summary List the four fixed grades
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *CatalogHandler) Grades(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"grades": h.service.Grades()}, nil)
}

// Pricing godoc
// @Summary Static pricing table
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /pricing [get]
func (h *CatalogHandler) Pricing(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Pricing(), nil)
}

// Subjects godoc
// @Summary List subjects for a grade
// @Tags Catalog
// @Produce json
// @Param grade path string true "Grade slug or display name"
// @Success 200 {object} response.Envelope
// @Router /subjects/{grade} [get]
func (h *CatalogHandler) Subjects(c *gin.Context) {
	subjects, err := h.service.ListSubjects(c.Request.Context(), c.Param("grade"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// CreateSubject godoc
// @Summary Create subject (admin)
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body service.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /subjects [post]
func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	var req service.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subject, err := h.service.CreateSubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// UpdateSubject godoc
// @Summary Update subject (admin)
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Subject ID"
// @Param payload body service.UpdateSubjectRequest true "Subject payload"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id} [put]
func (h *CatalogHandler) UpdateSubject(c *gin.Context) {
	var req service.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subject, err := h.service.UpdateSubject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject, nil)
}
