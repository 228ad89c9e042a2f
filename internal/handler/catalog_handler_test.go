package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizariya/store-api/internal/models"
	"github.com/wizariya/store-api/internal/service"
	appErrors "github.com/wizariya/store-api/pkg/errors"
	"github.com/wizariya/store-api/pkg/response"
)

type catalogServiceMock struct {
	subjects   []models.Subject
	subjectErr error
	created    *models.Subject
	createErr  error
	updated    *models.Subject
	updateErr  error
}

func (m *catalogServiceMock) Grades() []models.GradeDescriptor {
	return models.GradeDescriptors()
}

func (m *catalogServiceMock) Pricing() service.PricingTable {
	return service.PricingTable{
		SingleSubject: service.PriceEntry{Price: 10, Currency: "USD"},
		AllSubjects:   service.PriceEntry{Price: 50, Currency: "USD"},
	}
}

func (m *catalogServiceMock) ListSubjects(ctx context.Context, rawGrade string) ([]models.Subject, error) {
	if m.subjectErr != nil {
		return nil, m.subjectErr
	}
	return m.subjects, nil
}

func (m *catalogServiceMock) CreateSubject(ctx context.Context, req service.CreateSubjectRequest) (*models.Subject, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.created, nil
}

func (m *catalogServiceMock) UpdateSubject(ctx context.Context, id string, req service.UpdateSubjectRequest) (*models.Subject, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updated, nil
}

func TestCatalogHandlerGrades(t *testing.T) {
	h := NewCatalogHandler(&catalogServiceMock{})

	c, w := newTestContext(t, http.MethodGet, "/grades", nil)

	h.Grades(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	grades, ok := data["grades"].([]interface{})
	require.True(t, ok)
	assert.Len(t, grades, 4)
}

func TestCatalogHandlerPricing(t *testing.T) {
	h := NewCatalogHandler(&catalogServiceMock{})

	c, w := newTestContext(t, http.MethodGet, "/pricing", nil)

	h.Pricing(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"single_subject"`)
	assert.Contains(t, w.Body.String(), `"all_subjects"`)
}

func TestCatalogHandlerSubjectsUnknownGrade(t *testing.T) {
	mock := &catalogServiceMock{subjectErr: appErrors.Validation("grade", "unknown grade")}
	h := NewCatalogHandler(mock)

	c, w := newTestContext(t, http.MethodGet, "/subjects/tenth_primary", nil)
	c.Params = gin.Params{{Key: "grade", Value: "tenth_primary"}}

	h.Subjects(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandlerCreateSubject(t *testing.T) {
	mock := &catalogServiceMock{created: &models.Subject{ID: "s1", Name: "الفلسفة", Grade: models.GradeSixthPreparatoryLiterary}}
	h := NewCatalogHandler(mock)

	body, _ := json.Marshal(service.CreateSubjectRequest{Name: "الفلسفة", Grade: "sixth_preparatory_literary"})
	c, w := newTestContext(t, http.MethodPost, "/subjects", body)

	h.CreateSubject(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCatalogHandlerUpdateSubjectNotFound(t *testing.T) {
	mock := &catalogServiceMock{updateErr: appErrors.Clone(appErrors.ErrNotFound, "subject not found")}
	h := NewCatalogHandler(mock)

	body, _ := json.Marshal(service.UpdateSubjectRequest{Name: "x", Grade: "sixth_primary"})
	c, w := newTestContext(t, http.MethodPut, "/subjects/missing", body)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.UpdateSubject(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
