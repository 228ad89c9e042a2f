package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wizariya/store-api/internal/models"
	appErrors "github.com/wizariya/store-api/pkg/errors"
)

type subjectRepository interface {
	ListByGrade(ctx context.Context, grade models.Grade) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	DeleteAll(ctx context.Context) error
}

// CreateSubjectRequest captures fields for admin catalog additions.
type CreateSubjectRequest struct {
	Name      string   `json:"name" validate:"required"`
	Grade     string   `json:"grade" validate:"required"`
	ImageURLs []string `json:"image_urls"`
}

// UpdateSubjectRequest modifies subject fields.
type UpdateSubjectRequest struct {
	Name      string   `json:"name" validate:"required"`
	Grade     string   `json:"grade" validate:"required"`
	ImageURLs []string `json:"image_urls"`
}

// PriceEntry describes one pricing tier.
type PriceEntry struct {
	Price       int    `json:"price"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

// PricingTable is the static pricing payload served to the storefront.
type PricingTable struct {
	SingleSubject PriceEntry `json:"single_subject"`
	AllSubjects   PriceEntry `json:"all_subjects"`
}

const subjectsCachePrefix = "catalog:subjects:"

// CatalogService owns the subject catalog: the startup reseed, the public
// listings and the administrator edits.
type CatalogService struct {
	repo      subjectRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo subjectRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// SeedDefaults wipes the catalog and reinserts the static default subjects
// for every grade. Intended to run once at process start; the resulting set
// of (grade, name) pairs is identical across calls even though ids regenerate.
func (s *CatalogService) SeedDefaults(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to wipe catalog")
	}

	for _, grade := range models.Grades() {
		for _, name := range models.DefaultCatalog[grade] {
			subject := &models.Subject{Name: name, Grade: grade, ImageURLs: []string{}}
			if err := s.repo.Create(ctx, subject); err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed catalog")
			}
		}
	}

	_ = s.cache.Invalidate(ctx, subjectsCachePrefix+"*")
	s.logger.Info("catalog seeded", zap.Int("grades", len(models.Grades())))
	return nil
}

// Grades returns the four fixed grade descriptors.
func (s *CatalogService) Grades() []models.GradeDescriptor {
	return models.GradeDescriptors()
}

// Pricing returns the static pricing table.
func (s *CatalogService) Pricing() PricingTable {
	return PricingTable{
		SingleSubject: PriceEntry{
			Price:       models.PriceSingleSubjectUSD,
			Currency:    "USD",
			Description: "مادة واحدة - كارت رصيد 10$",
		},
		AllSubjects: PriceEntry{
			Price:       models.PriceAllSubjectsUSD,
			Currency:    "USD",
			Description: "جميع المواد - كارت رصيد 50$",
		},
	}
}

// ListSubjects returns the catalog entries of a grade.
func (s *CatalogService) ListSubjects(ctx context.Context, rawGrade string) ([]models.Subject, error) {
	grade, ok := models.ParseGrade(strings.TrimSpace(rawGrade))
	if !ok {
		return nil, appErrors.Validation("grade", "unknown grade")
	}

	cacheKey := subjectsCachePrefix + string(grade)
	var cached []models.Subject
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	subjects, err := s.repo.ListByGrade(ctx, grade)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}

	_ = s.cache.Set(ctx, cacheKey, subjects, 0)
	return subjects, nil
}

// CreateSubject adds a catalog entry on behalf of an administrator.
func (s *CatalogService) CreateSubject(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	grade, ok := models.ParseGrade(req.Grade)
	if !ok {
		return nil, appErrors.Validation("grade", "unknown grade")
	}

	subject := &models.Subject{
		Name:      strings.TrimSpace(req.Name),
		Grade:     grade,
		ImageURLs: req.ImageURLs,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}

	_ = s.cache.Invalidate(ctx, subjectsCachePrefix+string(grade))
	return subject, nil
}

// UpdateSubject modifies an existing catalog entry.
func (s *CatalogService) UpdateSubject(ctx context.Context, id string, req UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	grade, ok := models.ParseGrade(req.Grade)
	if !ok {
		return nil, appErrors.Validation("grade", "unknown grade")
	}

	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	previousGrade := subject.Grade
	subject.Name = strings.TrimSpace(req.Name)
	subject.Grade = grade
	subject.ImageURLs = req.ImageURLs

	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}

	_ = s.cache.Invalidate(ctx, subjectsCachePrefix+string(grade))
	if previousGrade != grade {
		_ = s.cache.Invalidate(ctx, subjectsCachePrefix+string(previousGrade))
	}
	return subject, nil
}
