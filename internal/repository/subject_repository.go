package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wizariya/store-api/internal/models"
)

// SubjectRepository handles persistence for catalog subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListByGrade returns the subjects of a grade in insertion order.
func (r *SubjectRepository) ListByGrade(ctx context.Context, grade models.Grade) ([]models.Subject, error) {
	const query = `SELECT id, name, grade, image_urls, created_at FROM subjects WHERE grade = $1 ORDER BY created_at, name`
	subjects := []models.Subject{}
	if err := r.db.SelectContext(ctx, &subjects, query, grade); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns a subject by id.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	const query = `SELECT id, name, grade, image_urls, created_at FROM subjects WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create persists a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}
	if subject.ImageURLs == nil {
		subject.ImageURLs = []string{}
	}

	const query = `INSERT INTO subjects (id, name, grade, image_urls, created_at) VALUES (:id, :name, :grade, :image_urls, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Update modifies a subject's editable fields.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	if subject.ImageURLs == nil {
		subject.ImageURLs = []string{}
	}
	const query = `UPDATE subjects SET name = :name, grade = :grade, image_urls = :image_urls WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// DeleteAll wipes the whole catalog. Used by the startup reseed.
func (r *SubjectRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM subjects`); err != nil {
		return fmt.Errorf("delete subjects: %w", err)
	}
	return nil
}
