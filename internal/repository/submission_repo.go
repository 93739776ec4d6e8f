package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) List(ctx context.Context) ([]domain.FormSubmission, error) {
	var subs []domain.FormSubmission
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&subs)
	if tx.Error != nil {
		return nil, classify("submissions.list", tx.Error)
	}
	return subs, nil
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.FormSubmission) (*domain.FormSubmission, error) {
	if tx := r.db.WithContext(ctx).Create(s); tx.Error != nil {
		return nil, classify("submissions.create", tx.Error)
	}
	return s, nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&domain.FormSubmission{}, "id = ?", id)
	if tx.Error != nil {
		return classify("submissions.delete", tx.Error)
	}
	return nil
}
