package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

type VisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) List(ctx context.Context) ([]domain.BusinessVisit, error) {
	var visits []domain.BusinessVisit
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&visits)
	if tx.Error != nil {
		return nil, classify("visits.list", tx.Error)
	}
	return visits, nil
}

func (r *VisitRepository) ListSince(ctx context.Context, since time.Time) ([]domain.BusinessVisit, error) {
	var visits []domain.BusinessVisit
	tx := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&visits)
	if tx.Error != nil {
		return nil, classify("visits.list_since", tx.Error)
	}
	return visits, nil
}

func (r *VisitRepository) Create(ctx context.Context, v *domain.BusinessVisit) (*domain.BusinessVisit, error) {
	if tx := r.db.WithContext(ctx).Create(v); tx.Error != nil {
		return nil, classify("visits.create", tx.Error)
	}
	return v, nil
}

func (r *VisitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&domain.BusinessVisit{}, "id = ?", id)
	if tx.Error != nil {
		return classify("visits.delete", tx.Error)
	}
	return nil
}
