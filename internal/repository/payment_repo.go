package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&payments)
	if tx.Error != nil {
		return nil, classify("payments.list", tx.Error)
	}
	return payments, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var p domain.Payment
	tx := r.db.WithContext(ctx).First(&p, "id = ?", id)
	if tx.Error != nil {
		return nil, classify("payments.get", tx.Error)
	}
	return &p, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	if tx := r.db.WithContext(ctx).Create(p); tx.Error != nil {
		return nil, classify("payments.create", tx.Error)
	}
	return p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	if tx := r.db.WithContext(ctx).Save(p); tx.Error != nil {
		return nil, classify("payments.update", tx.Error)
	}
	return p, nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Payment{}, "id = ?", id)
	if tx.Error != nil {
		return classify("payments.delete", tx.Error)
	}
	return nil
}
