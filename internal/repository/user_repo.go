package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if tx := r.db.WithContext(ctx).Create(u); tx.Error != nil {
		return nil, classify("users.create", tx.Error)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if tx.Error != nil {
		return nil, classify("users.get_by_email", tx.Error)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).First(&u, "id = ?", id)
	if tx.Error != nil {
		return nil, classify("users.get", tx.Error)
	}
	return &u, nil
}

// ListIDs returns every operator account id, the notification fan-out set.
func (r *UserRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	tx := r.db.WithContext(ctx).Model(&domain.User{}).Pluck("id", &ids)
	if tx.Error != nil {
		return nil, classify("users.list_ids", tx.Error)
	}
	return ids, nil
}
