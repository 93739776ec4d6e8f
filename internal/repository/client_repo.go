package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&clients)
	if tx.Error != nil {
		return nil, classify("clients.list", tx.Error)
	}
	for i := range clients {
		clients[i].Status = domain.NormalizeClientStatus(string(clients[i].Status))
	}
	return clients, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var c domain.Client
	tx := r.db.WithContext(ctx).First(&c, "id = ?", id)
	if tx.Error != nil {
		return nil, classify("clients.get", tx.Error)
	}
	c.Status = domain.NormalizeClientStatus(string(c.Status))
	return &c, nil
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	var c domain.Client
	tx := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at DESC").First(&c)
	if tx.Error != nil {
		return nil, classify("clients.get_by_email", tx.Error)
	}
	return &c, nil
}

func (r *ClientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.Client{}).Where("id = ?", id).Count(&cnt)
	if tx.Error != nil {
		return false, classify("clients.exists", tx.Error)
	}
	return cnt > 0, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	if tx := r.db.WithContext(ctx).Create(c); tx.Error != nil {
		return nil, classify("clients.create", tx.Error)
	}
	return c, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	if tx := r.db.WithContext(ctx).Save(c); tx.Error != nil {
		return nil, classify("clients.update", tx.Error)
	}
	return c, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Client{}, "id = ?", id)
	if tx.Error != nil {
		return classify("clients.delete", tx.Error)
	}
	return nil
}
