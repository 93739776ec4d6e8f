package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/metrics"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
)

// GoalRepository reads goals through two explicit schema shapes: the
// enhanced one with frequency and client scoping, and the reduced one for
// backends that predate those columns. A schema-mismatch error on the
// enhanced read triggers one retry with the reduced shape; defaults are
// filled in a single normalization step.
type GoalRepository struct {
	db     *gorm.DB
	logger *slog.Logger
	m      *metrics.Metrics
}

func NewGoalRepository(db *gorm.DB, logger *slog.Logger, m *metrics.Metrics) *GoalRepository {
	return &GoalRepository{db: db, logger: logger, m: m}
}

const (
	goalColumnsEnhanced = "id, title, frequency, target, client_id, created_at, updated_at"
	goalColumnsReduced  = "id, title, target, created_at"
)

type goalRowEnhanced struct {
	ID        uuid.UUID
	Title     string
	Frequency string
	Target    int
	ClientID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (row goalRowEnhanced) normalize() domain.Goal {
	return domain.Goal{
		ID:        row.ID,
		Title:     row.Title,
		Frequency: domain.NormalizeGoalFrequency(row.Frequency),
		Target:    row.Target,
		ClientID:  row.ClientID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type goalRowReduced struct {
	ID        uuid.UUID
	Title     string
	Target    int
	CreatedAt time.Time
}

func (row goalRowReduced) normalize() domain.Goal {
	// Omitted columns get documented defaults: weekly frequency, global scope.
	return domain.Goal{
		ID:        row.ID,
		Title:     row.Title,
		Frequency: domain.DefaultGoalFrequency,
		Target:    row.Target,
		ClientID:  nil,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.CreatedAt,
	}
}

func (r *GoalRepository) List(ctx context.Context) ([]domain.Goal, error) {
	var rows []goalRowEnhanced
	tx := r.db.WithContext(ctx).Table("goals").
		Select(goalColumnsEnhanced).
		Order("created_at DESC").
		Scan(&rows)
	if tx.Error == nil {
		goals := make([]domain.Goal, 0, len(rows))
		for _, row := range rows {
			goals = append(goals, row.normalize())
		}
		return goals, nil
	}

	err := classify("goals.list", tx.Error)
	if !apperr.Is(err, apperr.KindSchemaMismatch) {
		return nil, err
	}
	return r.listReduced(ctx)
}

func (r *GoalRepository) listReduced(ctx context.Context) ([]domain.Goal, error) {
	r.logger.Warn("goals table is missing enhanced columns, retrying with reduced column set")
	if r.m != nil {
		r.m.SchemaFallbacks.WithLabelValues("goals").Inc()
	}

	var rows []goalRowReduced
	tx := r.db.WithContext(ctx).Table("goals").
		Select(goalColumnsReduced).
		Order("created_at DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, classify("goals.list_reduced", tx.Error)
	}

	goals := make([]domain.Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, row.normalize())
	}
	return goals, nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	var row goalRowEnhanced
	tx := r.db.WithContext(ctx).Table("goals").
		Select(goalColumnsEnhanced).
		Where("id = ?", id).
		Take(&row)
	if tx.Error == nil {
		g := row.normalize()
		return &g, nil
	}

	err := classify("goals.get", tx.Error)
	if !apperr.Is(err, apperr.KindSchemaMismatch) {
		return nil, err
	}

	r.logger.Warn("goals table is missing enhanced columns, retrying with reduced column set")
	if r.m != nil {
		r.m.SchemaFallbacks.WithLabelValues("goals").Inc()
	}

	var reduced goalRowReduced
	tx = r.db.WithContext(ctx).Table("goals").
		Select(goalColumnsReduced).
		Where("id = ?", id).
		Take(&reduced)
	if tx.Error != nil {
		return nil, classify("goals.get_reduced", tx.Error)
	}
	g := reduced.normalize()
	return &g, nil
}

func (r *GoalRepository) Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	if tx := r.db.WithContext(ctx).Create(g); tx.Error != nil {
		return nil, classify("goals.create", tx.Error)
	}
	return g, nil
}

func (r *GoalRepository) Update(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	if tx := r.db.WithContext(ctx).Save(g); tx.Error != nil {
		return nil, classify("goals.update", tx.Error)
	}
	return g, nil
}

func (r *GoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Goal{}, "id = ?", id)
	if tx.Error != nil {
		return classify("goals.delete", tx.Error)
	}
	return nil
}
