// Package store persists beaches in SQLite through GORM.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/surf-forecast-service/internal/domain"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrBeachNotFound is returned when a beach does not exist for the given user.
var ErrBeachNotFound = errors.New("beach not found")

// beachModel is the persisted row for a domain.Beach.
type beachModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Position  string    `gorm:"column:position;not null"`
	Lat       float64   `gorm:"column:lat;not null"`
	Lng       float64   `gorm:"column:lng;not null"`
	UserID    string    `gorm:"column:user_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for beachModel.
func (beachModel) TableName() string {
	return "beaches"
}

func (m beachModel) toDomain() domain.Beach {
	return domain.Beach{
		ID:       m.ID,
		Name:     m.Name,
		Position: domain.Position(m.Position),
		Lat:      m.Lat,
		Lng:      m.Lng,
		UserID:   m.UserID,
	}
}

// BeachRepository stores beaches per user.
type BeachRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewBeachRepository opens (or creates) the SQLite database at path and
// migrates the beaches table.
func NewBeachRepository(path string, logger *slog.Logger) (*BeachRepository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	if err := db.AutoMigrate(&beachModel{}); err != nil {
		return nil, fmt.Errorf("migrate beaches: %w", err)
	}
	logger.Info("beach store ready", "path", path)
	return &BeachRepository{db: db, logger: logger}, nil
}

// Create assigns a new id to beach, stores it, and returns the stored copy.
func (r *BeachRepository) Create(ctx context.Context, beach domain.Beach) (domain.Beach, error) {
	row := beachModel{
		ID:       uuid.NewString(),
		Name:     beach.Name,
		Position: string(beach.Position),
		Lat:      beach.Lat,
		Lng:      beach.Lng,
		UserID:   beach.UserID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Beach{}, fmt.Errorf("create beach: %w", err)
	}
	return row.toDomain(), nil
}

// ListByUser returns the user's beaches in insertion order.
func (r *BeachRepository) ListByUser(ctx context.Context, userID string) ([]domain.Beach, error) {
	var rows []beachModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("rowid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list beaches: %w", err)
	}
	beaches := make([]domain.Beach, 0, len(rows))
	for _, row := range rows {
		beaches = append(beaches, row.toDomain())
	}
	return beaches, nil
}

// Delete removes the user's beach with the given id.
func (r *BeachRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&beachModel{})
	if res.Error != nil {
		return fmt.Errorf("delete beach: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBeachNotFound
	}
	return nil
}

// CheckReadiness pings the underlying database.
func (r *BeachRepository) CheckReadiness(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database connection.
func (r *BeachRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
