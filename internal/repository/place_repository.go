package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/travelplanner/service-trip/internal/domain/place"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceModel is the GORM model for the places table. ID preserves load order.
type PlaceModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"uniqueIndex;not null;size:120"`
	Lat       float64   `gorm:"not null"`
	Lon       float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PlaceModel) TableName() string {
	return "places"
}

// GormPlaceRepository is the GORM-based implementation of place.Repository.
type GormPlaceRepository struct {
	db *gorm.DB
}

// NewGormPlaceRepository creates a new GormPlaceRepository.
func NewGormPlaceRepository(db *gorm.DB) *GormPlaceRepository {
	return &GormPlaceRepository{db: db}
}

// SearchPrefix retrieves places whose lower-cased name starts with the lower-cased prefix, in ID order.
func (r *GormPlaceRepository) SearchPrefix(ctx context.Context, prefix string) ([]place.Record, error) {
	var models []PlaceModel
	pattern := escapeLike(strings.ToLower(prefix)) + "%"
	if err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}

	records := make([]place.Record, len(models))
	for i, m := range models {
		records[i] = toPlaceRecord(m)
	}
	return records, nil
}

// FindByName retrieves a place by its exact name.
func (r *GormPlaceRepository) FindByName(ctx context.Context, name string) (*place.Record, error) {
	var model PlaceModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, place.NewPlaceNotFound(name)
		}
		return nil, fmt.Errorf("failed to find place by name: %w", err)
	}
	rec := toPlaceRecord(model)
	return &rec, nil
}

// Upsert inserts the place or updates the coordinates of the existing row with the same name.
func (r *GormPlaceRepository) Upsert(ctx context.Context, rec place.Record) error {
	model := toPlaceModel(rec)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"lat", "lon", "updated_at"}),
	}).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to upsert place: %w", err)
	}
	return nil
}

// Seed loads records into an empty table, keeping their order. A non-empty table is left alone.
func (r *GormPlaceRepository) Seed(ctx context.Context, records []place.Record) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&PlaceModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}
	if count > 0 || len(records) == 0 {
		return 0, nil
	}

	models := make([]PlaceModel, len(records))
	for i, rec := range records {
		models[i] = toPlaceModel(rec)
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(models, 100).Error; err != nil {
		return 0, fmt.Errorf("failed to seed places: %w", err)
	}
	return len(models), nil
}

// --- Mapping helpers ---

func toPlaceModel(rec place.Record) PlaceModel {
	now := time.Now().UTC()
	return PlaceModel{
		Name:      rec.Name,
		Lat:       rec.Lat,
		Lon:       rec.Lon,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func toPlaceRecord(m PlaceModel) place.Record {
	return place.Record{Name: m.Name, Lat: m.Lat, Lon: m.Lon}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
