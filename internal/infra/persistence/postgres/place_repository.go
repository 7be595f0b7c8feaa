// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"
	"time"

	"placebook/internal/domain/entity"
	domainerrors "placebook/internal/domain/errors"
	"placebook/internal/domain/repository"
	"placebook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sortColumns whitelists ORDER BY targets; anything else falls back to
// insertion order.
var sortColumns = map[entity.SortField]string{
	entity.SortByName:     "name",
	entity.SortByLocation: "location",
	entity.SortByType:     "type",
	entity.SortByRating:   "rating",
}

// placeRepository implements the repository.PlaceRepository interface.
type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository is the constructor for placeRepository.
func NewPlaceRepository(db *gorm.DB) repository.PlaceRepository {
	return &placeRepository{db: db}
}

// CreatePlace persists a new place record.
func (repo *placeRepository) CreatePlace(ctx context.Context, place *entity.Place) error {
	placeM := fromPlaceDomain(place)

	if err := repo.db.WithContext(ctx).Create(placeM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required place information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create place")
	}

	// Update the entity with generated values
	place.ID = placeM.ID
	place.CreatedAt = placeM.CreatedAt
	place.UpdatedAt = placeM.UpdatedAt

	return nil
}

// FindPlaceByID retrieves a place by its unique ID.
func (repo *placeRepository) FindPlaceByID(ctx context.Context, id uuid.UUID) (*entity.Place, error) {
	var placeM model.PlaceModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&placeM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPlaceNotFound
		}

		return nil, errors.Wrap(err, "failed to find place by ID")
	}

	return toPlaceDomain(&placeM), nil
}

// ListPlaces retrieves places ordered and filtered per opts. The seq column
// is always the final sort key, which keeps equal-key records in insertion
// order regardless of the requested field.
func (repo *placeRepository) ListPlaces(ctx context.Context, opts repository.ListOptions) ([]*entity.Place, error) {
	query := repo.db.WithContext(ctx).Model(&model.PlaceModel{})

	if opts.Filter != "" {
		pattern := "%" + escapeLikePattern(opts.Filter) + "%"
		query = query.Where("name ILIKE ? OR location ILIKE ?", pattern, pattern)
	}

	if column, ok := sortColumns[opts.SortBy]; ok {
		direction := "ASC"
		if !opts.Ascending {
			direction = "DESC"
		}
		query = query.Order(column + " " + direction)
	}
	query = query.Order("seq ASC")

	var placeModels []*model.PlaceModel
	if err := query.Find(&placeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list places")
	}

	places := make([]*entity.Place, 0, len(placeModels))
	for _, placeM := range placeModels {
		places = append(places, toPlaceDomain(placeM))
	}

	return places, nil
}

// UpdatePlace overwrites all mutable fields of an existing record in one
// statement; readers see either the old or the new row, never a mix.
func (repo *placeRepository) UpdatePlace(ctx context.Context, place *entity.Place) error {
	updatedAt := time.Now()
	result := repo.db.WithContext(ctx).
		Model(&model.PlaceModel{}).
		Where("id = ?", place.ID).
		Updates(map[string]any{
			"name":       place.Name,
			"location":   place.Location,
			"type":       place.Type,
			"image_data": place.ImageData,
			"rating":     place.Rating,
			"updated_at": updatedAt,
		})

	if result.Error != nil {
		if isNotNullConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required place information")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update place")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPlaceNotFound
	}

	place.UpdatedAt = updatedAt

	return nil
}

// DeletePlace removes a place by its ID.
func (repo *placeRepository) DeletePlace(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PlaceModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete place")
	}

	// If no rows were affected, it means the place was not found.
	if result.RowsAffected == 0 {
		return repository.ErrPlaceNotFound
	}

	return nil
}

// CountPlaces returns the total number of catalog records.
func (repo *placeRepository) CountPlaces(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.PlaceModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count places")
	}

	return count, nil
}

// escapeLikePattern neutralizes LIKE metacharacters in user input so the
// filter stays a plain substring match.
func escapeLikePattern(text string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	return replacer.Replace(text)
}

// --- Mapper Functions ---

// toPlaceDomain converts a GORM PlaceModel to a domain Place entity.
func toPlaceDomain(data *model.PlaceModel) *entity.Place {
	if data == nil {
		return nil
	}

	return &entity.Place{
		ID:        data.ID,
		Name:      data.Name,
		Location:  data.Location,
		Type:      data.Type,
		ImageData: data.ImageData,
		Rating:    data.Rating,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromPlaceDomain converts a domain Place entity to a GORM PlaceModel.
func fromPlaceDomain(data *entity.Place) *model.PlaceModel {
	if data == nil {
		return nil
	}

	return &model.PlaceModel{
		ID:        data.ID,
		Name:      data.Name,
		Location:  data.Location,
		Type:      data.Type,
		ImageData: data.ImageData,
		Rating:    data.Rating,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
