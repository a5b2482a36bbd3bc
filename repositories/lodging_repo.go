package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "stayhub/errors"
	"stayhub/models"
)

// LodgingRepository is the gorm-backed LodgingCatalog
type LodgingRepository struct {
	db *gorm.DB
}

func NewLodgingRepository(db *gorm.DB) *LodgingRepository {
	return &LodgingRepository{db: db}
}

func (r *LodgingRepository) Exists(ctx context.Context, lodgingID uint) (bool, error) {
	var count int64
	err := DBFromContext(ctx, r.db).Model(&models.Lodging{}).Where("id = ?", lodgingID).Count(&count).Error
	if err != nil {
		return false, TranslateError(err)
	}
	return count > 0, nil
}

func (r *LodgingRepository) Load(ctx context.Context, lodgingID uint) (*models.Lodging, error) {
	var lodging models.Lodging
	err := DBFromContext(ctx, r.db).First(&lodging, lodgingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeLodgingNotFound,
				"lodging not found", apperrors.ErrLodgingNotFound)
		}
		return nil, TranslateError(err)
	}
	return &lodging, nil
}
