package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "stayhub/errors"
	"stayhub/models"
)

// RoomRepository is the gorm-backed RoomCatalog
type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetPricingProfile(ctx context.Context, roomID uint) (models.PricingProfile, error) {
	var room models.Room
	err := DBFromContext(ctx, r.db).First(&room, roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PricingProfile{}, apperrors.NewAppError(apperrors.ErrCodeRoomNotFound,
				"room not found", apperrors.ErrRoomNotFound)
		}
		return models.PricingProfile{}, TranslateError(err)
	}
	return room.PricingProfile(), nil
}

// GetRoomsForUpdate row-locks the catalog rows in id order. Competing
// bookings for the same room queue on these locks, which is what makes
// the availability re-check inside the transaction decisive.
func (r *RoomRepository) GetRoomsForUpdate(ctx context.Context, roomIDs []uint) ([]models.Room, error) {
	var rooms []models.Room
	err := DBFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id IN ?", roomIDs).
		Order("room_id").
		Find(&rooms).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return rooms, nil
}

func (r *RoomRepository) Exists(ctx context.Context, roomID uint) (bool, error) {
	var count int64
	err := DBFromContext(ctx, r.db).Model(&models.Room{}).Where("room_id = ?", roomID).Count(&count).Error
	if err != nil {
		return false, TranslateError(err)
	}
	return count > 0, nil
}
