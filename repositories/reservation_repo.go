package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "stayhub/errors"
	"stayhub/models"
)

// ReservationRepository is the gorm-backed ReservationStore
type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// FindOverlapping returns the room ids blocked during [from, to).
// One set query over the line/header join; both interval comparisons
// are strict so a checkout on day D releases the room for day D.
func (r *ReservationRepository) FindOverlapping(ctx context.Context, roomIDs []uint, from, to time.Time, blocking []models.ReservationState) (map[uint]bool, error) {
	if len(roomIDs) == 0 {
		return map[uint]bool{}, nil
	}
	var blockedIDs []uint
	err := DBFromContext(ctx, r.db).
		Table("room_lines").
		Distinct("room_lines.room_id").
		Joins("JOIN reservations ON reservations.id = room_lines.reservation_id").
		Where("room_lines.room_id IN ?", roomIDs).
		Where("reservations.status IN ?", blocking).
		Where("reservations.check_in_date < ? AND reservations.check_out_date > ?", to, from).
		Pluck("room_lines.room_id", &blockedIDs).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	blocked := make(map[uint]bool, len(blockedIDs))
	for _, id := range blockedIDs {
		blocked[id] = true
	}
	return blocked, nil
}

// Save creates the reservation with its lines, or updates the header.
// Lines are immutable snapshots and are never rewritten on update.
func (r *ReservationRepository) Save(ctx context.Context, reservation *models.Reservation) error {
	db := DBFromContext(ctx, r.db)
	if reservation.ID == 0 {
		return TranslateError(db.Create(reservation).Error)
	}
	return TranslateError(db.Omit("Lines").Save(reservation).Error)
}

func (r *ReservationRepository) Load(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := DBFromContext(ctx, r.db).Preload("Lines").First(&reservation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeReservationNotFound,
				"reservation not found", apperrors.ErrReservationNotFound)
		}
		return nil, TranslateError(err)
	}
	return &reservation, nil
}

// LoadForUpdate row-locks the reservation header so concurrent
// transitions on the same entity serialize instead of interleaving
func (r *ReservationRepository) LoadForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := DBFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&reservation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeReservationNotFound,
				"reservation not found", apperrors.ErrReservationNotFound)
		}
		return nil, TranslateError(err)
	}
	if err := DBFromContext(ctx, r.db).Where("reservation_id = ?", id).Find(&reservation.Lines).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &reservation, nil
}
