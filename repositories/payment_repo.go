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

// PaymentRepository is the gorm-backed PaymentStore
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Load(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := DBFromContext(ctx, r.db).First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodePaymentNotFound,
				"payment not found", apperrors.ErrPaymentNotFound)
		}
		return nil, TranslateError(err)
	}
	return &payment, nil
}

func (r *PaymentRepository) LoadForUpdate(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := DBFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodePaymentNotFound,
				"payment not found", apperrors.ErrPaymentNotFound)
		}
		return nil, TranslateError(err)
	}
	return &payment, nil
}

// Save persists the payment. AmountTotal is immutable once a payment
// reached APPROVED; a divergent write is rejected here as a last line
// of defense.
func (r *PaymentRepository) Save(ctx context.Context, p *models.Payment) error {
	db := DBFromContext(ctx, r.db)
	if p.ID == 0 {
		return TranslateError(db.Create(p).Error)
	}
	var stored models.Payment
	if err := db.Select("id", "status", "amount_total").First(&stored, p.ID).Error; err != nil {
		return TranslateError(err)
	}
	if err := models.EnsureAmountImmutable(&stored, p); err != nil {
		return err
	}
	return TranslateError(db.Save(p).Error)
}

// FindStale returns payments sitting in state since before cutoff,
// for the expiry sweep
func (r *PaymentRepository) FindStale(ctx context.Context, state models.PaymentState, cutoff time.Time) ([]models.Payment, error) {
	var payments []models.Payment
	err := DBFromContext(ctx, r.db).
		Where("status = ? AND updated_at < ?", state, cutoff).
		Find(&payments).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return payments, nil
}

// CardRepository reads stored card records
type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Load(ctx context.Context, id uint) (*models.Card, error) {
	var card models.Card
	err := DBFromContext(ctx, r.db).First(&card, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound,
				"card not found", apperrors.ErrCardNotFound)
		}
		return nil, TranslateError(err)
	}
	return &card, nil
}
