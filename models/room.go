package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Adjustment kinds
const (
	AdjustmentSeason  = "SEASON"
	AdjustmentWeekend = "WEEKEND"
	AdjustmentWeekday = "WEEKDAY"
	AdjustmentEvent   = "EVENT"
)

// AdjustmentRule modifies the base nightly price by a percentage.
// SEASON and EVENT rules carry an inclusive [From, To] date window;
// WEEKEND and WEEKDAY rules apply by day of week and leave From/To nil.
type AdjustmentRule struct {
	Kind   string          `json:"kind"`
	From   *time.Time      `json:"from,omitempty"`
	To     *time.Time      `json:"to,omitempty"`
	Pct    decimal.Decimal `json:"pct"`
	Active bool            `json:"active"`
}

// AdjustmentList is the ordered rule list stored as a jsonb column.
// List order is precedence order and the list is never reordered:
// rules are appended, deactivated, or replaced by index.
type AdjustmentList []AdjustmentRule

func (l AdjustmentList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *AdjustmentList) Scan(value interface{}) error {
	if value == nil {
		*l = AdjustmentList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into AdjustmentList", value)
	}
}

// Append returns a new list with rule added at the end
func (l AdjustmentList) Append(rule AdjustmentRule) AdjustmentList {
	out := make(AdjustmentList, len(l), len(l)+1)
	copy(out, l)
	return append(out, rule)
}

// Replace returns a new list with the rule at index swapped out.
// Index addressing is stable because the list is never reordered.
func (l AdjustmentList) Replace(index int, rule AdjustmentRule) (AdjustmentList, error) {
	if index < 0 || index >= len(l) {
		return nil, fmt.Errorf("adjustment index %d out of range", index)
	}
	out := make(AdjustmentList, len(l))
	copy(out, l)
	out[index] = rule
	return out, nil
}

// Deactivate returns a new list with the rule at index flagged inactive.
// Rules are never physically removed so historical payloads stay intact.
func (l AdjustmentList) Deactivate(index int) (AdjustmentList, error) {
	if index < 0 || index >= len(l) {
		return nil, fmt.Errorf("adjustment index %d out of range", index)
	}
	out := make(AdjustmentList, len(l))
	copy(out, l)
	out[index].Active = false
	return out, nil
}

type Room struct {
	RoomID      uint            `json:"id" gorm:"primaryKey;column:room_id"`
	LodgingID   uint            `json:"lodgingId"`
	RoomName    string          `json:"roomName"`
	NumBed      int             `json:"numBed"`
	People      int             `json:"people"`
	BasePrice   decimal.Decimal `json:"basePrice" gorm:"type:numeric(12,2)"`
	Adjustments AdjustmentList  `json:"adjustments" gorm:"type:jsonb"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Parent      Lodging         `json:"-" gorm:"foreignKey:LodgingID"`
}

// PricingProfile is the read-only pricing view of a room handed to
// the pricing engine.
type PricingProfile struct {
	BasePrice   decimal.Decimal `json:"basePrice"`
	Adjustments AdjustmentList  `json:"adjustments"`
}

func (r *Room) PricingProfile() PricingProfile {
	return PricingProfile{
		BasePrice:   r.BasePrice,
		Adjustments: r.Adjustments,
	}
}
