package models

import "time"

type Lodging struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"ownerId"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	District  string    `json:"district"`
	Province  string    `json:"province"`
	Status    int       `json:"status" gorm:"default:1"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
