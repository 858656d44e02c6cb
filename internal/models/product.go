package models

import "time"

type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:500"`
	Price       string `gorm:"size:20;not null"` // "45₺" formatında saklanır
	Category    string `gorm:"size:30;not null;index"`
	ImageURL    string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
