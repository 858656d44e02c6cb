package models

import "time"

// Table: QR kodlu fiziksel masa. PublicID menü linkinde kullanılır,
// sıralı ID'lerin tahmin edilmesini engeller.
type Table struct {
	ID        uint   `gorm:"primaryKey"`
	PublicID  string `gorm:"size:36;uniqueIndex;not null"`
	Name      string `gorm:"size:30;not null"`
	Scans     int64  `gorm:"not null;default:0"`
	LastScan  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
