package model

import "time"

// Componente is a stockable item. Name is unique and immutable after creation.
type Componente struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"        json:"id"`
	Name          string    `gorm:"size:255;uniqueIndex;not null"    json:"name"`
	StockQuantity int       `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// TableName keeps the table name of the existing schema.
func (Componente) TableName() string { return "components" }
