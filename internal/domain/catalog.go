package domain

import "time"

// CatalogSnapshot stores one published version of the product catalog as a
// raw JSON blob. The portal always reads the most recently published row in
// its entirety; this core never mutates a published snapshot.
type CatalogSnapshot struct {
	ID        int64     `gorm:"primaryKey" json:"id,string"`
	Data      string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (CatalogSnapshot) TableName() string {
	return "produtos_json"
}

// CatalogProduct is one entry of a parsed catalog snapshot.
type CatalogProduct struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}
