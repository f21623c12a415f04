package models

// Catalog entries consumed by checkout to snapshot title/slug/price at
// purchase time. The admin CRUD that maintains them lives outside this core.

type Service struct {
	BaseModel
	Title    string  `gorm:"not null" json:"title"`
	Slug     string  `gorm:"uniqueIndex" json:"slug"`
	Price    float64 `gorm:"not null" json:"price"`
	Currency string  `gorm:"default:'NPR'" json:"currency"`
	IsActive bool    `gorm:"default:true" json:"is_active"`
}

type Bundle struct {
	BaseModel
	Title    string  `gorm:"not null" json:"title"`
	Slug     string  `gorm:"uniqueIndex" json:"slug"`
	Price    float64 `gorm:"not null" json:"price"`
	Currency string  `gorm:"default:'NPR'" json:"currency"`
	IsActive bool    `gorm:"default:true" json:"is_active"`
}

type Class struct {
	BaseModel
	Title    string  `gorm:"not null" json:"title"`
	Slug     string  `gorm:"uniqueIndex" json:"slug"`
	Price    float64 `gorm:"not null" json:"price"`
	Currency string  `gorm:"default:'NPR'" json:"currency"`
	IsActive bool    `gorm:"default:true" json:"is_active"`
}

// HostingPlan backs hosting checkouts; billed monthly or yearly.
type HostingPlan struct {
	BaseModel
	Title        string  `gorm:"not null" json:"title"`
	Slug         string  `gorm:"uniqueIndex" json:"slug"`
	MonthlyPrice float64 `gorm:"not null" json:"monthly_price"`
	YearlyPrice  float64 `gorm:"not null" json:"yearly_price"`
	Currency     string  `gorm:"default:'NPR'" json:"currency"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
}
