package domain

import (
	"time"
)

// CREATE TABLE public.laptops (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     laptop_name     TEXT NOT NULL UNIQUE,
//     required_gpu    BOOLEAN,
//     reserved_by     TEXT,
//     reserved_at     TIMESTAMPTZ,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Laptop struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"column:laptop_name;type:text;uniqueIndex;not null" json:"laptop_name"`
	RequiredGPU *bool      `gorm:"column:required_gpu" json:"required_gpu,omitempty"`
	ReservedBy  *string    `gorm:"column:reserved_by;type:text" json:"reserved_by,omitempty"`
	ReservedAt  *time.Time `gorm:"column:reserved_at" json:"reserved_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (Laptop) TableName() string {
	return "laptops"
}

// Reserved reports whether the laptop has an owner. Only a nil ReservedBy
// means unowned, matching the reserved_by IS NULL check in SQL.
func (l Laptop) Reserved() bool {
	return l.ReservedBy != nil
}

// Reservation is the read-only view returned by a reservation check.
type Reservation struct {
	LaptopName string     `json:"laptop_name"`
	ReservedBy string     `json:"reserved_by,omitempty"`
	ReservedAt *time.Time `json:"reserved_at,omitempty"`
	Message    string     `json:"message"`
}
