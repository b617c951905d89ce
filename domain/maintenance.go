package domain

import "time"

const MaintenanceNoData = "No data available"

type MaintenanceRecord struct {
	LaptopName  string    `gorm:"column:laptop_name;primaryKey" json:"laptop_name"`
	Status      string    `gorm:"column:status;type:text;not null" json:"status"`
	LastUpdated time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (MaintenanceRecord) TableName() string {
	return "maintenance_records"
}
