package model

import "time"

// Worker represents a tailor record in database
type Worker struct {
	ID              int64            `gorm:"column:id;primaryKey;autoIncrement"`
	WorkerID        string           `gorm:"column:worker_id;type:varchar(32);not null;uniqueIndex"`
	Name            string           `gorm:"column:name;type:varchar(100);not null;index"`
	Email           string           `gorm:"column:email;type:varchar(255)"`
	ContactNumber   string           `gorm:"column:contact_number;type:varchar(20);not null"`
	WorkType        string           `gorm:"column:work_type;type:varchar(64);not null"`
	Specialization  string           `gorm:"column:specialization;type:varchar(128)"`
	Experience      int              `gorm:"column:experience;default:0"`
	JoinDate        string           `gorm:"column:join_date;type:varchar(10)"` // YYYY-MM-DD
	Status          string           `gorm:"column:status;type:varchar(16);not null;default:active"`
	AssignedOrders  int              `gorm:"column:assigned_orders;default:0"`
	CompletedOrders int              `gorm:"column:completed_orders;default:0"`
	Ratings         float64          `gorm:"column:ratings;default:0"`
	Performance     int              `gorm:"column:performance;default:0"`
	GarmentRates    JSONGarmentRates `gorm:"column:garment_rates;type:json"`
	Avatar          string           `gorm:"column:avatar;type:text"`
	CreatedAt       time.Time        `gorm:"column:created_at;not null"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;not null"`
}

func (Worker) TableName() string {
	return "workers"
}
