package models

import "time"

type Employee struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Phone        string    `json:"phone" gorm:"size:15;uniqueIndex;not null"`
	DepartmentID uint      `json:"department_id" gorm:"index;not null"`
	JobRoleID    uint      `json:"job_role_id" gorm:"index;not null"`
	Salary       float64   `json:"salary" gorm:"not null"`
	DateJoined   time.Time `json:"date_joined"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	Photo        string    `json:"photo" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
