package models

import "time"

// One status row per employee per day. The composite unique index is the
// authoritative guard for the one-batch-per-date rule: a second batch for the
// same date violates it on every row and the whole insert rolls back.
//
// EmployeeID carries no foreign key on purpose: deleting an employee keeps
// the historical rows, and the history view resolves the name to "Unknown".
type Attendance struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	EmployeeID uint   `json:"employee_id" gorm:"not null;uniqueIndex:idx_attendance_day"`
	Date       string `json:"date" gorm:"size:10;not null;index;uniqueIndex:idx_attendance_day"` // YYYY-MM-DD
	Status     string `json:"status" gorm:"size:10"`                                             // present/absent/leave, free-form

	CreatedAt time.Time `json:"created_at"`
}
