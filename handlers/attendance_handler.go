package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zaid9866/employee-management-system/models"
)

// errAlreadyMarked aborts a batch when the target date already has records.
var errAlreadyMarked = errors.New("attendance already marked")

type AttendanceHandler struct {
	db    *gorm.DB
	store sessions.Store
}

func NewAttendanceHandler(db *gorm.DB, store sessions.Store) *AttendanceHandler {
	return &AttendanceHandler{db: db, store: store}
}

// GET /mark_attendance
func (h *AttendanceHandler) MarkForm(c echo.Context) error {
	var employees []models.Employee
	if err := h.db.Order("id ASC").Find(&employees).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load employees")
	}
	return c.Render(http.StatusOK, "mark_attendance", echo.Map{
		"Flashes":   popFlashes(c, h.store),
		"Employees": employees,
		"Today":     time.Now().Format("2006-01-02"),
	})
}

// POST /mark_attendance
//
// Writes one row per known employee in a single transaction. The existence
// check runs inside the transaction, and the unique index on
// (employee_id, date) backstops it: a concurrent batch for the same date
// rolls back wholesale and is reported as already marked. Once a date has
// records it stays closed; there is no amendment path.
func (h *AttendanceHandler) Mark(c echo.Context) error {
	date, err := time.Parse("2006-01-02", c.FormValue("date"))
	if err != nil {
		return c.String(http.StatusBadRequest, "Error: Invalid Date Format")
	}
	day := date.Format("2006-01-02")

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Attendance{}).Where("date = ?", day).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return errAlreadyMarked
		}

		var employees []models.Employee
		if err := tx.Order("id ASC").Find(&employees).Error; err != nil {
			return err
		}
		if len(employees) == 0 {
			return nil
		}

		rows := make([]models.Attendance, 0, len(employees))
		for _, emp := range employees {
			rows = append(rows, models.Attendance{
				EmployeeID: emp.ID,
				Date:       day,
				Status:     c.FormValue(fmt.Sprintf("status_%d", emp.ID)),
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		if errors.Is(err, errAlreadyMarked) || errors.Is(err, gorm.ErrDuplicatedKey) {
			setFlash(c, h.store, "warning", "Attendance already marked for this date.")
			return c.Redirect(http.StatusFound, "/mark_attendance")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to mark attendance")
	}

	setFlash(c, h.store, "success", "Attendance marked successfully!")
	return c.Redirect(http.StatusFound, "/attendance_history")
}

// attendanceEntry is a history row annotated with the employee's name.
type attendanceEntry struct {
	Date         string
	Status       string
	EmployeeID   uint
	EmployeeName string
}

// GET /attendance_history
//
// Newest date first. Rows referencing a deleted employee still appear,
// with an Unknown display name.
func (h *AttendanceHandler) History(c echo.Context) error {
	var records []models.Attendance
	if err := h.db.Order("date DESC").Find(&records).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load attendance")
	}

	var employees []models.Employee
	if err := h.db.Find(&employees).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load employees")
	}
	names := make(map[uint]string, len(employees))
	for _, emp := range employees {
		names[emp.ID] = emp.Name
	}

	entries := make([]attendanceEntry, 0, len(records))
	for _, rec := range records {
		name, ok := names[rec.EmployeeID]
		if !ok {
			name = "Unknown"
		}
		entries = append(entries, attendanceEntry{
			Date:         rec.Date,
			Status:       rec.Status,
			EmployeeID:   rec.EmployeeID,
			EmployeeName: name,
		})
	}

	return c.Render(http.StatusOK, "attendance_history", echo.Map{
		"Flashes": popFlashes(c, h.store),
		"Records": entries,
	})
}
