package routes

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zaid9866/employee-management-system/handlers"
	"github.com/zaid9866/employee-management-system/storage"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, db *gorm.DB, photos *storage.Photos, store sessions.Store) {
	emp := handlers.NewEmployeeHandler(db, photos, store)
	att := handlers.NewAttendanceHandler(db, store)
	org := handlers.NewOrgHandler(db, store)

	e.GET("/health", handlers.Health)

	// Employees
	e.GET("/", emp.Home)
	e.GET("/add_employee", emp.AddForm)
	e.POST("/add_employee", emp.Create)
	e.GET("/employee_details/:id", emp.Details)
	e.GET("/update_employee_details/:id", emp.EditForm)
	e.POST("/update_employee_details/:id", emp.Update)
	e.GET("/manage_employees", emp.Manage)
	e.GET("/manage_employees/export", emp.Export)
	e.GET("/delete_employee/:id", emp.Delete)
	e.POST("/delete_employee/:id", emp.Delete)

	// Attendance
	e.GET("/mark_attendance", att.MarkForm)
	e.POST("/mark_attendance", att.Mark)
	e.GET("/attendance_history", att.History)

	// Organization lookups
	e.GET("/add_department", org.DepartmentsPage)
	e.POST("/add_department", org.CreateDepartment)
	e.GET("/add_job_role", org.JobRolesPage)
	e.POST("/add_job_role", org.CreateJobRole)

	// Uploaded photos
	e.Static("/static/images", photos.Dir)
}
