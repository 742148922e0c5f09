package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zaid9866/employee-management-system/models"
)

// OrgHandler serves the department and job-role lookup tables. Deletion is
// not exposed; rows only accrete.
type OrgHandler struct {
	db    *gorm.DB
	store sessions.Store
}

func NewOrgHandler(db *gorm.DB, store sessions.Store) *OrgHandler {
	return &OrgHandler{db: db, store: store}
}

// GET /add_department
func (h *OrgHandler) DepartmentsPage(c echo.Context) error {
	var departments []models.Department
	if err := h.db.Order("name ASC").Find(&departments).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load departments")
	}
	return c.Render(http.StatusOK, "add_department", echo.Map{
		"Flashes":     popFlashes(c, h.store),
		"Departments": departments,
	})
}

// POST /add_department
func (h *OrgHandler) CreateDepartment(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		setFlash(c, h.store, "warning", "Department name is required.")
		return c.Redirect(http.StatusFound, "/add_department")
	}
	if err := h.db.Create(&models.Department{Name: name}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			setFlash(c, h.store, "warning", "Department already exists.")
			return c.Redirect(http.StatusFound, "/add_department")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save department")
	}
	setFlash(c, h.store, "success", name+" department has been added.")
	return c.Redirect(http.StatusFound, "/add_department")
}

// GET /add_job_role
func (h *OrgHandler) JobRolesPage(c echo.Context) error {
	var jobRoles []models.JobRole
	if err := h.db.Order("name ASC").Find(&jobRoles).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load job roles")
	}
	return c.Render(http.StatusOK, "add_job_role", echo.Map{
		"Flashes":  popFlashes(c, h.store),
		"JobRoles": jobRoles,
	})
}

// POST /add_job_role
func (h *OrgHandler) CreateJobRole(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		setFlash(c, h.store, "warning", "Job role name is required.")
		return c.Redirect(http.StatusFound, "/add_job_role")
	}
	if err := h.db.Create(&models.JobRole{Name: name}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			setFlash(c, h.store, "warning", "Job role already exists.")
			return c.Redirect(http.StatusFound, "/add_job_role")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save job role")
	}
	setFlash(c, h.store, "success", name+" role has been added.")
	return c.Redirect(http.StatusFound, "/add_job_role")
}
