package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zaid9866/employee-management-system/models"
	"github.com/zaid9866/employee-management-system/storage"
)

var validate = validator.New()

type EmployeeHandler struct {
	db     *gorm.DB
	photos *storage.Photos
	store  sessions.Store
}

func NewEmployeeHandler(db *gorm.DB, photos *storage.Photos, store sessions.Store) *EmployeeHandler {
	return &EmployeeHandler{db: db, photos: photos, store: store}
}

// employeeForm is the typed boundary for the add/update forms. Numeric and
// date fields are parsed explicitly so each bad field maps to its own blunt
// 400 on the create path.
type employeeForm struct {
	Name         string `validate:"required,max=100"`
	Email        string `validate:"required,email,max=100"`
	Phone        string `validate:"required,max=15"`
	DepartmentID uint
	JobRoleID    uint
	Salary       float64
	DateJoined   time.Time
	IsActive     bool
}

// parseAddForm reads the add-employee form. The second return value is a
// user-facing error message; empty means the form is valid.
func parseAddForm(c echo.Context) (*employeeForm, string) {
	f := &employeeForm{
		Name:  strings.TrimSpace(c.FormValue("name")),
		Email: strings.TrimSpace(c.FormValue("email")),
		Phone: strings.TrimSpace(c.FormValue("phone")),
	}

	f.DepartmentID = parseID(c.FormValue("Department"))
	if f.DepartmentID == 0 {
		return nil, "Error: Invalid Department ID"
	}
	f.JobRoleID = parseID(c.FormValue("JobRole"))
	if f.JobRoleID == 0 {
		return nil, "Error: Invalid Job Role ID"
	}

	salary, err := strconv.ParseFloat(c.FormValue("Salary"), 64)
	if err != nil {
		return nil, "Error: Salary must be a valid number"
	}
	f.Salary = salary

	f.IsActive = c.FormValue("is_active") == "1"

	joined, err := time.Parse("2006-01-02", c.FormValue("Joiningdate"))
	if err != nil {
		return nil, "Error: Invalid Joining Date Format"
	}
	f.DateJoined = joined

	if err := validate.Struct(f); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return nil, "Error: Invalid " + ve[0].Field()
		}
		return nil, "Error: Invalid Employee Details"
	}
	return f, ""
}

// GET /
func (h *EmployeeHandler) Home(c echo.Context) error {
	var employees []models.Employee
	if err := h.db.Order("id ASC").Find(&employees).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load employees")
	}
	var departments []models.Department
	if err := h.db.Order("name ASC").Find(&departments).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load departments")
	}
	deptNames, roleNames, err := h.lookupNames()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load lookups")
	}
	return c.Render(http.StatusOK, "index", echo.Map{
		"Flashes":     popFlashes(c, h.store),
		"Employees":   employees,
		"Departments": departments,
		"DeptNames":   deptNames,
		"RoleNames":   roleNames,
	})
}

// GET /add_employee
func (h *EmployeeHandler) AddForm(c echo.Context) error {
	var departments []models.Department
	var jobRoles []models.JobRole
	if err := h.db.Order("name ASC").Find(&departments).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load departments")
	}
	if err := h.db.Order("name ASC").Find(&jobRoles).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load job roles")
	}
	return c.Render(http.StatusOK, "add_employee", echo.Map{
		"Flashes":     popFlashes(c, h.store),
		"Departments": departments,
		"JobRoles":    jobRoles,
	})
}

// POST /add_employee
func (h *EmployeeHandler) Create(c echo.Context) error {
	f, msg := parseAddForm(c)
	if msg != "" {
		return c.String(http.StatusBadRequest, msg)
	}

	// The referenced rows must exist; the id parsing alone does not prove it.
	if !h.rowExists(&models.Department{}, f.DepartmentID) {
		return c.String(http.StatusBadRequest, "Error: Invalid Department ID")
	}
	if !h.rowExists(&models.JobRole{}, f.JobRoleID) {
		return c.String(http.StatusBadRequest, "Error: Invalid Job Role ID")
	}

	photo := storage.DefaultAvatar
	if fh, err := c.FormFile("photo"); err == nil && fh.Filename != "" {
		name, err := h.photos.Save(fh)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to store photo")
		}
		photo = name
	}

	emp := models.Employee{
		Name:         f.Name,
		Email:        f.Email,
		Phone:        f.Phone,
		DepartmentID: f.DepartmentID,
		JobRoleID:    f.JobRoleID,
		Salary:       f.Salary,
		DateJoined:   f.DateJoined,
		IsActive:     f.IsActive,
		Photo:        photo,
	}
	if err := h.db.Create(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			setFlash(c, h.store, "danger", "An employee with that email or phone already exists.")
			return c.Redirect(http.StatusFound, "/add_employee")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save employee")
	}

	setFlash(c, h.store, "success", emp.Name+" has been added successfully.")
	return c.Redirect(http.StatusFound, "/")
}

// GET /employee_details/:id
//
// A missing record renders the page without an employee rather than failing.
func (h *EmployeeHandler) Details(c echo.Context) error {
	id, ok := pathID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "employee not found")
	}
	emp, err := h.findEmployee(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load employee")
	}
	deptNames, roleNames, err := h.lookupNames()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load lookups")
	}
	return c.Render(http.StatusOK, "employee_details", echo.Map{
		"Flashes":   popFlashes(c, h.store),
		"Employee":  emp,
		"DeptNames": deptNames,
		"RoleNames": roleNames,
	})
}

// GET /update_employee_details/:id
func (h *EmployeeHandler) EditForm(c echo.Context) error {
	id, ok := pathID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "employee not found")
	}
	emp, err := h.findEmployee(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load employee")
	}
	var departments []models.Department
	var jobRoles []models.JobRole
	if err := h.db.Order("name ASC").Find(&departments).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load departments")
	}
	if err := h.db.Order("name ASC").Find(&jobRoles).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load job roles")
	}
	return c.Render(http.StatusOK, "update_employee_details", echo.Map{
		"Flashes":     popFlashes(c, h.store),
		"Employee":    emp,
		"Departments": departments,
		"JobRoles":    jobRoles,
	})
}

// POST /update_employee_details/:id
//
// The only hard-404 path: updating an absent record fails instead of
// tolerating it. A phone held by another employee aborts the whole update
// and bounces back to the edit form with nothing persisted.
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, ok := pathID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "employee not found")
	}
	var emp models.Employee
	if err := h.db.First(&emp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "employee not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load employee")
	}
	editURL := "/update_employee_details/" + c.Param("id")

	phone := strings.TrimSpace(c.FormValue("phone"))
	var existing models.Employee
	err := h.db.Where("phone = ?", phone).First(&existing).Error
	if err == nil && existing.ID != emp.ID {
		setFlash(c, h.store, "danger", "Phone number already exists for another employee.")
		return c.Redirect(http.StatusFound, editURL)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check phone")
	}

	deptID := parseID(c.FormValue("department_id"))
	roleID := parseID(c.FormValue("job_role_id"))
	salary, salErr := strconv.ParseFloat(c.FormValue("salary"), 64)
	if deptID == 0 || roleID == 0 || salErr != nil ||
		!h.rowExists(&models.Department{}, deptID) || !h.rowExists(&models.JobRole{}, roleID) {
		setFlash(c, h.store, "danger", "Invalid form input.")
		return c.Redirect(http.StatusFound, editURL)
	}

	emp.Name = strings.TrimSpace(c.FormValue("name"))
	emp.Email = strings.TrimSpace(c.FormValue("email"))
	emp.Phone = phone
	emp.DepartmentID = deptID
	emp.JobRoleID = roleID
	emp.Salary = salary
	emp.IsActive = c.FormValue("is_active") == "1"

	if fh, err := c.FormFile("photo"); err == nil && fh.Filename != "" {
		name, err := h.photos.Save(fh)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to store photo")
		}
		emp.Photo = name
	}

	if err := h.db.Save(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			setFlash(c, h.store, "danger", "Something went wrong. Try again!")
			return c.Redirect(http.StatusFound, "/")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save employee")
	}

	setFlash(c, h.store, "success", "Employee updated successfully!")
	return c.Redirect(http.StatusFound, "/")
}

// GET|POST /delete_employee/:id
//
// Idempotent: deleting a missing id still redirects home, with a warning.
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, ok := pathID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "employee not found")
	}
	emp, err := h.findEmployee(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load employee")
	}
	if emp == nil {
		setFlash(c, h.store, "danger", "Employee not found.")
		return c.Redirect(http.StatusFound, "/")
	}
	if err := h.db.Delete(&models.Employee{}, emp.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete employee")
	}
	setFlash(c, h.store, "success", emp.Name+" has been deleted successfully.")
	return c.Redirect(http.StatusFound, "/")
}

// GET /manage_employees?department=<id>&job_role=<id>
func (h *EmployeeHandler) Manage(c echo.Context) error {
	deptID := parseID(c.QueryParam("department"))
	roleID := parseID(c.QueryParam("job_role"))

	employees, err := h.filteredEmployees(deptID, roleID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load employees")
	}
	var departments []models.Department
	var jobRoles []models.JobRole
	if err := h.db.Order("name ASC").Find(&departments).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load departments")
	}
	if err := h.db.Order("name ASC").Find(&jobRoles).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load job roles")
	}
	deptNames, roleNames, err := h.lookupNames()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load lookups")
	}
	return c.Render(http.StatusOK, "manage_employees", echo.Map{
		"Flashes":            popFlashes(c, h.store),
		"Employees":          employees,
		"Departments":        departments,
		"JobRoles":           jobRoles,
		"DeptNames":          deptNames,
		"RoleNames":          roleNames,
		"SelectedDepartment": deptID,
		"SelectedJobRole":    roleID,
	})
}

// ===== shared lookups =====

func (h *EmployeeHandler) filteredEmployees(deptID, roleID uint) ([]models.Employee, error) {
	tx := h.db.Model(&models.Employee{})
	if deptID > 0 {
		tx = tx.Where("department_id = ?", deptID)
	}
	if roleID > 0 {
		tx = tx.Where("job_role_id = ?", roleID)
	}
	var employees []models.Employee
	if err := tx.Order("id ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (h *EmployeeHandler) findEmployee(id uint) (*models.Employee, error) {
	if id == 0 {
		return nil, nil
	}
	var emp models.Employee
	if err := h.db.First(&emp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (h *EmployeeHandler) rowExists(model any, id uint) bool {
	var n int64
	if err := h.db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false
	}
	return n > 0
}

func (h *EmployeeHandler) lookupNames() (map[uint]string, map[uint]string, error) {
	var departments []models.Department
	var jobRoles []models.JobRole
	if err := h.db.Find(&departments).Error; err != nil {
		return nil, nil, err
	}
	if err := h.db.Find(&jobRoles).Error; err != nil {
		return nil, nil, err
	}
	deptNames := make(map[uint]string, len(departments))
	for _, d := range departments {
		deptNames[d.ID] = d.Name
	}
	roleNames := make(map[uint]string, len(jobRoles))
	for _, r := range jobRoles {
		roleNames[r.ID] = r.Name
	}
	return deptNames, roleNames, nil
}
