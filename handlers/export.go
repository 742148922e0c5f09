package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /manage_employees/export
//
// Spreadsheet download of the managed list, honoring the same
// department/job_role filters as the page itself.
func (h *EmployeeHandler) Export(c echo.Context) error {
	deptID := parseID(c.QueryParam("department"))
	roleID := parseID(c.QueryParam("job_role"))

	employees, err := h.filteredEmployees(deptID, roleID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load employees")
	}
	deptNames, roleNames, err := h.lookupNames()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load lookups")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	header := []interface{}{"ID", "Name", "Email", "Phone", "Department", "Job Role", "Salary", "Date Joined", "Active"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build export")
	}
	for i, emp := range employees {
		row := []interface{}{
			emp.ID, emp.Name, emp.Email, emp.Phone,
			deptNames[emp.DepartmentID], roleNames[emp.JobRoleID],
			emp.Salary, emp.DateJoined.Format("2006-01-02"), emp.IsActive,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to build export")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build export")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employees.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
