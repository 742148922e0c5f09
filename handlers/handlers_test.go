package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zaid9866/employee-management-system/database"
	"github.com/zaid9866/employee-management-system/models"
	"github.com/zaid9866/employee-management-system/routes"
	"github.com/zaid9866/employee-management-system/storage"
	"github.com/zaid9866/employee-management-system/views"
)

// newTestApp wires the full route table against an isolated in-memory store.
func newTestApp(t *testing.T) (*echo.Echo, *gorm.DB, *storage.Photos) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	photos, err := storage.NewPhotos(t.TempDir())
	require.NoError(t, err)

	renderer, err := views.New()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	routes.Register(e, db, photos, sessions.NewCookieStore([]byte("test-secret")))
	return e, db, photos
}

func getPage(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// getPageWith replays the cookies from a prior response, so the flash set
// by a redirect can be observed on the follow-up page.
func getPageWith(e *echo.Echo, path string, prior *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range prior.Header().Values("Set-Cookie") {
		if nv, _, _ := strings.Cut(c, ";"); nv != "" {
			req.Header.Add("Cookie", nv)
		}
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postMultipart(e *echo.Echo, path string, fields map[string]string, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if fileName != "" {
		fw, _ := w.CreateFormFile("photo", fileName)
		_, _ = fw.Write(fileContent)
	}
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func seedOrg(t *testing.T, db *gorm.DB) (models.Department, models.JobRole) {
	t.Helper()
	dept := models.Department{Name: "Engineering"}
	require.NoError(t, db.Create(&dept).Error)
	role := models.JobRole{Name: "Engineer"}
	require.NoError(t, db.Create(&role).Error)
	return dept, role
}

func employeeForm(deptID, roleID uint, name, email, phone string) url.Values {
	return url.Values{
		"name":        {name},
		"email":       {email},
		"phone":       {phone},
		"Department":  {fmt.Sprint(deptID)},
		"JobRole":     {fmt.Sprint(roleID)},
		"Salary":      {"50000"},
		"is_active":   {"1"},
		"Joiningdate": {"2023-05-10"},
	}
}

func mustEmployee(t *testing.T, db *gorm.DB, email string) models.Employee {
	t.Helper()
	var emp models.Employee
	require.NoError(t, db.Where("email = ?", email).First(&emp).Error)
	return emp
}
