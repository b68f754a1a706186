package routes

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "attendance-routes-test-secret"

func signTestToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"admin_id": uuid.New().String(),
		"email":    "test@example.com",
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestAttendanceMutationsRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	app := fiber.New()
	AttendanceRoutes(app)

	staffToken := signTestToken(t, "staff")
	adminToken := signTestToken(t, "admin")

	requests := []struct {
		method string
		path   string
	}{
		{"POST", "/api/attendance"},
		{"POST", "/api/attendance/bulk"},
		{"PUT", "/api/attendance/" + uuid.New().String()},
	}

	for _, r := range requests {
		t.Run(r.method+" "+r.path+" without token", func(t *testing.T) {
			req := httptest.NewRequest(r.method, r.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})

		t.Run(r.method+" "+r.path+" with non-admin token", func(t *testing.T) {
			req := httptest.NewRequest(r.method, r.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+staffToken)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		})

		// An admin gets past the role gate; the empty body then fails
		// request validation, proving rejection above came from the gate.
		t.Run(r.method+" "+r.path+" with admin token", func(t *testing.T) {
			req := httptest.NewRequest(r.method, r.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+adminToken)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}
