package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func signToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"employee_id": "EMP001",
		"name":        "Alice",
		"department":  "Engineering",
		"role":        middleware.RoleEmployee,
		"exp":         time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	assert.NoError(t, err)
	return signed
}

func newProtectedRouter(captured *gin.H) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(), func(c *gin.Context) {
		if captured != nil {
			*captured = gin.H{
				"employee_id": c.GetString("employee_id"),
				"name":        c.GetString("name"),
				"department":  c.GetString("department"),
				"role":        c.GetString("role"),
			}
		}
		c.Status(http.StatusOK)
	})
	return r
}

func decodeError(t *testing.T, body []byte) *apiError {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	assert.False(t, env.Ok)
	assert.NotNil(t, env.Error)
	return env.Error
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid token passes identity into the context", func(t *testing.T) {
		captured := gin.H{}
		r := newProtectedRouter(&captured)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, time.Hour))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "EMP001", captured["employee_id"])
		assert.Equal(t, "Alice", captured["name"])
		assert.Equal(t, "Engineering", captured["department"])
		assert.Equal(t, middleware.RoleEmployee, captured["role"])
	})

	t.Run("negative missing token", func(t *testing.T) {
		r := newProtectedRouter(nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		apiErr := decodeError(t, w.Body.Bytes())
		assert.Equal(t, "Token not found", apiErr.Message)
	})

	t.Run("negative expired token", func(t *testing.T) {
		r := newProtectedRouter(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, -time.Hour))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		apiErr := decodeError(t, w.Body.Bytes())
		assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
		assert.Equal(t, "Token has expired", apiErr.Message)
	})

	t.Run("negative malformed token", func(t *testing.T) {
		r := newProtectedRouter(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		apiErr := decodeError(t, w.Body.Bytes())
		assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
		assert.Equal(t, "Invalid token", apiErr.Message)
	})

	t.Run("negative wrong signing key", func(t *testing.T) {
		r := newProtectedRouter(nil)

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"employee_id": "EMP001",
			"exp":         time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("some-other-secret"))
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		apiErr := decodeError(t, w.Body.Bytes())
		assert.Equal(t, "Invalid token", apiErr.Message)
	})
}

func TestRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(sessionRole string, allowed ...string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if sessionRole != "" {
				c.Set("role", sessionRole)
			}
		})
		r.GET("/admin", middleware.RoleMiddleware(allowed...), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("allowed role passes", func(t *testing.T) {
		r := newRouter(middleware.RoleDepartmentHead, middleware.RoleDepartmentHead)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative role outside the allow list", func(t *testing.T) {
		r := newRouter(middleware.RoleEmployee, middleware.RoleDepartmentHead)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("negative missing role", func(t *testing.T) {
		r := newRouter("", middleware.RoleDepartmentHead)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
