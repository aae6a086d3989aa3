package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-elms/internal/auth"
	autherrors "go-elms/internal/auth/errors"

	"github.com/gin-gonic/gin"
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

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeAuthService struct {
	registerEmployeeFn    func(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error)
	loginEmployeeFn       func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	loginDepartmentHeadFn func(ctx context.Context, req auth.LoginRequest) (auth.HeadLoginResponse, error)
}

func (f *fakeAuthService) RegisterEmployee(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	return f.registerEmployeeFn(ctx, req)
}
func (f *fakeAuthService) LoginEmployee(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	return f.loginEmployeeFn(ctx, req)
}
func (f *fakeAuthService) LoginDepartmentHead(ctx context.Context, req auth.LoginRequest) (auth.HeadLoginResponse, error) {
	return f.loginDepartmentHeadFn(ctx, req)
}

func TestAuthHandler_RegisterEmployee(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			registerEmployeeFn: func(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
				assert.Equal(t, "EMP001", req.EmployeeID)
				assert.Equal(t, "Alice", req.Name)
				return auth.RegisterResponse{Success: true, Message: "Registration successful"}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"EMP001","name":"Alice","department":"Engineering","password":"secret123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/register", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.RegisterEmployee(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got auth.RegisterResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.True(t, got.Success)
		assert.Equal(t, "Registration successful", got.Message)
	})

	t.Run("duplicate id answers conflict through the error envelope", func(t *testing.T) {
		svc := &fakeAuthService{
			registerEmployeeFn: func(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
				return auth.RegisterResponse{Success: false, Message: "Employee ID already exists."}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"EMP001","name":"Alice","department":"Engineering","password":"secret123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/register", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.RegisterEmployee(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "DUPLICATE_IDENTIFIER", env.Error.Code)
		assert.Equal(t, "Employee ID already exists.", env.Error.Message)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/register", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.RegisterEmployee(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative short password fails binding", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"EMP001","name":"Alice","department":"Engineering","password":"abc"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/register", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.RegisterEmployee(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestAuthHandler_LoginEmployee(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			loginEmployeeFn: func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
				assert.Equal(t, "EMP001", req.EmployeeID)
				return auth.LoginResponse{
					Success: true,
					Message: "Login successful",
					Identity: &auth.Identity{
						EmployeeID: "EMP001",
						Name:       "Alice",
						Department: "Engineering",
					},
					Token: "signed.jwt.token",
				}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"EMP001","password":"secret123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.LoginEmployee(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got auth.LoginResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.True(t, got.Success)
		assert.Equal(t, "Login successful", got.Message)
		assert.NotNil(t, got.Identity)
		assert.Equal(t, "Alice", got.Identity.Name)
		assert.NotEmpty(t, got.Token)
	})

	t.Run("failed login answers unauthorized through the error envelope", func(t *testing.T) {
		svc := &fakeAuthService{
			loginEmployeeFn: func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
				return auth.LoginResponse{Success: false, Message: "Invalid credentials"}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"EMP001","password":"wrong"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.LoginEmployee(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
		assert.Equal(t, "Invalid credentials", env.Error.Message)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/login", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.LoginEmployee(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestAuthHandler_LoginDepartmentHead(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			loginDepartmentHeadFn: func(ctx context.Context, req auth.LoginRequest) (auth.HeadLoginResponse, error) {
				assert.Equal(t, "HD001", req.EmployeeID)
				return auth.HeadLoginResponse{
					ID:         3,
					EmployeeID: "HD001",
					Name:       "Bob",
					Department: "Engineering",
					Status:     "Active",
					LastLogin:  "2024-01-10",
					Token:      "signed.jwt.token",
				}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"HD001","password":"secret123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/heads/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.LoginDepartmentHead(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got auth.HeadLoginResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, uint64(3), got.ID)
		assert.Equal(t, "HD001", got.EmployeeID)
		assert.Equal(t, "Active", got.Status)
		assert.NotEmpty(t, got.Token)
	})

	t.Run("negative invalid credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			loginDepartmentHeadFn: func(ctx context.Context, req auth.LoginRequest) (auth.HeadLoginResponse, error) {
				return auth.HeadLoginResponse{}, autherrors.ErrInvalidCredentials
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"HD001","password":"wrong"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/heads/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.LoginDepartmentHead(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
		assert.Equal(t, "Invalid credentials", env.Error.Message)
	})

	t.Run("negative inactive account", func(t *testing.T) {
		svc := &fakeAuthService{
			loginDepartmentHeadFn: func(ctx context.Context, req auth.LoginRequest) (auth.HeadLoginResponse, error) {
				return auth.HeadLoginResponse{}, autherrors.ErrAccountInactive
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"HD001","password":"secret123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/heads/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.LoginDepartmentHead(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})
}
