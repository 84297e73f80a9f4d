package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, in ports.SignupInput) (*domain.User, error) {
			if in.Name != "Ana" || in.Email != "ana@example.com" || in.Role != "student" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, Role: domain.RoleStudent}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/signup",
		`{"name":"Ana","email":"ana@example.com","password":"secret1","role":"student"}`)

	if err := NewAuthHandler(stub).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "User registered successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"missing fields", `{"email":"ana@example.com"}`, "All fields are required"},
		{"bad email", `{"name":"Ana","email":"ana@","password":"secret1","role":"student"}`, "Invalid email format"},
		{"short password", `{"name":"Ana","email":"ana@example.com","password":"123","role":"student"}`, "Password must be at least 6 characters"},
		{"bad role", `{"name":"Ana","email":"ana@example.com","password":"secret1","role":"admin"}`, "Role must be one of: student employer"},
		{"malformed json", `{"name":`, "Invalid request body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{
				signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
					t.Fatalf("service must not be called")
					return nil, nil
				},
			}
			c, _ := newJSONContext(http.MethodPost, "/api/signup", tc.body)

			err := NewAuthHandler(stub).Signup(c)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Message != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, verr.Message)
			}
		})
	}
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/api/signup",
		`{"name":"Ana","email":"ana@example.com","password":"secret1","role":"student"}`)

	if err := NewAuthHandler(stub).Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "ana@example.com" || password != "secret1" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "signed.jwt.token", &domain.User{ID: "u1"}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/login", `{"email":"ana@example.com","password":"secret1"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["token"] != "signed.jwt.token" || resp["message"] != "Login successful" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidPassword
		},
	}

	c, _ := newJSONContext(http.MethodPost, "/api/login", `{"email":"ana@example.com","password":"nope"}`)
	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}

	c, _ = newJSONContext(http.MethodPost, "/api/login", `{"password":"nope"}`)
	var verr *domain.ValidationError
	if err := NewAuthHandler(stub).Login(c); !errors.As(err, &verr) || verr.Message != "Email and password are required" {
		t.Fatalf("expected required-fields error, got %v", err)
	}
}
