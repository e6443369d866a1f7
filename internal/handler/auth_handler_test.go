package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "internhub/internal/errors"
	"internhub/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, internID, firstName, lastName, email, password string) error {
	args := m.Called(ctx, internID, firstName, lastName, email, password)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GoogleLogin(ctx context.Context, externalToken string) (*service.GoogleLoginResult, error) {
	args := m.Called(ctx, externalToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GoogleLoginResult), args.Error(1)
}

func (m *MockAuthService) ReconcileProfile(ctx context.Context, email, internID, firstName, lastName string) (string, error) {
	args := m.Called(ctx, email, internID, firstName, lastName)
	return args.String(0), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMock    func(*MockAuthService)
		expectedCode int
	}{
		{
			name: "created",
			body: `{"internID":"INT-1","firstName":"Ann","lastName":"Lee","email":"ann@test.com","password":"secret1"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Signup", mock.Anything, "INT-1", "Ann", "Lee", "ann@test.com", "secret1").Return(nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "missing field rejected by validator",
			body:         `{"internID":"INT-1","firstName":"Ann","email":"ann@test.com","password":"secret1"}`,
			setupMock:    func(m *MockAuthService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			body: `{"internID":"INT-1","firstName":"Ann","lastName":"Lee","email":"not-an-email","password":"secret1"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Signup", mock.Anything, "INT-1", "Ann", "Lee", "not-an-email", "secret1").Return(apperrors.ErrInvalidEmail)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			body: `{"internID":"INT-1","firstName":"Ann","lastName":"Lee","email":"taken@test.com","password":"secret1"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Signup", mock.Anything, "INT-1", "Ann", "Lee", "taken@test.com", "secret1").Return(apperrors.ErrEmailTaken)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "persistence failure is opaque",
			body: `{"internID":"INT-1","firstName":"Ann","lastName":"Lee","email":"ann@test.com","password":"secret1"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Signup", mock.Anything, "INT-1", "Ann", "Lee", "ann@test.com", "secret1").Return(assert.AnError)
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAuthService)
			tt.setupMock(mockSvc)

			c, rec := newTestContext(tt.body)
			h := NewAuthHandler(mockSvc)

			assert.NoError(t, h.Signup(c))
			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns token", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "ann@test.com", "secret1").Return("signed-token", nil)

		c, rec := newTestContext(`{"email":"ann@test.com","password":"secret1"}`)
		h := NewAuthHandler(mockSvc)

		assert.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "signed-token")
	})

	t.Run("unknown account and wrong password are indistinguishable", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "nobody@test.com", "secret1").Return("", apperrors.ErrInvalidCredentials)
		mockSvc.On("Login", mock.Anything, "ann@test.com", "wrong").Return("", apperrors.ErrInvalidCredentials)

		h := NewAuthHandler(mockSvc)

		cAbsent, recAbsent := newTestContext(`{"email":"nobody@test.com","password":"secret1"}`)
		assert.NoError(t, h.Login(cAbsent))

		cWrong, recWrong := newTestContext(`{"email":"ann@test.com","password":"wrong"}`)
		assert.NoError(t, h.Login(cWrong))

		assert.Equal(t, http.StatusUnauthorized, recAbsent.Code)
		assert.Equal(t, recAbsent.Code, recWrong.Code)
		assert.Equal(t, recAbsent.Body.String(), recWrong.Body.String())
	})

	t.Run("missing field", func(t *testing.T) {
		c, rec := newTestContext(`{"email":"ann@test.com"}`)
		h := NewAuthHandler(new(MockAuthService))

		assert.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_GoogleLogin(t *testing.T) {
	t.Run("existing intern", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("GoogleLogin", mock.Anything, "google-token").Return(&service.GoogleLoginResult{Token: "signed-token"}, nil)

		c, rec := newTestContext(`{"token":"google-token"}`)
		h := NewAuthHandler(mockSvc)

		assert.NoError(t, h.GoogleLogin(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"isNewUser":false`)
		assert.Contains(t, rec.Body.String(), "signed-token")
	})

	t.Run("new user challenge", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("GoogleLogin", mock.Anything, "google-token").Return(&service.GoogleLoginResult{
			IsNewUser: true,
			Email:     "new@test.com",
		}, nil)

		c, rec := newTestContext(`{"token":"google-token"}`)
		h := NewAuthHandler(mockSvc)

		assert.NoError(t, h.GoogleLogin(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"isNewUser":true`)
		assert.Contains(t, rec.Body.String(), "new@test.com")
		assert.NotContains(t, rec.Body.String(), `"token"`)
	})

	t.Run("verification failure", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("GoogleLogin", mock.Anything, "bad-token").Return(nil, assert.AnError)

		c, rec := newTestContext(`{"token":"bad-token"}`)
		h := NewAuthHandler(mockSvc)

		assert.NoError(t, h.GoogleLogin(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	})
}

func TestAuthHandler_UpdateInternID(t *testing.T) {
	t.Run("returns token", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ReconcileProfile", mock.Anything, "new@test.com", "INT-9", "New", "Person").Return("signed-token", nil)

		c, rec := newTestContext(`{"email":"new@test.com","internId":"INT-9","firstName":"New","lastName":"Person"}`)
		h := NewAuthHandler(mockSvc)

		assert.NoError(t, h.UpdateInternID(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "signed-token")
	})

	t.Run("missing field", func(t *testing.T) {
		c, rec := newTestContext(`{"email":"new@test.com","firstName":"New","lastName":"Person"}`)
		h := NewAuthHandler(new(MockAuthService))

		assert.NoError(t, h.UpdateInternID(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
