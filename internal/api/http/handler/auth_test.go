package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/userauth-server/internal/api/http/context"
	"github.com/dtroode/userauth-server/internal/model"
	"github.com/dtroode/userauth-server/internal/testutil"
)

var _ AuthService = (*mockAuthService)(nil)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, email, password string) (model.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockAuthService) CreateSession(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) DestroySession(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockAuthService) GetResetPasswordToken(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) UpdatePassword(ctx context.Context, resetToken, newPassword string) error {
	args := m.Called(ctx, resetToken, newPassword)
	return args.Error(0)
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, code, httpErr.Code)
}

func TestAuth_Welcome(t *testing.T) {
	h := NewAuth(&mockAuthService{}, httpctx.NewManager(), testutil.MakeNoopLogger())
	c, rec := newTestContext(t, http.MethodGet, "/", "")

	require.NoError(t, h.Welcome(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Bienvenue"}`, rec.Body.String())
}

func TestAuth_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockAuthService{}
		svc.On("Register", mock.Anything, "a@x.com", "pw").
			Return(model.User{ID: uuid.New(), Email: "a@x.com"}, nil)
		h := NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
		c, rec := newTestContext(t, http.MethodPost, "/users", `{"email":"a@x.com","password":"pw"}`)

		require.NoError(t, h.Register(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"email":"a@x.com","message":"user created"}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("already registered", func(t *testing.T) {
		svc := &mockAuthService{}
		svc.On("Register", mock.Anything, "a@x.com", "pw").
			Return(model.User{}, model.ErrAlreadyRegistered)
		h := NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
		c, _ := newTestContext(t, http.MethodPost, "/users", `{"email":"a@x.com","password":"pw"}`)

		requireHTTPError(t, h.Register(c), http.StatusConflict)
	})

	t.Run("missing email", func(t *testing.T) {
		svc := &mockAuthService{}
		h := NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
		c, _ := newTestContext(t, http.MethodPost, "/users", `{"password":"pw"}`)

		requireHTTPError(t, h.Register(c), http.StatusBadRequest)
		svc.AssertNotCalled(t, "Register")
	})

	t.Run("malformed email", func(t *testing.T) {
		svc := &mockAuthService{}
		h := NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
		c, _ := newTestContext(t, http.MethodPost, "/users", `{"email":"not-an-email","password":"pw"}`)

		requireHTTPError(t, h.Register(c), http.StatusBadRequest)
		svc.AssertNotCalled(t, "Register")
	})
}

func TestAuth_Login(t *testing.T) {
	t.Run("success sets session cookie", func(t *testing.T) {
		svc := &mockAuthService{}
		svc.On("CreateSession", mock.Anything, "a@x.com", "pw").Return("session-1", nil)
		h := NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
		c, rec := newTestContext(t, http.MethodPost, "/sessions", `{"email":"a@x.com","password":"pw"}`)

		require.NoError(t, h.Login(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"email":"a@x.com","message":"logged in"}`, rec.Body.String())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "session_id", cookies[0].Name)
		assert.Equal(t, "session-1", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &mockAuthService{}
		svc.On("CreateSession", mock.Anything, "a@x.com", "wrong").
			Return("", model.ErrInvalidCredentials)
		h := NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
		c, rec := newTestContext(t, http.MethodPost, "/sessions", `{"email":"a@x.com","password":"wrong"}`)

		requireHTTPError(t, h.Login(c), http.StatusUnauthorized)
		assert.Empty(t, rec.Result().Cookies())
	})
}

func TestAuth_Profile(t *testing.T) {
	ctxMgr := httpctx.NewManager()

	t.Run("authenticated", func(t *testing.T) {
		h := NewAuth(&mockAuthService{}, ctxMgr, testutil.MakeNoopLogger())
		c, rec := newTestContext(t, http.MethodGet, "/profile", "")
		ctx := ctxMgr.SetUserToContext(c.Request().Context(), model.User{ID: uuid.New(), Email: "a@x.com"})
		c.SetRequest(c.Request().WithContext(ctx))

		require.NoError(t, h.Profile(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"email":"a@x.com"}`, rec.Body.String())
	})

	t.Run("no user in context", func(t *testing.T) {
		h := NewAuth(&mockAuthService{}, ctxMgr, testutil.MakeNoopLogger())
		c, _ := newTestContext(t, http.MethodGet, "/profile", "")

		requireHTTPError(t, h.Profile(c), http.StatusForbidden)
	})
}

func TestAuth_Logout(t *testing.T) {
	ctxMgr := httpctx.NewManager()
	userID := uuid.New()

	t.Run("success expires cookie", func(t *testing.T) {
		svc := &mockAuthService{}
		svc.On("DestroySession", mock.Anything, userID).Return(nil)
		h := NewAuth(svc, ctxMgr, testutil.MakeNoopLogger())
		c, rec := newTestContext(t, http.MethodDelete, "/sessions", "")
		ctx := ctxMgr.SetUserToContext(c.Request().Context(), model.User{ID: userID, Email: "a@x.com"})
		c.SetRequest(c.Request().WithContext(ctx))

		require.NoError(t, h.Logout(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Bienvenue"}`, rec.Body.String())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "session_id", cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
		svc.AssertExpectations(t)
	})

	t.Run("no user in context", func(t *testing.T) {
		svc := &mockAuthService{}
		h := NewAuth(svc, ctxMgr, testutil.MakeNoopLogger())
		c, _ := newTestContext(t, http.MethodDelete, "/sessions", "")

		requireHTTPError(t, h.Logout(c), http.StatusForbidden)
		svc.AssertNotCalled(t, "DestroySession")
	})
}

func TestAuth_ResetPassword(t *testing.T) {
	t.Run("success returns token", func(t *testing.T) {
		svc := &mockAuthService{}
		svc.On("GetResetPasswordToken", mock.Anything, "a@x.com").Return("token-1", nil)
		h := NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
		c, rec := newTestContext(t, http.MethodPost, "/reset_password", `{"email":"a@x.com"}`)

		require.NoError(t, h.ResetPassword(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"email":"a@x.com","reset_token":"token-1"}`, rec.Body.String())
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := &mockAuthService{}
		svc.On("GetResetPasswordToken", mock.Anything, "missing@x.com").
			Return("", model.ErrNotFound)
		h := NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
		c, _ := newTestContext(t, http.MethodPost, "/reset_password", `{"email":"missing@x.com"}`)

		requireHTTPError(t, h.ResetPassword(c), http.StatusNotFound)
	})
}

func TestAuth_UpdatePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockAuthService{}
		svc.On("UpdatePassword", mock.Anything, "token-1", "new-pw").Return(nil)
		h := NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
		c, rec := newTestContext(t, http.MethodPut, "/reset_password",
			`{"email":"a@x.com","reset_token":"token-1","new_password":"new-pw"}`)

		require.NoError(t, h.UpdatePassword(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"email":"a@x.com","message":"Password updated"}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := &mockAuthService{}
		svc.On("UpdatePassword", mock.Anything, "stale", "new-pw").
			Return(model.ErrInvalidResetToken)
		h := NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
		c, _ := newTestContext(t, http.MethodPut, "/reset_password",
			`{"email":"a@x.com","reset_token":"stale","new_password":"new-pw"}`)

		requireHTTPError(t, h.UpdatePassword(c), http.StatusBadRequest)
	})

	t.Run("missing token", func(t *testing.T) {
		svc := &mockAuthService{}
		h := NewAuth(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
		c, _ := newTestContext(t, http.MethodPut, "/reset_password",
			`{"email":"a@x.com","new_password":"new-pw"}`)

		requireHTTPError(t, h.UpdatePassword(c), http.StatusBadRequest)
		svc.AssertNotCalled(t, "UpdatePassword")
	})
}
