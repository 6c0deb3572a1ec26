package handler

import (
    "context"
    "net/http"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/mock"
    "github.com/stretchr/testify/require"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/config"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/model"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/repository"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/utils"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
    args := m.Called(ctx, email, password, role, cost)
    return args.Get(0).(uint64), args.Error(1)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (model.User, error) {
    args := m.Called(ctx, email)
    return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUsers) GetByID(ctx context.Context, id uint64) (model.User, error) {
    args := m.Called(ctx, id)
    return args.Get(0).(model.User), args.Error(1)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) StoreRefresh(ctx context.Context, userID uint64, hash string, exp time.Time) error {
    return m.Called(ctx, userID, hash, exp).Error(0)
}

func (m *mockTokens) ValidateRefresh(ctx context.Context, hash string, now time.Time) (uint64, error) {
    args := m.Called(ctx, hash, now)
    return args.Get(0).(uint64), args.Error(1)
}

func (m *mockTokens) Rotate(ctx context.Context, oldHash, newHash string, exp, now time.Time) (uint64, error) {
    args := m.Called(ctx, oldHash, newHash, exp, now)
    return args.Get(0).(uint64), args.Error(1)
}

func (m *mockTokens) RevokeByHash(ctx context.Context, hash string) error {
    return m.Called(ctx, hash).Error(0)
}

func (m *mockTokens) RevokeAllForUser(ctx context.Context, userID uint64) error {
    return m.Called(ctx, userID).Error(0)
}

func authServer(users *mockUsers, tokens *mockTokens) *echo.Echo {
    cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 5, RefreshTTLDays: 1, BcryptCost: 4}
    h := NewAuthHandler(cfg, users, tokens)
    e := echo.New()
    e.Validator = NewValidator()
    e.POST("/v1/auth/register", h.Register)
    e.POST("/v1/auth/login", h.Login)
    e.POST("/v1/auth/refresh", h.Refresh)
    e.POST("/v1/auth/logout", h.Logout)
    return e
}

func TestRegister(t *testing.T) {
    users, tokens := &mockUsers{}, &mockTokens{}
    e := authServer(users, tokens)

    users.On("Create", mock.Anything, "ana@example.com", "secret12", model.RoleCustomer, 4).Return(uint64(3), nil).Once()
    tokens.On("StoreRefresh", mock.Anything, uint64(3), mock.Anything, mock.Anything).Return(nil).Once()
    rec := do(e, http.MethodPost, "/v1/auth/register", `{"email":"Ana@Example.com","password":"secret12","role":"ADMIN"}`, 0, "")
    require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
    user := decode(t, rec)["user"].(map[string]any)
    assert.Equal(t, "CUSTOMER", user["role"])

    users.On("Create", mock.Anything, "bo@example.com", "secret12", model.RoleManager, 4).Return(uint64(0), repository.ErrEmailExists).Once()
    rec = do(e, http.MethodPost, "/v1/auth/register", `{"email":"bo@example.com","password":"secret12","role":"manager"}`, 0, "")
    assert.Equal(t, http.StatusConflict, rec.Code)

    rec = do(e, http.MethodPost, "/v1/auth/register", `{"email":"not-an-email","password":"secret12"}`, 0, "")
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    users.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
    users, tokens := &mockUsers{}, &mockTokens{}
    e := authServer(users, tokens)
    hash, err := utils.HashPassword("secret12", 4)
    require.NoError(t, err)

    users.On("GetByEmail", mock.Anything, "ana@example.com").
        Return(model.User{ID: 3, Email: "ana@example.com", PasswordHash: hash, Role: model.RoleCustomer, IsActive: true}, nil)
    users.On("GetByEmail", mock.Anything, "off@example.com").
        Return(model.User{ID: 4, Email: "off@example.com", PasswordHash: hash, Role: model.RoleCustomer}, nil)
    users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, repository.ErrUserNotFound)
    tokens.On("StoreRefresh", mock.Anything, uint64(3), mock.Anything, mock.Anything).Return(nil).Once()

    rec := do(e, http.MethodPost, "/v1/auth/login", `{"email":"ana@example.com","password":"secret12"}`, 0, "")
    require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
    access := decode(t, rec)["access"].(map[string]any)
    claims, err := utils.ParseAccessToken("test-secret", access["token"].(string))
    require.NoError(t, err)
    assert.Equal(t, uint64(3), claims.UserID)

    for _, body := range []string{
        `{"email":"ana@example.com","password":"wrong"}`,
        `{"email":"off@example.com","password":"secret12"}`,
        `{"email":"nobody@example.com","password":"secret12"}`,
    } {
        assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodPost, "/v1/auth/login", body, 0, "").Code, body)
    }
}

func TestLogout(t *testing.T) {
    users, tokens := &mockUsers{}, &mockTokens{}
    e := authServer(users, tokens)

    assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/v1/auth/logout", `{}`, 0, "").Code)

    hash := utils.HashRefreshRaw("raw-token")
    tokens.On("ValidateRefresh", mock.Anything, hash, mock.Anything).Return(uint64(3), nil).Once()
    tokens.On("RevokeByHash", mock.Anything, hash).Return(nil).Once()
    rec := do(e, http.MethodPost, "/v1/auth/logout", `{"refresh_token":"raw-token"}`, 0, "")
    assert.Equal(t, http.StatusNoContent, rec.Code)
    tokens.AssertExpectations(t)
}

func TestRefresh(t *testing.T) {
    users, tokens := &mockUsers{}, &mockTokens{}
    e := authServer(users, tokens)
    hash := utils.HashRefreshRaw("raw-token")

    tokens.On("ValidateRefresh", mock.Anything, hash, mock.Anything).Return(uint64(3), nil).Twice()
    users.On("GetByID", mock.Anything, uint64(3)).
        Return(model.User{ID: 3, Email: "ana@example.com", Role: model.RoleManager, IsActive: true}, nil)
    tokens.On("Rotate", mock.Anything, hash, mock.Anything, mock.Anything, mock.Anything).Return(uint64(3), nil).Once()
    tokens.On("Rotate", mock.Anything, hash, mock.Anything, mock.Anything, mock.Anything).Return(uint64(0), repository.ErrRefreshInvalid).Once()

    rec := do(e, http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"raw-token"}`, 0, "")
    require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
    assert.Equal(t, "MANAGER", decode(t, rec)["user"].(map[string]any)["role"])

    // a concurrent rotation already consumed the token
    rec = do(e, http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"raw-token"}`, 0, "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    tokens.AssertExpectations(t)
}
