package handler_test

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"arcadestore/internal/auth"
	apperrors "arcadestore/internal/errors"
	"arcadestore/internal/handler"
	"arcadestore/internal/middleware"
	"arcadestore/internal/model"
	"arcadestore/internal/router"
	"arcadestore/internal/service"

	"github.com/labstack/echo/v4"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, fullName, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, fullName, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockCatalogService is a mock implementation of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context) ([]model.WithCreator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WithCreator), args.Error(1)
}

func (m *MockCatalogService) Get(ctx context.Context, id string) (*model.WithCreator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WithCreator), args.Error(1)
}

func (m *MockCatalogService) Create(ctx context.Context, caller *model.User, in service.CreateGameInput) (*model.WithCreator, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WithCreator), args.Error(1)
}

func (m *MockCatalogService) Update(ctx context.Context, caller *model.User, id string, in service.UpdateGameInput) (*model.WithCreator, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WithCreator), args.Error(1)
}

func (m *MockCatalogService) Delete(ctx context.Context, caller *model.User, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

// MockCommerceService is a mock implementation of service.CommerceService.
type MockCommerceService struct {
	mock.Mock
}

func (m *MockCommerceService) Purchase(ctx context.Context, caller *model.User, gameID string) (*model.Purchase, bool, error) {
	args := m.Called(ctx, caller, gameID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Purchase), args.Bool(1), args.Error(2)
}

func (m *MockCommerceService) Library(ctx context.Context, userID string) ([]*model.Game, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Game), args.Error(1)
}

func (m *MockCommerceService) SubmitScore(ctx context.Context, caller *model.User, gameID string, score uint, gameData map[string]interface{}) (*model.Score, error) {
	args := m.Called(ctx, caller, gameID, score, gameData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Score), args.Error(1)
}

func (m *MockCommerceService) Rankings(ctx context.Context, gameID string) ([]model.RankingEntry, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RankingEntry), args.Error(1)
}

// MockUserRepository backs the account-resolution middleware.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDWithGames(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type fixture struct {
	e           *echo.Echo
	authSvc     *MockAuthService
	catalogSvc  *MockCatalogService
	commerceSvc *MockCommerceService
	jwtService  *auth.JWTService
	userRepo    *MockUserRepository
}

func newFixture() *fixture {
	return newFixtureWithLogger(zap.NewNop())
}

func newFixtureWithLogger(logger *zap.Logger) *fixture {
	f := &fixture{
		authSvc:     new(MockAuthService),
		catalogSvc:  new(MockCatalogService),
		commerceSvc: new(MockCommerceService),
		jwtService:  auth.NewJWTService("test-secret", time.Hour),
		userRepo:    new(MockUserRepository),
	}

	f.e = echo.New()
	router.Register(
		f.e,
		logger,
		middleware.NewAuthMiddleware(f.jwtService, f.userRepo),
		handler.NewAuthHandler(f.authSvc),
		handler.NewGameHandler(f.catalogSvc),
		handler.NewCommerceHandler(f.commerceSvc),
	)
	return f
}

// login issues a token for the account and wires the repo so the middleware
// resolves it.
func (f *fixture) login(t *testing.T, account *model.User) string {
	t.Helper()
	token, err := f.jwtService.Issue(account.ID)
	assert.NoError(t, err)
	f.userRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	return "Bearer " + token
}

func (f *fixture) do(method, path, body, authorization string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestRegister_ValidationDetails(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/auth/register",
		`{"fullName":"A","email":"not-an-email","password":"123"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "VALIDATION_ERROR")
	// Field names in details use the json tag, not the Go field name.
	assert.Contains(t, body, `"fullName"`)
	assert.Contains(t, body, `"email"`)
	assert.Contains(t, body, `"password"`)
	f.authSvc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_Success(t *testing.T) {
	f := newFixture()
	user := &model.User{ID: model.NewID(), FullName: "New Player", Email: "new@example.com", Role: model.RoleUser}
	f.authSvc.On("Register", mock.Anything, "New Player", "new@example.com", "secret1").
		Return("issued-token", user, nil)

	rec := f.do(http.MethodPost, "/api/auth/register",
		`{"fullName":"New Player","email":"new@example.com","password":"secret1"}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "issued-token")
	assert.Contains(t, rec.Body.String(), "user registered successfully")
	// The stored hash never appears in responses.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestGetGame_MalformedID(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/api/games/not-a-hex-id", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ID")
	// The id is rejected before any lookup happens.
	f.catalogSvc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRankings_MalformedID(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/api/games/ZZZZZZZZZZZZZZZZZZZZZZZZ/rankings", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ID")
	f.commerceSvc.AssertNotCalled(t, "Rankings", mock.Anything, mock.Anything)
}

func TestCreateGame_RequiresToken(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/games", `{"name":"X"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}

func TestCreateGame_RejectsNegativePrice(t *testing.T) {
	f := newFixture()
	account := &model.User{ID: model.NewID(), Role: model.RoleUser}
	token := f.login(t, account)

	rec := f.do(http.MethodPost, "/api/games",
		`{"name":"Bad","description":"d","price":-1,"category":"arcade","gameType":"other"}`, token)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must not be negative")
	f.catalogSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchase_InvalidGameID(t *testing.T) {
	f := newFixture()
	account := &model.User{ID: model.NewID(), Role: model.RoleUser}
	token := f.login(t, account)

	rec := f.do(http.MethodPost, "/api/games/purchase", `{"gameId":"short"}`, token)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be a 24-character hex string")
	f.commerceSvc.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchase_FreeGameMessage(t *testing.T) {
	f := newFixture()
	account := &model.User{ID: model.NewID(), Role: model.RoleUser}
	token := f.login(t, account)
	gameID := model.NewID()

	f.commerceSvc.On("Purchase", mock.Anything, mock.Anything, gameID).
		Return(&model.Purchase{ID: model.NewID(), UserID: account.ID, GameID: gameID}, true, nil)

	rec := f.do(http.MethodPost, "/api/games/purchase", `{"gameId":"`+gameID+`"}`, token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "free game added to your library")
}

func TestPurchase_PaidGameMessage(t *testing.T) {
	f := newFixture()
	account := &model.User{ID: model.NewID(), Role: model.RoleUser}
	token := f.login(t, account)
	gameID := model.NewID()

	f.commerceSvc.On("Purchase", mock.Anything, mock.Anything, gameID).
		Return(&model.Purchase{ID: model.NewID(), UserID: account.ID, GameID: gameID}, false, nil)

	rec := f.do(http.MethodPost, "/api/games/purchase", `{"gameId":"`+gameID+`"}`, token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "game purchased successfully")
}

func TestSubmitScore_ZeroIsValid(t *testing.T) {
	f := newFixture()
	account := &model.User{ID: model.NewID(), Role: model.RoleUser}
	token := f.login(t, account)
	gameID := model.NewID()

	f.commerceSvc.On("SubmitScore", mock.Anything, mock.Anything, gameID, uint(0), mock.Anything).
		Return(&model.Score{ID: model.NewID(), GameID: gameID, Score: 0}, nil)

	rec := f.do(http.MethodPost, "/api/games/submit-score",
		`{"gameId":"`+gameID+`","score":0}`, token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "score submitted successfully")
}

func TestSubmitScore_MissingScore(t *testing.T) {
	f := newFixture()
	account := &model.User{ID: model.NewID(), Role: model.RoleUser}
	token := f.login(t, account)
	gameID := model.NewID()

	rec := f.do(http.MethodPost, "/api/games/submit-score", `{"gameId":"`+gameID+`"}`, token)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	f.commerceSvc.AssertNotCalled(t, "SubmitScore",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceFault_GenericBodyFullLog(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	f := newFixtureWithLogger(zap.New(core))
	f.catalogSvc.On("List", mock.Anything).
		Return(nil, stderrors.New("mysql is down: connection refused"))

	rec := f.do(http.MethodGet, "/api/games", "", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	// The fault detail stays out of the response and lands in the server log.
	assert.NotContains(t, rec.Body.String(), "mysql")
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "mysql is down: connection refused", entries[0].ContextMap()["error"])
}

func TestProfile_MissingAccountEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := handler.NewAuthHandler(new(MockAuthService)).Profile(c)

	var httpErr *echo.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	resp, ok := httpErr.Message.(apperrors.ErrorResponse)
	assert.True(t, ok)
	assert.Equal(t, "UNAUTHENTICATED", resp.Code)
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/api/nope", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}
