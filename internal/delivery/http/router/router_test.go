package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jonathanpoaquiza/market-jals/config"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/middleware"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/router/handler"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/validator"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/ws"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	domainerrors "github.com/jonathanpoaquiza/market-jals/internal/domain/errors"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/metrics"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// Metrics register on the default registry, so the whole test binary
// shares one instance.
var testMetrics = metrics.NewHTTPMetrics()

func routerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubAuthUsecase resolves tokens to fixed profiles.
type stubAuthUsecase struct {
	profiles map[string]*entity.UserProfile
}

func (s *stubAuthUsecase) Authenticate(_ context.Context, idToken string) (*entity.UserProfile, error) {
	profile, ok := s.profiles[idToken]
	if !ok {
		return nil, domainerrors.ErrTokenInvalid
	}

	return profile, nil
}

func (s *stubAuthUsecase) GetProfile(_ context.Context, uid string) (*entity.UserProfile, error) {
	for _, profile := range s.profiles {
		if profile.UID == uid {
			return profile, nil
		}
	}

	return nil, domainerrors.ErrUserNotFound
}

func (s *stubAuthUsecase) ListUsers(_ context.Context, _ *entity.UserProfile) ([]*entity.UserProfile, error) {
	return []*entity.UserProfile{}, nil
}

func (s *stubAuthUsecase) AssignRole(_ context.Context, _ *entity.UserProfile, input usecase.AssignRoleInput) (*entity.UserProfile, error) {
	return &entity.UserProfile{UID: input.TargetUID, Role: entity.Role(input.Role)}, nil
}

// stubCatalogUsecase records listing calls.
type stubCatalogUsecase struct {
	mu        sync.Mutex
	listCalls int
}

func (s *stubCatalogUsecase) CreateProduct(_ context.Context, _ *entity.UserProfile, _ usecase.CreateProductInput) (*entity.Product, error) {
	return &entity.Product{ID: "p1"}, nil
}

func (s *stubCatalogUsecase) GetProduct(_ context.Context, _ *entity.UserProfile, id string) (*entity.Product, error) {
	return &entity.Product{ID: id, Available: true}, nil
}

func (s *stubCatalogUsecase) ListProducts(_ context.Context, _ *entity.UserProfile, _ usecase.ListProductsInput) ([]*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++

	return []*entity.Product{}, nil
}

func (s *stubCatalogUsecase) UpdateProduct(_ context.Context, _ *entity.UserProfile, id string, _ usecase.UpdateProductInput) (*entity.Product, error) {
	return &entity.Product{ID: id}, nil
}

func (s *stubCatalogUsecase) DeleteProduct(_ context.Context, _ *entity.UserProfile, _ string) error {
	return nil
}

func (s *stubCatalogUsecase) UploadImage(_ context.Context, _ *entity.UserProfile, _ usecase.UploadImageInput) (string, error) {
	return "https://cdn.test/x.png", nil
}

type routerFixtures struct {
	echo    *echo.Echo
	catalog *stubCatalogUsecase
}

func createTestRouter() routerFixtures {
	logger := routerTestLogger()
	cfg := &config.Config{}

	auth := &stubAuthUsecase{profiles: map[string]*entity.UserProfile{
		"client-token": {UID: "ana", Role: entity.RoleClient},
		"admin-token":  {UID: "root", Role: entity.RoleAdmin},
	}}
	catalog := &stubCatalogUsecase{}

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := NewRouter(RouterParams{
		SessionHandler: handler.NewSessionHandler(cfg, logger),
		UserHandler:    handler.NewUserHandler(auth, logger),
		ProductHandler: handler.NewProductHandler(catalog, logger),
		ChatHandler:    handler.NewChatHandler(nil, ws.NewHub(cfg, logger), testMetrics, logger),
		CartHandler:    handler.NewCartHandler(nil, nil, testMetrics, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(auth),
	})
	r.RegisterRoutes(e)

	return routerFixtures{echo: e, catalog: catalog}
}

func doRequest(fx routerFixtures, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	return rec
}

func TestRouter_CatalogReadsArePublic(t *testing.T) {
	fx := createTestRouter()

	rec := doRequest(fx, http.MethodGet, "/api/products", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fx.catalog.listCalls)

	rec = doRequest(fx, http.MethodGet, "/api/products/p1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CatalogReadsRejectInvalidCredential(t *testing.T) {
	fx := createTestRouter()

	// Absent credentials pass, broken ones do not.
	rec := doRequest(fx, http.MethodGet, "/api/products", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CatalogWritesRequireCredential(t *testing.T) {
	fx := createTestRouter()

	rec := doRequest(fx, http.MethodPost, "/api/products", "", `{"name":"Queso","price":1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(fx, http.MethodPost, "/api/products", "client-token", `{"name":"Queso","price":1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_UserDirectoryRoutes(t *testing.T) {
	fx := createTestRouter()

	rec := doRequest(fx, http.MethodGet, "/api/auth/users", "admin-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(fx, http.MethodGet, "/api/auth/users", "client-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(fx, http.MethodPatch, "/api/auth/users", "admin-token", `{"uid":"ana","role":"employee"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(fx, http.MethodPatch, "/api/auth/users", "client-token", `{"uid":"ana","role":"employee"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
