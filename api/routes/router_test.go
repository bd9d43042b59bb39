package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carhub-app/carhub-backend/internal/centers"
	"github.com/carhub-app/carhub-backend/internal/users"
	pkgAuth "github.com/carhub-app/carhub-backend/pkg/auth"
	"github.com/carhub-app/carhub-backend/pkg/config"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	"github.com/carhub-app/carhub-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubIdentityChecker struct {
	exists bool
}

func (s stubIdentityChecker) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.exists, nil
}

type stubUsersService struct{}

func (stubUsersService) GetProfile(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubUsersService) ListAll(ctx context.Context) ([]users.UserDTO, error) {
	return []users.UserDTO{}, nil
}

func (stubUsersService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	return nil
}

func (stubUsersService) UpdateRole(ctx context.Context, targetID uuid.UUID, role enums.Role) (*users.UserDTO, error) {
	return &users.UserDTO{ID: targetID, Role: role}, nil
}

type stubCentersService struct{}

func (stubCentersService) List(ctx context.Context, city string) ([]centers.CenterDTO, error) {
	return []centers.CenterDTO{}, nil
}

func (stubCentersService) Get(ctx context.Context, id uuid.UUID) (*centers.CenterDTO, error) {
	return &centers.CenterDTO{ID: id}, nil
}

func (stubCentersService) Create(ctx context.Context, input centers.CreateCenterInput) (*centers.CenterDTO, error) {
	return &centers.CenterDTO{ID: uuid.New()}, nil
}

func (stubCentersService) Update(ctx context.Context, id uuid.UUID, input centers.UpdateCenterInput) (*centers.CenterDTO, error) {
	return &centers.CenterDTO{ID: id}, nil
}

func (stubCentersService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "test-jwt-secret-that-is-long-enough!",
			Issuer:            "carhub",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config, identities stubIdentityChecker) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "router-test", Level: logger.ParseLevel("error"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil,
		identities,
		nil,
		Services{
			Users:   stubUsersService{},
			Centers: stubCentersService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicCentersListNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig(), stubIdentityChecker{exists: true})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/centers", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public centers list got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig(), stubIdentityChecker{exists: true})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubIdentityChecker{exists: true})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for profile got %d", resp.Code)
	}
}

func TestUnknownIdentityTreatedAsAnonymous(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubIdentityChecker{exists: false})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted identity got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubIdentityChecker{exists: true})

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestAdminCenterWriteRejectsUserRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubIdentityChecker{exists: true})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/centers/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin center delete got %d", resp.Code)
	}
}

func TestHealthLiveAlwaysUp(t *testing.T) {
	router := newTestRouter(testConfig(), stubIdentityChecker{exists: true})
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
	if got := resp.Header().Get("X-CarHub-Env"); got != "test" {
		t.Fatalf("expected env header test got %q", got)
	}
}
