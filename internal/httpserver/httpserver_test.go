package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"engineering-sync/internal/auth"
	"engineering-sync/internal/bulletin"
	"engineering-sync/internal/model"
	"engineering-sync/internal/subscription"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock bulletin usecase for testing
type mockUseCase struct {
	categories     []model.Category
	refreshCalls   int
	enrichCalls    int
	dashboardCalls int
}

func (m *mockUseCase) GetAllCategoriesWithTasks(ctx context.Context) []model.Category {
	m.enrichCalls++
	return m.categories
}

func (m *mockUseCase) GetBasicCategories(ctx context.Context) []model.Category {
	return m.categories
}

func (m *mockUseCase) GetDashboardCategories(ctx context.Context) []model.Category {
	m.dashboardCalls++
	return m.categories
}

func (m *mockUseCase) InvalidateCache(ctx context.Context) {}

func (m *mockUseCase) Refresh(ctx context.Context) []model.Category {
	m.refreshCalls++
	return m.categories
}

func (m *mockUseCase) ResolveForUser(ctx context.Context, categories []model.Category, subs []subscription.CategoryRef) []model.Category {
	return subscription.Resolve(categories, subs)
}

func (m *mockUseCase) Broadcast(ctx context.Context) (bulletin.BroadcastReport, error) {
	return bulletin.BroadcastReport{}, nil
}

// Mock subscription repository for testing
type memRepo struct {
	users      map[int]subscription.User
	subs       map[int][]subscription.CategoryRef
	categories []subscription.CategoryRef
	nextID     int
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:  map[int]subscription.User{},
		subs:   map[int][]subscription.CategoryRef{},
		nextID: 1,
	}
}

func (m *memRepo) GetUserSubscriptions(ctx context.Context, userID int) ([]subscription.CategoryRef, error) {
	return m.subs[userID], nil
}

func (m *memRepo) GetOrCreateUser(ctx context.Context, email string) (subscription.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	u := subscription.User{ID: m.nextID, Email: email}
	m.users[u.ID] = u
	m.nextID++
	return u, nil
}

func (m *memRepo) GetUserByEmail(ctx context.Context, email string) (subscription.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return subscription.User{}, subscription.ErrUserNotFound
}

func (m *memRepo) ListUsers(ctx context.Context) ([]subscription.User, error) {
	users := []subscription.User{}
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *memRepo) DeleteUser(ctx context.Context, userID int) error {
	if _, ok := m.users[userID]; !ok {
		return subscription.ErrUserNotFound
	}
	delete(m.users, userID)
	delete(m.subs, userID)
	return nil
}

func (m *memRepo) ListCategories(ctx context.Context) ([]subscription.CategoryRef, error) {
	return m.categories, nil
}

func (m *memRepo) SyncCategories(ctx context.Context, refs []subscription.CategoryRef) error {
	m.categories = refs
	return nil
}

func (m *memRepo) UpdateUserSubscriptions(ctx context.Context, userID int, categoryIDs []int) error {
	refs := []subscription.CategoryRef{}
	for _, id := range categoryIDs {
		name := ""
		for _, cat := range m.categories {
			if cat.ID == id {
				name = cat.Name
			}
		}
		refs = append(refs, subscription.CategoryRef{ID: id, Name: name})
	}
	m.subs[userID] = refs
	return nil
}

func newTestServer(t *testing.T, uc *mockUseCase, repo *memRepo) (*HTTPServer, *auth.Manager) {
	t.Helper()
	tokens := auth.NewManager("test-secret")
	srv, err := New(&mockLogger{}, Config{
		Logger:      &mockLogger{},
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: "test",
		UseCase:     uc,
		Repo:        repo,
		Tokens:      tokens,
		AdminUser:   "admin",
		AdminPass:   "secret",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := srv.mapHandlers(); err != nil {
		t.Fatalf("mapHandlers: %v", err)
	}
	return srv, tokens
}

func serve(srv *HTTPServer, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, req)
	return w
}

func TestHealthRoutes(t *testing.T) {
	srv, _ := newTestServer(t, &mockUseCase{}, newMemRepo())
	for _, path := range []string{"/health", "/ready", "/live"} {
		w := serve(srv, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s returned %d", path, w.Code)
		}
	}
}

func TestRootRedirectsToDashboard(t *testing.T) {
	srv, _ := newTestServer(t, &mockUseCase{}, newMemRepo())
	w := serve(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusFound {
		t.Fatalf("code = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q", loc)
	}
}

func TestDashboard(t *testing.T) {
	uc := &mockUseCase{categories: []model.Category{
		{CategoryID: 7, CategoryName: "Bug Fixes", CategorySummary: "steady progress",
			Tasks: []model.Task{{TaskID: 1, Subject: "Fix login", Status: "Open", Priority: "High"}}},
	}}
	srv, _ := newTestServer(t, uc, newMemRepo())
	w := serve(srv, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Bug Fixes", "steady progress", "Fix login"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
	if uc.dashboardCalls != 1 {
		t.Errorf("dashboardCalls = %d", uc.dashboardCalls)
	}
	if uc.enrichCalls != 0 {
		t.Error("dashboard must not trigger an inline enrichment cycle")
	}
}

func TestRefreshCache(t *testing.T) {
	uc := &mockUseCase{categories: []model.Category{{CategoryID: 1}}}
	srv, _ := newTestServer(t, uc, newMemRepo())
	w := serve(srv, httptest.NewRequest(http.MethodPost, "/api/refresh-cache", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if uc.refreshCalls != 1 {
		t.Errorf("refreshCalls = %d", uc.refreshCalls)
	}
}

func TestManageFlow(t *testing.T) {
	repo := newMemRepo()
	repo.categories = []subscription.CategoryRef{
		{ID: 7, Name: "Bug Fixes"},
		{ID: 12, Name: "Feature Requests"},
	}
	srv, tokens := newTestServer(t, &mockUseCase{}, repo)

	tok, err := tokens.Generate("dev@example.com", auth.PurposeManage)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/manage/"+tok, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("manage page code = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Bug Fixes") {
		t.Error("manage page missing category option")
	}

	form := url.Values{"token": {tok}, "category_ids": {"7"}}
	req := httptest.NewRequest(http.MethodPost, "/save-subscriptions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = serve(srv, req)
	if w.Code != http.StatusOK {
		t.Fatalf("save code = %d", w.Code)
	}

	user, _ := repo.GetUserByEmail(context.Background(), "dev@example.com")
	subs, _ := repo.GetUserSubscriptions(context.Background(), user.ID)
	if len(subs) != 1 || subs[0].ID != 7 {
		t.Errorf("subs = %+v", subs)
	}
}

func TestManageRejectsWrongToken(t *testing.T) {
	srv, tokens := newTestServer(t, &mockUseCase{}, newMemRepo())
	tok, _ := tokens.Generate("dev@example.com", auth.PurposeUnsubscribe)
	w := serve(srv, httptest.NewRequest(http.MethodGet, "/manage/"+tok, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("code = %d, wrong-purpose token must be rejected", w.Code)
	}
}

func TestUnsubscribe(t *testing.T) {
	repo := newMemRepo()
	repo.GetOrCreateUser(context.Background(), "dev@example.com")
	srv, tokens := newTestServer(t, &mockUseCase{}, repo)

	tok, _ := tokens.Generate("dev@example.com", auth.PurposeUnsubscribe)
	w := serve(srv, httptest.NewRequest(http.MethodGet, "/unsubscribe/"+tok, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if _, err := repo.GetUserByEmail(context.Background(), "dev@example.com"); err == nil {
		t.Error("user should be removed after unsubscribe")
	}

	// Second click on the same link stays a 200.
	w = serve(srv, httptest.NewRequest(http.MethodGet, "/unsubscribe/"+tok, nil))
	if w.Code != http.StatusOK {
		t.Errorf("second unsubscribe code = %d", w.Code)
	}
}

func TestAdminGate(t *testing.T) {
	repo := newMemRepo()
	repo.GetOrCreateUser(context.Background(), "dev@example.com")
	srv, _ := newTestServer(t, &mockUseCase{}, repo)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated admin request code = %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.SetBasicAuth("admin", "secret")
	w = serve(srv, req)
	if w.Code != http.StatusOK {
		t.Errorf("authenticated admin request code = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "dev@example.com") {
		t.Error("user listing missing registered recipient")
	}
}
