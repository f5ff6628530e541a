package usecase

import (
	"context"
	"errors"
	"sync"

	"engineering-sync/internal/auth"
	"engineering-sync/internal/cache"
	"engineering-sync/internal/model"
	"engineering-sync/internal/subscription"
	"engineering-sync/internal/taskapi"
)

var errSendFailed = errors.New("send failed")

func newTestUC(api *mockFetcher, synth *mockSynth, repo *mockRepo, sender *mockSender, cfg BroadcastConfig) *implUseCase {
	return New(
		&mockLogger{},
		api,
		cache.NewStore(0, nil),
		synth,
		repo,
		sender,
		auth.NewManager("test-secret"),
		cfg,
	)
}

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

// Mock upstream API client for testing
type mockFetcher struct {
	mu            sync.Mutex
	categoryCalls int
	taskCalls     map[int]int

	categories  []taskapi.CategoryRef
	tasks       map[int][]model.Task
	historyFunc func(taskID int) []string
}

func (m *mockFetcher) GetAllCategories(ctx context.Context) []taskapi.CategoryRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categoryCalls++
	return m.categories
}

func (m *mockFetcher) GetCategoryTasks(ctx context.Context, categoryID int) []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.taskCalls == nil {
		m.taskCalls = map[int]int{}
	}
	m.taskCalls[categoryID]++
	return m.tasks[categoryID]
}

func (m *mockFetcher) GetTaskFollowUpHistory(ctx context.Context, taskID int) []string {
	if m.historyFunc != nil {
		return m.historyFunc(taskID)
	}
	return nil
}

// Mock narrative synthesizer for testing
type mockSynth struct {
	mu               sync.Mutex
	summaryCalls     int
	categorySummarys []string

	taskSummary     string
	categorySummary string
}

func (m *mockSynth) SummarizeComments(ctx context.Context, comments []string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaryCalls++
	return m.taskSummary
}

func (m *mockSynth) CategorySummary(ctx context.Context, categoryName string, tasks []model.Task) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categorySummarys = append(m.categorySummarys, categoryName)
	return m.categorySummary
}

// Mock subscription repository for testing
type mockRepo struct {
	users    []subscription.User
	subs     map[int][]subscription.CategoryRef
	synced   []subscription.CategoryRef
	listErr  error
	provided []string
}

func (m *mockRepo) GetUserSubscriptions(ctx context.Context, userID int) ([]subscription.CategoryRef, error) {
	return m.subs[userID], nil
}

func (m *mockRepo) GetOrCreateUser(ctx context.Context, email string) (subscription.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	u := subscription.User{ID: 1000 + len(m.provided), Email: email}
	m.provided = append(m.provided, email)
	m.users = append(m.users, u)
	return u, nil
}

func (m *mockRepo) GetUserByEmail(ctx context.Context, email string) (subscription.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return subscription.User{}, subscription.ErrUserNotFound
}

func (m *mockRepo) ListUsers(ctx context.Context) ([]subscription.User, error) {
	return m.users, m.listErr
}

func (m *mockRepo) DeleteUser(ctx context.Context, userID int) error { return nil }

func (m *mockRepo) ListCategories(ctx context.Context) ([]subscription.CategoryRef, error) {
	return m.synced, nil
}

func (m *mockRepo) SyncCategories(ctx context.Context, refs []subscription.CategoryRef) error {
	m.synced = refs
	return nil
}

func (m *mockRepo) UpdateUserSubscriptions(ctx context.Context, userID int, categoryIDs []int) error {
	return nil
}

// Mock mail sender for testing
type sentMail struct {
	To      string
	Subject string
	Body    string
}

type mockSender struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo map[string]bool
}

func (m *mockSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTo[to] {
		return errSendFailed
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *mockSender) DryRun() bool { return false }
