package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"worklog/internal/api"
	"worklog/internal/clock"
	"worklog/internal/config"
	"worklog/internal/domain"
	"worklog/internal/services"
)

var testNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

// mockBusinessAPI implements the BusinessAPI interface for testing
type mockBusinessAPI struct {
	mock.Mock
}

func (m *mockBusinessAPI) CreateUser(ctx context.Context, username, displayName, email string) (*domain.User, error) {
	args := m.Called(ctx, username, displayName, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockBusinessAPI) GetUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockBusinessAPI) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}

func (m *mockBusinessAPI) UpdateUser(ctx context.Context, username, displayName, email string) (*domain.User, error) {
	args := m.Called(ctx, username, displayName, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockBusinessAPI) ResetUser(ctx context.Context, username string) (*services.ResetResult, error) {
	args := m.Called(ctx, username)
	result, _ := args.Get(0).(*services.ResetResult)
	return result, args.Error(1)
}

func (m *mockBusinessAPI) DeleteUser(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *mockBusinessAPI) CreateTask(ctx context.Context, username, name, description string) (*domain.Task, error) {
	args := m.Called(ctx, username, name, description)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockBusinessAPI) ListTasks(ctx context.Context, username string) ([]*domain.Task, error) {
	args := m.Called(ctx, username)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

func (m *mockBusinessAPI) GetTask(ctx context.Context, taskID int64) (*api.TaskDetails, error) {
	args := m.Called(ctx, taskID)
	details, _ := args.Get(0).(*api.TaskDetails)
	return details, args.Error(1)
}

func (m *mockBusinessAPI) UpdateTask(ctx context.Context, taskID int64, name string, description *string) (*domain.Task, error) {
	args := m.Called(ctx, taskID, name, description)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockBusinessAPI) DeleteTask(ctx context.Context, taskID int64) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *mockBusinessAPI) GetInterval(ctx context.Context, intervalID int64) (*api.TaskSession, error) {
	return m.session("GetInterval", ctx, intervalID)
}

func (m *mockBusinessAPI) DeleteInterval(ctx context.Context, intervalID int64) (*api.TaskSession, error) {
	return m.session("DeleteInterval", ctx, intervalID)
}

func (m *mockBusinessAPI) session(method string, ctx context.Context, id int64) (*api.TaskSession, error) {
	args := m.MethodCalled(method, ctx, id)
	session, _ := args.Get(0).(*api.TaskSession)
	return session, args.Error(1)
}

func (m *mockBusinessAPI) StartTask(ctx context.Context, taskID int64) (*api.TaskSession, error) {
	return m.session("StartTask", ctx, taskID)
}

func (m *mockBusinessAPI) StopTask(ctx context.Context, taskID int64) (*api.TaskSession, error) {
	return m.session("StopTask", ctx, taskID)
}

func (m *mockBusinessAPI) PauseTask(ctx context.Context, taskID int64) (*api.TaskSession, error) {
	return m.session("PauseTask", ctx, taskID)
}

func (m *mockBusinessAPI) ResumeTask(ctx context.Context, taskID int64) (*api.TaskSession, error) {
	return m.session("ResumeTask", ctx, taskID)
}

func (m *mockBusinessAPI) GetStatus(ctx context.Context, taskID int64) (*api.TaskSession, error) {
	return m.session("GetStatus", ctx, taskID)
}

func (m *mockBusinessAPI) GetElapsed(ctx context.Context, taskID int64) (time.Duration, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *mockBusinessAPI) GetTotalEffort(ctx context.Context, username string, r domain.TimeRange) (time.Duration, error) {
	args := m.Called(ctx, username, r)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *mockBusinessAPI) GetReport(ctx context.Context, req services.ReportRequest) (*services.Report, error) {
	args := m.Called(ctx, req)
	report, _ := args.Get(0).(*services.Report)
	return report, args.Error(1)
}

func (m *mockBusinessAPI) RunAutoEnd(ctx context.Context) (*services.AutoEndResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*services.AutoEndResult)
	return result, args.Error(1)
}

func (m *mockBusinessAPI) RunCleanup(ctx context.Context) (*services.CleanupResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*services.CleanupResult)
	return result, args.Error(1)
}

func (m *mockBusinessAPI) Jobs() []api.Job {
	jobs, _ := m.Called().Get(0).([]api.Job)
	return jobs
}

// testConfig returns defaults pinned to UTC
func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Jobs.Timezone = "UTC"
	return cfg
}

// setupTestAppWithMockBusinessAPI returns an app writing to a buffer with its clock at testNow
func setupTestAppWithMockBusinessAPI(t *testing.T) (*App, *mockBusinessAPI, *bytes.Buffer) {
	t.Helper()
	m := &mockBusinessAPI{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	var out bytes.Buffer
	app := NewAppWithOutput(m, testConfig(), clock.NewControllableClockAt(testNow), &out, &CommandOptions{})
	return app, m, &out
}

func testSession(id int64, name string, interval *domain.Interval, elapsed time.Duration) *api.TaskSession {
	return &api.TaskSession{
		Task:     &domain.Task{ID: id, UserID: 1, Name: name},
		Interval: interval,
		Elapsed:  elapsed,
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
