package services

import (
	"context"
	"time"

	"worklog/internal/domain"
	"worklog/internal/repository"

	"github.com/stretchr/testify/mock"
)

var _ repository.Store = (*mockStore)(nil)

// mockStore lets tests inject store failures
type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateInterval(ctx context.Context, interval *domain.Interval) error {
	return m.Called(ctx, interval).Error(0)
}

func (m *mockStore) GetInterval(ctx context.Context, id int64) (*domain.Interval, error) {
	args := m.Called(ctx, id)
	return intervalArg(args, 0), args.Error(1)
}

func (m *mockStore) FindOpenInterval(ctx context.Context, taskID int64) (*domain.Interval, error) {
	args := m.Called(ctx, taskID)
	return intervalArg(args, 0), args.Error(1)
}

func (m *mockStore) FindLatestInState(ctx context.Context, taskID int64, state domain.IntervalState) (*domain.Interval, error) {
	args := m.Called(ctx, taskID, state)
	return intervalArg(args, 0), args.Error(1)
}

func (m *mockStore) FindIntervalsForTask(ctx context.Context, taskID int64) ([]*domain.Interval, error) {
	args := m.Called(ctx, taskID)
	return intervalsArg(args, 0), args.Error(1)
}

func (m *mockStore) FindIntervalsForUserInRange(ctx context.Context, userID int64, start, end time.Time) ([]*domain.Interval, error) {
	args := m.Called(ctx, userID, start, end)
	return intervalsArg(args, 0), args.Error(1)
}

func (m *mockStore) FindOngoingBefore(ctx context.Context, t time.Time) ([]*domain.Interval, error) {
	args := m.Called(ctx, t)
	return intervalsArg(args, 0), args.Error(1)
}

func (m *mockStore) CloseInterval(ctx context.Context, id int64, endTime time.Time, state domain.IntervalState) (bool, error) {
	args := m.Called(ctx, id, endTime, state)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) UpdateIntervalState(ctx context.Context, id int64, state domain.IntervalState) error {
	return m.Called(ctx, id, state).Error(0)
}

func (m *mockStore) DeleteInterval(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) DeleteIntervalsForTask(ctx context.Context, taskID int64) (int64, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) DeleteIntervalsStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) SumOverlap(ctx context.Context, userID int64, start, end, now time.Time) (time.Duration, error) {
	args := m.Called(ctx, userID, start, end, now)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *mockStore) CreateTask(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockStore) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) ListTasksByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	args := m.Called(ctx, userID)
	return tasksArg(args, 0), args.Error(1)
}

func (m *mockStore) UpdateTask(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockStore) FindTasksCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Task, error) {
	args := m.Called(ctx, cutoff)
	return tasksArg(args, 0), args.Error(1)
}

func (m *mockStore) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) CreateUser(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	return userArg(args, 0), args.Error(1)
}

func (m *mockStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	return userArg(args, 0), args.Error(1)
}

func (m *mockStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) UpdateUser(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockStore) FindUsersCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.User, error) {
	args := m.Called(ctx, cutoff)
	if u := args.Get(0); u != nil {
		return u.([]*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) Close() error {
	return nil
}

func intervalArg(args mock.Arguments, i int) *domain.Interval {
	if v := args.Get(i); v != nil {
		return v.(*domain.Interval)
	}
	return nil
}

func intervalsArg(args mock.Arguments, i int) []*domain.Interval {
	if v := args.Get(i); v != nil {
		return v.([]*domain.Interval)
	}
	return nil
}

func tasksArg(args mock.Arguments, i int) []*domain.Task {
	if v := args.Get(i); v != nil {
		return v.([]*domain.Task)
	}
	return nil
}

func userArg(args mock.Arguments, i int) *domain.User {
	if v := args.Get(i); v != nil {
		return v.(*domain.User)
	}
	return nil
}
