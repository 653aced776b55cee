package schedule

import (
	"context"
	"time"

	"fitgrid/models"

	"github.com/stretchr/testify/mock"
)

// MockTemplateRepo mocks the TemplateRepository interface
type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) Create(ctx context.Context, tmpl *models.ScheduleTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockTemplateRepo) GetByID(ctx context.Context, id string) (*models.ScheduleTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleTemplate), args.Error(1)
}

func (m *MockTemplateRepo) GetByGymID(ctx context.Context, gymID string) ([]models.ScheduleTemplate, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScheduleTemplate), args.Error(1)
}

func (m *MockTemplateRepo) Update(ctx context.Context, tmpl *models.ScheduleTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockTemplateRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateRepo) EnsureIndexes() error {
	args := m.Called()
	return args.Error(0)
}

// MockScheduleRepo mocks the ScheduleRepository interface
type MockScheduleRepo struct {
	mock.Mock
}

func (m *MockScheduleRepo) Create(ctx context.Context, sched *models.ActiveSchedule) error {
	args := m.Called(ctx, sched)
	return args.Error(0)
}

func (m *MockScheduleRepo) GetByID(ctx context.Context, id string) (*models.ActiveSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActiveSchedule), args.Error(1)
}

func (m *MockScheduleRepo) GetByGymID(ctx context.Context, gymID string) ([]models.ActiveSchedule, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActiveSchedule), args.Error(1)
}

func (m *MockScheduleRepo) ReplaceDays(ctx context.Context, id string, version int64, days []models.ScheduleDay, resetAt time.Time) error {
	args := m.Called(ctx, id, version, days, resetAt)
	return args.Error(0)
}

func (m *MockScheduleRepo) UpdateStaff(ctx context.Context, id string, staffIDs []string) error {
	args := m.Called(ctx, id, staffIDs)
	return args.Error(0)
}

func (m *MockScheduleRepo) JoinTimeSlot(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveSchedule, error) {
	args := m.Called(ctx, scheduleID, slotID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActiveSchedule), args.Error(1)
}

func (m *MockScheduleRepo) LeaveTimeSlot(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveSchedule, error) {
	args := m.Called(ctx, scheduleID, slotID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActiveSchedule), args.Error(1)
}

func (m *MockScheduleRepo) EnsureIndexes() error {
	args := m.Called()
	return args.Error(0)
}
