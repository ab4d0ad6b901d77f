package notaries

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
	"github.com/m04kA/SMC-NotaryService/internal/service/notaries/models"
	"github.com/m04kA/SMC-NotaryService/internal/service/projector"
	"github.com/m04kA/SMC-NotaryService/pkg/ptr"
)

const testUserID int64 = 100

var (
	msk = time.FixedZone("MSK", 3*60*60)
	// среда, 14 октября 2026, 10:00 MSK
	testNow   = time.Date(2026, time.October, 14, 10, 0, 0, 0, msk)
	testBound = domain.Bounds{MinHour: 9, Hours: 8}
)

type testEnv struct {
	svc            *Service
	notaries       *mockNotaryRepo
	orders         *mockOrderRepo
	qualifications *mockQualificationRepo
	tx             *mockTxManager
	metrics        *mockMetrics
	logger         *mockLogger
}

func newTestEnv(t *testing.T, policy projector.Policy) *testEnv {
	t.Helper()

	proj, err := projector.New(testBound, msk, policy)
	require.NoError(t, err)

	env := &testEnv{
		notaries: newMockNotaryRepo(),
		orders:   &mockOrderRepo{},
		qualifications: newMockQualificationRepo(
			&domain.Qualification{ID: 1, Name: "Стажёр", Coefficient: 1.0},
			&domain.Qualification{ID: 2, Name: "Старший нотариус", Coefficient: 1.5},
		),
		tx:      &mockTxManager{},
		metrics: &mockMetrics{},
		logger:  &mockLogger{},
	}
	env.svc = NewService(env.notaries, env.orders, env.qualifications, proj, env.tx, env.metrics, env.logger)
	env.svc.timeProvider = &projector.FixedTimeProvider{At: testNow}
	return env
}

func editorGrid(fill int) [][]int {
	grid := make([][]int, domain.DaysPerWeek)
	for d := range grid {
		grid[d] = make([]int, testBound.Hours)
		for h := range grid[d] {
			grid[d][h] = fill
		}
	}
	return grid
}

func (e *testEnv) seedNotary(t *testing.T, fio string, qualificationID int64) *domain.Notary {
	t.Helper()
	schedule, err := domain.NewSchedule(testBound, domain.HourActive)
	require.NoError(t, err)
	n, err := e.notaries.Create(context.Background(), &domain.Notary{
		FIO:             fio,
		OfficeAddress:   "Москва, ул. Тверская, 1",
		PhotoPath:       "photos/" + fio + ".jpg",
		QualificationID: qualificationID,
		Schedule:        schedule,
		Qualification:   e.qualifications.qualifications[qualificationID],
	})
	require.NoError(t, err)
	return n
}

func (e *testEnv) addOrder(id, notaryID int64, at time.Time, status domain.OrderStatus) {
	e.orders.orders = append(e.orders.orders, &domain.Order{
		ID:             id,
		NotaryID:       ptr.Ptr(notaryID),
		ConsultationAt: at,
		Status:         status,
	})
}

func updateRequest(version int64, snapshot *string) *models.UpdateNotaryRequest {
	return &models.UpdateNotaryRequest{
		UserID:          testUserID,
		FIO:             "Иванов Иван Иванович",
		OfficeAddress:   "Москва, ул. Тверская, 1",
		QualificationID: 1,
		Schedule:        editorGrid(int(domain.EditorActive)),
		ScheduleVersion: version,
		Snapshot:        snapshot,
	}
}

func TestService_GetForEditing_MarksLiveBooking(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)

	env.addOrder(1, n.ID, time.Date(2026, time.October, 14, 11, 0, 0, 0, msk), domain.OrderProcessing)
	env.addOrder(2, n.ID, time.Date(2026, time.October, 15, 12, 0, 0, 0, msk), domain.OrderCancelled)
	env.addOrder(3, n.ID, time.Date(2026, time.October, 13, 12, 0, 0, 0, msk), domain.OrderProcessing)

	resp, err := env.svc.GetForEditing(context.Background(), n.ID)
	require.NoError(t, err)

	assert.Equal(t, n.ID, resp.ID)
	assert.Equal(t, 9, resp.MinHour)
	assert.Equal(t, 8, resp.HoursPerDay)
	assert.Equal(t, int64(1), resp.ScheduleVersion)
	assert.NotEmpty(t, resp.Snapshot)

	require.Len(t, resp.Schedule, domain.DaysPerWeek)
	assert.Equal(t, int(domain.EditorForceActive), resp.Schedule[2][2])
	assert.Equal(t, int(domain.EditorActive), resp.Schedule[3][3])
	assert.Equal(t, int(domain.EditorActive), resp.Schedule[1][3])
	assert.Equal(t, []models.SlotResponse{{Day: 2, HourIndex: 2, Hour: 11}}, resp.ForcedSlots)
	assert.Empty(t, resp.SkippedOrders)

	assert.Equal(t, []string{projectionOK}, env.metrics.projections)
	assert.Equal(t, 1, env.metrics.forced)
}

func TestService_GetForEditing_NotFound(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)

	_, err := env.svc.GetForEditing(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotaryNotFound)
}

func TestService_GetForEditing_InvalidID(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)

	_, err := env.svc.GetForEditing(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetForEditing_CorruptedSchedule(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	env.notaries.getErr = fmt.Errorf("GetByID - notary id=1: %w", domain.ErrFormat)

	_, err := env.svc.GetForEditing(context.Background(), 1)
	assert.ErrorIs(t, err, ErrScheduleCorrupted)
}

func TestService_GetForEditing_OrdersError(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)
	env.orders.err = errors.New("connection refused")

	_, err := env.svc.GetForEditing(context.Background(), n.ID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetForEditing_OutOfRangeStrict(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)
	env.addOrder(1, n.ID, time.Date(2026, time.October, 14, 20, 0, 0, 0, msk), domain.OrderProcessing)

	_, err := env.svc.GetForEditing(context.Background(), n.ID)
	assert.ErrorIs(t, err, ErrBookingOutOfRange)
	assert.Equal(t, []string{projectionFailed}, env.metrics.projections)
}

func TestService_GetForEditing_OutOfRangeSkip(t *testing.T) {
	env := newTestEnv(t, projector.PolicySkip)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)
	env.addOrder(1, n.ID, time.Date(2026, time.October, 14, 20, 0, 0, 0, msk), domain.OrderProcessing)
	env.addOrder(2, n.ID, time.Date(2026, time.October, 16, 9, 0, 0, 0, msk), domain.OrderProcessing)

	resp, err := env.svc.GetForEditing(context.Background(), n.ID)
	require.NoError(t, err)

	require.Len(t, resp.SkippedOrders, 1)
	assert.Equal(t, int64(1), resp.SkippedOrders[0].OrderID)
	assert.Equal(t, []models.SlotResponse{{Day: 4, HourIndex: 0, Hour: 9}}, resp.ForcedSlots)
	assert.Equal(t, []string{projectionSkipped}, env.metrics.projections)
	assert.Equal(t, 1, env.metrics.skipped)
	assert.NotEmpty(t, env.logger.warnings)
}

func TestService_GetForEditing_BookingOnInactiveHour(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)

	schedule, err := domain.NewSchedule(testBound, domain.HourInactive)
	require.NoError(t, err)
	n, err := env.notaries.Create(context.Background(), &domain.Notary{FIO: "Петров", QualificationID: 1, Schedule: schedule})
	require.NoError(t, err)
	env.addOrder(1, n.ID, time.Date(2026, time.October, 14, 11, 0, 0, 0, msk), domain.OrderProcessing)

	resp, err := env.svc.GetForEditing(context.Background(), n.ID)
	require.NoError(t, err)

	assert.Equal(t, int(domain.EditorForceActive), resp.Schedule[2][2])
	assert.Len(t, env.logger.warnings, 1)
}

func TestService_Create_StripsForcedCodes(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)

	grid := editorGrid(int(domain.EditorInactive))
	grid[0][0] = int(domain.EditorActive)
	grid[2][2] = int(domain.EditorForceActive)

	resp, err := env.svc.Create(context.Background(), &models.CreateNotaryRequest{
		UserID:          testUserID,
		FIO:             "Сидорова Анна Петровна",
		OfficeAddress:   "Казань, ул. Баумана, 5",
		QualificationID: 2,
		Schedule:        grid,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(1), resp.ScheduleVersion)
	assert.Equal(t, 1, resp.Schedule[0][0])
	assert.Equal(t, 1, resp.Schedule[2][2])
	assert.Equal(t, 0, resp.Schedule[6][7])

	stored := env.notaries.notaries[resp.ID]
	state, err := stored.Schedule.Cell(2, 11)
	require.NoError(t, err)
	assert.Equal(t, domain.HourActive, state)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *models.CreateNotaryRequest)
		wantErr error
	}{
		{
			name:    "no user",
			modify:  func(r *models.CreateNotaryRequest) { r.UserID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty fio",
			modify:  func(r *models.CreateNotaryRequest) { r.FIO = "   " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no qualification",
			modify:  func(r *models.CreateNotaryRequest) { r.QualificationID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing schedule",
			modify:  func(r *models.CreateNotaryRequest) { r.Schedule = nil },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "six days",
			modify:  func(r *models.CreateNotaryRequest) { r.Schedule = r.Schedule[:6] },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown code",
			modify:  func(r *models.CreateNotaryRequest) { r.Schedule[1][1] = 3 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "short day",
			modify:  func(r *models.CreateNotaryRequest) { r.Schedule[4] = r.Schedule[4][:7] },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown qualification",
			modify:  func(r *models.CreateNotaryRequest) { r.QualificationID = 77 },
			wantErr: ErrQualificationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, projector.PolicyStrict)
			req := &models.CreateNotaryRequest{
				UserID:          testUserID,
				FIO:             "Сидорова Анна Петровна",
				QualificationID: 1,
				Schedule:        editorGrid(int(domain.EditorActive)),
			}
			tt.modify(req)

			_, err := env.svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, env.notaries.notaries)
		})
	}
}

func TestService_Update_WithFreshSnapshot(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)
	env.addOrder(1, n.ID, time.Date(2026, time.October, 14, 11, 0, 0, 0, msk), domain.OrderProcessing)

	editor, err := env.svc.GetForEditing(context.Background(), n.ID)
	require.NoError(t, err)

	// редактор снимает весь понедельник, занятая среда приходит с кодом 2
	grid := editor.Schedule
	for h := range grid[0] {
		grid[0][h] = int(domain.EditorInactive)
	}

	req := updateRequest(editor.ScheduleVersion, ptr.Ptr(editor.Snapshot))
	req.Schedule = grid

	resp, err := env.svc.Update(context.Background(), n.ID, req)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.ScheduleVersion)
	assert.Equal(t, 0, resp.Schedule[0][0])
	assert.Equal(t, 1, resp.Schedule[2][2])
	assert.Equal(t, "photos/Иванов Иван Иванович.jpg", resp.PhotoPath)
	assert.Equal(t, 1, env.tx.calls)
}

func TestService_Update_ReplacesPhoto(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)

	req := updateRequest(1, nil)
	req.PhotoPath = ptr.Ptr("photos/new.jpg")
	req.QualificationID = 2

	resp, err := env.svc.Update(context.Background(), n.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "photos/new.jpg", resp.PhotoPath)
	assert.Equal(t, int64(2), resp.QualificationID)
}

func TestService_Update_StaleSnapshot(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)

	editor, err := env.svc.GetForEditing(context.Background(), n.ID)
	require.NoError(t, err)

	// пока редактор открыт, клиент бронирует пятницу 15:00
	env.addOrder(5, n.ID, time.Date(2026, time.October, 16, 15, 0, 0, 0, msk), domain.OrderProcessing)

	_, err = env.svc.Update(context.Background(), n.ID, updateRequest(editor.ScheduleVersion, ptr.Ptr(editor.Snapshot)))
	assert.ErrorIs(t, err, ErrScheduleStale)
	assert.Equal(t, []string{staleReasonSnapshot}, env.metrics.staleWrites)
	assert.Equal(t, int64(1), env.notaries.notaries[n.ID].ScheduleVersion)
}

func TestService_Update_CancelledBookingMakesSnapshotStale(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)
	env.addOrder(1, n.ID, time.Date(2026, time.October, 14, 11, 0, 0, 0, msk), domain.OrderProcessing)

	editor, err := env.svc.GetForEditing(context.Background(), n.ID)
	require.NoError(t, err)

	env.orders.orders[0].Status = domain.OrderCancelled

	_, err = env.svc.Update(context.Background(), n.ID, updateRequest(editor.ScheduleVersion, ptr.Ptr(editor.Snapshot)))
	assert.ErrorIs(t, err, ErrScheduleStale)
}

func TestService_Update_CompletedBookingKeepsSnapshot(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)
	env.addOrder(1, n.ID, time.Date(2026, time.October, 14, 11, 0, 0, 0, msk), domain.OrderProcessing)

	editor, err := env.svc.GetForEditing(context.Background(), n.ID)
	require.NoError(t, err)

	// консультация в 11:00 прошла, заказ закрыт, редактор сохраняет в 13:00
	env.orders.orders[0].Status = domain.OrderCompleted
	env.svc.timeProvider = &projector.FixedTimeProvider{At: time.Date(2026, time.October, 14, 13, 0, 0, 0, msk)}

	resp, err := env.svc.Update(context.Background(), n.ID, updateRequest(editor.ScheduleVersion, ptr.Ptr(editor.Snapshot)))
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ScheduleVersion)
	assert.Empty(t, env.metrics.staleWrites)
}

func TestService_Update_ReplacesUndecodableSchedule(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)

	// сетка в БД сохранена под другой hours_per_day и не разбирается
	env.notaries.getErr = fmt.Errorf("GetByID - notary id=%d: %w", n.ID, domain.ErrFormat)

	_, err := env.svc.GetForEditing(context.Background(), n.ID)
	require.ErrorIs(t, err, ErrScheduleCorrupted)

	resp, err := env.svc.Update(context.Background(), n.ID, updateRequest(n.ScheduleVersion, nil))
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ScheduleVersion)
	require.Len(t, resp.Schedule, domain.DaysPerWeek)
	assert.Equal(t, int(domain.EditorActive), resp.Schedule[6][7])

	stored := env.notaries.notaries[n.ID]
	require.NotNil(t, stored.Schedule)
	assert.Equal(t, editorGrid(int(domain.EditorActive)), stored.Schedule.Codes())
	assert.Equal(t, "photos/Иванов Иван Иванович.jpg", stored.PhotoPath)
}

func TestService_Update_WithoutSnapshotSkipsCheck(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)
	env.addOrder(5, n.ID, time.Date(2026, time.October, 16, 15, 0, 0, 0, msk), domain.OrderProcessing)

	resp, err := env.svc.Update(context.Background(), n.ID, updateRequest(1, nil))
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ScheduleVersion)
}

func TestService_Update_VersionConflict(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван Иванович", 1)

	_, err := env.svc.Update(context.Background(), n.ID, updateRequest(1, nil))
	require.NoError(t, err)

	// второй редактор открыл версию 1 до первой записи
	_, err = env.svc.Update(context.Background(), n.ID, updateRequest(1, nil))
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, []string{staleReasonVersion}, env.metrics.staleWrites)
}

func TestService_Update_Errors(t *testing.T) {
	tests := []struct {
		name     string
		notaryID int64
		modify   func(r *models.UpdateNotaryRequest)
		wantErr  error
	}{
		{
			name:     "unknown notary",
			notaryID: 99,
			modify:   func(r *models.UpdateNotaryRequest) {},
			wantErr:  ErrNotaryNotFound,
		},
		{
			name:     "invalid snapshot",
			notaryID: 1,
			modify:   func(r *models.UpdateNotaryRequest) { r.Snapshot = ptr.Ptr("garbage") },
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "missing version",
			notaryID: 1,
			modify:   func(r *models.UpdateNotaryRequest) { r.ScheduleVersion = 0 },
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "unknown qualification",
			notaryID: 1,
			modify:   func(r *models.UpdateNotaryRequest) { r.QualificationID = 77 },
			wantErr:  ErrQualificationNotFound,
		},
		{
			name:     "bad code",
			notaryID: 1,
			modify:   func(r *models.UpdateNotaryRequest) { r.Schedule[0][0] = -1 },
			wantErr:  ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, projector.PolicyStrict)
			env.seedNotary(t, "Иванов Иван Иванович", 1)

			req := updateRequest(1, nil)
			tt.modify(req)

			_, err := env.svc.Update(context.Background(), tt.notaryID, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_List_Filters(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	env.seedNotary(t, "Иванов Иван", 1)
	env.seedNotary(t, "Петрова Мария", 2)
	env.seedNotary(t, "Иваненко Олег", 2)

	all, err := env.svc.List(context.Background(), &models.ListNotariesRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Notaries, 3)

	byQualification, err := env.svc.List(context.Background(), &models.ListNotariesRequest{QualificationID: ptr.Ptr(int64(2))})
	require.NoError(t, err)
	assert.Len(t, byQualification.Notaries, 2)
	assert.Equal(t, "Старший нотариус", byQualification.Notaries[0].QualificationName)

	byFIO, err := env.svc.List(context.Background(), &models.ListNotariesRequest{SearchFIO: ptr.Ptr("иван")})
	require.NoError(t, err)
	require.Len(t, byFIO.Notaries, 2)
	assert.Equal(t, "Иванов Иван", byFIO.Notaries[0].FIO)

	_, err = env.svc.List(context.Background(), &models.ListNotariesRequest{QualificationID: ptr.Ptr(int64(-1))})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListForSelect(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	env.seedNotary(t, "Иванов Иван", 1)
	env.seedNotary(t, "Петрова Мария", 2)

	resp, err := env.svc.ListForSelect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.NotarySelectItem{
		{ID: 1, FIO: "Иванов Иван", Coefficient: 1.0},
		{ID: 2, FIO: "Петрова Мария", Coefficient: 1.5},
	}, resp.Notaries)
}

func TestService_Delete(t *testing.T) {
	env := newTestEnv(t, projector.PolicyStrict)
	n := env.seedNotary(t, "Иванов Иван", 1)

	require.NoError(t, env.svc.Delete(context.Background(), n.ID, testUserID))
	assert.Empty(t, env.notaries.notaries)

	err := env.svc.Delete(context.Background(), n.ID, testUserID)
	assert.ErrorIs(t, err, ErrNotaryNotFound)

	err = env.svc.Delete(context.Background(), n.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
