package service_test

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"donmario/config"
	kafkaMocks "donmario/infras/kafka/mocks"
	"donmario/infras/otel/mocks"
	reservationMocks "donmario/internal/domains/reservation/mocks"
	"donmario/internal/domains/reservation/model"
	"donmario/internal/domains/reservation/model/dto"
	"donmario/internal/domains/reservation/repository"
	"donmario/internal/domains/reservation/service"
	tableMocks "donmario/internal/domains/table/mocks"
	tableModel "donmario/internal/domains/table/model"
	cacheMocks "donmario/shared/cache/mocks"
	"donmario/shared/constant"
	gDto "donmario/shared/dto"
	"donmario/shared/failure"
	gModel "donmario/shared/model"
	"donmario/shared/timezone"
)

// newCacheMock returns a cache mock that always misses so the services fall
// through to their repositories. The write-behind calls run in goroutines, so
// they are allowed any number of times.
func newCacheMock(ctrl *gomock.Controller) *cacheMocks.MockRedisCache {
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return mockCache
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return cfg
}

func availableTables(ids ...int64) []tableModel.Table {
	tables := make([]tableModel.Table, len(ids))
	for i, id := range ids {
		tables[i] = tableModel.Table{
			ID:        id,
			Capacity:  4,
			Available: true,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
			},
		}
	}

	return tables
}

func validCreateRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		CustomerName:  "Marta Diaz",
		CustomerEmail: "marta@example.com",
		Date:          "2026-09-15",
		Time:          "20:30",
		PartySize:     4,
	}
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := newCacheMock(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTableRepo, newTestConfig(), mockCache, mockKafka, mockOtel, rand.New(rand.NewSource(1)))

	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantKind  string
		wantCode  int
		check     func(t *testing.T, res dto.ReservationResponse)
	}{
		{
			name: "assigns the only available table",
			req:  validCreateRequest(),
			ctx:  context.Background(),
			setupMock: func() {
				mockTableRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(availableTables(5), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)

				mockRepo.EXPECT().
					ClaimAndInsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, res model.Reservation) (int64, error) {
						assert.Equal(t, int64(5), res.TableID)
						assert.Equal(t, constant.ReservationStatusActive, res.Status)
						assert.Equal(t, constant.OriginatorClient, res.ReservedBy)

						return 1, nil
					})
			},
			check: func(t *testing.T, res dto.ReservationResponse) {
				assert.Equal(t, int64(1), res.ID)
				assert.Equal(t, int64(5), res.TableID)
				assert.Equal(t, constant.ReservationStatusActive, res.Status)
			},
		},
		{
			name: "admin token yields admin originator",
			req:  validCreateRequest(),
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleAdmin),
			setupMock: func() {
				mockTableRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(availableTables(2), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)

				mockRepo.EXPECT().
					ClaimAndInsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, res model.Reservation) (int64, error) {
						assert.Equal(t, constant.OriginatorAdmin, res.ReservedBy)

						return 2, nil
					})
			},
			check: func(t *testing.T, res dto.ReservationResponse) {
				assert.Equal(t, constant.OriginatorAdmin, res.ReservedBy)
			},
		},
		{
			name: "no tables available",
			req:  validCreateRequest(),
			ctx:  context.Background(),
			setupMock: func() {
				mockTableRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]tableModel.Table{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNoTablesAvailable,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "active reservation conflict reports table and date",
			req:  validCreateRequest(),
			ctx:  context.Background(),
			setupMock: func() {
				mockTableRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(availableTables(7), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{ID: 3, TableID: 7, Date: "2026-09-15", Status: constant.ReservationStatusActive}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindTableAlreadyReserved,
			wantCode: http.StatusConflict,
		},
		{
			name: "concurrent claim loss surfaces conflict",
			req:  validCreateRequest(),
			ctx:  context.Background(),
			setupMock: func() {
				mockTableRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(availableTables(4), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)

				mockRepo.EXPECT().
					ClaimAndInsert(gomock.Any(), gomock.Any()).
					Return(int64(0), repository.ErrTableUnavailable)
			},
			wantErr:  true,
			wantKind: failure.KindTableAlreadyReserved,
			wantCode: http.StatusConflict,
		},
		{
			name: "table listing error",
			req:  validCreateRequest(),
			ctx:  context.Background(),
			setupMock: func() {
				mockTableRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr:  true,
			wantKind: failure.KindPersistence,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "insert error",
			req:  validCreateRequest(),
			ctx:  context.Background(),
			setupMock: func() {
				mockTableRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(availableTables(9), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)

				mockRepo.EXPECT().
					ClaimAndInsert(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantErr:  true,
			wantKind: failure.KindPersistence,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestReservationService_CreateConflictMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := newCacheMock(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTableRepo, newTestConfig(), mockCache, mockKafka, mockOtel, rand.New(rand.NewSource(1)))

	mockTableRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(availableTables(12), nil)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Reservation{ID: 8, TableID: 12, Date: "2026-09-15", Status: constant.ReservationStatusActive}, nil)

	_, err := svc.Create(context.Background(), validCreateRequest())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "12")
	assert.Contains(t, err.Error(), "2026-09-15")
}

func TestReservationService_CreatePublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := newCacheMock(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := newTestConfig()
	cfg.Kafka.Enable = true
	cfg.Kafka.Topics.ReservationCreated = "reservation.created"

	svc := service.New(mockRepo, mockTableRepo, cfg, mockCache, mockKafka, mockOtel, rand.New(rand.NewSource(1)))

	mockTableRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(availableTables(3), nil)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Reservation{}, nil)

	mockRepo.EXPECT().
		ClaimAndInsert(gomock.Any(), gomock.Any()).
		Return(int64(10), nil)

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "reservation.created", gomock.Any()).
		Return(nil)

	res, err := svc.Create(context.Background(), validCreateRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(10), res.ID)
}

func TestReservationService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := newCacheMock(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTableRepo, newTestConfig(), mockCache, mockKafka, mockOtel, rand.New(rand.NewSource(1)))

	active := model.Reservation{
		ID:           42,
		CustomerName: "Marta Diaz",
		Date:         "2026-09-15",
		Time:         "20:30",
		PartySize:    4,
		TableID:      5,
		Status:       constant.ReservationStatusActive,
		ReservedBy:   constant.OriginatorClient,
	}

	cancelled := active
	cancelled.Status = constant.ReservationStatusCancelled

	tests := []struct {
		name      string
		id        int64
		setupMock func()
		wantErr   bool
		wantKind  string
		wantCode  int
	}{
		{
			name: "successful cancel",
			id:   42,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(active, nil)

				mockRepo.EXPECT().
					CancelAndRelease(gomock.Any(), int64(42), int64(5)).
					Return(nil)
			},
		},
		{
			name: "cancel of already cancelled reservation succeeds",
			id:   42,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)

				mockRepo.EXPECT().
					CancelAndRelease(gomock.Any(), int64(42), int64(5)).
					Return(nil)
			},
		},
		{
			name: "unknown id",
			id:   999,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			id:   42,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(active, nil)

				mockRepo.EXPECT().
					CancelAndRelease(gomock.Any(), int64(42), int64(5)).
					Return(errors.New("database error"))
			},
			wantErr:  true,
			wantKind: failure.KindPersistence,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Cancel(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, constant.ReservationStatusCancelled, res.Status)
		})
	}
}

func TestReservationService_CancelRefreshesModifiedAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := newCacheMock(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTableRepo, newTestConfig(), mockCache, mockKafka, mockOtel, rand.New(rand.NewSource(1)))

	staleTime := timezone.Now().Add(-48 * time.Hour)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Reservation{
			ID:      42,
			TableID: 5,
			Status:  constant.ReservationStatusActive,
			Metadata: gModel.Metadata{
				CreatedAt:  staleTime,
				ModifiedAt: staleTime,
			},
		}, nil)

	mockRepo.EXPECT().
		CancelAndRelease(gomock.Any(), int64(42), int64(5)).
		Return(nil)

	res, err := svc.Cancel(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, constant.ReservationStatusCancelled, res.Status)
	assert.NotEqual(t, timezone.Format(staleTime, constant.DateFormat), res.ModifiedAt)
}

func TestReservationService_Occupancy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := newCacheMock(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTableRepo, newTestConfig(), mockCache, mockKafka, mockOtel, rand.New(rand.NewSource(1)))

	tests := []struct {
		name           string
		date           string
		totalTables    int
		activeCount    int
		wantPercentage string
		wantFree       int
	}{
		{
			name:           "ten tables three active",
			date:           "2026-09-15",
			totalTables:    10,
			activeCount:    3,
			wantPercentage: "30.00",
			wantFree:       7,
		},
		{
			name:           "no tables",
			date:           "2026-09-15",
			totalTables:    0,
			activeCount:    0,
			wantPercentage: "0.00",
			wantFree:       0,
		},
		{
			name:           "full house",
			date:           "2026-09-15",
			totalTables:    4,
			activeCount:    4,
			wantPercentage: "100.00",
			wantFree:       0,
		},
		{
			name:           "fractional percentage",
			date:           "2026-09-15",
			totalTables:    3,
			activeCount:    1,
			wantPercentage: "33.33",
			wantFree:       2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTableRepo.EXPECT().
				Count(gomock.Any(), gomock.Any()).
				Return(tt.totalTables, nil)

			mockRepo.EXPECT().
				Count(gomock.Any(), gomock.Any()).
				Return(tt.activeCount, nil)

			res, err := svc.Occupancy(context.Background(), tt.date)

			assert.NoError(t, err)
			assert.Equal(t, tt.date, res.Date)
			assert.Equal(t, tt.totalTables, res.TotalTables)
			assert.Equal(t, tt.activeCount, res.Occupied)
			assert.Equal(t, tt.wantFree, res.Free)
			assert.Equal(t, tt.wantPercentage, res.Percentage)
		})
	}
}

func TestReservationService_OccupancyDefaultsToToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := newCacheMock(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTableRepo, newTestConfig(), mockCache, mockKafka, mockOtel, rand.New(rand.NewSource(1)))

	mockTableRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	res, err := svc.Occupancy(context.Background(), "")

	assert.NoError(t, err)
	assert.Equal(t, timezone.Today(constant.ReservationDateFormat), res.Date)
}

func TestReservationService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := newCacheMock(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTableRepo, newTestConfig(), mockCache, mockKafka, mockOtel, rand.New(rand.NewSource(1)))

	tests := []struct {
		name      string
		id        int64
		setupMock func()
		wantErr   bool
		wantKind  string
	}{
		{
			name: "found",
			id:   1,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{ID: 1, TableID: 5, Status: constant.ReservationStatusActive}, nil)
			},
		},
		{
			name: "not found",
			id:   999,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.id, res.ID)
		})
	}
}

func TestReservationService_GetCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTableRepo, newTestConfig(), mockCache, mockKafka, mockOtel, rand.New(rand.NewSource(1)))

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			cached, ok := value.(*dto.ReservationResponse)
			assert.True(t, ok)

			cached.ID = 1
			cached.TableID = 5
			cached.Status = constant.ReservationStatusActive

			return nil
		})

	res, err := svc.Get(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), res.ID)
	assert.Equal(t, int64(5), res.TableID)
}

func TestReservationService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := newCacheMock(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockTableRepo, newTestConfig(), mockCache, mockKafka, mockOtel, rand.New(rand.NewSource(1)))

	params := gDto.QueryParams{Page: 1, Limit: 10}

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Reservation{
			{ID: 1, TableID: 5, Status: constant.ReservationStatusActive},
			{ID: 2, TableID: 6, Status: constant.ReservationStatusCancelled},
		}, nil)

	res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Reservations, 2)
}
