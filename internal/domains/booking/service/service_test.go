package service_test

import (
	"chappbooking/config"
	kafkaInfra "chappbooking/infras/kafka"
	kafkaMocks "chappbooking/infras/kafka/mocks"
	"chappbooking/infras/otel/mocks"
	bookingMocks "chappbooking/internal/domains/booking/mocks"
	"chappbooking/internal/domains/booking/model"
	"chappbooking/internal/domains/booking/model/dto"
	"chappbooking/internal/domains/booking/service"
	rtMocks "chappbooking/internal/domains/roomtype/mocks"
	rtModel "chappbooking/internal/domains/roomtype/model"
	"chappbooking/shared/cache"
	cacheMocks "chappbooking/shared/cache/mocks"
	"chappbooking/shared/clock"
	gDto "chappbooking/shared/dto"
	"chappbooking/shared/failure"
	repoMocks "chappbooking/shared/repository/mocks"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo         *bookingMocks.MockBooking
	roomTypeRepo *rtMocks.MockRoomType
	validator    *bookingMocks.MockValidator
	transactor   *repoMocks.MockTransactor
	kafka        *kafkaMocks.MockClient
	cache        *cacheMocks.MockRedisCache
	cfg          *config.Config
	svc          service.Booking
}

var now = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		roomTypeRepo: rtMocks.NewMockRoomType(ctrl),
		validator:    bookingMocks.NewMockValidator(ctrl),
		transactor:   repoMocks.NewMockTransactor(ctrl),
		kafka:        kafkaMocks.NewMockClient(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		cfg:          &config.Config{},
	}

	f.cfg.Cache.TTL = 3600
	f.cfg.Kafka.Topics.BookingCreated = "booking.created"

	f.svc = service.New(f.repo, f.roomTypeRepo, f.validator, f.transactor, f.kafka, clock.Fixed(now), f.cfg, f.cache, mocks.NewOtel())

	return f
}

func (f *fixture) runTransaction() {
	f.transactor.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		})
}

func (f *fixture) generation(value string) {
	f.cache.EXPECT().
		Get(gomock.Any(), "booking:generation:upcoming", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, v any) error {
			*v.(*string) = value

			return nil
		})
}

func createRequest() dto.CreateBookingRequest {
	roomType := int64(3)
	guests := 2

	return dto.CreateBookingRequest{
		StartDate:    "2025-07-01",
		EndDate:      "2025-07-02",
		RoomType:     &roomType,
		NumGuest:     &guests,
		ContactName:  "Ana",
		ContactEmail: "ana@example.com",
		ContactPhone: "600000000",
	}
}

func TestBookingService_Create(t *testing.T) {
	roomType := rtModel.RoomType{ID: 3, Amount: decimal.RequireFromString("40.00"), MaxGuest: 2, AvailableRooms: 2}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantErr   bool
		wantCode  int
		wantField map[string][]string
	}{
		{
			name: "successful creation",
			setupMock: func(f *fixture) {
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.runTransaction()
				f.repo.EXPECT().Lock(gomock.Any(), gomock.Any(), int64(3)).Return(nil)
				f.validator.EXPECT().Validate(gomock.Any(), roomType, gomock.Any()).Return(nil)
				f.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) (int64, error) {
						assert.Equal(t, "80.00", booking.Amount.StringFixed(2))
						assert.Len(t, booking.BookingReference, model.ReferenceLength)
						assert.Nil(t, booking.RoomNumber)
						assert.Equal(t, now, booking.CreatedAt)

						return 21, nil
					})
				f.cache.EXPECT().Increment(gomock.Any(), "booking:generation:upcoming", 0).Return(int64(1), nil)
				f.cache.EXPECT().Clear(gomock.Any(), "booking:upcoming*").Return(nil).AnyTimes()
			},
		},
		{
			name: "generation bump failure clears upcoming lists before returning",
			setupMock: func(f *fixture) {
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.runTransaction()
				f.repo.EXPECT().Lock(gomock.Any(), gomock.Any(), int64(3)).Return(nil)
				f.validator.EXPECT().Validate(gomock.Any(), roomType, gomock.Any()).Return(nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(21), nil)
				f.cache.EXPECT().Increment(gomock.Any(), "booking:generation:upcoming", 0).Return(int64(0), errors.New("connection refused"))
				f.cache.EXPECT().Clear(gomock.Any(), "booking:upcoming*").Return(nil).MinTimes(1)
			},
		},
		{
			name: "missing room type",
			setupMock: func(f *fixture) {
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rtModel.RoomType{}, nil)
			},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
			wantField: map[string][]string{"room_type": {`invalid pk "3" - object does not exist`}},
		},
		{
			name: "room type lookup error",
			setupMock: func(f *fixture) {
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rtModel.RoomType{}, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "validation failure persists nothing",
			setupMock: func(f *fixture) {
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.runTransaction()
				f.repo.EXPECT().Lock(gomock.Any(), gomock.Any(), int64(3)).Return(nil)
				f.validator.EXPECT().
					Validate(gomock.Any(), roomType, gomock.Any()).
					Return(failure.Validation("num_guest", service.MessageNoEmptyRooms))
			},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
			wantField: map[string][]string{"num_guest": {service.MessageNoEmptyRooms}},
		},
		{
			name: "lock error",
			setupMock: func(f *fixture) {
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.runTransaction()
				f.repo.EXPECT().Lock(gomock.Any(), gomock.Any(), int64(3)).Return(errors.New("deadlock detected"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "insert error",
			setupMock: func(f *fixture) {
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomType, nil)
				f.runTransaction()
				f.repo.EXPECT().Lock(gomock.Any(), gomock.Any(), int64(3)).Return(nil)
				f.validator.EXPECT().Validate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), createRequest())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantField != nil {
					fields, _ := failure.GetFields(err)
					assert.Equal(t, tt.wantField, fields)
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, int64(21), res.ID)
			assert.Equal(t, "80.00", res.Amount)
			assert.Equal(t, "2025-07-01", res.StartDate)
			assert.Equal(t, int64(3), res.RoomType)
			assert.Nil(t, res.RoomNumber)
		})
	}
}

func TestBookingService_Create_PublishesEvent(t *testing.T) {
	f := newFixture(t)
	f.cfg.Kafka.Enable = true

	roomType := rtModel.RoomType{ID: 3, Amount: decimal.NewFromInt(40), MaxGuest: 2, AvailableRooms: 2}
	published := make(chan kafkaInfra.Message, 1)

	f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomType, nil)
	f.runTransaction()
	f.repo.EXPECT().Lock(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.validator.EXPECT().Validate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(21), nil)
	f.cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 0).Return(int64(1), nil)
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil)
	f.kafka.EXPECT().
		SendMessages(gomock.Any(), "booking.created", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafkaInfra.Message) error {
			published <- messages[0]

			return nil
		})

	_, err := f.svc.Create(context.Background(), createRequest())
	assert.NoError(t, err)

	select {
	case msg := <-published:
		assert.Equal(t, "3", msg.Key)
	case <-time.After(time.Second):
		t.Fatal("booking created event was not published")
	}
}

func TestBookingService_GetUpcoming(t *testing.T) {
	bookings := []model.Booking{
		{ID: 1, StartDate: clock.Date(2025, 6, 15), EndDate: clock.Date(2025, 6, 15), RoomTypeID: 3, Amount: decimal.NewFromInt(40)},
		{ID: 2, StartDate: clock.Date(2025, 6, 10), EndDate: clock.Date(2025, 6, 20), RoomTypeID: 3, Amount: decimal.NewFromInt(440)},
	}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantErr   bool
		wantIDs   []int64
	}{
		{
			name: "cache hit",
			setupMock: func(f *fixture) {
				f.generation("4")
				f.cache.EXPECT().
					Get(gomock.Any(), "booking:upcoming:2025-06-15:4", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*[]dto.BookingResponse) = []dto.BookingResponse{{ID: 9}}

						return nil
					})
			},
			wantIDs: []int64{9},
		},
		{
			name: "cache miss reads from today on",
			setupMock: func(f *fixture) {
				f.generation("4")
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
						where, args := filter.GetWhereClause()

						assert.Equal(t, "(bookings.end_date >= :today)", where)
						assert.Equal(t, "2025-06-15", args["today"])
						assert.Equal(t, "bookings.end_date", params.SortBy)
						assert.Equal(t, gDto.SortDirAsc, params.SortDir)

						return bookings, nil
					})
				f.cache.EXPECT().Save(gomock.Any(), "booking:upcoming:2025-06-15:4", gomock.Any(), 3600).Return(nil).AnyTimes()
			},
			wantIDs: []int64{1, 2},
		},
		{
			name: "no create yet starts at generation zero",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), "booking:generation:upcoming", gomock.Any()).
					Return(fmt.Errorf("failed to get cache value: %w", cache.Nil))
				f.cache.EXPECT().Get(gomock.Any(), "booking:upcoming:2025-06-15:0", gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil)
				f.cache.EXPECT().Save(gomock.Any(), "booking:upcoming:2025-06-15:0", gomock.Any(), 3600).Return(nil).AnyTimes()
			},
			wantIDs: []int64{1, 2},
		},
		{
			name: "unreadable generation bypasses the cache",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), "booking:generation:upcoming", gomock.Any()).
					Return(errors.New("connection refused"))
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil)
			},
			wantIDs: []int64{1, 2},
		},
		{
			name: "no bookings",
			setupMock: func(f *fixture) {
				f.generation("4")
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantIDs: []int64{},
		},
		{
			name: "repository error",
			setupMock: func(f *fixture) {
				f.generation("4")
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetUpcoming(context.Background())

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			ids := make([]int64, len(res))
			for i, booking := range res {
				ids[i] = booking.ID
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

// memoryCache parks list saves until release is closed.
type memoryCache struct {
	cache.RedisCache

	mu      sync.Mutex
	values  map[string]string
	release chan struct{}
	saved   chan string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		values:  map[string]string{},
		release: make(chan struct{}),
		saved:   make(chan string, 8),
	}
}

func (m *memoryCache) Get(_ context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.values[key]
	if !ok {
		return fmt.Errorf("failed to get cache value: %w", cache.Nil)
	}

	if v, ok := value.(*string); ok {
		*v = raw

		return nil
	}

	return json.Unmarshal([]byte(raw), value)
}

func (m *memoryCache) Save(_ context.Context, key string, value any, _ int) error {
	if strings.HasPrefix(key, "booking:upcoming") {
		<-m.release
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.values[key] = string(raw)
	m.mu.Unlock()

	m.saved <- key

	return nil
}

func (m *memoryCache) Increment(_ context.Context, key string, _ int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, _ := strconv.ParseInt(m.values[key], 10, 64)
	n++
	m.values[key] = strconv.FormatInt(n, 10)

	return n, nil
}

func (m *memoryCache) Clear(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.values {
		if strings.HasPrefix(key, strings.TrimSuffix(pattern, "*")) {
			delete(m.values, key)
		}
	}

	return nil
}

func TestBookingService_GetUpcoming_LateSaveAfterCreate(t *testing.T) {
	f := newFixture(t)
	mem := newMemoryCache()
	svc := service.New(f.repo, f.roomTypeRepo, f.validator, f.transactor, f.kafka, clock.Fixed(now), f.cfg, mem, mocks.NewOtel())

	roomType := rtModel.RoomType{ID: 3, Amount: decimal.NewFromInt(40), MaxGuest: 2, AvailableRooms: 2}
	created := model.Booking{ID: 21, StartDate: clock.Date(2025, 7, 1), EndDate: clock.Date(2025, 7, 2), RoomTypeID: 3, Amount: decimal.NewFromInt(40)}

	gomock.InOrder(
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil),
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{created}, nil),
	)
	f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomType, nil)
	f.runTransaction()
	f.repo.EXPECT().Lock(gomock.Any(), gomock.Any(), int64(3)).Return(nil)
	f.validator.EXPECT().Validate(gomock.Any(), roomType, gomock.Any()).Return(nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(21), nil)

	before, err := svc.GetUpcoming(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, before)

	_, err = svc.Create(context.Background(), createRequest())
	assert.NoError(t, err)

	close(mem.release)

	select {
	case key := <-mem.saved:
		assert.Equal(t, "booking:upcoming:2025-06-15:0", key)
	case <-time.After(time.Second):
		t.Fatal("upcoming list was not saved")
	}

	after, err := svc.GetUpcoming(context.Background())
	assert.NoError(t, err)

	if assert.Len(t, after, 1) {
		assert.Equal(t, int64(21), after[0].ID)
	}
}

func TestBookingService_Get(t *testing.T) {
	stored := model.Booking{ID: 5, StartDate: clock.Date(2025, 7, 1), EndDate: clock.Date(2025, 7, 2), RoomTypeID: 3, Amount: decimal.NewFromInt(80)}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "cache miss, successful get from db",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "booking:get:5", gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.cache.EXPECT().Save(gomock.Any(), "booking:get:5", gomock.Any(), 3600).Return(nil).AnyTimes()
			},
		},
		{
			name: "booking not found",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), 5)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, int64(5), res.ID)
			assert.Equal(t, "80.00", res.Amount)
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	stored := model.Booking{ID: 5, StartDate: clock.Date(2025, 7, 1), EndDate: clock.Date(2025, 7, 2), NumGuest: 1, RoomTypeID: 3}
	guests := 4
	req := dto.UpdateBookingRequest{NumGuest: &guests, ContactName: "Someone Else"}

	t.Run("returns the stored booking unchanged", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)

		res, err := f.svc.Update(context.Background(), req, 5)

		assert.NoError(t, err)
		assert.Equal(t, 1, res.NumGuest)
		assert.Equal(t, "", res.ContactName)
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Update(context.Background(), req, 5)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
