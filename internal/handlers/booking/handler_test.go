package booking_test

import (
	"chappbooking/infras/otel/mocks"
	bookingMocks "chappbooking/internal/domains/booking/mocks"
	"chappbooking/internal/domains/booking/model/dto"
	"chappbooking/internal/handlers/booking"
	"chappbooking/shared/failure"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*chi.Mux, *bookingMocks.MockBookingService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockService := bookingMocks.NewMockBookingService(ctrl)

	handler := booking.New(mockService, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return router, mockService
}

var stored = dto.BookingResponse{
	ID:               5,
	StartDate:        "2025-07-01",
	EndDate:          "2025-07-02",
	NumGuest:         2,
	ContactName:      "Ana",
	ContactEmail:     "ana@example.com",
	ContactPhone:     "600000000",
	Amount:           "80.00",
	BookingReference: "abcdefghij0123456789",
	RoomType:         3,
}

func TestHandler_CreateBooking(t *testing.T) {
	validBody := `{"start_date":"2025-07-01","end_date":"2025-07-02","room_type":3,"num_guest":2,` +
		`"contact_name":"Ana","contact_email":"ana@example.com","contact_phone":"600000000","amount":"0.01"}`

	tests := []struct {
		name      string
		body      string
		setupMock func(mockService *bookingMocks.MockBookingService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "created",
			body: validBody,
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
						assert.Equal(t, int64(3), *req.RoomType)

						return stored, nil
					})
			},
			wantCode: http.StatusCreated,
			wantBody: `{"id":5,"start_date":"2025-07-01","end_date":"2025-07-02","num_guest":2,"contact_name":"Ana",` +
				`"contact_email":"ana@example.com","contact_phone":"600000000","amount":"80.00",` +
				`"booking_reference":"abcdefghij0123456789","room_number":null,"room_type":3}`,
		},
		{
			name:      "request shape errors",
			body:      `{"start_date":"2025-07-01","room_type":3,"contact_name":"Ana","contact_email":"ana@example.com","contact_phone":"600000000"}`,
			setupMock: func(_ *bookingMocks.MockBookingService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  `{"end_date":["end_date is required"]}`,
		},
		{
			name:      "malformed json",
			body:      `{"start_date":`,
			setupMock: func(_ *bookingMocks.MockBookingService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "rule violation",
			body: validBody,
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(dto.BookingResponse{}, failure.Validation("start_date", "start date can't be before today"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"start_date":["start date can't be before today"]}`,
		},
		{
			name: "storage error",
			body: validBody,
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(dto.BookingResponse{}, errors.New("failed to create booking"))
			},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"failed to create booking"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)
			tt.setupMock(mockService)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/booking", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_GetBookings(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().GetUpcoming(gomock.Any()).Return([]dto.BookingResponse{stored}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/booking", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var res []dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []dto.BookingResponse{stored}, res)
}

func TestHandler_GetBookingByID(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		setupMock func(mockService *bookingMocks.MockBookingService)
		wantCode  int
	}{
		{
			name: "found",
			path: "/v1/booking/5",
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().Get(gomock.Any(), int64(5)).Return(stored, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "not found",
			path: "/v1/booking/6",
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().Get(gomock.Any(), int64(6)).Return(dto.BookingResponse{}, failure.NotFound("booking not found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "invalid id",
			path:      "/v1/booking/x1",
			setupMock: func(_ *bookingMocks.MockBookingService) {},
			wantCode:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)
			tt.setupMock(mockService)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_UpdateBooking(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(mockService *bookingMocks.MockBookingService)
		wantCode  int
	}{
		{
			name: "returns stored booking",
			body: `{"num_guest":4,"contact_name":"Someone Else"}`,
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().Update(gomock.Any(), gomock.Any(), int64(5)).Return(stored, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "invalid body",
			body:      `{"end_date":"2 July"}`,
			setupMock: func(_ *bookingMocks.MockBookingService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not found",
			body: `{}`,
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().Update(gomock.Any(), gomock.Any(), int64(5)).Return(dto.BookingResponse{}, failure.NotFound("booking not found"))
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)
			tt.setupMock(mockService)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/booking/5", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"contact_name":"Ana"`)
			}
		})
	}
}
