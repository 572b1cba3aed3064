package booking

import (
	"chappbooking/infras/otel"
	"chappbooking/internal/domains/booking/model"
	"chappbooking/internal/domains/booking/model/dto"
	"chappbooking/internal/domains/booking/service"
	"chappbooking/shared"
	"chappbooking/shared/constant"
	"chappbooking/shared/logger"
	"chappbooking/shared/validator"
	"chappbooking/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/booking", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Put("/{id}", handler.UpdateBooking)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Validates the dates, guests and availability, then stores the booking with a computed amount and a random booking_reference.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} response.FieldErrors
// @Failure 500 {object} response.Error
// @Router /v1/booking [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Failure(err, "failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		logger.Failure(err, "failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created with reference " + booking.BookingReference)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings lists upcoming bookings.
// @Summary Get upcoming bookings
// @Description Bookings whose end_date is today or later, ordered by end_date.
// @Tags Booking
// @Produce json
// @Success 200 {array} dto.BookingResponse
// @Failure 500 {object} response.Error
// @Router /v1/booking [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	bookings, err := handler.service.GetUpcoming(ctx)
	if err != nil {
		scope.TraceError(err)
		logger.Failure(err, "failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent(strconv.Itoa(len(bookings)) + " upcoming bookings retrieved")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/booking/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID), model.EntityName)
	if err != nil {
		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		logger.Failure(err, "failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking accepts an update and returns the stored booking without changing it.
// @Summary Update a booking
// @Description Bookings are immutable once created; the stored booking is returned as is.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} response.FieldErrors
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/booking/{id} [put]
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID), model.EntityName)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Failure(err, "failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		logger.Failure(err, "failed to update booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}
