package roomtype

import (
	"chappbooking/infras/otel"
	"chappbooking/internal/domains/roomtype/model"
	"chappbooking/internal/domains/roomtype/model/dto"
	"chappbooking/internal/domains/roomtype/service"
	"chappbooking/shared"
	"chappbooking/shared/constant"
	"chappbooking/shared/logger"
	"chappbooking/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.RoomType
	otel    otel.Otel
}

func New(service service.RoomType, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/room-type", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRoomTypes)
		routerGroup.Get("/{id}", handler.GetRoomTypeByID)
	})
}

// GetRoomTypes lists room types with their empty rooms for a date range.
// @Summary List room types
// @Description List room types that are not removed. empty_rooms is computed only when both start_date and end_date are given, otherwise it is 0.
// @Tags RoomType
// @Produce json
// @Param num_guest query int false "Minimum guest capacity"
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} dto.RoomTypeResponse
// @Failure 400 {object} response.FieldErrors
// @Failure 500 {object} response.Error
// @Router /v1/room-type [get]
func (handler *Handler) GetRoomTypes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypes")
	defer scope.End()

	req := dto.GetRoomTypesRequest{}

	if err := req.FromRequest(r); err != nil {
		scope.TraceError(err)
		logger.Failure(err, "invalid room type query")

		response.WithError(w, err)

		return
	}

	roomTypes, err := handler.service.GetAll(ctx, req)
	if err != nil {
		scope.TraceError(err)
		logger.Failure(err, "failed to get room types")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, roomTypes)
}

// GetRoomTypeByID retrieves a room type.
// @Summary Get a room type by ID
// @Tags RoomType
// @Produce json
// @Param id path int true "Room type ID"
// @Success 200 {object} dto.RoomTypeResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-type/{id} [get]
func (handler *Handler) GetRoomTypeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypeByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID), model.EntityName)
	if err != nil {
		response.WithError(w, err)

		return
	}

	roomType, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		logger.Failure(err, "failed to get room type by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, roomType)
}
