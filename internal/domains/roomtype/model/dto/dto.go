package dto

import (
	"chappbooking/internal/domains/roomtype/model"
	"chappbooking/shared/constant"
	"chappbooking/shared/failure"
	"chappbooking/shared/validator"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const dateTag = "datetime=" + time.DateOnly

// GetRoomTypesRequest holds the optional listing filters. Availability is only computed when both dates are set.
type GetRoomTypesRequest struct {
	NumGuest  *int
	StartDate *time.Time
	EndDate   *time.Time
}

// FromRequest reads num_guest, start_date and end_date from the query string, reporting every malformed value.
func (g *GetRoomTypesRequest) FromRequest(r *http.Request) error {
	query := r.URL.Query()
	errs := map[string][]string{}

	if raw := query.Get(constant.RequestParamNumGuest); raw != constant.Empty {
		numGuest, err := parseInt(constant.RequestParamNumGuest, raw)
		if err != nil {
			collect(errs, err)
		} else {
			g.NumGuest = &numGuest
		}
	}

	g.StartDate = parseDate(query, constant.RequestParamStartDate, errs)
	g.EndDate = parseDate(query, constant.RequestParamEndDate, errs)

	return failure.ValidationFields(errs) //nolint:wrapcheck
}

// Range returns the availability window, nil unless both bounds are present.
func (g *GetRoomTypesRequest) Range() (start, end *time.Time) {
	if g.StartDate == nil || g.EndDate == nil {
		return nil, nil
	}

	return g.StartDate, g.EndDate
}

func parseInt(name, raw string) (int, error) {
	if err := validator.ValidateField(name, raw, "number"); err != nil {
		return 0, err //nolint:wrapcheck
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, failure.Validation(name, fmt.Sprintf("%s is out of range", name)) //nolint:wrapcheck
	}

	return value, nil
}

func parseDate(query url.Values, name string, errs map[string][]string) *time.Time {
	raw := query.Get(name)
	if raw == constant.Empty {
		return nil
	}

	if err := validator.ValidateField(name, raw, dateTag); err != nil {
		collect(errs, err)

		return nil
	}

	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		collect(errs, failure.Validation(name, err.Error()))

		return nil
	}

	return &date
}

func collect(errs map[string][]string, err error) {
	fields, ok := failure.GetFields(err)
	if !ok {
		errs["non_field_errors"] = append(errs["non_field_errors"], err.Error())

		return
	}

	for field, msgs := range fields {
		errs[field] = append(errs[field], msgs...)
	}
}

type RoomTypeResponse struct {
	ID             int64  `json:"id"`
	EmptyRooms     int    `json:"empty_rooms"`
	IsRemoved      bool   `json:"is_removed"`
	Description    string `json:"description"`
	Amount         string `json:"amount"`
	MaxGuest       int    `json:"max_guest"`
	AvailableRooms int    `json:"available_rooms"`
}

func (r *RoomTypeResponse) FromModel(model model.RoomType, emptyRooms int) {
	r.ID = model.ID
	r.EmptyRooms = emptyRooms
	r.IsRemoved = model.IsRemoved
	r.Description = model.Description
	r.Amount = model.Amount.StringFixed(2)
	r.MaxGuest = model.MaxGuest
	r.AvailableRooms = model.AvailableRooms
}
