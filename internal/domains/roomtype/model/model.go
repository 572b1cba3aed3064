package model

import (
	"chappbooking/shared/clock"
	"chappbooking/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "room_types"
	EntityName = "room_type"

	FieldID             = "id"
	FieldDescription    = "description"
	FieldAmount         = "amount"
	FieldMaxGuest       = "max_guest"
	FieldAvailableRooms = "available_rooms"
	FieldIsRemoved      = "is_removed"
)

// Availability modes decide which bookings occupy a room on a given day.
const (
	// AvailabilityModeConfined counts bookings with start_date >= day and end_date <= day.
	AvailabilityModeConfined = "confined"
	// AvailabilityModeOverlap counts every booking whose stay includes day.
	AvailabilityModeOverlap = "overlap"
)

type RoomType struct {
	ID             int64           `db:"id"              readonly:"true"`
	Description    string          `db:"description"`
	Amount         decimal.Decimal `db:"amount"`
	MaxGuest       int             `db:"max_guest"`
	AvailableRooms int             `db:"available_rooms"`
	IsRemoved      bool            `db:"is_removed"`
	model.Metadata
}

// Stay is the inclusive date span of one booking.
type Stay struct {
	Start time.Time `db:"start_date"`
	End   time.Time `db:"end_date"`
}

// Occupies reports whether the stay takes a room on day under mode.
// Confined only holds a room for a stay that starts and ends inside the day, so a multi-day stay never counts.
func (s Stay) Occupies(day time.Time, mode string) bool {
	start, end, day := clock.DateOf(s.Start), clock.DateOf(s.End), clock.DateOf(day)

	if mode == AvailabilityModeOverlap {
		return !start.After(day) && !end.Before(day)
	}

	return !start.Before(day) && !end.After(day)
}

// Occupancy is the number of bookings held against a room type per calendar day, keyed YYYY-MM-DD.
type Occupancy map[string]int

// NewOccupancy counts stays for every day of the inclusive range under mode.
func NewOccupancy(from, to time.Time, stays []Stay, mode string) Occupancy {
	mode, _ = ParseAvailabilityMode(mode)
	occupancy := Occupancy{}

	for day := clock.DateOf(from); !day.After(clock.DateOf(to)); day = day.AddDate(0, 0, 1) {
		booked := 0

		for _, stay := range stays {
			if stay.Occupies(day, mode) {
				booked++
			}
		}

		occupancy[day.Format(time.DateOnly)] = booked
	}

	return occupancy
}

func (o Occupancy) On(day time.Time) int {
	return o[day.Format(time.DateOnly)]
}

// EmptyRooms returns the fewest unbooked rooms on any day of the inclusive range.
// A missing bound or a reversed range yields 0. The result is not floored and can be negative.
func (r RoomType) EmptyRooms(start, end *time.Time, occupancy Occupancy) int {
	if start == nil || end == nil {
		return 0
	}

	from, to := clock.DateOf(*start), clock.DateOf(*end)
	if to.Before(from) {
		return 0
	}

	empty := r.AvailableRooms

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		empty = min(empty, r.AvailableRooms-occupancy.On(day))
	}

	return empty
}

// ParseAvailabilityMode reports whether mode is known; unknown modes resolve to confined.
func ParseAvailabilityMode(mode string) (string, bool) {
	switch mode {
	case AvailabilityModeConfined, AvailabilityModeOverlap:
		return mode, true
	default:
		return AvailabilityModeConfined, false
	}
}
