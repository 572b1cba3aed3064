package dto

import (
	"chappbooking/internal/domains/booking/model"
	gModel "chappbooking/shared/model"
	"fmt"
	"time"
)

const defaultNumGuest = 1

// CreateBookingRequest is the client payload. amount, booking_reference and room_number are not accepted.
type CreateBookingRequest struct {
	StartDate    string `json:"start_date"    validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date"      validate:"required,datetime=2006-01-02"`
	RoomType     *int64 `json:"room_type"     validate:"required"`
	NumGuest     *int   `json:"num_guest"     validate:"omitempty,min=1"`
	ContactName  string `json:"contact_name"  validate:"required,max=200"`
	ContactEmail string `json:"contact_email" validate:"required,max=200"`
	ContactPhone string `json:"contact_phone" validate:"required,max=20"`
}

// ToModel builds the unsaved booking. Amount and reference are filled in by the service.
func (c *CreateBookingRequest) ToModel(now time.Time) (model.Booking, error) {
	startDate, err := time.Parse(time.DateOnly, c.StartDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to parse start_date: %w", err)
	}

	endDate, err := time.Parse(time.DateOnly, c.EndDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to parse end_date: %w", err)
	}

	numGuest := defaultNumGuest
	if c.NumGuest != nil {
		numGuest = *c.NumGuest
	}

	var roomTypeID int64
	if c.RoomType != nil {
		roomTypeID = *c.RoomType
	}

	return model.Booking{
		StartDate:    startDate,
		EndDate:      endDate,
		RoomTypeID:   roomTypeID,
		NumGuest:     numGuest,
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}, nil
}

// UpdateBookingRequest is accepted for shape only; updates never change a stored booking.
type UpdateBookingRequest struct {
	StartDate    string `json:"start_date"    validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `json:"end_date"      validate:"omitempty,datetime=2006-01-02"`
	RoomType     *int64 `json:"room_type"     validate:"omitempty"`
	NumGuest     *int   `json:"num_guest"     validate:"omitempty,min=1"`
	ContactName  string `json:"contact_name"  validate:"omitempty,max=200"`
	ContactEmail string `json:"contact_email" validate:"omitempty,max=200"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,max=20"`
}

type BookingResponse struct {
	ID               int64  `json:"id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	NumGuest         int    `json:"num_guest"`
	ContactName      string `json:"contact_name"`
	ContactEmail     string `json:"contact_email"`
	ContactPhone     string `json:"contact_phone"`
	Amount           string `json:"amount"`
	BookingReference string `json:"booking_reference"`
	RoomNumber       *int   `json:"room_number"`
	RoomType         int64  `json:"room_type"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.StartDate = model.StartDate.Format(time.DateOnly)
	r.EndDate = model.EndDate.Format(time.DateOnly)
	r.NumGuest = model.NumGuest
	r.ContactName = model.ContactName
	r.ContactEmail = model.ContactEmail
	r.ContactPhone = model.ContactPhone
	r.Amount = model.Amount.StringFixed(2)
	r.BookingReference = model.BookingReference
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomTypeID
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
