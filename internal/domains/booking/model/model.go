package model

import (
	"chappbooking/shared/clock"
	"chappbooking/shared/model"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
	FieldRoomTypeID       = "room_type_id"
	FieldNumGuest         = "num_guest"
	FieldContactName      = "contact_name"
	FieldContactEmail     = "contact_email"
	FieldContactPhone     = "contact_phone"
	FieldAmount           = "amount"
	FieldBookingReference = "booking_reference"
	FieldRoomNumber       = "room_number"
)

const (
	ReferenceLength   = 20
	referenceAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type Booking struct {
	ID               int64           `db:"id"                readonly:"true"`
	StartDate        time.Time       `db:"start_date"`
	EndDate          time.Time       `db:"end_date"`
	RoomTypeID       int64           `db:"room_type_id"`
	NumGuest         int             `db:"num_guest"`
	ContactName      string          `db:"contact_name"`
	ContactEmail     string          `db:"contact_email"`
	ContactPhone     string          `db:"contact_phone"`
	Amount           decimal.Decimal `db:"amount"`
	BookingReference string          `db:"booking_reference"`
	RoomNumber       *int            `db:"room_number"`
	model.Metadata
}

// Nights counts both endpoints, so a same-day booking is one night.
func (b Booking) Nights() int64 {
	return int64(clock.DateOf(b.EndDate).Sub(clock.DateOf(b.StartDate))/(24*time.Hour)) + 1
}

func (b Booking) CalculateAmount(nightly decimal.Decimal) decimal.Decimal {
	return nightly.Mul(decimal.NewFromInt(b.Nights()))
}

// NewReference returns ReferenceLength random characters from [a-zA-Z0-9].
func NewReference() (string, error) {
	size := big.NewInt(int64(len(referenceAlphabet)))
	ref := make([]byte, ReferenceLength)

	for i := range ref {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to generate booking reference: %w", err)
		}

		ref[i] = referenceAlphabet[n.Int64()]
	}

	return string(ref), nil
}
