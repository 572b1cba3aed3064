package repository_test

import (
	"chappbooking/infras/otel/mocks"
	"chappbooking/infras/postgres"
	"chappbooking/internal/domains/booking/model"
	"chappbooking/internal/domains/booking/repository"
	"chappbooking/shared/clock"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const bookingColumns = "bookings.id, bookings.start_date, bookings.end_date, bookings.room_type_id, bookings.num_guest, " +
	"bookings.contact_name, bookings.contact_email, bookings.contact_phone, bookings.amount, bookings.booking_reference, " +
	"bookings.room_number, bookings.created_at, bookings.modified_at"

func newRepository(t *testing.T) (repository.Booking, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{
		Read:  sqlxDB,
		Write: sqlxDB,
	}

	return repository.New(conn, mocks.NewOtel()), sqlxDB, mock
}

func TestRepository_InsertTx(t *testing.T) {
	repo, db, mock := newRepository(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	booking := model.Booking{
		StartDate:        clock.Date(2025, 7, 1),
		EndDate:          clock.Date(2025, 7, 2),
		RoomTypeID:       3,
		NumGuest:         2,
		ContactName:      "Ana",
		ContactEmail:     "ana@example.com",
		ContactPhone:     "600000000",
		Amount:           decimal.NewFromInt(80),
		BookingReference: "abcdefghij0123456789",
	}
	booking.CreatedAt = now
	booking.ModifiedAt = now

	query := regexp.QuoteMeta("INSERT INTO bookings (start_date, end_date, room_type_id, num_guest, contact_name, contact_email, " +
		"contact_phone, amount, booking_reference, room_number, created_at, modified_at) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id")

	mock.ExpectBegin()
	mock.ExpectQuery(query).
		WithArgs(booking.StartDate, booking.EndDate, int64(3), 2, "Ana", "ana@example.com", "600000000",
			booking.Amount, "abcdefghij0123456789", nil, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	assert.NoError(t, err)

	id, err := repo.InsertTx(context.Background(), tx, booking)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Lock(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "takes the advisory lock",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
					WithArgs(int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "lock error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
					WillReturnError(errors.New("deadlock detected"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, db, mock := newRepository(t)

			mock.ExpectBegin()
			tt.setupMock(mock)
			mock.ExpectRollback()

			tx, err := db.Beginx()
			assert.NoError(t, err)

			err = repo.Lock(context.Background(), tx, 3)
			assert.NoError(t, tx.Rollback())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetAllUpcoming(t *testing.T) {
	repo, _, mock := newRepository(t)

	query := regexp.QuoteMeta("SELECT " + bookingColumns + " FROM bookings WHERE (bookings.end_date >= $1) " +
		"ORDER BY bookings.end_date ASC, bookings.id ASC")

	mock.ExpectPrepare(query).ExpectQuery().
		WithArgs("2025-07-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date", "room_type_id", "amount", "room_number"}).
			AddRow(1, clock.Date(2025, 7, 1), clock.Date(2025, 7, 1), 3, "20.00", nil).
			AddRow(2, clock.Date(2025, 6, 28), clock.Date(2025, 7, 4), 3, "140.00", 7))

	bookings, err := repo.GetAll(context.Background(), repository.UpcomingOrder(), repository.FilterUpcoming("2025-07-01"))

	assert.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.Nil(t, bookings[0].RoomNumber)
	assert.Equal(t, 7, *bookings[1].RoomNumber)
	assert.Equal(t, "140.00", bookings[1].Amount.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
