package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/catalogue"
	"github.com/iliyamo/cinema-seat-booking/internal/fare"
	"github.com/iliyamo/cinema-seat-booking/internal/flow"
	"github.com/iliyamo/cinema-seat-booking/internal/payment"
	"github.com/iliyamo/cinema-seat-booking/internal/seating"
)

func TestErrorStatus(t *testing.T) {
	cases := map[error]int{
		seating.ErrNotASeat:           http.StatusBadRequest,
		fare.ErrUnknownTariff:         http.StatusBadRequest,
		seating.ErrSeatUnavailable:    http.StatusConflict,
		payment.ErrInvalidExpiry:      http.StatusUnprocessableEntity,
		catalogue.ErrShowtimeNotFound: http.StatusNotFound,
		errors.New("disk on fire"):    http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, errorStatus(err), err.Error())
	}
	wrapped := fmt.Errorf("toggle B5: %w", seating.ErrSeatUnavailable)
	assert.Equal(t, http.StatusConflict, errorStatus(wrapped))
}

func TestFail_HidesInternalErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, fail(c, errors.New("dsn user:secret@tcp")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestBindParams(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator(nil)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?film=F&seats=a1,b2&seance=20:15", nil), httptest.NewRecorder())
	p, err := bindParams(c)
	require.NoError(t, err)
	assert.Equal(t, []seating.SeatID{"A1", "B2"}, p.Seats)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/?seats=A01", nil), httptest.NewRecorder())
	_, err = bindParams(c)
	assert.Error(t, err)
}

func TestNext(t *testing.T) {
	n := next("tarif", flow.Params{Film: "F", Room: "2", Seats: []seating.SeatID{"A1"}})
	assert.Equal(t, "tarif", n.Step)
	assert.Contains(t, n.Query, "seats=A1")
	assert.Contains(t, n.Query, "total=0.00")
}
