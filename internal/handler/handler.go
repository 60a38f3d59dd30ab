// Package handler exposes the booking flow over HTTP.  Every step of the
// site maps to a few JSON endpoints; the flow parameters travel in the query
// string exactly as the pages passed them along.
package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/catalogue"
	"github.com/iliyamo/cinema-seat-booking/internal/fare"
	"github.com/iliyamo/cinema-seat-booking/internal/flow"
	"github.com/iliyamo/cinema-seat-booking/internal/payment"
	"github.com/iliyamo/cinema-seat-booking/internal/seating"
	"github.com/iliyamo/cinema-seat-booking/internal/snack"
)

// Validator adapts validator/v10 to echo.Validator.
type Validator struct {
	v *validator.Validate
}

func NewValidator(v *validator.Validate) *Validator {
	if v == nil {
		v = flow.NewValidator()
	}
	return &Validator{v: v}
}

func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// bindParams decodes and validates the flow parameters of the request.
func bindParams(c echo.Context) (flow.Params, error) {
	p := flow.Decode(c.QueryParams())
	if err := c.Validate(&p); err != nil {
		return p, err
	}
	return p, nil
}

// invalidParams answers 400 with the failing fields.
func invalidParams(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid parameters", "fields": fields})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid parameters"})
}

// errorStatus maps domain errors to HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, seating.ErrNotASeat),
		errors.Is(err, fare.ErrUnknownTariff),
		errors.Is(err, snack.ErrUnknownProduct),
		errors.Is(err, snack.ErrUnknownAction),
		errors.Is(err, payment.ErrUnknownMethod):
		return http.StatusBadRequest
	case errors.Is(err, seating.ErrSeatUnavailable):
		return http.StatusConflict
	case errors.Is(err, payment.ErrInvalidCardNumber),
		errors.Is(err, payment.ErrInvalidExpiry),
		errors.Is(err, payment.ErrInvalidCVC):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalogue.ErrFilmNotFound),
		errors.Is(err, catalogue.ErrShowtimeNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// fail writes err as {"error": ...} with its mapped status.  Internal errors
// are not echoed to the client.
func fail(c echo.Context, err error) error {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(status, echo.Map{"error": msg})
}

// nextStep is the hand-over to the following page.
type nextStep struct {
	Step  string `json:"step"`
	Query string `json:"query"`
}

func next(step string, p flow.Params) nextStep {
	return nextStep{Step: step, Query: p.Encode().Encode()}
}
