// Package payment checks the payment form.  Nothing is charged: a valid
// form is all it takes to get a ticket.
package payment

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrInvalidExpiry     = errors.New("invalid or past expiry date")
	ErrInvalidCVC        = errors.New("invalid security code")
	ErrUnknownMethod     = errors.New("unknown payment method")
)

// Payment methods.
const (
	MethodCard   = "card"
	MethodGPay   = "gpay"
	MethodPayPal = "paypal"
)

// Card brands.
const (
	BrandVisa       = "visa"
	BrandMastercard = "mc"
	BrandAmex       = "amex"
	BrandCB         = "cb"
)

// Card is the card form as typed.
type Card struct {
	Number string `json:"number" validate:"required,numeric,len=16"`
	Expiry string `json:"expiry" validate:"required"`
	CVC    string `json:"cvc" validate:"required,numeric,min=3,max=4"`
}

// Form is the payment request.
type Form struct {
	Method string `json:"method"`
	Card   Card   `json:"card"`
}

var (
	brandMC   = regexp.MustCompile(`^(5[1-5]|2[2-7])`)
	brandAmex = regexp.MustCompile(`^3[47]`)
	expiryRe  = regexp.MustCompile(`^(\d{2})\s*/\s*(\d{2})$`)
)

// Digits strips the spaces typed between card number groups.
func Digits(number string) string {
	return strings.Join(strings.Fields(number), "")
}

// Brand guesses the card network from the number prefix.
func Brand(number string) string {
	n := Digits(number)
	switch {
	case strings.HasPrefix(n, "4"):
		return BrandVisa
	case brandMC.MatchString(n):
		return BrandMastercard
	case brandAmex.MatchString(n):
		return BrandAmex
	}
	return BrandCB
}

// ValidExpiry accepts MM/YY while the card has not expired: the card stays
// valid until the first day of the following month.
func ValidExpiry(mmyy string, now time.Time) bool {
	m := expiryRe.FindStringSubmatch(strings.TrimSpace(mmyy))
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return false
	}
	end := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())
	return end.After(now)
}

// Checker validates payment forms.
type Checker struct {
	v   *validator.Validate
	now func() time.Time
}

func NewChecker(v *validator.Validate) *Checker {
	if v == nil {
		v = validator.New()
	}
	return &Checker{v: v, now: time.Now}
}

// Check validates f.  Card payments check every field; the wallet methods
// are handed over as they are.
func (c *Checker) Check(f Form) error {
	switch strings.ToLower(strings.TrimSpace(f.Method)) {
	case MethodCard, "":
	case MethodGPay, MethodPayPal:
		return nil
	default:
		return ErrUnknownMethod
	}
	card := Card{Number: Digits(f.Card.Number), Expiry: f.Card.Expiry, CVC: strings.TrimSpace(f.Card.CVC)}
	if err := c.v.Struct(card); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Number":
				return ErrInvalidCardNumber
			case "CVC":
				return ErrInvalidCVC
			}
			return ErrInvalidExpiry
		}
		return err
	}
	if !ValidExpiry(card.Expiry, c.now()) {
		return ErrInvalidExpiry
	}
	return nil
}
