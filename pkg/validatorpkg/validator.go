// Package validatorpkg holds the payload format rules of the interoperability scheme.
//
// The same rules are registered on gin's binding engine and used directly by services,
// so a payload is judged identically whether it arrives on a handler or through a callback.
package validatorpkg

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/go-petr/pet-wallet/pkg/currencypkg"
)

const dateTimeLayout = "2006-01-02T15:04:05.000Z"

var (
	currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)
	amountRe       = regexp.MustCompile(`^([0]|([1-9][0-9]{0,17}))([.][0-9]{0,3}[1-9])?$`)
	conditionRe    = regexp.MustCompile(`^[A-Za-z0-9-_]{43}$`)
	ilpPacketRe    = regexp.MustCompile(`^[A-Za-z0-9-_]+[=]{0,2}$`)
	otpRe          = regexp.MustCompile(`^[0-9]{4}$`)
)

// ValidCurrency validates whether the currency is supported by the wallet.
var ValidCurrency validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(string); ok {
		return currencypkg.IsSupportedCurrency(c)
	}

	return false
}

// ValidCurrencyCode validates an ISO 4217 alphabetic code.
var ValidCurrencyCode validator.Func = func(fl validator.FieldLevel) bool {
	return currencyCodeRe.MatchString(fl.Field().String())
}

// ValidAmount validates a scheme amount: no leading zeros, at most four decimals, no trailing zero.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	return amountRe.MatchString(fl.Field().String())
}

// ValidCondition validates a base64url encoded SHA-256 execution condition.
var ValidCondition validator.Func = func(fl validator.FieldLevel) bool {
	return conditionRe.MatchString(fl.Field().String())
}

// ValidIlpPacket validates a base64url encoded ILP packet.
var ValidIlpPacket validator.Func = func(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return len(s) <= 32768 && ilpPacketRe.MatchString(s)
}

// ValidDateTime validates an ISO 8601 UTC timestamp with millisecond precision.
var ValidDateTime validator.Func = func(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateTimeLayout, fl.Field().String())
	return err == nil
}

// ValidOTP validates a four digit one time passcode.
var ValidOTP validator.Func = func(fl validator.FieldLevel) bool {
	return otpRe.MatchString(fl.Field().String())
}

// Register adds the scheme rules to v.
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"currency":     ValidCurrency,
		"currencycode": ValidCurrencyCode,
		"fspamount":    ValidAmount,
		"ilpcondition": ValidCondition,
		"ilppacket":    ValidIlpPacket,
		"fspdatetime":  ValidDateTime,
		"otp":          ValidOTP,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	return nil
}

// New returns a validator reading the same `binding` struct tags as gin.
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")

	if err := Register(v); err != nil {
		panic(err)
	}

	return v
}

// FormatDateTime renders t the way the scheme expects date-time fields.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(dateTimeLayout)
}

// ParseDateTime parses a scheme date-time field.
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(dateTimeLayout, s)
}
