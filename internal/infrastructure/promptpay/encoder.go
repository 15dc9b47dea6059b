package promptpay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/natthakit111/qr-demo/internal/domain/amount"
	"github.com/natthakit111/qr-demo/internal/domain/payload"
)

var (
	ErrAmountPrecision = fmt.Errorf("%w: more than two decimal places", payload.ErrUnencodableAmount)
	ErrAmountTooLarge  = fmt.Errorf("%w: exceeds payload field length", payload.ErrUnencodableAmount)
	ErrAmountInvalid   = errors.New("amount must be positive")
)

const (
	idPayloadFormat = "00"
	idPOIMethod     = "01"
	idMerchantInfo  = "29"
	idCurrency      = "53"
	idAmount        = "54"
	idCountry       = "58"
	idCRC           = "63"

	subTagGUID    = "00"
	subTagMobile  = "01"
	subTagTaxID   = "02"
	subTagEWallet = "03"

	payloadFormatEMV = "01"
	poiMethodDynamic = "12"
	guidPromptPay    = "A000000677010111"
	countryTH        = "TH"
	currencyTHB      = "764"

	amountDecimals   = 2
	maxAmountLength  = 13
	maxIntegerDigits = maxAmountLength - amountDecimals - 1
	crcLength        = 4
)

type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(recipient string, amt amount.Amount) (payload.Payload, error) {
	target, err := ParseTarget(recipient)
	if err != nil {
		return "", fmt.Errorf("%w: %w", payload.ErrEncoding, err)
	}

	formatted, err := formatAmount(amt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", payload.ErrEncoding, err)
	}

	var b strings.Builder
	writeField(&b, idPayloadFormat, payloadFormatEMV)
	writeField(&b, idPOIMethod, poiMethodDynamic)
	writeField(&b, idMerchantInfo, merchantInfo(target))
	writeField(&b, idCountry, countryTH)
	writeField(&b, idCurrency, currencyTHB)
	writeField(&b, idAmount, formatted)

	// The checksum covers its own ID and length.
	b.WriteString(idCRC)
	fmt.Fprintf(&b, "%02d", crcLength)
	fmt.Fprintf(&b, "%04X", checksum([]byte(b.String())))

	return payload.Payload(b.String()), nil
}

func merchantInfo(t Target) string {
	var b strings.Builder
	writeField(&b, subTagGUID, guidPromptPay)
	writeField(&b, t.Kind.tag(), t.Value)
	return b.String()
}

func formatAmount(amt amount.Amount) (string, error) {
	if !amt.Valid() {
		return "", ErrAmountInvalid
	}
	d := amt.Decimal()

	// Bounds are checked on the coefficient digits and exponent alone. Rescaling or
	// printing a value such as 1e20000000 first would materialize a huge integer.
	coef := d.Coefficient().String()
	significant := strings.TrimRight(coef, "0")
	exp := int64(d.Exponent()) + int64(len(coef)-len(significant))
	if exp < -amountDecimals {
		return "", ErrAmountPrecision
	}
	if int64(len(significant))+exp > maxIntegerDigits {
		return "", ErrAmountTooLarge
	}

	s := d.StringFixed(amountDecimals)
	if len(s) > maxAmountLength {
		return "", ErrAmountTooLarge
	}
	return s, nil
}

// writeField appends an ID-length-value triple. All values written here are shorter than
// 100 bytes.
func writeField(b *strings.Builder, id, value string) {
	b.WriteString(id)
	fmt.Fprintf(b, "%02d", len(value))
	b.WriteString(value)
}
