package promptpay

import (
	"errors"
	"strings"
)

var ErrInvalidRecipient = errors.New("invalid promptpay recipient")

type TargetKind int

const (
	KindMobile TargetKind = iota + 1
	KindTaxID
	KindEWallet
)

func (k TargetKind) String() string {
	switch k {
	case KindMobile:
		return "mobile"
	case KindTaxID:
		return "tax_id"
	case KindEWallet:
		return "ewallet"
	default:
		return "unknown"
	}
}

func (k TargetKind) tag() string {
	switch k {
	case KindMobile:
		return subTagMobile
	case KindTaxID:
		return subTagTaxID
	default:
		return subTagEWallet
	}
}

// Target is a recipient identifier in the normalized form carried by the payload.
type Target struct {
	Kind  TargetKind
	Value string
}

const (
	mobileLen     = 10
	mobileIntlLen = 11
	taxIDLen      = 13
	eWalletLen    = 15
	countryCode   = "66"
)

// ParseTarget normalizes a mobile number, national/tax ID or e-wallet ID. Spaces, dashes
// and plus signs are ignored.
func ParseTarget(id string) (Target, error) {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '+':
		default:
			return Target{}, ErrInvalidRecipient
		}
	}
	digits := b.String()

	switch {
	case len(digits) == eWalletLen:
		return Target{Kind: KindEWallet, Value: digits}, nil
	case len(digits) == taxIDLen:
		return Target{Kind: KindTaxID, Value: digits}, nil
	case len(digits) == mobileLen && digits[0] == '0':
		return mobileTarget(countryCode + digits[1:]), nil
	case len(digits) == mobileIntlLen && strings.HasPrefix(digits, countryCode):
		return mobileTarget(digits), nil
	default:
		return Target{}, ErrInvalidRecipient
	}
}

func mobileTarget(intl string) Target {
	return Target{Kind: KindMobile, Value: strings.Repeat("0", taxIDLen-len(intl)) + intl}
}
