// Package accounting holds formatting and computation helpers shared by
// services and repositories, keeping accounting conventions consistent.
package accounting

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	nameAllowed  = regexp.MustCompile(`[^\p{L}\p{N}\s\-\.,&\(\)]`)
	codeStripped = regexp.MustCompile(`[^\p{L}\p{N}]`)
	multiSpace   = regexp.MustCompile(`\s{2,}`)
)

// DefaultVATRate is the standard VAT rate applied when none is given (18%).
var DefaultVATRate = decimal.NewFromFloat(0.18)

// FormatName normalizes an accounting label: title case, no stray special
// characters, single spaces, trimmed.
func FormatName(name string) string {
	if name == "" {
		return name
	}
	name = nameAllowed.ReplaceAllString(name, "")
	name = multiSpace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	return titleCase(name)
}

func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		if unicode.IsLetter(r) {
			if startOfWord {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			startOfWord = false
		} else {
			b.WriteRune(r)
			startOfWord = !unicode.IsNumber(r)
		}
	}
	return b.String()
}

// FormatCode normalizes an accounting code: uppercase, alphanumeric only,
// prefixed with accountPrefix when not already present, and padded with '0'
// (or truncated) to desiredLength when non-zero.
func FormatCode(code string, accountPrefix string, desiredLength int) string {
	if code == "" {
		return code
	}
	code = strings.ToUpper(codeStripped.ReplaceAllString(code, ""))
	if accountPrefix != "" && !strings.HasPrefix(code, accountPrefix) {
		code = accountPrefix + code
	}
	if desiredLength > 0 {
		if len(code) < desiredLength {
			code += strings.Repeat("0", desiredLength-len(code))
		} else if len(code) > desiredLength {
			code = code[:desiredLength]
		}
	}
	return code
}

// GenerateReference builds a unique reference for accounting documents, in the
// form PREFIX-YYYYMMDD-XXXXXXXXXX.
func GenerateReference(prefix string, length int) string {
	today := time.Now().Format("20060102")
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	if length <= 0 || length > len(hex) {
		length = 10
	}
	unique := strings.ToUpper(hex[:length])
	if prefix != "" {
		return fmt.Sprintf("%s-%s-%s", strings.ToUpper(prefix), today, unique)
	}
	return fmt.Sprintf("%s-%s", today, unique)
}

// CalculateVAT computes the VAT on a net amount, returning (net, vat, gross).
// VAT is rounded to 2 decimal places.
func CalculateVAT(amount decimal.Decimal, rate decimal.Decimal) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	vat := amount.Mul(rate).Round(2)
	return amount, vat, amount.Add(vat)
}
