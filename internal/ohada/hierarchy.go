// Package ohada implements the OHADA chart-of-accounts classification and
// hierarchy rules. Everything here is a pure function over account code
// strings and fixed lookup tables; persistence and tenant scoping are the
// caller's concern.
package ohada

import (
	"fmt"
	"strings"

	"github.com/plancompta/ohada_chart_app/internal/apperrors"
)

// CodeLength is the normalized account code length used for hierarchy resolution.
const CodeLength = 8

// Hierarchy is the result of resolving an account code's position in the chart.
type Hierarchy struct {
	Level      int    // 1 to 4 for 8-digit codes
	ParentCode string // Zero-padded ancestor code at level-1, empty at level 1
}

// NormalizeCode trims an account code and pads it right with '0' to 8 digits.
// Codes longer than 8 characters or containing non-digits are rejected.
func NormalizeCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("%w: empty account code", apperrors.ErrValidation)
	}
	if len(code) > CodeLength {
		return "", fmt.Errorf("%w: account code %q longer than %d digits", apperrors.ErrValidation, code, CodeLength)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: account code %q contains non-digit characters", apperrors.ErrValidation, code)
		}
	}
	return code + strings.Repeat("0", CodeLength-len(code)), nil
}

// ResolveHierarchy derives the hierarchical level and parent code from the
// digit structure of an account code. The checks are strict suffix tests on
// the zero-padded 8-digit form, no arithmetic:
//
//	XX000000 -> level 1, no parent
//	XXXX0000 -> level 2, parent XX000000
//	XXXXXX00 -> level 3, parent XXXX0000
//	XXXXXXXX -> level 4, parent XXXXXX00
func ResolveHierarchy(code string) (Hierarchy, error) {
	padded, err := NormalizeCode(code)
	if err != nil {
		return Hierarchy{}, err
	}

	switch {
	case padded[2:] == "000000":
		return Hierarchy{Level: 1}, nil
	case padded[4:] == "0000":
		return Hierarchy{Level: 2, ParentCode: padded[:2] + "000000"}, nil
	case padded[6:] == "00":
		return Hierarchy{Level: 3, ParentCode: padded[:4] + "0000"}, nil
	default:
		return Hierarchy{Level: 4, ParentCode: padded[:6] + "00"}, nil
	}
}
