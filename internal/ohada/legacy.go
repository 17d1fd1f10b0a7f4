package ohada

import "github.com/plancompta/ohada_chart_app/internal/core/domain"

// ClassDefaultType returns the coarse per-class account type.
// Kept as a fallback for callers that only know the class number; Classify is
// authoritative for new imports.
func ClassDefaultType(classNumber int) domain.AccountType {
	switch classNumber {
	case 1:
		return domain.Liability
	case 2, 3:
		return domain.Asset
	case 4:
		return domain.Liability
	case 5:
		return domain.Asset
	case 6:
		return domain.Expense
	case 7, 8:
		return domain.Revenue
	default:
		return domain.Asset
	}
}

// TypeByCode is the simplified per-class type assignment with a few two-digit
// carve-outs (19, 41-44, 59, class 8). Predates Classify and kept for
// backward compatibility with charts imported under the old rules.
func TypeByCode(code string) domain.AccountType {
	if code == "" || code[0] < '1' || code[0] > '9' {
		return domain.Asset
	}

	switch code[0] {
	case '1':
		if hasAnyPrefix(code, "19") {
			return domain.Asset
		}
		return domain.Liability
	case '2', '3':
		return domain.Asset
	case '4':
		if hasAnyPrefix(code, "41", "42", "43", "44") {
			return domain.Asset
		}
		return domain.Liability
	case '5':
		if hasAnyPrefix(code, "59") {
			return domain.Liability
		}
		return domain.Asset
	case '6':
		return domain.Expense
	case '7', '8':
		return domain.Revenue
	default:
		return domain.Asset
	}
}
