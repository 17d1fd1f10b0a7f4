package ohada

import (
	"strings"

	"github.com/plancompta/ohada_chart_app/internal/core/domain"
)

// Classification is the full OHADA classification of an account code:
// fundamental type, gross/contra category, financial statement reference and
// normal balance. Unmapped codes keep UNKNOWN fields instead of failing.
type Classification struct {
	Type          domain.AccountType
	Category      domain.ClassificationCategory
	Ref           string
	NormalBalance domain.NormalBalance
}

// refRule maps a set of code prefixes (minus exclusions) to a financial
// statement reference. Rules are evaluated in declaration order and the first
// match wins, which keeps each table auditable against the OHADA standard.
type refRule struct {
	prefixes []string
	exclude  []string
	ref      string
}

func (r refRule) matches(code string) bool {
	for _, ex := range r.exclude {
		if strings.HasPrefix(code, ex) {
			return false
		}
	}
	for _, p := range r.prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

func lookupRef(rules []refRule, code string) string {
	for _, r := range rules {
		if r.matches(code) {
			return r.ref
		}
	}
	return domain.RefUnknown
}

// Class 1: durable resources. References CA..DC.
var class1Refs = []refRule{
	{prefixes: []string{"101", "102", "103", "104"}, ref: "CA"},
	{prefixes: []string{"109"}, ref: "CB"},
	{prefixes: []string{"105"}, ref: "CD"},
	{prefixes: []string{"106"}, ref: "CE"},
	{prefixes: []string{"111", "112", "113"}, ref: "CF"},
	{prefixes: []string{"118"}, ref: "CG"},
	{prefixes: []string{"121", "129"}, ref: "CH"},
	{prefixes: []string{"131", "139"}, ref: "CJ"},
	{prefixes: []string{"14"}, ref: "CL"},
	{prefixes: []string{"15"}, ref: "CM"},
	{prefixes: []string{"16", "181", "182", "183", "184"}, ref: "DA"},
	{prefixes: []string{"17"}, ref: "DB"},
	{prefixes: []string{"19"}, ref: "DC"},
}

// Class 2: fixed assets. The same reference applies to a gross account and its
// 28/29 contra account; contra status only changes the category.
var class2Refs = []refRule{
	{prefixes: []string{"211", "218", "2181", "2191"}, ref: "AE"},
	{prefixes: []string{"212", "213", "214", "2193"}, ref: "AF"},
	{prefixes: []string{"215", "216"}, ref: "AG"},
	{prefixes: []string{"217", "2198"}, ref: "AH"},
	{prefixes: []string{"22"}, ref: "AJ"},
	{prefixes: []string{"231", "232", "233", "237", "2391", "2392", "2393"}, ref: "AK"},
	{prefixes: []string{"234", "235", "238", "2394", "2395", "2398"}, ref: "AL"},
	{prefixes: []string{"24"}, exclude: []string{"245", "2495"}, ref: "AM"},
	{prefixes: []string{"245", "2495"}, ref: "AN"},
	{prefixes: []string{"251", "252"}, ref: "AP"},
	{prefixes: []string{"26"}, ref: "AR"},
	{prefixes: []string{"27"}, ref: "AS"},
}

// Classes 3/4/5 liability overrides: codes in these prefix sets are passif
// (credit balance) despite the ASSET class default. DH..DV.
var liabilityOverrides345 = []refRule{
	{prefixes: []string{"481", "482", "484", "4998"}, ref: "DH"},
	{prefixes: []string{"419"}, ref: "DI"},
	{prefixes: []string{"40"}, exclude: []string{"409"}, ref: "DJ"},
	{prefixes: []string{"42", "43", "44"}, ref: "DK"},
	{prefixes: []string{"185", "45", "46"}, ref: "DM"},
	{prefixes: []string{"47"}, exclude: []string{"479"}, ref: "DM"},
	{prefixes: []string{"499"}, exclude: []string{"4998"}, ref: "DN"},
	{prefixes: []string{"599"}, ref: "DN"},
	{prefixes: []string{"564", "565"}, ref: "DQ"},
	{prefixes: []string{"52", "53", "54", "561", "566"}, ref: "DR"},
	{prefixes: []string{"479"}, ref: "DV"},
}

// Classes 3/4/5 asset references BA..BU, applied only when no liability
// override matched.
var assetRefs345 = []refRule{
	{prefixes: []string{"485", "488"}, ref: "BA"},
	{prefixes: []string{"31", "32", "33", "34", "35", "36", "37", "38"}, ref: "BB"},
	{prefixes: []string{"409"}, ref: "BH"},
	{prefixes: []string{"41"}, exclude: []string{"419"}, ref: "BI"},
	{prefixes: []string{"185", "42", "43", "44", "45", "46"}, ref: "BJ"},
	{prefixes: []string{"47"}, exclude: []string{"478"}, ref: "BJ"},
	{prefixes: []string{"50"}, ref: "BQ"},
	{prefixes: []string{"51"}, ref: "BR"},
	{prefixes: []string{"52", "53", "54", "55", "57", "581", "582"}, ref: "BS"},
	{prefixes: []string{"478"}, ref: "BU"},
}

// Class 6: expenses. RA..RS.
var class6Refs = []refRule{
	{prefixes: []string{"601"}, ref: "RA"},
	{prefixes: []string{"6031"}, ref: "RB"},
	{prefixes: []string{"602"}, ref: "RC"},
	{prefixes: []string{"6032"}, ref: "RD"},
	{prefixes: []string{"604", "605", "608"}, ref: "RE"},
	{prefixes: []string{"6033"}, ref: "RF"},
	{prefixes: []string{"61"}, ref: "RG"},
	{prefixes: []string{"62", "63"}, ref: "RH"},
	{prefixes: []string{"64"}, ref: "RI"},
	{prefixes: []string{"65"}, ref: "RJ"},
	{prefixes: []string{"66"}, ref: "RK"},
	{prefixes: []string{"681", "691"}, ref: "RL"},
	{prefixes: []string{"67"}, ref: "RM"},
	{prefixes: []string{"697"}, ref: "RN"},
	{prefixes: []string{"81"}, ref: "RO"},
	{prefixes: []string{"83", "85"}, ref: "RP"},
	{prefixes: []string{"87"}, ref: "RQ"},
	{prefixes: []string{"89"}, ref: "RS"},
}

// Class 7: revenues. TA..TO.
var class7Refs = []refRule{
	{prefixes: []string{"701"}, ref: "TA"},
	{prefixes: []string{"702", "703", "704"}, ref: "TB"},
	{prefixes: []string{"705", "706"}, ref: "TC"},
	{prefixes: []string{"707"}, ref: "TD"},
	{prefixes: []string{"73"}, ref: "TE"},
	{prefixes: []string{"72"}, ref: "TF"},
	{prefixes: []string{"71"}, ref: "TG"},
	{prefixes: []string{"75"}, ref: "TI"},
	{prefixes: []string{"791", "798", "799"}, ref: "TJ"},
	{prefixes: []string{"77"}, ref: "TK"},
	{prefixes: []string{"797"}, ref: "TL"},
	{prefixes: []string{"787"}, ref: "TM"},
	{prefixes: []string{"82"}, ref: "TN"},
	{prefixes: []string{"84", "86", "88"}, ref: "TO"},
}

func hasAnyPrefix(code string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

// Classify maps an account code to its full OHADA classification.
// It is a total function: every input yields a result, and codes no rule maps
// degrade to UNKNOWN fields so imports never abort on a valid-looking code.
func Classify(code string) Classification {
	result := Classification{
		Type:          domain.TypeUnknown,
		Category:      domain.CategoryUnknown,
		Ref:           domain.RefUnknown,
		NormalBalance: domain.BalanceUnknown,
	}

	code = strings.TrimSpace(code)
	if code == "" || code[0] < '1' || code[0] > '9' {
		return result
	}

	switch code[0] {
	case '1':
		result.Type = domain.Liability
		result.NormalBalance = domain.Credit
		if strings.HasPrefix(code, "19") {
			// Depreciation provisions are the one asset carve-out in class 1.
			result.Type = domain.Asset
		}
		result.Ref = lookupRef(class1Refs, code)

	case '2':
		result.Type = domain.Asset
		result.NormalBalance = domain.Debit
		refCode := code
		if hasAnyPrefix(code, "28", "29") {
			result.Category = domain.DepreciationAmortization
			// 28XY/29XY mirror the gross account 2XY; drop the contra digit so
			// the contra account inherits its counterpart's reference.
			refCode = code[:1] + code[2:]
		} else {
			result.Category = domain.Gross
		}
		result.Ref = lookupRef(class2Refs, refCode)

	case '3', '4', '5':
		for _, r := range liabilityOverrides345 {
			if r.matches(code) {
				result.Type = domain.Liability
				result.NormalBalance = domain.Credit
				result.Ref = r.ref
				return result
			}
		}
		result.Type = domain.Asset
		result.NormalBalance = domain.Debit
		if hasAnyPrefix(code, "39", "49", "59") {
			result.Category = domain.DepreciationAmortization
		} else {
			result.Category = domain.Gross
		}
		result.Ref = lookupRef(assetRefs345, code)

	case '6':
		result.Type = domain.Expense
		result.NormalBalance = domain.Debit
		result.Ref = lookupRef(class6Refs, code)

	case '7':
		result.Type = domain.Revenue
		result.NormalBalance = domain.Credit
		result.Ref = lookupRef(class7Refs, code)

	case '8':
		// Class 8 sub-dispatches by the second digit; no reference is assigned.
		switch {
		case hasAnyPrefix(code, "82", "84", "86", "88"):
			result.Type = domain.Revenue
			result.NormalBalance = domain.Credit
		case hasAnyPrefix(code, "81", "83", "85", "87", "89"):
			result.Type = domain.Expense
			result.NormalBalance = domain.Debit
		default:
			result.Type = domain.Special
			result.NormalBalance = domain.Variable
		}
	}

	// Class 9 (analytic accounts) has no detailed rules: everything stays UNKNOWN.
	return result
}
