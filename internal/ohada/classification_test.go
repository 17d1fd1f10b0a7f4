package ohada_test

import (
	"testing"

	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	"github.com/plancompta/ohada_chart_app/internal/ohada"
	"github.com/stretchr/testify/assert"
)

func TestClassifyClassDefaults(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		accType domain.AccountType
		balance domain.NormalBalance
	}{
		{name: "class 1 equity and loans", code: "10100000", accType: domain.Liability, balance: domain.Credit},
		{name: "class 1 depreciation carve-out", code: "19000000", accType: domain.Asset, balance: domain.Credit},
		{name: "class 2 fixed assets", code: "21000000", accType: domain.Asset, balance: domain.Debit},
		{name: "class 3 inventory", code: "31000000", accType: domain.Asset, balance: domain.Debit},
		{name: "class 6 expense", code: "60100000", accType: domain.Expense, balance: domain.Debit},
		{name: "class 7 revenue", code: "70100000", accType: domain.Revenue, balance: domain.Credit},
		{name: "class 8 revenue branch", code: "82000000", accType: domain.Revenue, balance: domain.Credit},
		{name: "class 8 expense branch", code: "81000000", accType: domain.Expense, balance: domain.Debit},
		{name: "class 8 special fallback", code: "80000000", accType: domain.Special, balance: domain.Variable},
		{name: "class 9 analytic stays unknown", code: "90000000", accType: domain.TypeUnknown, balance: domain.BalanceUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ohada.Classify(tt.code)
			assert.Equal(t, tt.accType, c.Type)
			assert.Equal(t, tt.balance, c.NormalBalance)
		})
	}
}

func TestClassifyContraCategories(t *testing.T) {
	assert.Equal(t, domain.Gross, ohada.Classify("21310000").Category)
	assert.Equal(t, domain.DepreciationAmortization, ohada.Classify("28100000").Category)
	assert.Equal(t, domain.DepreciationAmortization, ohada.Classify("29000000").Category)
	assert.Equal(t, domain.Gross, ohada.Classify("31000000").Category)
	assert.Equal(t, domain.DepreciationAmortization, ohada.Classify("39100000").Category)
	assert.Equal(t, domain.DepreciationAmortization, ohada.Classify("49100000").Category)
	assert.Equal(t, domain.DepreciationAmortization, ohada.Classify("59000000").Category)
}

func TestClassifyLiabilityOverrides(t *testing.T) {
	// Suppliers (40) are passif despite the class 4 asset default.
	c := ohada.Classify("40100000")
	assert.Equal(t, domain.Liability, c.Type)
	assert.Equal(t, domain.Credit, c.NormalBalance)
	assert.Equal(t, "DJ", c.Ref)

	// 409 supplier advances are excluded from the 40 override and stay actif.
	c = ohada.Classify("40900000")
	assert.Equal(t, domain.Asset, c.Type)
	assert.Equal(t, "BH", c.Ref)

	// Customers (41) are actif, 419 advance accounts are passif.
	c = ohada.Classify("41100000")
	assert.Equal(t, domain.Asset, c.Type)
	assert.Equal(t, "BI", c.Ref)

	c = ohada.Classify("41900000")
	assert.Equal(t, domain.Liability, c.Type)
	assert.Equal(t, "DI", c.Ref)

	// 4998 belongs to DH, not to the generic 499 provision rule.
	assert.Equal(t, "DH", ohada.Classify("49980000").Ref)
	assert.Equal(t, "DN", ohada.Classify("49900000").Ref)
}

func TestClassifyRefs(t *testing.T) {
	tests := []struct {
		code string
		ref  string
	}{
		{code: "10100000", ref: "CA"},
		{code: "16200000", ref: "DA"},
		{code: "21100000", ref: "AE"},
		{code: "21300000", ref: "AF"},
		{code: "24000000", ref: "AM"},
		{code: "24500000", ref: "AN"},
		{code: "31000000", ref: "BB"},
		{code: "55000000", ref: "BS"},
		{code: "60100000", ref: "RA"},
		{code: "60310000", ref: "RB"},
		{code: "66000000", ref: "RK"},
		{code: "70100000", ref: "TA"},
		{code: "70700000", ref: "TD"},
		// Contra account shares the reference of its gross counterpart.
		{code: "28110000", ref: "AE"},
		{code: "28130000", ref: "AF"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.ref, ohada.Classify(tt.code).Ref)
		})
	}
}

func TestClassifyGarbageInput(t *testing.T) {
	for _, code := range []string{"", "   ", "A1000000", "00000000"} {
		c := ohada.Classify(code)
		assert.Equal(t, domain.TypeUnknown, c.Type, code)
		assert.Equal(t, domain.CategoryUnknown, c.Category, code)
		assert.Equal(t, domain.RefUnknown, c.Ref, code)
	}
}

func TestClassDefaultType(t *testing.T) {
	assert.Equal(t, domain.Liability, ohada.ClassDefaultType(1))
	assert.Equal(t, domain.Asset, ohada.ClassDefaultType(2))
	assert.Equal(t, domain.Expense, ohada.ClassDefaultType(6))
	assert.Equal(t, domain.Revenue, ohada.ClassDefaultType(7))
	assert.Equal(t, domain.Liability, ohada.ClassDefaultType(4))
	assert.Equal(t, domain.Asset, ohada.ClassDefaultType(9))
}
