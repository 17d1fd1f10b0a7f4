package ohada

import "fmt"

// classNames are the fixed French names of the OHADA classes.
var classNames = map[int]string{
	1: "Comptes de capitaux",
	2: "Comptes d'actifs immobilisés",
	3: "Comptes de stocks",
	4: "Comptes de tiers",
	5: "Comptes de trésorerie",
	6: "Comptes de charges",
	7: "Comptes de produits",
	8: "Comptes de résultats",
	9: "Comptes analytiques",
}

// ClassName returns the standard name of an OHADA class, or a synthesized
// name for unrecognized numbers.
func ClassName(number int) string {
	if name, ok := classNames[number]; ok {
		return name
	}
	return fmt.Sprintf("Classe %d", number)
}

// CategoryFallbackName synthesizes a category name when the imported record
// set has no record whose code is exactly the two-digit category code.
func CategoryFallbackName(categoryCode string) string {
	return fmt.Sprintf("Catégorie %s", categoryCode)
}
