package constants

var (
	// Salaried management positions excluded from the Labour percentage sum.
	ExcludedLaborPositions = map[string]bool{
		"DD Manager":          true,
		"DD Manager - Salary": true,
	}

	LaborPositions = []string{
		"DD Crew Plus",
		"DD Crew Standard",
		"DD Shift Leader Plus",
		"DD Manager",
		"DD Manager - Salary",
	}
)
