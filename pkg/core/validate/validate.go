// Package validate provides advisory validation for deal inputs.
// Advisories mark fields for display; they never block a calculation,
// which always proceeds on the as-entered values.
package validate

// =============================================================================
// FIELD ADVISORIES
// =============================================================================

// FieldErrors maps an input field key to a human-readable advisory.
type FieldErrors map[string]string

// Add records an advisory against a field, keeping the first message
// when a field is flagged more than once.
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = message
}

// Any reports whether at least one advisory was recorded.
func (f FieldErrors) Any() bool {
	return len(f) > 0
}

// =============================================================================
// DEBT CAPACITY
// =============================================================================

// DebtCapacityCheck verifies senior + seller debt <= enterprise value.
type DebtCapacityCheck struct {
	EnterpriseValue float64
	SeniorDebt      float64
	SellerDebt      float64
	TotalDebt       float64
	Excess          float64
	Exceeded        bool
}

// CheckDebtCapacity compares the financing stack to enterprise value.
// An exceeded capacity is advisory: callers flag the debt fields and
// keep calculating.
func CheckDebtCapacity(enterpriseValue, seniorDebt, sellerDebt float64) *DebtCapacityCheck {
	total := seniorDebt + sellerDebt
	return &DebtCapacityCheck{
		EnterpriseValue: enterpriseValue,
		SeniorDebt:      seniorDebt,
		SellerDebt:      sellerDebt,
		TotalDebt:       total,
		Excess:          total - enterpriseValue,
		Exceeded:        total > enterpriseValue,
	}
}
