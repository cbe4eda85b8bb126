package validate

import "testing"

func TestCheckDebtCapacity(t *testing.T) {
	// EV 1.5M against 1.05M senior + 150k seller leaves headroom.
	check := CheckDebtCapacity(1500000, 1050000, 150000)
	if check.Exceeded {
		t.Error("1.2M of debt against 1.5M EV should not exceed capacity")
	}
	if check.TotalDebt != 1200000 {
		t.Errorf("TotalDebt = %f, want 1200000", check.TotalDebt)
	}

	check = CheckDebtCapacity(1500000, 1400000, 200000)
	if !check.Exceeded {
		t.Error("1.6M of debt against 1.5M EV should exceed capacity")
	}
	if check.Excess != 100000 {
		t.Errorf("Excess = %f, want 100000", check.Excess)
	}

	// Debt exactly at EV is allowed.
	check = CheckDebtCapacity(1500000, 1500000, 0)
	if check.Exceeded {
		t.Error("debt equal to EV should not be flagged")
	}
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	if errs.Any() {
		t.Error("fresh FieldErrors should report no advisories")
	}

	errs.Add("senior_loan_amount", "total debt cannot exceed enterprise value")
	errs.Add("senior_loan_amount", "second message should not overwrite")
	if got := errs["senior_loan_amount"]; got != "total debt cannot exceed enterprise value" {
		t.Errorf("advisory = %q, want the first message kept", got)
	}
	if !errs.Any() {
		t.Error("Any should report true after Add")
	}
}
