package dealstructure

import (
	"math"

	"dealdesk/pkg/core/validate"
	"dealdesk/pkg/models"
)

// =============================================================================
// DEAL STRUCTURE / DEBT SERVICE CALCULATOR
// =============================================================================

// Simple mode approximates debt service with flat rule-of-thumb rates
// instead of amortization math: 13% of the senior loan and 5% of the
// seller financing per year. These are deliberate heuristics and must
// not be "corrected" to match advanced mode.
const (
	simpleSeniorRate = 0.13
	simpleSellerRate = 0.05

	dscrThresholdAdvanced = 1.50
	dscrThresholdSimple   = 1.25
)

// Note is one financing tranche. AnnualRatePct is a percent
// (10.5 means 10.5% per year).
type Note struct {
	Amount        float64
	TermMonths    float64
	AnnualRatePct float64
}

// Inputs are the calculator's fields after parsing. StressPercent is a
// percent (20 means a 20% SDE haircut when Stressed is set).
type Inputs struct {
	SDE             float64
	AskingMultiple  float64
	OwnerSalary     float64
	ClosingCosts    float64
	LiquidityMonths float64

	SeniorLoan  Note
	PrimaryNote Note
	// PrimaryNoteInterestOnly services the primary seller note as
	// interest-only in advanced mode; otherwise it amortizes.
	PrimaryNoteInterestOnly bool
	StandbyNote             Note
	ForgivableNote          Note

	Advanced      bool
	Stressed      bool
	StressPercent float64
}

// FromModel flattens workbook deal inputs into calculator inputs.
func FromModel(m models.DealStructureInputs) Inputs {
	return Inputs{
		SDE:             m.SDE.Value,
		AskingMultiple:  m.AskingMultiple.Value,
		OwnerSalary:     m.OwnerSalary.Value,
		ClosingCosts:    m.ClosingCosts.Value,
		LiquidityMonths: m.LiquidityMonths.Value,
		SeniorLoan: Note{
			Amount:        m.SeniorLoanAmount.Value,
			TermMonths:    m.SeniorTermMonths.Value,
			AnnualRatePct: m.SeniorRatePct.Value,
		},
		PrimaryNote:             noteFromModel(m.PrimaryNote),
		PrimaryNoteInterestOnly: m.PrimaryNoteRepayment == models.NoteInterestOnly,
		StandbyNote:             noteFromModel(m.StandbyNote),
		ForgivableNote:          noteFromModel(m.ForgivableNote),
		Advanced:                m.Mode == models.DealModeAdvanced,
		Stressed:                m.Stressed,
		StressPercent:           m.StressPercent.Value,
	}
}

func noteFromModel(n models.SellerNote) Note {
	return Note{
		Amount:        n.Amount.Value,
		TermMonths:    n.TermMonths.Value,
		AnnualRatePct: n.AnnualRatePct.Value,
	}
}

// Result is the full deal snapshot for one set of inputs.
type Result struct {
	EnterpriseValue      float64 `json:"enterprise_value"`
	TotalSellerFinancing float64 `json:"total_seller_financing"`
	BuyerEquity          float64 `json:"buyer_equity"`

	SeniorMonthlyPayment float64 `json:"senior_monthly_payment"`
	SeniorDebtService    float64 `json:"senior_debt_service"`
	SellerDebtService    float64 `json:"seller_debt_service"`
	TotalDebtService     float64 `json:"total_debt_service"`

	CashAvailable float64 `json:"cash_available"`
	DSCR          float64 `json:"dscr"`
	DSCRThreshold float64 `json:"dscr_threshold"`
	DSCRHealthy   bool    `json:"dscr_healthy"`
	NetCashFlow   float64 `json:"net_cash_flow"`

	LiquidityReserveTarget float64 `json:"liquidity_reserve_target"`
	TotalCashToClose       float64 `json:"total_cash_to_close"`

	FieldErrors validate.FieldErrors `json:"field_errors,omitempty"`
}

// AmortizingPayment computes the flat monthly payment on a standard
// amortizing loan: P * r / (1 - (1+r)^-n) with r the monthly rate.
// A zero rate degrades to straight-line principal; a term of zero or
// fewer months yields 0.
func AmortizingPayment(principal, annualRatePct, termMonths float64) float64 {
	if termMonths <= 0 {
		return 0
	}
	monthlyRate := (annualRatePct / 100) / 12
	if monthlyRate == 0 {
		return principal / termMonths
	}
	return principal * (monthlyRate / (1 - math.Pow(1+monthlyRate, -termMonths)))
}

// Compute derives the full deal snapshot.
//
// EnterpriseValue = SDE * AskingMultiple
// BuyerEquity     = EnterpriseValue - SeniorLoan - TotalSellerFinancing
//
// A financing stack above enterprise value flags every debt field as an
// advisory; the calculation still runs on the as-entered values.
func Compute(in Inputs) Result {
	ev := in.SDE * in.AskingMultiple
	sellerTotal := in.PrimaryNote.Amount + in.StandbyNote.Amount + in.ForgivableNote.Amount
	equity := ev - in.SeniorLoan.Amount - sellerTotal

	fieldErrors := validate.FieldErrors{}
	if check := validate.CheckDebtCapacity(ev, in.SeniorLoan.Amount, sellerTotal); check.Exceeded {
		const msg = "total debt cannot exceed enterprise value"
		fieldErrors.Add("senior_loan_amount", msg)
		fieldErrors.Add("primary_note_amount", msg)
		fieldErrors.Add("standby_note_amount", msg)
		fieldErrors.Add("forgivable_note_amount", msg)
	}

	var seniorMonthly, seniorDS, sellerDS float64
	if in.Advanced {
		seniorMonthly = AmortizingPayment(in.SeniorLoan.Amount, in.SeniorLoan.AnnualRatePct, in.SeniorLoan.TermMonths)
		seniorDS = seniorMonthly * 12

		if in.PrimaryNoteInterestOnly {
			sellerDS = in.PrimaryNote.Amount * (in.PrimaryNote.AnnualRatePct / 100)
		} else {
			sellerDS = AmortizingPayment(in.PrimaryNote.Amount, in.PrimaryNote.AnnualRatePct, in.PrimaryNote.TermMonths) * 12
		}
		// Standby and forgivable tranches defer payments past the
		// analysis horizon and carry no annual debt service here.
	} else {
		seniorDS = in.SeniorLoan.Amount * simpleSeniorRate
		sellerDS = sellerTotal * simpleSellerRate
		seniorMonthly = seniorDS / 12
	}
	totalDS := seniorDS + sellerDS

	sde := in.SDE
	if in.Stressed {
		sde = in.SDE * (1 - in.StressPercent/100)
	}
	cashAvailable := sde - in.OwnerSalary

	dscr := 0.0
	if totalDS != 0 {
		dscr = cashAvailable / totalDS
	}

	threshold := dscrThresholdSimple
	if in.Advanced {
		threshold = dscrThresholdAdvanced
	}

	var reserve float64
	if in.Advanced {
		reserve = (totalDS / 12) * in.LiquidityMonths
	}

	return Result{
		EnterpriseValue:        ev,
		TotalSellerFinancing:   sellerTotal,
		BuyerEquity:            equity,
		SeniorMonthlyPayment:   seniorMonthly,
		SeniorDebtService:      seniorDS,
		SellerDebtService:      sellerDS,
		TotalDebtService:       totalDS,
		CashAvailable:          cashAvailable,
		DSCR:                   dscr,
		DSCRThreshold:          threshold,
		DSCRHealthy:            dscr >= threshold,
		NetCashFlow:            cashAvailable - totalDS,
		LiquidityReserveTarget: reserve,
		TotalCashToClose:       equity + in.ClosingCosts + reserve,
		FieldErrors:            fieldErrors,
	}
}
