package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FinancialPeriod holds one fiscal period's raw statement line items.
// Every numeric field is an Amount so partially typed values round-trip.
type FinancialPeriod struct {
	ID    string `json:"id"`
	Name  string `json:"name"` // "2023", "YTD Actuals"
	IsYTD bool   `json:"is_ytd"`

	// Income statement
	Revenue           Amount `json:"revenue"`
	COGS              Amount `json:"cogs"`
	OperatingExpenses Amount `json:"operating_expenses"`
	Depreciation      Amount `json:"depreciation"`
	Amortization      Amount `json:"amortization"`
	InterestExpense   Amount `json:"interest_expense"`
	Taxes             Amount `json:"taxes"`

	// Balance sheet
	Cash                    Amount `json:"cash"`
	AccountsReceivable      Amount `json:"accounts_receivable"`
	Inventory               Amount `json:"inventory"`
	OtherCurrentAssets      Amount `json:"other_current_assets"`
	LongTermAssets          Amount `json:"long_term_assets"`
	AccountsPayable         Amount `json:"accounts_payable"`
	ShortTermDebt           Amount `json:"short_term_debt"`
	OtherCurrentLiabilities Amount `json:"other_current_liabilities"`
	LongTermDebt            Amount `json:"long_term_debt"`
	ShareholderEquity       Amount `json:"shareholder_equity"`
}

// NewFinancialPeriod creates an empty period with a fresh ID.
func NewFinancialPeriod(name string) *FinancialPeriod {
	return &FinancialPeriod{ID: uuid.NewString(), Name: name}
}

// SetField assigns a statement line by its canonical key. It reports
// false for unrecognized keys so importers can skip unknown rows.
func (p *FinancialPeriod) SetField(key string, a Amount) bool {
	switch key {
	case "revenue":
		p.Revenue = a
	case "cogs":
		p.COGS = a
	case "operating_expenses":
		p.OperatingExpenses = a
	case "depreciation":
		p.Depreciation = a
	case "amortization":
		p.Amortization = a
	case "interest_expense":
		p.InterestExpense = a
	case "taxes":
		p.Taxes = a
	case "cash":
		p.Cash = a
	case "accounts_receivable":
		p.AccountsReceivable = a
	case "inventory":
		p.Inventory = a
	case "other_current_assets":
		p.OtherCurrentAssets = a
	case "long_term_assets":
		p.LongTermAssets = a
	case "accounts_payable":
		p.AccountsPayable = a
	case "short_term_debt":
		p.ShortTermDebt = a
	case "other_current_liabilities":
		p.OtherCurrentLiabilities = a
	case "long_term_debt":
		p.LongTermDebt = a
	case "shareholder_equity":
		p.ShareholderEquity = a
	default:
		return false
	}
	return true
}

// AddBackCategory classifies a discretionary normalization entry.
type AddBackCategory string

const (
	AddBackOwnerDiscretionary AddBackCategory = "owner_discretionary"
	AddBackNonRecurring       AddBackCategory = "non_recurring"
	AddBackNonOperational     AddBackCategory = "non_operational"
	AddBackStandardization    AddBackCategory = "standardization"
	AddBackPersonal           AddBackCategory = "personal"
	AddBackOneTime            AddBackCategory = "one_time"
	AddBackOther              AddBackCategory = "other"
)

// AddBack is one discretionary normalization entry. Owner compensation
// is tracked separately on the workbook, not as an AddBack.
type AddBack struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      Amount          `json:"amount"`
	Category    AddBackCategory `json:"category"`
}

// NewAddBack creates an add-back with a fresh ID.
func NewAddBack(description string, amount Amount, category AddBackCategory) *AddBack {
	return &AddBack{ID: uuid.NewString(), Description: description, Amount: amount, Category: category}
}

// ============================================================
// DEAL STRUCTURE
// ============================================================

// DealMode selects between the rule-of-thumb and the full calculation.
type DealMode string

const (
	DealModeSimple   DealMode = "simple"
	DealModeAdvanced DealMode = "advanced"
)

// NoteRepayment selects how the primary seller note is serviced.
type NoteRepayment string

const (
	NoteInterestOnly NoteRepayment = "interest_only"
	NoteAmortizing   NoteRepayment = "amortizing"
)

// SellerNote is one seller-financing tranche. Rates are entered as
// percents (6.5 means 6.5% per year).
type SellerNote struct {
	Amount        Amount `json:"amount"`
	TermMonths    Amount `json:"term_months"`
	AnnualRatePct Amount `json:"annual_rate_pct"`
}

// DealStructureInputs is everything the debt-service calculator reads.
type DealStructureInputs struct {
	SDE             Amount `json:"sde"`
	AskingMultiple  Amount `json:"asking_multiple"`
	OwnerSalary     Amount `json:"owner_salary"`
	ClosingCosts    Amount `json:"closing_costs"`
	LiquidityMonths Amount `json:"liquidity_months"`

	SeniorLoanAmount Amount `json:"senior_loan_amount"`
	SeniorTermMonths Amount `json:"senior_term_months"`
	SeniorRatePct    Amount `json:"senior_rate_pct"`

	PrimaryNote          SellerNote    `json:"primary_note"`
	PrimaryNoteRepayment NoteRepayment `json:"primary_note_repayment"`
	StandbyNote          SellerNote    `json:"standby_note"`
	ForgivableNote       SellerNote    `json:"forgivable_note"`

	Mode          DealMode `json:"mode"`
	Stressed      bool     `json:"stressed"`
	StressPercent Amount   `json:"stress_percent"` // 20 means a 20% SDE haircut
}

// ============================================================
// PROJECTION
// ============================================================

// OpExMode selects how operating expenses roll forward.
type OpExMode string

const (
	OpExPercentOfRevenue OpExMode = "percent_of_revenue"
	OpExFixedAmount      OpExMode = "fixed_amount"
)

// ProjectionAssumptions drives the 3-year pro forma. Rates are entered
// as percents (2 means 2%).
type ProjectionAssumptions struct {
	StartingRevenue    Amount   `json:"starting_revenue"`
	Year1MonthlyGrowth Amount   `json:"year1_monthly_growth_pct"`
	Year2Growth        Amount   `json:"year2_growth_pct"`
	Year3Growth        Amount   `json:"year3_growth_pct"`
	COGSPercent        Amount   `json:"cogs_pct"`
	OpExMode           OpExMode `json:"opex_mode"`
	OpExPercent        Amount   `json:"opex_pct"`
	FixedAnnualOpEx    Amount   `json:"fixed_annual_opex"`
	OpExAnnualGrowth   Amount   `json:"opex_annual_growth_pct"`
	AnnualCapex        Amount   `json:"annual_capex"`
	AnnualDebtService  Amount   `json:"annual_debt_service"`
	TaxRatePercent     Amount   `json:"tax_rate_pct"`
}

// ============================================================
// BUY BOX
// ============================================================

// Criterion pairs a user-supplied target with an importance weight.
// Weight 0 means the criterion is ignored by the fit scorer.
type Criterion struct {
	Value  string `json:"value"`
	Weight int    `json:"weight"`
}

// BuyBoxCriteria is the acquirer's fixed criteria set. The scorer keys
// off these field names; see the buybox package for the name mapping.
type BuyBoxCriteria struct {
	Geography        Criterion `json:"geography"`
	Industry         Criterion `json:"industry"`
	BusinessModel    Criterion `json:"business_model"`
	MinSDE           Criterion `json:"min_sde"`
	MaxSDE           Criterion `json:"max_sde"`
	MinRevenue       Criterion `json:"min_revenue"`
	AskingMultiple   Criterion `json:"asking_multiple"`
	OwnerInvolvement Criterion `json:"owner_involvement"`
	TeamSize         Criterion `json:"team_size"`

	// Context for the scorecard generator; never weighted or scored.
	IndustryExpertise []string `json:"industry_expertise"`
	Culture           string   `json:"culture"`
}

// ============================================================
// WORKBOOK
// ============================================================

// CompanyWorkbook is the persisted unit of analysis: one target
// company's periods, add-backs, deal inputs and buy-box state.
type CompanyWorkbook struct {
	ID       string             `json:"id"`
	Company  string             `json:"company"`
	Periods  []*FinancialPeriod `json:"periods"`
	AddBacks []*AddBack         `json:"add_backs"`

	// Owner compensation add-back, tracked apart from AddBacks so the
	// SDE and EBITDA waterfalls can split it out.
	OwnerComp Amount `json:"owner_comp"`

	// Months elapsed in the YTD period, used for annualization.
	YTDMonths Amount `json:"ytd_months"`

	DealInputs DealStructureInputs   `json:"deal_inputs"`
	Projection ProjectionAssumptions `json:"projection"`
	BuyBox     BuyBoxCriteria        `json:"buy_box"`

	// Raw markdown scorecard from the scorecard generator.
	Scorecard string `json:"scorecard"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCompanyWorkbook creates a workbook with one empty period, the
// minimum a company can hold.
func NewCompanyWorkbook(company string) *CompanyWorkbook {
	now := time.Now().UTC()
	return &CompanyWorkbook{
		ID:        uuid.NewString(),
		Company:   company,
		Periods:   []*FinancialPeriod{NewFinancialPeriod("Year 1")},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RemovePeriod deletes a period by ID. The last remaining period is
// never removed; the call reports whether anything changed.
func (w *CompanyWorkbook) RemovePeriod(id string) bool {
	if len(w.Periods) <= 1 {
		return false
	}
	for i, p := range w.Periods {
		if p.ID == id {
			w.Periods = append(w.Periods[:i], w.Periods[i+1:]...)
			return true
		}
	}
	return false
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug folds a company name into a stable storage key.
func Slug(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(s, "-")
}
