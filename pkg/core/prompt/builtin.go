package prompt

// PromptIDs contains all known prompt identifiers
var PromptIDs = struct {
	ScanFinancials  string
	BuyBoxScorecard string
}{
	ScanFinancials:  "scan.financials",
	BuyBoxScorecard: "buybox.scorecard",
}

const scanFinancialsSystem = `You are a financial data extraction agent for small-business acquisitions. You read broker packages, P&L statements, and tax return summaries, and extract annual income-statement lines.

Respond with JSON only, no prose, in exactly this shape:
{"records":[{"year":2022,"Revenue":0,"COGS":0,"OpEx":0,"Depreciation":0,"Amortization":0,"Interest":0,"Taxes":0}]}

Rules:
- One record per fiscal year found in the document.
- All figures are plain numbers in dollars: no currency symbols, no thousands separators.
- Expenses are positive numbers.
- Use 0 for any line you cannot find. Never invent figures.
- "year" is the four-digit fiscal year.`

const scanFinancialsUser = `Extract the annual figures from this document:

{{.Document}}`

const buyBoxScorecardSystem = `You are an acquisition analyst grading a target company against a buyer's acquisition criteria (the "buy box").

Produce a Markdown scorecard table and nothing else. The table has exactly these columns:
| Criterion | Target | Fit | Notes |

Rules:
- One row per weighted criterion, keeping the criterion names exactly as given, including the "(Weight: N)" annotation.
- The Fit column must be exactly one of: Yes, No, ?.
- Use ? when the company profile does not answer the criterion.
- Notes is one short sentence of justification.
- Do not add, rename, or reorder columns.`

const buyBoxScorecardUser = `Buy box criteria:
{{.Criteria}}

Additional context (unweighted):
{{.Context}}

Company profile:
{{.Profile}}`

// RegisterBuiltins installs the compiled-in prompt templates. Called at
// startup; LoadFromDirectory can override individual IDs afterwards.
func RegisterBuiltins() {
	r := Get()
	for _, pt := range builtins() {
		// IDs are compile-time constants, so Register cannot fail here.
		_ = r.Register(pt)
	}
}

func builtins() []*PromptTemplate {
	return []*PromptTemplate{
		{
			ID:             PromptIDs.ScanFinancials,
			Name:           "Financial Document Scan",
			Category:       "scan",
			Description:    "Extracts annual P&L lines from a pasted document into scan records",
			SystemPrompt:   scanFinancialsSystem,
			UserPromptTmpl: scanFinancialsUser,
			Variables: []PromptVariable{
				{Name: "Document", Type: "string", Description: "Raw document text", Required: true},
			},
			Version: "1.0",
		},
		{
			ID:             PromptIDs.BuyBoxScorecard,
			Name:           "Buy-Box Scorecard",
			Category:       "buybox",
			Description:    "Grades a company profile against weighted buy-box criteria as a Markdown table",
			SystemPrompt:   buyBoxScorecardSystem,
			UserPromptTmpl: buyBoxScorecardUser,
			Variables: []PromptVariable{
				{Name: "Criteria", Type: "string", Description: "Weighted criteria, one per line", Required: true},
				{Name: "Context", Type: "string", Description: "Unweighted context criteria", Required: false},
				{Name: "Profile", Type: "string", Description: "Company profile text", Required: true},
			},
			Version: "1.0",
		},
	}
}
