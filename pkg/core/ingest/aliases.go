package ingest

import "strings"

// rowAliases maps external statement labels to canonical period field
// keys. Many labels fold into one field; matching is case-insensitive
// and whitespace-trimmed. Labels with no alias are ignored by imports.
var rowAliases = map[string]string{
	"revenue":       "revenue",
	"sales":         "revenue",
	"turnover":      "revenue",
	"total revenue": "revenue",
	"net revenue":   "revenue",

	"cogs":               "cogs",
	"cost of goods sold": "cogs",
	"cost of sales":      "cogs",
	"cost of revenue":    "cogs",

	"operating expenses":       "operating_expenses",
	"opex":                     "operating_expenses",
	"total operating expenses": "operating_expenses",
	"sg&a":                     "operating_expenses",

	"depreciation": "depreciation",
	"amortization": "amortization",
	"amortisation": "amortization",

	"interest expense": "interest_expense",
	"interest":         "interest_expense",

	"taxes":        "taxes",
	"income tax":   "taxes",
	"income taxes": "taxes",
	"tax expense":  "taxes",

	"cash":                 "cash",
	"cash and equivalents": "cash",
	"cash & equivalents":   "cash",

	"accounts receivable": "accounts_receivable",
	"receivables":         "accounts_receivable",
	"a/r":                 "accounts_receivable",

	"inventory":   "inventory",
	"inventories": "inventory",

	"other current assets": "other_current_assets",

	"long term assets":            "long_term_assets",
	"long-term assets":            "long_term_assets",
	"fixed assets":                "long_term_assets",
	"property, plant & equipment": "long_term_assets",
	"ppe":                         "long_term_assets",

	"accounts payable": "accounts_payable",
	"payables":         "accounts_payable",
	"a/p":              "accounts_payable",

	"short term debt":      "short_term_debt",
	"short-term debt":      "short_term_debt",
	"current portion of lt debt": "short_term_debt",

	"other current liabilities": "other_current_liabilities",

	"long term debt": "long_term_debt",
	"long-term debt": "long_term_debt",

	"shareholder equity":   "shareholder_equity",
	"shareholders' equity": "shareholder_equity",
	"stockholders' equity": "shareholder_equity",
	"owner's equity":       "shareholder_equity",
	"equity":               "shareholder_equity",
}

// CanonicalField resolves an external row label to its canonical
// period field key.
func CanonicalField(label string) (string, bool) {
	key, ok := rowAliases[strings.ToLower(strings.TrimSpace(label))]
	return key, ok
}
