// Package dialect classifies bank statement exports into known bank layouts
// and extracts raw transaction fields from their rows.
package dialect

import (
	"regexp"
	"strings"
)

// Dialect identifies a specific bank's statement column layout.
type Dialect string

const (
	HDFC    Dialect = "hdfc"
	ICICI   Dialect = "icici"
	SBI     Dialect = "sbi"
	Axis    Dialect = "axis"
	Kotak   Dialect = "kotak"
	Chase   Dialect = "chase"
	Generic Dialect = "generic"
)

// Flow is the debit/credit direction a dialect reports for a row, when the
// layout carries an explicit marker (separate withdrawal/deposit columns or a
// Dr/Cr flag column). Generic rows have no marker.
type Flow int

const (
	FlowUnknown Flow = iota
	FlowDebit
	FlowCredit
)

// RawTransaction is the loosely-typed intermediate record produced by a
// mapper. It only exists inside the import pipeline.
type RawTransaction struct {
	DateText        string
	DescriptionText string
	AmountText      string
	Flow            Flow
	Dialect         Dialect
}

// signature pairs a dialect with the header substring that identifies it.
// The list is ordered: signatures can overlap (Axis "particulars" also
// appears in some ICICI exports), so first match wins and the order below is
// a compatibility contract.
type signature struct {
	dialect Dialect
	match   string
}

var signatures = []signature{
	{HDFC, "narration"},
	{ICICI, "transaction remarks"},
	{SBI, "txn date"},
	{Kotak, "dr / cr"},
	{Axis, "particulars"},
	{Chase, "posting date"},
}

// Detect classifies a header row. It lower-cases and joins the headers, then
// walks the signature list in declared order. Unrecognized headers fall back
// to Generic; Detect never fails.
func Detect(headers []string) Dialect {
	joined := strings.ToLower(strings.Join(headers, ","))
	for _, sig := range signatures {
		if strings.Contains(joined, sig.match) {
			return sig.dialect
		}
	}
	return Generic
}

// Currency returns the entry currency implied by the dialect. Generic
// statements carry no currency hint and inherit the ledger base currency.
func (d Dialect) Currency(baseCurrency string) string {
	switch d {
	case Chase:
		return "USD"
	case Generic:
		return baseCurrency
	default:
		return "INR"
	}
}

// Mapper extracts the date/description/amount fields from one raw row.
// Implementations return ok=false for rows they cannot map (short rows,
// missing narration); the caller skips such rows and continues.
type Mapper interface {
	Extract(row []string) (RawTransaction, bool)
}

// MapperFor returns the row mapper for a detected dialect.
func MapperFor(d Dialect) Mapper {
	switch d {
	case HDFC:
		return hdfcMapper{}
	case ICICI:
		return iciciMapper{}
	case SBI:
		return sbiMapper{}
	case Axis:
		return axisMapper{}
	case Kotak:
		return kotakMapper{}
	case Chase:
		return chaseMapper{}
	default:
		return genericMapper{}
	}
}

func cell(row []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[idx]), true
}

// splitAmount picks between separate debit and credit cells. Debit wins when
// both are populated; bank exports leave the unused side blank or "0.00".
func splitAmount(debit, credit string) (string, Flow) {
	if debit != "" && !isZeroAmount(debit) {
		return debit, FlowDebit
	}
	if credit != "" && !isZeroAmount(credit) {
		return credit, FlowCredit
	}
	return "", FlowUnknown
}

func isZeroAmount(s string) bool {
	s = strings.Trim(strings.TrimSpace(s), "0.,")
	return s == ""
}

// hdfcMapper reads HDFC exports:
// Date, Narration, Chq./Ref.No., Value Dt, Withdrawal Amt., Deposit Amt., Closing Balance
type hdfcMapper struct{}

func (hdfcMapper) Extract(row []string) (RawTransaction, bool) {
	date, ok := cell(row, 0)
	if !ok {
		return RawTransaction{}, false
	}
	desc, _ := cell(row, 1)
	if desc == "" {
		return RawTransaction{}, false
	}
	withdrawal, _ := cell(row, 4)
	deposit, ok := cell(row, 5)
	if !ok {
		return RawTransaction{}, false
	}
	amount, flow := splitAmount(withdrawal, deposit)
	return RawTransaction{date, desc, amount, flow, HDFC}, true
}

// iciciMapper reads ICICI exports:
// Date, Mode, Transaction Remarks, Deposits, Withdrawals, Balance
type iciciMapper struct{}

func (iciciMapper) Extract(row []string) (RawTransaction, bool) {
	date, ok := cell(row, 0)
	if !ok {
		return RawTransaction{}, false
	}
	desc, _ := cell(row, 2)
	if desc == "" {
		return RawTransaction{}, false
	}
	deposit, _ := cell(row, 3)
	withdrawal, ok := cell(row, 4)
	if !ok {
		return RawTransaction{}, false
	}
	amount, flow := splitAmount(withdrawal, deposit)
	return RawTransaction{date, desc, amount, flow, ICICI}, true
}

// sbiMapper reads SBI exports:
// Txn Date, Value Date, Description, Ref No./Cheque No., Debit, Credit, Balance
type sbiMapper struct{}

func (sbiMapper) Extract(row []string) (RawTransaction, bool) {
	date, ok := cell(row, 0)
	if !ok {
		return RawTransaction{}, false
	}
	desc, _ := cell(row, 2)
	if desc == "" {
		return RawTransaction{}, false
	}
	debit, _ := cell(row, 4)
	credit, ok := cell(row, 5)
	if !ok {
		return RawTransaction{}, false
	}
	amount, flow := splitAmount(debit, credit)
	return RawTransaction{date, desc, amount, flow, SBI}, true
}

// axisMapper reads Axis exports:
// Tran Date, Chq No, Particulars, Debit, Credit, Balance
type axisMapper struct{}

func (axisMapper) Extract(row []string) (RawTransaction, bool) {
	date, ok := cell(row, 0)
	if !ok {
		return RawTransaction{}, false
	}
	desc, _ := cell(row, 2)
	if desc == "" {
		return RawTransaction{}, false
	}
	debit, _ := cell(row, 3)
	credit, ok := cell(row, 4)
	if !ok {
		return RawTransaction{}, false
	}
	amount, flow := splitAmount(debit, credit)
	return RawTransaction{date, desc, amount, flow, Axis}, true
}

// kotakMapper reads Kotak exports, which use a single amount column plus a
// Dr / Cr flag column:
// Sl. No., Transaction Date, Value Date, Description, Chq/Ref No., Amount, Dr / Cr, Balance
type kotakMapper struct{}

func (kotakMapper) Extract(row []string) (RawTransaction, bool) {
	date, ok := cell(row, 1)
	if !ok {
		return RawTransaction{}, false
	}
	desc, _ := cell(row, 3)
	if desc == "" {
		return RawTransaction{}, false
	}
	amount, _ := cell(row, 5)
	flag, ok := cell(row, 6)
	if !ok {
		return RawTransaction{}, false
	}
	flow := FlowUnknown
	switch strings.ToUpper(flag) {
	case "DR":
		flow = FlowDebit
	case "CR":
		flow = FlowCredit
	}
	return RawTransaction{date, desc, amount, flow, Kotak}, true
}

// usDatePattern matches Chase's month-first posting dates.
var usDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// chaseMapper reads Chase exports:
// Details, Posting Date, Description, Amount, Type, Balance, Check or Slip #
//
// Posting dates are US MM/DD/YYYY while the rest of the pipeline reads
// slash dates day-first, so the mapper swaps the components before handing
// the row off.
type chaseMapper struct{}

func (chaseMapper) Extract(row []string) (RawTransaction, bool) {
	date, ok := cell(row, 1)
	if !ok {
		return RawTransaction{}, false
	}
	if groups := usDatePattern.FindStringSubmatch(date); groups != nil {
		date = groups[2] + "/" + groups[1] + "/" + groups[3]
	}
	desc, _ := cell(row, 2)
	if desc == "" {
		return RawTransaction{}, false
	}
	amount, ok := cell(row, 3)
	if !ok {
		return RawTransaction{}, false
	}
	flow := FlowUnknown
	if kind, ok := cell(row, 4); ok {
		switch {
		case strings.EqualFold(kind, "DEBIT"):
			flow = FlowDebit
		case strings.EqualFold(kind, "CREDIT"):
			flow = FlowCredit
		}
	}
	return RawTransaction{date, desc, amount, flow, Chase}, true
}

// amountPattern matches a numeric cell with an optional currency symbol and
// optional Cr/Dr suffix, e.g. "1,234.50", "₹500", "$12.00", "500 Dr".
var amountPattern = regexp.MustCompile(`^-?\s*(?:₹|\$|€|£|Rs\.?|INR|USD)?\s*-?\(?\d[\d,]*(?:\.\d+)?\)?\s*(?:Cr|CR|Dr|DR)?$`)

// genericMapper handles unrecognized layouts. It scans the row from the end
// for the first cell that looks like an amount, takes the first cell as the
// date, and the first non-numeric cell after it as the description.
type genericMapper struct{}

func (genericMapper) Extract(row []string) (RawTransaction, bool) {
	if len(row) < 2 {
		return RawTransaction{}, false
	}

	amountIdx := -1
	for i := len(row) - 1; i >= 1; i-- {
		if amountPattern.MatchString(strings.TrimSpace(row[i])) {
			amountIdx = i
			break
		}
	}
	if amountIdx == -1 {
		return RawTransaction{}, false
	}

	date := strings.TrimSpace(row[0])
	desc := ""
	for i := 1; i < len(row); i++ {
		if i == amountIdx {
			continue
		}
		c := strings.TrimSpace(row[i])
		if c != "" && !amountPattern.MatchString(c) {
			desc = c
			break
		}
	}
	if desc == "" {
		return RawTransaction{}, false
	}

	return RawTransaction{date, desc, strings.TrimSpace(row[amountIdx]), FlowUnknown, Generic}, true
}
