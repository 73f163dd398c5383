package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header for register.csv.
const Header = "entry_id,date,kind,check_number,from_to,paid_for,amount,what"

const (
	numFields   = 8
	colEntryID  = 0
	colDate     = 1
	colKind     = 2
	colCheck    = 3
	colFromTo   = 4
	colPaidFor  = 5
	colAmount   = 6
	colWhat     = 7
	amountScale = 2
)

// ReadEntries reads all entries from a register.csv reader.
func ReadEntries(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading register CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var entries []model.Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteEntries writes entries to a register.csv writer (including header).
func WriteEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendEntries appends entries to an existing register.csv writer (no header).
func AppendEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e model.Entry) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.ID
	row[colDate] = e.Date
	row[colKind] = string(e.Kind)
	row[colCheck] = e.CheckNumber
	row[colFromTo] = e.FromTo
	row[colPaidFor] = e.PaidFor
	row[colAmount] = e.Amount.StringFixed(amountScale)
	row[colWhat] = e.What
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (model.Entry, error) {
	if len(record) != numFields {
		return model.Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Entry{
		ID: record[colEntryID],
		Transaction: model.Transaction{
			Date:        record[colDate],
			Kind:        model.Kind(record[colKind]),
			CheckNumber: record[colCheck],
			FromTo:      record[colFromTo],
			PaidFor:     record[colPaidFor],
			Amount:      amount,
			What:        record[colWhat],
		},
	}, nil
}
