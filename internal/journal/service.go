package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/model"
)

// FileName is the per-month register file.
const FileName = "register.csv"

// Service stores parsed transactions in monthly register files under
// <repoRoot>/YYYY/MM/register.csv.
type Service struct {
	repoRoot string
}

// NewService creates a register Service.
func NewService(repoRoot string) *Service {
	return &Service{repoRoot: repoRoot}
}

type monthKey struct{ year, month int }

// Append assigns entry IDs to txns, validates each affected month and
// appends the new rows. Amounts are rounded to cents. Nothing is written if
// any month fails validation. IDs are returned in input order.
func (s *Service) Append(txns []model.Transaction) ([]string, error) {
	var order []monthKey
	pending := make(map[monthKey][]model.Entry)
	existing := make(map[monthKey][]model.Entry)
	ids := make([]string, len(txns))

	for i, txn := range txns {
		year, month, ok := txn.Month()
		if !ok {
			return nil, fmt.Errorf("transaction %d: date %q has no month", i+1, txn.Date)
		}
		key := monthKey{year, month}

		if _, loaded := existing[key]; !loaded {
			entries, err := s.ReadMonth(year, month)
			if err != nil {
				return nil, err
			}
			existing[key] = entries
			order = append(order, key)
		}

		seq := id.NextSeq(entryIDs(existing[key])) + len(pending[key])

		txn.Amount = txn.Amount.Round(amountScale)
		e := model.Entry{ID: id.FormatEntryID(year, month, seq), Transaction: txn}
		pending[key] = append(pending[key], e)
		ids[i] = e.ID
	}

	for _, key := range order {
		all := append(append([]model.Entry(nil), existing[key]...), pending[key]...)
		if verrs := ValidateEntries(all, key.year, key.month); len(verrs) > 0 {
			msgs := make([]string, len(verrs))
			for i, ve := range verrs {
				msgs[i] = ve.Error()
			}
			return nil, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
		}
	}

	for _, key := range order {
		if err := s.appendMonth(key, pending[key]); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (s *Service) appendMonth(key monthKey, entries []model.Entry) error {
	path := s.MonthPath(key.year, key.month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating register dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening register: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendEntries(f, entries); err != nil {
		return fmt.Errorf("appending entries: %w", err)
	}
	return nil
}

// ReadMonth reads all entries for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.Entry, error) {
	path := s.MonthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening register %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading register %s: %w", path, err)
	}
	return entries, nil
}

// Balance returns income minus expense for a month.
func (s *Service) Balance(year, month int) (decimal.Decimal, error) {
	entries, err := s.ReadMonth(year, month)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, e := range entries {
		if e.Kind.IsExpense() {
			total = total.Sub(e.Amount)
		} else {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

// MonthPath returns the register path for a month.
func (s *Service) MonthPath(year, month int) string {
	return filepath.Join(s.repoRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), FileName)
}

func entryIDs(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
