package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/calc"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/dateparse"
	"github.com/cleared-dev/tally/internal/diag"
	"github.com/cleared-dev/tally/internal/model"
)

// sessionFlags are the parsing options shared by calc, add, import and date.
type sessionFlags struct {
	kind   string
	date   string
	years  []int
	future bool
}

func (f *sessionFlags) bindResolver(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&f.years, "year", nil, "operating year window (at most two years)")
	cmd.Flags().BoolVar(&f.future, "future", false, "roll months already past forward a year")
}

func (f *sessionFlags) bindEntry(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "kind", "", "default kind: expense or income")
}

func (f *sessionFlags) bindDate(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "default date for records without one (free text)")
}

// resolver builds a date resolver from flags, falling back to cfg when a
// flag was not given. cfg may be nil.
func (f *sessionFlags) resolver(cmd *cobra.Command, cfg *config.Config) (*dateparse.Resolver, error) {
	r := dateparse.NewResolver(dateparse.WithClock(now))

	switch {
	case len(f.years) > 0:
		if len(f.years) > 2 {
			return nil, fmt.Errorf("--year: at most two years, got %d", len(f.years))
		}
		r.SetYearWindow(f.years...)
	case cfg != nil:
		years, err := cfg.YearWindow(now())
		if err != nil {
			return nil, err
		}
		r.SetYearWindow(years...)
	}

	future := f.future
	if !cmd.Flags().Changed("future") && cfg != nil {
		future = cfg.Entry.FutureDates
	}
	r.SetFuture(future)
	return r, nil
}

// calculator builds a Calculator whose default date is --date, resolved in
// the same session, or today.
func (f *sessionFlags) calculator(cmd *cobra.Command, cfg *config.Config, sink diag.Sink) (*calc.Calculator, error) {
	r, err := f.resolver(cmd, cfg)
	if err != nil {
		return nil, err
	}
	c := calc.New(calc.WithResolver(r), calc.WithSink(sink))

	def := today()
	if f.date != "" {
		def = r.YMD(f.date)
		if _, _, ok := (model.Transaction{Date: def}).Month(); !ok {
			return nil, fmt.Errorf("--date %q: no month found", f.date)
		}
	}
	c.SetDefaultDate(def)
	return c, nil
}

// entryKind returns --kind, else the configured default, else expense.
func (f *sessionFlags) entryKind(cfg *config.Config) string {
	if f.kind != "" {
		return f.kind
	}
	if cfg != nil && cfg.Entry.DefaultKind != "" {
		return cfg.Entry.DefaultKind
	}
	return string(model.KindExpense)
}

func today() string {
	return now().Format("2006-01-02")
}

func loadProject(repo string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(repo, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading project at %s: %w", repo, err)
	}
	return cfg, nil
}

// collect drains res, replacing dates that lack a month with def.
func collect(res *calc.Result, def, what string) []model.Transaction {
	txns := make([]model.Transaction, 0, res.Len())
	for res.HasMore() {
		txn, _ := res.Next()
		if _, _, ok := txn.Month(); !ok {
			txn.Date = def
		}
		if what != "" {
			txn.What = what
		}
		txns = append(txns, txn)
	}
	return txns
}

func describe(txn model.Transaction) string {
	var parts []string
	for _, s := range []string{txn.CheckNumber, txn.FromTo, txn.PaidFor} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
