package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/danbrewer/LetsRetire-sub001/internal/domain"
	"github.com/danbrewer/LetsRetire-sub001/internal/ledger"
)

// SimulationResult is the outcome of one multi-year run.
type SimulationResult struct {
	Name  string              `json:"name"`
	Years []domain.YearResult `json:"years"`
	// DepletionYear is the first year spending could not be met, or zero.
	DepletionYear int            `json:"depletion_year,omitempty"`
	DepletionAge  int            `json:"depletion_age,omitempty"`
	Ledger        *ledger.Ledger `json:"-"`
}

// Depleted reports whether any year ended with unmet spending.
func (r *SimulationResult) Depleted() bool { return r.DepletionYear != 0 }

// Simulator drives the withdrawal engine year by year. Each run owns its own
// ledger, so a Simulator may run several scenarios concurrently.
type Simulator struct {
	// Portioner overrides the waterfall built from each scenario's order.
	Portioner AccountPortioner
	Solver    Bisection
	Logger    Logger
}

// NewSimulator creates a simulator with the default solver and a no-op logger.
func NewSimulator() *Simulator {
	return &Simulator{Solver: DefaultBisection, Logger: NopLogger{}}
}

// SetLogger sets the logger for the simulator. If nil is provided, a no-op logger is used.
func (s *Simulator) SetLogger(l Logger) {
	if l == nil {
		s.Logger = NopLogger{}
		return
	}
	s.Logger = l
}

// Run simulates every year from the start year through the subject's end age.
// Cancellation is checked between years.
func (s *Simulator) Run(ctx context.Context, in *domain.Inputs) (*SimulationResult, error) {
	l := ledger.New(ledger.WithInterestBasis(in.Basis()))
	opening := []struct {
		account domain.AccountType
		amount  decimal.Decimal
	}{
		{domain.AccountSavings, in.Balances.Savings},
		{domain.AccountTaxDeferred, in.Balances.TaxDeferred},
		{domain.AccountRoth, in.Balances.Roth},
	}
	for _, o := range opening {
		if err := l.Open(o.account, o.amount, in.StartYear); err != nil {
			return nil, fmt.Errorf("opening %s: %w", o.account, err)
		}
	}
	for _, t := range []domain.AccountType{domain.AccountWithholdings, domain.AccountDisbursement} {
		if err := l.Open(t, decimal.Zero, in.StartYear); err != nil {
			return nil, fmt.Errorf("opening %s: %w", t, err)
		}
	}

	portioner := s.Portioner
	if portioner == nil {
		portioner = NewWaterfallPortioner(in.Order()...)
	}
	logger := WithScope(s.Logger, in.Name)
	engine := NewWithdrawalEngine(portioner)
	engine.Solver = s.Solver
	engine.SetLogger(logger)

	inflation := InflationRate(in, logger)
	result := &SimulationResult{Name: in.Name, Ledger: l}

	years := in.Years()
	logger.Infof("simulating %d years from %d", years, in.StartYear)
	for i := 0; i < years; i++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("simulation %q cancelled after %d years: %w", in.Name, i, err)
		}

		y := l.Year(in.StartYear + i)
		yc, err := BuildYearContext(in, i, y, inflation)
		if err != nil {
			return result, err
		}
		yr, err := engine.ProcessYear(y, yc)
		if err != nil {
			return result, err
		}
		result.Years = append(result.Years, yr)

		if yr.Shortfall && result.DepletionYear == 0 {
			result.DepletionYear = yr.Year
			result.DepletionAge = yr.Age
			logger.Infof("money runs out in %d at age %d", yr.Year, yr.Age)
		}
	}
	return result, nil
}

// RunScenarios runs independent scenarios concurrently and returns results in
// input order. The first failure cancels the remaining runs.
func (s *Simulator) RunScenarios(ctx context.Context, scenarios []*domain.Inputs) ([]*SimulationResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]*SimulationResult, len(scenarios))

	for i, in := range scenarios {
		g.Go(func() error {
			res, err := s.Run(ctx, in)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
