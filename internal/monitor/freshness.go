// Package monitor watches the price store for symbols the collector has
// stopped updating. It only reads and logs.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"PriceHistory/internal/model"
	"PriceHistory/internal/symbols"
)

const dateLayout = "2006-01-02"

// Summarizer reports what the store holds per symbol.
type Summarizer interface {
	Summary(ctx context.Context) ([]model.SymbolSummary, error)
}

// Status is the freshness verdict for one allow-listed symbol.
type Status string

const (
	StatusFresh   Status = "FRESH"
	StatusStale   Status = "STALE"
	StatusMissing Status = "MISSING"
	StatusBadDate Status = "BAD_DATE"
)

// Finding is the result of checking one symbol.
type Finding struct {
	Symbol   symbols.Symbol
	Status   Status
	Rows     int
	LastDate string
	AgeDays  int
}

// Report is the outcome of one freshness check.
type Report struct {
	CheckedAt time.Time
	Findings  []Finding
}

// Problems returns the findings that are not fresh.
func (r *Report) Problems() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Status != StatusFresh {
			out = append(out, f)
		}
	}
	return out
}

// Monitor periodically checks that every allow-listed symbol has recent data.
type Monitor struct {
	Cron    *cron.Cron
	Store   Summarizer
	Symbols *symbols.AllowList
	MaxAge  time.Duration
	Log     zerolog.Logger
	Ctx     context.Context

	now func() time.Time
}

// NewMonitor creates a Monitor. maxAgeDays is the largest gap between today
// and a symbol's latest date that still counts as fresh.
func NewMonitor(ctx context.Context, store Summarizer, allow *symbols.AllowList, maxAgeDays int, logger zerolog.Logger) *Monitor {
	return &Monitor{
		Cron:    cron.New(cron.WithSeconds()),
		Store:   store,
		Symbols: allow,
		MaxAge:  time.Duration(maxAgeDays) * 24 * time.Hour,
		Log:     logger,
		Ctx:     ctx,
		now:     time.Now,
	}
}

// Register schedules the check on spec (six-field cron, seconds first).
func (m *Monitor) Register(spec string) error {
	if _, err := m.Cron.AddFunc(spec, m.run); err != nil {
		return fmt.Errorf("register freshness check: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (m *Monitor) Start() {
	m.Cron.Start()
	m.Log.Info().Msg("freshness monitor started")
}

// Stop stops the scheduler and waits for a running check to finish.
func (m *Monitor) Stop() {
	<-m.Cron.Stop().Done()
	m.Log.Info().Msg("freshness monitor stopped")
}

// RunNow executes one check immediately.
func (m *Monitor) RunNow() {
	m.run()
}

func (m *Monitor) run() {
	report, err := m.Check(m.Ctx)
	if err != nil {
		m.Log.Error().Err(err).Msg("freshness check failed")
		return
	}
	for _, f := range report.Problems() {
		m.Log.Warn().
			Str("symbol", f.Symbol.String()).
			Str("status", string(f.Status)).
			Int("rows", f.Rows).
			Str("last_date", f.LastDate).
			Int("age_days", f.AgeDays).
			Msg("price data is not fresh")
	}
	m.Log.Info().
		Int("symbols", len(report.Findings)).
		Int("problems", len(report.Problems())).
		Msg("freshness check done")
}

// Check summarizes the store and classifies every allow-listed symbol.
func (m *Monitor) Check(ctx context.Context) (*Report, error) {
	sums, err := m.Store.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarize store: %w", err)
	}
	bySymbol := make(map[string]model.SymbolSummary, len(sums))
	for _, s := range sums {
		bySymbol[s.Symbol] = s
	}

	now := m.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	report := &Report{CheckedAt: now}
	for _, sym := range m.Symbols.Symbols() {
		s, ok := bySymbol[sym.String()]
		if !ok || s.Rows == 0 {
			report.Findings = append(report.Findings, Finding{Symbol: sym, Status: StatusMissing})
			continue
		}
		f := Finding{Symbol: sym, Rows: s.Rows, LastDate: s.LastDate}
		last, err := time.Parse(dateLayout, s.LastDate)
		if err != nil {
			f.Status = StatusBadDate
			report.Findings = append(report.Findings, f)
			continue
		}
		age := today.Sub(last)
		f.AgeDays = int(age.Hours() / 24)
		if age > m.MaxAge {
			f.Status = StatusStale
		} else {
			f.Status = StatusFresh
		}
		report.Findings = append(report.Findings, f)
	}
	return report, nil
}
