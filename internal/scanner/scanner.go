package scanner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"SignalScout/internal/budget"
	"SignalScout/internal/calculator"
	"SignalScout/internal/model"
	"SignalScout/internal/strategy"
)

// seriesLimit is the number of daily bars requested per asset. Enough for
// the 50-day moving average.
const seriesLimit = 50

// ErrScanInProgress is returned when a scan is triggered while another is
// still running against the same budget state.
var ErrScanInProgress = errors.New("scan already in progress")

// Series provides daily price history for a symbol.
type Series interface {
	FetchDailySeries(ctx context.Context, symbol string, limit int) []model.PricePoint
}

// AssetStore lists the assets to scan.
type AssetStore interface {
	ListActiveAssets() ([]model.Asset, error)
}

// BudgetStore loads and persists the budget state.
type BudgetStore interface {
	LoadBudgetState() (model.BudgetState, error)
	SaveBudgetState(model.BudgetState) error
}

// NotificationSink records qualifying candidates.
type NotificationSink interface {
	RecordNotification(c *model.ScanCandidate) (int64, error)
	MarkEmailSent(notificationID int64) error
}

// Notifier delivers a candidate to the user. Delivery failure never aborts
// a scan or discards the recorded candidate.
type Notifier interface {
	Notify(c *model.ScanCandidate) bool
}

// ScanResult is the outcome of one full scan.
type ScanResult struct {
	ScannedAssets int                  `json:"scannedAssets"`
	Candidates    []model.ScanCandidate `json:"candidates"`
}

// Scanner runs the per-asset analysis pipeline: price series, indicators,
// scoring and budget-constrained sizing. At most one scan is in flight at a
// time.
type Scanner struct {
	mu       sync.Mutex
	series   Series
	assets   AssetStore
	budget   BudgetStore
	sink     NotificationSink
	notifier Notifier // nil when email is not configured
}

// New creates a Scanner. notifier may be nil.
func New(series Series, assets AssetStore, budgetStore BudgetStore, sink NotificationSink, notifier Notifier) *Scanner {
	return &Scanner{
		series:   series,
		assets:   assets,
		budget:   budgetStore,
		sink:     sink,
		notifier: notifier,
	}
}

// RunScan evaluates every active asset against the budget state as of now.
// Period resets are applied (and persisted) before the first asset is
// analyzed; the thresholds and remaining budget are then read from that one
// snapshot for the whole scan. A failing asset is logged and skipped; only
// store errors fail the scan itself.
func (s *Scanner) RunScan(ctx context.Context, now time.Time) (*ScanResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrScanInProgress
	}
	defer s.mu.Unlock()

	state, err := s.budget.LoadBudgetState()
	if err != nil {
		return nil, fmt.Errorf("load budget state: %w", err)
	}

	state, changed := s.applyResets(state, now)
	if changed {
		if err := s.budget.SaveBudgetState(state); err != nil {
			return nil, fmt.Errorf("save budget state: %w", err)
		}
	}

	assets, err := s.assets.ListActiveAssets()
	if err != nil {
		return nil, fmt.Errorf("list active assets: %w", err)
	}

	result := &ScanResult{ScannedAssets: len(assets)}
	for _, asset := range assets {
		cand, err := s.analyzeAsset(ctx, state, asset)
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", asset.Symbol, err)
			continue
		}
		if cand == nil {
			continue
		}
		result.Candidates = append(result.Candidates, *cand)
	}

	log.Printf("[INFO] scan complete: %d assets scanned, %d candidates", result.ScannedAssets, len(result.Candidates))
	return result, nil
}

func (s *Scanner) applyResets(state model.BudgetState, now time.Time) (model.BudgetState, bool) {
	state, monthChanged := budget.ApplyMonthlyReset(state, now)
	if monthChanged {
		log.Printf("[INFO] monthly budget counter reset (%s)", now.Format("2006-01"))
	}
	state, yearChanged := budget.ApplyYearlyReset(state, now)
	if yearChanged {
		log.Printf("[INFO] annual budget counter reset (%d)", now.Year())
	}
	return state, monthChanged || yearChanged
}

func (s *Scanner) analyzeAsset(ctx context.Context, state model.BudgetState, asset model.Asset) (*model.ScanCandidate, error) {
	bars := s.series.FetchDailySeries(ctx, asset.Symbol, seriesLimit)

	ind := calculator.Compute(bars)
	if ind == nil {
		log.Printf("[WARN] no price history for %s, skipping", asset.Symbol)
		return nil, nil
	}

	combo := strategy.Evaluate(ind)
	if !budget.Qualifies(state, combo) {
		return nil, nil
	}

	amount, ok := budget.SuggestAmount(state, combo.SignalStrength)
	if !ok {
		log.Printf("[INFO] insufficient budget for %s, skipping", asset.Symbol)
		return nil, nil
	}

	cand := &model.ScanCandidate{
		Asset:           asset,
		Indicators:      *combo,
		SuggestedAmount: amount,
	}

	id, err := s.sink.RecordNotification(cand)
	if err != nil {
		return nil, fmt.Errorf("record notification: %w", err)
	}
	cand.NotificationID = id

	if s.notifier != nil && state.EmailNotifications {
		if s.notifier.Notify(cand) {
			cand.EmailSent = true
			if err := s.sink.MarkEmailSent(id); err != nil {
				log.Printf("[ERROR] mark email sent for %s: %v", asset.Symbol, err)
			}
		}
	}

	return cand, nil
}
