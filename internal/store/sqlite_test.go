package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScout/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedDefaults() model.BudgetState {
	return model.BudgetState{
		AnnualBudget:       1000,
		MonthlyMaxBudget:   100,
		MaxPositionSize:    200,
		MinCombo20:         0.95,
		MinCombo50:         0.92,
		MinSignalStrength:  70,
		EmailNotifications: true,
	}
}

func TestEnsureSeedData(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.EnsureSeedData(seedDefaults(), now))

	assets, err := s.ListActiveAssets()
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "SPX500", assets[0].Symbol)
	assert.Equal(t, "INDEX", assets[0].AssetType)
	assert.Equal(t, "XAUUSD", assets[1].Symbol)
	assert.Equal(t, "COMMODITY", assets[1].AssetType)

	state, err := s.LoadBudgetState()
	require.NoError(t, err)
	assert.InDelta(t, 1000, state.AnnualBudget, 1e-9)
	assert.InDelta(t, 0.95, state.MinCombo20, 1e-9)
	assert.True(t, state.EmailNotifications)
	assert.Zero(t, state.CurrentMonthSpent)
	assert.Equal(t, now.Unix(), state.LastMonthReset.Unix())

	// Seeding again must not duplicate anything.
	require.NoError(t, s.EnsureSeedData(seedDefaults(), now))
	assets, err = s.ListAssets()
	require.NoError(t, err)
	assert.Len(t, assets, 2)
}

func TestSaveLoadBudgetStateRoundTrip(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.EnsureSeedData(seedDefaults(), now))

	state, err := s.LoadBudgetState()
	require.NoError(t, err)
	state.CurrentMonthSpent = 42.5
	state.CurrentYearSpent = 321.75
	state.MinSignalStrength = 80
	state.EmailNotifications = false
	state.LastMonthReset = now.AddDate(0, 1, 0)
	require.NoError(t, s.SaveBudgetState(state))

	got, err := s.LoadBudgetState()
	require.NoError(t, err)
	assert.InDelta(t, 42.5, got.CurrentMonthSpent, 1e-9)
	assert.InDelta(t, 321.75, got.CurrentYearSpent, 1e-9)
	assert.Equal(t, 80, got.MinSignalStrength)
	assert.False(t, got.EmailNotifications)
	assert.Equal(t, state.LastMonthReset.Unix(), got.LastMonthReset.Unix())
}

func TestAssetLifecycle(t *testing.T) {
	s := openTestStore(t)

	asset, err := s.CreateAsset("BTCUSD", "Bitcoin", "CRYPTO")
	require.NoError(t, err)
	assert.NotZero(t, asset.ID)
	assert.True(t, asset.Active)

	require.NoError(t, s.SetAssetActive(asset.ID, false))
	active, err := s.ListActiveAssets()
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := s.ListAssets()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)

	assert.Error(t, s.SetAssetActive(9999, true))
}

func recordTestNotification(t *testing.T, s *Store, assetID int64) int64 {
	t.Helper()
	cand := &model.ScanCandidate{
		Asset: model.Asset{ID: assetID, Symbol: "BTCUSD"},
		Indicators: model.ComboIndicators{
			TechnicalIndicators: model.TechnicalIndicators{
				CurrentPrice: 100, MA20: 100, MA50: 100,
				BollingerUpper: 100, BollingerMiddle: 100, BollingerLower: 100,
			},
			Combo20:        1,
			Combo50:        1,
			SignalStrength: 95,
			Recommendation: model.StrongBuy,
			Rationale:      []string{"line one", "line two"},
		},
		SuggestedAmount: 141.67,
	}
	id, err := s.RecordNotification(cand)
	require.NoError(t, err)
	return id
}

func TestNotificationLifecycle(t *testing.T) {
	s := openTestStore(t)
	asset, err := s.CreateAsset("BTCUSD", "Bitcoin", "CRYPTO")
	require.NoError(t, err)

	id := recordTestNotification(t, s, asset.ID)

	pending, err := s.ListNotifications(model.NotificationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	n := pending[0]
	assert.Equal(t, id, n.ID)
	assert.Equal(t, "BTCUSD", n.Symbol)
	assert.Equal(t, model.StrongBuy, n.Recommendation)
	assert.Equal(t, 95, n.SignalStrength)
	assert.Equal(t, "line one\nline two", n.Rationale)
	assert.False(t, n.EmailSent)
	assert.False(t, n.Viewed)

	require.NoError(t, s.MarkEmailSent(id))
	require.NoError(t, s.MarkNotificationViewed(id, true))
	require.NoError(t, s.UpdateNotificationStatus(id, model.NotificationDismissed))

	dismissed, err := s.ListNotifications(model.NotificationDismissed)
	require.NoError(t, err)
	require.Len(t, dismissed, 1)
	assert.True(t, dismissed[0].EmailSent)
	assert.True(t, dismissed[0].Viewed)

	pending, err = s.ListNotifications(model.NotificationPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOpenPositionAccruesSpend(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.EnsureSeedData(seedDefaults(), now))

	assets, err := s.ListActiveAssets()
	require.NoError(t, err)
	notifID := recordTestNotification(t, s, assets[0].ID)

	pos, err := s.OpenPosition(notifID, 100, 1.4, 140, now, "first entry")
	require.NoError(t, err)
	assert.Equal(t, model.PositionOpen, pos.Status)
	assert.Equal(t, notifID, pos.NotificationID)

	state, err := s.LoadBudgetState()
	require.NoError(t, err)
	assert.InDelta(t, 140, state.CurrentMonthSpent, 1e-9)
	assert.InDelta(t, 140, state.CurrentYearSpent, 1e-9)

	executed, err := s.ListNotifications(model.NotificationExecuted)
	require.NoError(t, err)
	require.Len(t, executed, 1)
	assert.Equal(t, notifID, executed[0].ID)

	_, err = s.OpenPosition(9999, 100, 1, 100, now, "")
	assert.Error(t, err)
}

func TestClosePositionRealizesPnL(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.EnsureSeedData(seedDefaults(), now))

	assets, err := s.ListActiveAssets()
	require.NoError(t, err)
	notifID := recordTestNotification(t, s, assets[0].ID)

	pos, err := s.OpenPosition(notifID, 100, 2, 200, now, "")
	require.NoError(t, err)

	exit := now.AddDate(0, 1, 0)
	require.NoError(t, s.ClosePosition(pos.ID, 110, exit, "took profit"))

	closed, err := s.ListPositions(model.PositionClosed)
	require.NoError(t, err)
	require.Len(t, closed, 1)
	p := closed[0]
	assert.InDelta(t, 20, p.RealizedPnL, 1e-9) // (110-100)*2
	assert.InDelta(t, 10, p.RealizedPnLPct, 1e-9)
	require.NotNil(t, p.ExitDate)
	assert.Equal(t, exit.Unix(), p.ExitDate.Unix())
	assert.Equal(t, "took profit", p.Notes)

	open, err := s.ListPositions(model.PositionOpen)
	require.NoError(t, err)
	assert.Empty(t, open)

	assert.Error(t, s.ClosePosition(9999, 100, exit, ""))
}
