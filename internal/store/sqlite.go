package store

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SignalScout/internal/budget"
	"SignalScout/internal/model"
)

// Store persists assets, budget state, notifications and positions to a
// SQLite database. It backs the scanner's store collaborators and the thin
// HTTP CRUD layer.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the HTTP layer can read while a scan writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT NOT NULL UNIQUE,
			name       TEXT NOT NULL,
			asset_type TEXT NOT NULL DEFAULT 'INDEX',
			active     INTEGER NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS settings (
			id                  INTEGER PRIMARY KEY CHECK (id = 1),
			annual_budget       REAL NOT NULL,
			monthly_max_budget  REAL NOT NULL,
			max_position_size   REAL NOT NULL,
			min_combo20         REAL NOT NULL,
			min_combo50         REAL NOT NULL,
			min_signal_strength INTEGER NOT NULL,
			email_notifications INTEGER NOT NULL DEFAULT 1,
			current_month_spent REAL NOT NULL DEFAULT 0,
			current_year_spent  REAL NOT NULL DEFAULT 0,
			last_month_reset    INTEGER NOT NULL,
			last_year_reset     INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			asset_id         INTEGER NOT NULL REFERENCES assets(id),
			created_at       INTEGER NOT NULL,
			current_price    REAL,
			ma20             REAL,
			ma50             REAL,
			bollinger_upper  REAL,
			bollinger_middle REAL,
			bollinger_lower  REAL,
			combo20          REAL,
			combo50          REAL,
			signal_strength  INTEGER,
			recommendation   TEXT,
			rationale        TEXT,
			suggested_amount REAL,
			status           TEXT NOT NULL DEFAULT 'PENDING',
			viewed           INTEGER NOT NULL DEFAULT 0,
			email_sent       INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_ts ON notifications(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_status ON notifications(status)`,

		`CREATE TABLE IF NOT EXISTS positions (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			notification_id  INTEGER NOT NULL REFERENCES notifications(id),
			asset_id         INTEGER NOT NULL REFERENCES assets(id),
			entry_price      REAL NOT NULL,
			quantity         REAL NOT NULL,
			invested_amount  REAL NOT NULL,
			entry_date       INTEGER NOT NULL,
			exit_price       REAL,
			exit_date        INTEGER,
			realized_pnl     REAL,
			realized_pnl_pct REAL,
			notes            TEXT,
			status           TEXT NOT NULL DEFAULT 'OPEN'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_positions_status ON positions(status)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// EnsureSeedData creates the settings row and the default assets on first
// run. Existing rows are left untouched.
func (s *Store) EnsureSeedData(defaults model.BudgetState, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		_, err := s.db.Exec(`INSERT INTO settings
			(id, annual_budget, monthly_max_budget, max_position_size,
			 min_combo20, min_combo50, min_signal_strength, email_notifications,
			 current_month_spent, current_year_spent, last_month_reset, last_year_reset)
			VALUES (1,?,?,?,?,?,?,?,0,0,?,?)`,
			defaults.AnnualBudget, defaults.MonthlyMaxBudget, defaults.MaxPositionSize,
			defaults.MinCombo20, defaults.MinCombo50, defaults.MinSignalStrength,
			boolToInt(defaults.EmailNotifications), now.Unix(), now.Unix(),
		)
		if err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
		log.Println("[INFO] default settings created")
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM assets`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		seed := []model.Asset{
			{Symbol: "SPX500", Name: "S&P 500", AssetType: "INDEX", Active: true},
			{Symbol: "XAUUSD", Name: "Gold", AssetType: "COMMODITY", Active: true},
		}
		for _, a := range seed {
			if _, err := s.db.Exec(`INSERT INTO assets (symbol, name, asset_type, active, created_at) VALUES (?,?,?,?,?)`,
				a.Symbol, a.Name, a.AssetType, boolToInt(a.Active), now.Unix()); err != nil {
				return fmt.Errorf("seed asset %s: %w", a.Symbol, err)
			}
		}
		log.Println("[INFO] default assets created: SPX500, XAUUSD")
	}

	return nil
}

// ---- assets ----

func (s *Store) ListActiveAssets() ([]model.Asset, error) {
	return s.listAssets(`SELECT id, symbol, name, asset_type, active, created_at FROM assets WHERE active = 1 ORDER BY id`)
}

func (s *Store) ListAssets() ([]model.Asset, error) {
	return s.listAssets(`SELECT id, symbol, name, asset_type, active, created_at FROM assets ORDER BY id`)
}

func (s *Store) listAssets(query string) ([]model.Asset, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []model.Asset
	for rows.Next() {
		var a model.Asset
		var active int
		var created int64
		if err := rows.Scan(&a.ID, &a.Symbol, &a.Name, &a.AssetType, &active, &created); err != nil {
			return nil, err
		}
		a.Active = active != 0
		a.CreatedAt = time.Unix(created, 0)
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (s *Store) CreateAsset(symbol, name, assetType string) (*model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if assetType == "" {
		assetType = "INDEX"
	}
	now := time.Now()
	res, err := s.db.Exec(`INSERT INTO assets (symbol, name, asset_type, active, created_at) VALUES (?,?,?,1,?)`,
		symbol, name, assetType, now.Unix())
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.Asset{ID: id, Symbol: symbol, Name: name, AssetType: assetType, Active: true, CreatedAt: now}, nil
}

func (s *Store) SetAssetActive(id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE assets SET active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return err
	}
	return requireRow(res, "asset", id)
}

// ---- budget state ----

func (s *Store) LoadBudgetState() (model.BudgetState, error) {
	var st model.BudgetState
	var email int
	var lastMonth, lastYear int64
	err := s.db.QueryRow(`SELECT annual_budget, monthly_max_budget, max_position_size,
		min_combo20, min_combo50, min_signal_strength, email_notifications,
		current_month_spent, current_year_spent, last_month_reset, last_year_reset
		FROM settings WHERE id = 1`).Scan(
		&st.AnnualBudget, &st.MonthlyMaxBudget, &st.MaxPositionSize,
		&st.MinCombo20, &st.MinCombo50, &st.MinSignalStrength, &email,
		&st.CurrentMonthSpent, &st.CurrentYearSpent, &lastMonth, &lastYear,
	)
	if err != nil {
		return model.BudgetState{}, fmt.Errorf("load budget state: %w", err)
	}
	st.EmailNotifications = email != 0
	st.LastMonthReset = time.Unix(lastMonth, 0)
	st.LastYearReset = time.Unix(lastYear, 0)
	return st, nil
}

func (s *Store) SaveBudgetState(st model.BudgetState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveBudgetStateLocked(st)
}

func (s *Store) saveBudgetStateLocked(st model.BudgetState) error {
	_, err := s.db.Exec(`UPDATE settings SET
		annual_budget = ?, monthly_max_budget = ?, max_position_size = ?,
		min_combo20 = ?, min_combo50 = ?, min_signal_strength = ?, email_notifications = ?,
		current_month_spent = ?, current_year_spent = ?, last_month_reset = ?, last_year_reset = ?
		WHERE id = 1`,
		st.AnnualBudget, st.MonthlyMaxBudget, st.MaxPositionSize,
		st.MinCombo20, st.MinCombo50, st.MinSignalStrength, boolToInt(st.EmailNotifications),
		st.CurrentMonthSpent, st.CurrentYearSpent, st.LastMonthReset.Unix(), st.LastYearReset.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save budget state: %w", err)
	}
	return nil
}

// ---- notifications ----

func (s *Store) RecordNotification(c *model.ScanCandidate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ind := c.Indicators
	res, err := s.db.Exec(`INSERT INTO notifications
		(asset_id, created_at, current_price, ma20, ma50,
		 bollinger_upper, bollinger_middle, bollinger_lower,
		 combo20, combo50, signal_strength, recommendation, rationale,
		 suggested_amount, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,'PENDING')`,
		c.Asset.ID, time.Now().Unix(), ind.CurrentPrice, ind.MA20, ind.MA50,
		ind.BollingerUpper, ind.BollingerMiddle, ind.BollingerLower,
		ind.Combo20, ind.Combo50, ind.SignalStrength, string(ind.Recommendation),
		strings.Join(ind.Rationale, "\n"), c.SuggestedAmount,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) MarkEmailSent(notificationID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE notifications SET email_sent = 1 WHERE id = ?`, notificationID)
	if err != nil {
		return err
	}
	return requireRow(res, "notification", notificationID)
}

// ListNotifications returns notifications newest first, optionally filtered
// by status.
func (s *Store) ListNotifications(status string) ([]model.Notification, error) {
	query := `SELECT n.id, n.asset_id, a.symbol, n.created_at, n.current_price,
		n.ma20, n.ma50, n.bollinger_upper, n.bollinger_middle, n.bollinger_lower,
		n.combo20, n.combo50, n.signal_strength, n.recommendation, n.rationale,
		n.suggested_amount, n.status, n.viewed, n.email_sent
		FROM notifications n JOIN assets a ON a.id = n.asset_id`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE n.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY n.created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		var rec string
		var created int64
		var viewed, emailSent int
		if err := rows.Scan(&n.ID, &n.AssetID, &n.Symbol, &created, &n.CurrentPrice,
			&n.MA20, &n.MA50, &n.BollingerUpper, &n.BollingerMiddle, &n.BollingerLower,
			&n.Combo20, &n.Combo50, &n.SignalStrength, &rec, &n.Rationale,
			&n.SuggestedAmount, &n.Status, &viewed, &emailSent); err != nil {
			return nil, err
		}
		n.CreatedAt = time.Unix(created, 0)
		n.Recommendation = model.Recommendation(rec)
		n.Viewed = viewed != 0
		n.EmailSent = emailSent != 0
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) UpdateNotificationStatus(id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE notifications SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return requireRow(res, "notification", id)
}

func (s *Store) MarkNotificationViewed(id int64, viewed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE notifications SET viewed = ? WHERE id = ?`, boolToInt(viewed), id)
	if err != nil {
		return err
	}
	return requireRow(res, "notification", id)
}

// ---- positions ----

// OpenPosition records an executed entry for a notification, marks the
// notification EXECUTED and accrues the invested amount against the budget
// counters.
func (s *Store) OpenPosition(notificationID int64, entryPrice, quantity, investedAmount float64, entryDate time.Time, notes string) (*model.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var assetID int64
	if err := s.db.QueryRow(`SELECT asset_id FROM notifications WHERE id = ?`, notificationID).Scan(&assetID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("notification %d not found", notificationID)
		}
		return nil, err
	}

	res, err := s.db.Exec(`INSERT INTO positions
		(notification_id, asset_id, entry_price, quantity, invested_amount, entry_date, notes, status)
		VALUES (?,?,?,?,?,?,?,'OPEN')`,
		notificationID, assetID, entryPrice, quantity, investedAmount, entryDate.Unix(), notes)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if _, err := s.db.Exec(`UPDATE notifications SET status = 'EXECUTED' WHERE id = ?`, notificationID); err != nil {
		return nil, err
	}

	state, err := s.LoadBudgetState()
	if err != nil {
		return nil, err
	}
	if err := s.saveBudgetStateLocked(budget.ApplySpend(state, investedAmount)); err != nil {
		return nil, err
	}

	return &model.Position{
		ID:             id,
		NotificationID: notificationID,
		AssetID:        assetID,
		EntryPrice:     entryPrice,
		Quantity:       quantity,
		InvestedAmount: investedAmount,
		EntryDate:      entryDate,
		Notes:          notes,
		Status:         model.PositionOpen,
	}, nil
}

// ClosePosition records the exit and the realized profit or loss.
func (s *Store) ClosePosition(positionID int64, exitPrice float64, exitDate time.Time, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entryPrice, quantity float64
	if err := s.db.QueryRow(`SELECT entry_price, quantity FROM positions WHERE id = ?`, positionID).Scan(&entryPrice, &quantity); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("position %d not found", positionID)
		}
		return err
	}

	pnl := (exitPrice - entryPrice) * quantity
	pnlPct := 0.0
	if entryPrice != 0 {
		pnlPct = (exitPrice - entryPrice) / entryPrice * 100
	}

	_, err := s.db.Exec(`UPDATE positions SET
		exit_price = ?, exit_date = ?, realized_pnl = ?, realized_pnl_pct = ?, notes = ?, status = 'CLOSED'
		WHERE id = ?`,
		exitPrice, exitDate.Unix(), pnl, pnlPct, notes, positionID)
	return err
}

// ListPositions returns positions newest first, optionally filtered by
// status.
func (s *Store) ListPositions(status string) ([]model.Position, error) {
	query := `SELECT p.id, p.notification_id, p.asset_id, a.symbol,
		p.entry_price, p.quantity, p.invested_amount, p.entry_date,
		p.exit_price, p.exit_date, p.realized_pnl, p.realized_pnl_pct,
		p.notes, p.status
		FROM positions p JOIN assets a ON a.id = p.asset_id`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE p.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY p.entry_date DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Position
	for rows.Next() {
		var p model.Position
		var entry int64
		var exitPrice, pnl, pnlPct sql.NullFloat64
		var exitDate sql.NullInt64
		var notes sql.NullString
		if err := rows.Scan(&p.ID, &p.NotificationID, &p.AssetID, &p.Symbol,
			&p.EntryPrice, &p.Quantity, &p.InvestedAmount, &entry,
			&exitPrice, &exitDate, &pnl, &pnlPct, &notes, &p.Status); err != nil {
			return nil, err
		}
		p.EntryDate = time.Unix(entry, 0)
		p.ExitPrice = exitPrice.Float64
		if exitDate.Valid {
			t := time.Unix(exitDate.Int64, 0)
			p.ExitDate = &t
		}
		p.RealizedPnL = pnl.Float64
		p.RealizedPnLPct = pnlPct.Float64
		p.Notes = notes.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireRow(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d not found", kind, id)
	}
	return nil
}
