package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"SignalScout/internal/scanner"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScanHint(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": `Use POST with {"secret": "your-cron-secret"} to trigger a scan`,
	})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if s.secret != "" {
		var body struct {
			Secret string `json:"secret"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Secret != s.secret {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
	}

	result, err := s.scanner.RunScan(r.Context(), time.Now())
	if err != nil {
		if errors.Is(err, scanner.ErrScanInProgress) {
			s.writeError(w, http.StatusConflict, "scan already in progress")
			return
		}
		log.Printf("[ERROR] manual scan: %v", err)
		s.writeError(w, http.StatusInternalServerError, "scan failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":              true,
		"scannedAssets":        result.ScannedAssets,
		"notificationsCreated": len(result.Candidates),
		"results":              result.Candidates,
	})
}

// ---- assets ----

func (s *Server) handleListAssets(w http.ResponseWriter, _ *http.Request) {
	assets, err := s.store.ListAssets()
	if err != nil {
		log.Printf("[ERROR] list assets: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch assets")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"assets": assets})
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Symbol    string `json:"symbol"`
		Name      string `json:"name"`
		AssetType string `json:"assetType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Symbol == "" || body.Name == "" {
		s.writeError(w, http.StatusBadRequest, "symbol and name are required")
		return
	}
	asset, err := s.store.CreateAsset(body.Symbol, body.Name, body.AssetType)
	if err != nil {
		log.Printf("[ERROR] create asset: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create asset")
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]interface{}{"asset": asset})
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AssetID int64 `json:"assetId"`
		Active  *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.AssetID == 0 || body.Active == nil {
		s.writeError(w, http.StatusBadRequest, "assetId and active are required")
		return
	}
	if err := s.store.SetAssetActive(body.AssetID, *body.Active); err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ---- notifications ----

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.store.ListNotifications(r.URL.Query().Get("status"))
	if err != nil {
		log.Printf("[ERROR] list notifications: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch notifications")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

func (s *Server) handleUpdateNotification(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NotificationID int64   `json:"notificationId"`
		Status         *string `json:"status"`
		Viewed         *bool   `json:"viewed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.NotificationID == 0 {
		s.writeError(w, http.StatusBadRequest, "notificationId is required")
		return
	}
	if body.Status != nil {
		if err := s.store.UpdateNotificationStatus(body.NotificationID, *body.Status); err != nil {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
	}
	if body.Viewed != nil {
		if err := s.store.MarkNotificationViewed(body.NotificationID, *body.Viewed); err != nil {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ---- settings ----

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	state, err := s.store.LoadBudgetState()
	if err != nil {
		log.Printf("[ERROR] load settings: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch settings")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"settings": state})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AnnualBudget       *float64 `json:"annualBudget"`
		MonthlyMaxBudget   *float64 `json:"monthlyMaxBudget"`
		MaxPositionSize    *float64 `json:"maxPositionSize"`
		MinCombo20         *float64 `json:"minCombo20"`
		MinCombo50         *float64 `json:"minCombo50"`
		MinSignalStrength  *int     `json:"minSignalStrength"`
		EmailNotifications *bool    `json:"emailNotifications"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	state, err := s.store.LoadBudgetState()
	if err != nil {
		log.Printf("[ERROR] load settings: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch settings")
		return
	}

	if body.AnnualBudget != nil {
		state.AnnualBudget = *body.AnnualBudget
	}
	if body.MonthlyMaxBudget != nil {
		state.MonthlyMaxBudget = *body.MonthlyMaxBudget
	}
	if body.MaxPositionSize != nil {
		state.MaxPositionSize = *body.MaxPositionSize
	}
	if body.MinCombo20 != nil {
		state.MinCombo20 = *body.MinCombo20
	}
	if body.MinCombo50 != nil {
		state.MinCombo50 = *body.MinCombo50
	}
	if body.MinSignalStrength != nil {
		state.MinSignalStrength = *body.MinSignalStrength
	}
	if body.EmailNotifications != nil {
		state.EmailNotifications = *body.EmailNotifications
	}

	if err := s.store.SaveBudgetState(state); err != nil {
		log.Printf("[ERROR] save settings: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"settings": state})
}

// ---- positions ----

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := s.store.ListPositions(r.URL.Query().Get("status"))
	if err != nil {
		log.Printf("[ERROR] list positions: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch positions")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"positions": positions})
}

func (s *Server) handleOpenPosition(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NotificationID int64   `json:"notificationId"`
		EntryPrice     float64 `json:"entryPrice"`
		Quantity       float64 `json:"quantity"`
		InvestedAmount float64 `json:"investedAmount"`
		EntryDate      string  `json:"entryDate"`
		Notes          string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.NotificationID == 0 {
		s.writeError(w, http.StatusBadRequest, "notificationId is required")
		return
	}

	entryDate := time.Now()
	if body.EntryDate != "" {
		if t, err := time.Parse(time.RFC3339, body.EntryDate); err == nil {
			entryDate = t
		}
	}

	position, err := s.store.OpenPosition(body.NotificationID, body.EntryPrice, body.Quantity, body.InvestedAmount, entryDate, body.Notes)
	if err != nil {
		log.Printf("[ERROR] open position: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create position")
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]interface{}{"position": position})
}

func (s *Server) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PositionID int64    `json:"positionId"`
		ExitPrice  *float64 `json:"exitPrice"`
		ExitDate   string   `json:"exitDate"`
		Notes      string   `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PositionID == 0 {
		s.writeError(w, http.StatusBadRequest, "positionId is required")
		return
	}
	if body.ExitPrice == nil {
		s.writeError(w, http.StatusBadRequest, "exitPrice is required to close a position")
		return
	}

	exitDate := time.Now()
	if body.ExitDate != "" {
		if t, err := time.Parse(time.RFC3339, body.ExitDate); err == nil {
			exitDate = t
		}
	}

	if err := s.store.ClosePosition(body.PositionID, *body.ExitPrice, exitDate, body.Notes); err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ---- helpers ----

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
