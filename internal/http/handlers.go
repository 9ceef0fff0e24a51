package http

import (
	"encoding/json"
	"net/http"
	"time"

	"soundpay/internal/clock"
	"soundpay/internal/core"
	"soundpay/internal/log"
)

type notificationRequest struct {
	PackageName  string `json:"package_name"`
	Title        string `json:"title"`
	Text         string `json:"text"`
	ExpandedText string `json:"expanded_text"`
}

type paymentResponse struct {
	ID         int64  `json:"id"`
	Amount     string `json:"amount"`
	SenderName string `json:"sender_name,omitempty"`
	AppName    string `json:"app_name"`
	Timestamp  int64  `json:"timestamp"`
	ReceivedAt string `json:"received_at"`
}

type windowSummary struct {
	Total string `json:"total"`
	Count int64  `json:"count"`
}

type summaryResponse struct {
	Today windowSummary `json:"today"`
	Week  windowSummary `json:"week"`
	Month windowSummary `json:"month"`
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleNotifications accepts a notification and submits it to the sink.
// 202 means accepted for processing, not that a payment was recognized.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req notificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	n := core.NewNotification(req.PackageName, req.Title, req.Text, req.ExpandedText)
	if err := n.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.sink.Submit(r.Context(), n); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Notification submit failed",
			log.FieldPackage, n.PackageName,
			log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to process notification")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// handlePayments handles the collection endpoint. Only DELETE is supported,
// which clears the payment history.
func (s *Server) handlePayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.purger.DeleteAll(r.Context()); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to clear payments", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to clear payments")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleRecentPayments returns the latest payments, newest first.
func (s *Server) handleRecentPayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	payments, err := s.payments.Recent(r.Context(), parseLimit(r))
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to read recent payments", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to read payments")
		return
	}

	resp := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, paymentResponse{
			ID:         p.ID,
			Amount:     p.Amount,
			SenderName: p.SenderName,
			AppName:    p.AppName,
			Timestamp:  p.TimestampMillis,
			ReceivedAt: clock.FormatMillis(p.TimestampMillis),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSummary returns totals and counts for the IST day, week and month
// containing the current moment.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now := s.now()
	windows := []struct {
		since int64
		out   *windowSummary
	}{
		{clock.StartOfDay(now), nil},
		{clock.StartOfWeek(now), nil},
		{clock.StartOfMonth(now), nil},
	}

	var resp summaryResponse
	windows[0].out = &resp.Today
	windows[1].out = &resp.Week
	windows[2].out = &resp.Month

	for _, win := range windows {
		total, err := s.payments.SumAmounts(r.Context(), win.since)
		if err != nil {
			log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to sum payments", log.FieldError, err)
			writeError(w, http.StatusInternalServerError, "failed to compute summary")
			return
		}
		count, err := s.payments.Count(r.Context(), win.since)
		if err != nil {
			log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to count payments", log.FieldError, err)
			writeError(w, http.StatusInternalServerError, "failed to compute summary")
			return
		}
		win.out.Total = formatTotal(total)
		win.out.Count = count
	}

	writeJSON(w, http.StatusOK, resp)
}
