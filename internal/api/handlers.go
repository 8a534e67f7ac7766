package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"kenkai/internal/chat"
	"kenkai/internal/domain"
	"kenkai/internal/export"
	"kenkai/internal/metrics"
	"kenkai/internal/models"
	"kenkai/internal/service"
)

const slotConflictMessage = "This time slot is already booked. Please select another time."

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleBookedSlots(w, r)
	case http.MethodPost:
		s.handleCreateBooking(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleBookedSlots(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		writeError(w, http.StatusBadRequest, "Date parameter is required")
		return
	}

	taken, err := s.bookings.BookedSlots(r.Context(), date)
	if err != nil {
		s.writeBookingError(w, err, "fetch booked slots")
		return
	}
	if taken == nil {
		taken = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"bookedSlots": taken})
}

type createBookingRequest struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Service   string `json:"service"`
	Role      string `json:"role"`
	Challenge string `json:"challenge"`
	Timeline  string `json:"timeline"`
	Budget    string `json:"budget"`
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var body createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.bookings.CreateBooking(r.Context(), &models.Booking{
		Date:      body.Date,
		Time:      body.Time,
		Name:      body.Name,
		Email:     body.Email,
		Company:   body.Company,
		Service:   body.Service,
		Role:      body.Role,
		Challenge: body.Challenge,
		Timeline:  body.Timeline,
		Budget:    body.Budget,
	})
	if err != nil {
		s.writeBookingError(w, err, "create booking")
		return
	}

	metrics.IncBookingCreated()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "booking": booking})
}

func (s *HTTPServer) handleAllBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.gate.Authorize(r) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	bookings, err := s.bookings.ListBookings(r.Context())
	if err != nil {
		s.writeBookingError(w, err, "list bookings")
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.gate.Authorize(r) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	bookings, err := s.bookings.ListBookings(r.Context())
	if err != nil {
		s.writeBookingError(w, err, "list bookings for export")
		return
	}

	data, err := export.BookingsWorkbook(bookings)
	if err != nil {
		s.log.Error().Err(err).Msg("build bookings workbook")
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *HTTPServer) handleAdminVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required")
		return
	}

	token, err := s.gate.Verify(body.Password)
	switch {
	case errors.Is(err, ErrGateNotConfigured):
		s.log.Error().Msg("admin password hash is not configured")
		writeError(w, http.StatusInternalServerError, "Admin authentication not configured")
		return
	case errors.Is(err, ErrInvalidPassword):
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("admin verify")
		writeError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

func (s *HTTPServer) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Company string `json:"company"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := s.leads.SubmitContact(r.Context(), &models.ContactMessage{
		Name:    body.Name,
		Email:   body.Email,
		Company: body.Company,
		Subject: body.Subject,
		Message: body.Message,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error().Err(err).Msg("submit contact message")
		writeError(w, http.StatusInternalServerError, "Failed to process contact form")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Contact form submitted successfully",
	})
}

func (s *HTTPServer) handleResourceDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Email        string `json:"email"`
		ResourceType string `json:"resourceType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.leads.RequestResource(r.Context(), body.Email, body.ResourceType); err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, "Valid email is required")
			return
		}
		s.log.Error().Err(err).Msg("request resource download")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Resource download initiated",
	})
}

func (s *HTTPServer) handleTalentInterest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "Invalid email"})
		return
	}

	if err := s.leads.SubmitTalentInterest(r.Context(), body.Email); err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "Invalid email"})
			return
		}
		s.log.Error().Err(err).Msg("submit talent interest")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "Server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *HTTPServer) handleChatStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	reply, err := s.advisor.Start(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("start chat session")
		writeError(w, http.StatusInternalServerError, "failed to start chat")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *HTTPServer) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.SessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	reply, err := s.advisor.Message(r.Context(), body.SessionID, body.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "message is required")
		return
	case errors.Is(err, chat.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "chat session not found")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("advance chat session")
		writeError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

// handleChatSummary serves GET /api/v1/chat/{sessionId}/summary.pdf.
func (s *HTTPServer) handleChatSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	const prefix = "/api/v1/chat/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	sessionID, ok := strings.CutSuffix(rest, "/summary.pdf")
	if !ok || sessionID == "" || strings.Contains(sessionID, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	data, err := s.advisor.Summary(r.Context(), sessionID)
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "chat session not found")
		return
	case errors.Is(err, chat.ErrIncomplete):
		writeError(w, http.StatusConflict, "chat flow is not complete yet")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("render chat summary")
		writeError(w, http.StatusInternalServerError, "failed to render summary")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="project-scope-%s.pdf"`, sessionID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// writeBookingError maps service errors to HTTP statuses. Persistence faults
// are logged with the operation name only, never the payload.
func (s *HTTPServer) writeBookingError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSlotTaken):
		metrics.IncBookingConflict()
		writeError(w, http.StatusConflict, slotConflictMessage)
	default:
		s.log.Error().Err(err).Str("op", op).Msg("persistence fault")
		writeError(w, http.StatusInternalServerError, "Failed to process booking request")
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
