package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sportbeacon/eventparse/internal/booking"
	"github.com/sportbeacon/eventparse/internal/config"
	"github.com/sportbeacon/eventparse/internal/parser"
	"github.com/sportbeacon/eventparse/internal/storage/sqlite"
	"github.com/sportbeacon/eventparse/internal/venues"
	"github.com/sportbeacon/eventparse/pkg/logger"
)

// maxRequestBody caps parse and booking request bodies at 64 KiB
const maxRequestBody = 64 << 10

// Handler contains the HTTP handlers for the parse service
type Handler struct {
	parser   *parser.Parser
	venues   *sqlite.VenueStorage
	bookings *sqlite.BookingStorage
	config   *config.Config
	logger   *logger.Logger
	started  time.Time
}

// NewHandler creates a new API handler
func NewHandler(p *parser.Parser, venueStorage *sqlite.VenueStorage, bookingStorage *sqlite.BookingStorage, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		parser:   p,
		venues:   venueStorage,
		bookings: bookingStorage,
		config:   cfg,
		logger:   log.Named("api"),
		started:  time.Now().UTC(),
	}
}

// parseRequest is the wire shape of a parse call. Timestamp overrides the
// reference instant relative expressions resolve against; it defaults to the
// current time.
type parseRequest struct {
	Text      string    `json:"text"`
	UserID    string    `json:"user_id,omitempty"`
	Locale    string    `json:"locale,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
}

// bookingRequest is the wire shape of a booking call
type bookingRequest struct {
	VenueID string    `json:"venueId"`
	UserID  string    `json:"userId,omitempty"`
	Start   time.Time `json:"startTime"`
	End     time.Time `json:"endTime"`
}

// venuesResponse wraps a venue listing
type venuesResponse struct {
	Venues []venues.Venue `json:"venues"`
	Count  int            `json:"count"`
}

// healthResponse reports liveness and component state
type healthResponse struct {
	Status        string            `json:"status"`
	UptimeSeconds int64             `json:"uptimeSeconds"`
	Components    map[string]string `json:"components"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ParseCommand handles POST /api/v1/parse. The response body is always a
// ParseResult; only blank text and malformed JSON produce a 400.
func (h *Handler) ParseCommand(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	cmd := parser.Command{
		Text:       req.Text,
		UserID:     req.UserID,
		LocaleHint: req.Locale,
		Timestamp:  req.Timestamp,
	}
	if req.Lat != nil && req.Lng != nil {
		cmd.Context = &parser.CommandContext{
			Geo: &venues.Geo{Lat: *req.Lat, Lng: *req.Lng},
		}
	}

	result := h.parser.Parse(r.Context(), cmd)

	status := http.StatusOK
	for _, code := range result.Errors {
		if code == parser.ErrCodeValidation {
			status = http.StatusBadRequest
			break
		}
	}
	h.respondJSON(w, status, result)
}

// SearchVenues handles GET /api/v1/venues. With ?q= it runs the same prefix
// lookup the resolver uses; without it the whole directory is returned.
func (h *Handler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var (
		found []venues.Venue
		err   error
	)
	if query == "" {
		found, err = h.venues.ScanAll(r.Context())
	} else {
		found, err = h.venues.LookupByNamePrefix(r.Context(), query)
	}
	if err != nil {
		h.logger.Error("Venue lookup failed", logger.Error(err))
		h.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "venue lookup failed"})
		return
	}

	if found == nil {
		found = []venues.Venue{}
	}
	h.respondJSON(w, http.StatusOK, venuesResponse{Venues: found, Count: len(found)})
}

// CreateBooking handles POST /api/v1/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.VenueID == "" || req.Start.IsZero() || req.End.IsZero() {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "venueId, startTime and endTime are required"})
		return
	}
	if !req.End.After(req.Start) {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "endTime must be after startTime"})
		return
	}

	id, err := h.bookings.CreateBooking(r.Context(), booking.Booking{
		VenueID: req.VenueID,
		UserID:  req.UserID,
		Start:   req.Start,
		End:     req.End,
	})
	if err != nil {
		h.logger.Error("Failed to create booking", logger.Error(err))
		h.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create booking"})
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	components := map[string]string{
		"parser": "ok",
		"ai":     "disabled",
	}
	if h.config.AI.Enabled {
		components["ai"] = "enabled"
	}

	status := http.StatusOK
	overall := "ok"
	if _, err := h.venues.Count(r.Context()); err != nil {
		components["database"] = "error"
		overall = "degraded"
		status = http.StatusServiceUnavailable
	} else {
		components["database"] = "ok"
	}

	h.respondJSON(w, status, healthResponse{
		Status:        overall,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Components:    components,
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}
