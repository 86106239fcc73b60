package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sportbeacon/eventparse/internal/config"
	"github.com/sportbeacon/eventparse/internal/parser"
	"github.com/sportbeacon/eventparse/internal/storage/sqlite"
	"github.com/sportbeacon/eventparse/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(parserSvc *parser.Parser, venueStorage *sqlite.VenueStorage, bookingStorage *sqlite.BookingStorage, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(parserSvc, venueStorage, bookingStorage, cfg, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Command parsing
		router.Post("/parse", r.handler.ParseCommand)

		// Venue directory
		router.Get("/venues", r.handler.SearchVenues)

		// Bookings
		router.Post("/bookings", r.handler.CreateBooking)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	return router
}
