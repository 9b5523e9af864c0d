package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FACorreiaa/go-day-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-day-planner/internal/api/poi"
)

// Config contains dependencies needed for the router setup.
// RequestsPerMinute caps /api/v1 calls per client IP; zero uses the default.
type Config struct {
	POIHandler        *poi.HandlerImpl
	ItineraryHandler  *itinerary.HandlerImpl
	AllowedOrigins    []string
	RequestsPerMinute int
}

var defaultOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

const defaultRequestsPerMinute = 30

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) is applied in main
// before this router is mounted.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Handle("/metrics", promhttp.Handler())

	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = defaultRequestsPerMinute
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(limit, time.Minute))
		r.Get("/interests", cfg.POIHandler.GetInterests)
		r.Post("/places/discover", cfg.POIHandler.DiscoverPlaces)
		r.Post("/itinerary", cfg.ItineraryHandler.GenerateItinerary)
	})

	return r
}
