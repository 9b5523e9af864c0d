package itinerary

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-day-planner/internal/api"
	"github.com/FACorreiaa/go-day-planner/internal/types"
)

// GenerateRequest is the body of POST /itinerary. Places is the discovery
// result (or the already selected subset); SelectedIDs narrows it down.
type GenerateRequest struct {
	types.UserSelection
	Places []types.Place `json:"places"`
}

type Response struct {
	Items       []types.ItineraryItem `json:"items"`
	Directions  []DirectionLink       `json:"directions,omitempty"`
	MapEmbedURL string                `json:"mapEmbedUrl,omitempty"`
}

type HandlerImpl struct {
	itineraryService Service
	mapsAPIKey       string
	logger           *slog.Logger
}

// NewHandlerImpl wires the handler. mapsAPIKey is optional and only used to
// build the map embed URL.
func NewHandlerImpl(itineraryService Service, mapsAPIKey string, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		itineraryService: itineraryService,
		mapsAPIKey:       mapsAPIKey,
		logger:           logger,
	}
}

// GenerateItinerary godoc
// @Summary      Generate Itinerary
// @Description  Builds a timed 1-day plan for the selected places. When the model fails or returns nothing usable, a locally scheduled plan is returned instead, so upstream problems never surface as errors.
// @Tags         Itinerary
// @Accept       json
// @Produce      json
// @Param        request body GenerateRequest true "City, places, selection, start/end time and pace"
// @Success      200 {object} Response "Itinerary with direction links"
// @Failure      400 {object} api.ErrorBody "Invalid Input"
// @Failure      429 {string} string "Too Many Requests"
// @Router       /itinerary [post]
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))
	l.DebugContext(ctx, "Generate itinerary handler invoked")

	var req GenerateRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	pace, err := types.ParsePace(string(req.Pace))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	city := strings.TrimSpace(req.City)
	if city == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "City is required")
		return
	}
	selected := types.SelectPlaces(req.Places, req.SelectedIDs)
	if len(selected) == 0 {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Select at least one place")
		return
	}

	l = l.With(slog.String("city", city), slog.Int("places", len(selected)))
	items := h.itineraryService.GenerateItinerary(ctx, city, selected, req.StartTime, req.EndTime, pace)

	l.InfoContext(ctx, "Itinerary ready", slog.Int("items", len(items)))
	api.WriteJSONResponse(w, r, http.StatusOK, Response{
		Items:       items,
		Directions:  BuildDirections(items),
		MapEmbedURL: MapEmbedURL(h.mapsAPIKey, city, items),
	})
}
