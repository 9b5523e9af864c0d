package poi

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

// DiscoverRequest is the body of POST /places/discover.
type DiscoverRequest struct {
	City      string   `json:"city"`
	Interests []string `json:"interests"`
}

type HandlerImpl struct {
	poiService Service
	logger     *slog.Logger
}

func NewHandlerImpl(poiService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		poiService: poiService,
		logger:     logger,
	}
}

// DiscoverPlaces godoc
// @Summary      Discover Places
// @Description  Asks the model, grounded with Google Maps and Search, for 8-12 places in a city matching the interest tags, plus one short city insight.
// @Tags         Places
// @Accept       json
// @Produce      json
// @Param        request body DiscoverRequest true "City and interest tags"
// @Success      200 {object} types.DiscoveryResult "Places and insight"
// @Failure      400 {object} api.ErrorBody "Invalid Input"
// @Failure      429 {string} string "Too Many Requests"
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Failure      502 {object} api.ErrorBody "Unparsable Model Response"
// @Failure      503 {object} api.ErrorBody "Model Unavailable"
// @Router       /places/discover [post]
func (h *HandlerImpl) DiscoverPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("POIHandler").Start(r.Context(), "DiscoverPlaces", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/places/discover"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "DiscoverPlaces"))
	l.DebugContext(ctx, "Discover places handler invoked")

	var req DiscoverRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	city := strings.TrimSpace(req.City)
	interests := types.CleanInterests(req.Interests)
	if city == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "City is required")
		return
	}
	if len(interests) == 0 {
		api.ErrorResponse(w, r, http.StatusBadRequest, "At least one interest is required")
		return
	}
	l = l.With(slog.String("city", city))

	result, err := h.poiService.DiscoverPlaces(ctx, city, interests)
	if err != nil {
		span.RecordError(err)
		status := api.ModelErrorResponse(w, r, "Could not fetch places", err)
		l.ErrorContext(ctx, "Failed to discover places", slog.Int("status", status), slog.Any("error", err))
		return
	}

	l.InfoContext(ctx, "Places discovered successfully", slog.Int("count", len(result.Places)))
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// GetInterests godoc
// @Summary      List Interests
// @Description  Returns the fixed catalogue of interest tags a user can pick from.
// @Tags         Places
// @Produce      json
// @Success      200 {array} types.Interest "Interest catalogue"
// @Router       /interests [get]
func (h *HandlerImpl) GetInterests(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, types.Interests)
}
