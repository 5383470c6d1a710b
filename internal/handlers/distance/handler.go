package distance

import (
	"net/http"
	"villa/infras/otel"
	"villa/internal/domains/distance/service"
	"villa/shared/constant"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryOrigin = "origin"
)

type Handler struct {
	service service.Distance
	otel    otel.Otel
}

func New(service service.Distance, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/distance", handler.FromVilla)
}

// FromVilla returns the driving distance from origin to the villa.
// @Summary Distance to the villa
// @Tags Distance
// @Produce json
// @Param origin query string true "Origin address or lat,lng"
// @Success 200 {object} response.Data[dto.DistanceResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/distance [get]
func (handler *Handler) FromVilla(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FromVilla")
	defer scope.End()

	res, err := handler.service.FromVilla(ctx, r.URL.Query().Get(queryOrigin))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get distance")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
