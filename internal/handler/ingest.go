package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/mathieu-neron/topictube/topictube-go/internal/middleware"
	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
	"github.com/mathieu-neron/topictube/topictube-go/internal/service"
	"github.com/mathieu-neron/topictube/topictube-go/internal/youtube"
)

// Ingester runs one ingestion batch and returns the regrouped corpus.
type Ingester interface {
	Ingest(ctx context.Context, urls []string) ([]model.Group, error)
}

type IngestHandler struct {
	svc       Ingester
	batchSize int
	log       zerolog.Logger
}

func NewIngestHandler(svc Ingester, batchSize int, log zerolog.Logger) *IngestHandler {
	return &IngestHandler{svc: svc, batchSize: batchSize, log: log}
}

// Ingest handles POST /api/videos/ingest
func (h *IngestHandler) Ingest(c fiber.Ctx) error {
	var req model.IngestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON with a urls array")
	}
	if len(req.URLs) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "EMPTY_BATCH", "Please send at least one channel URL.")
	}

	urls, errMsg := middleware.ValidateIngestURLs(req.URLs, h.batchSize)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	groups, err := h.svc.Ingest(c.Context(), urls)
	if err != nil {
		var resolveErr *service.ResolveError
		switch {
		case errors.Is(err, service.ErrEmptyBatch):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "EMPTY_BATCH", "Please send at least one channel URL.")
		case errors.As(err, &resolveErr):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "UNRESOLVED_CHANNEL",
				fmt.Sprintf("Unable to resolve channel ID from %s", resolveErr.URL))
		case errors.Is(err, youtube.ErrFeedUnavailable):
			return middleware.ErrorResponse(c, fiber.StatusBadGateway, "FEED_UNAVAILABLE", "Unable to fetch YouTube feed.")
		default:
			h.log.Error().Err(err).Msg("ingest failed")
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to ingest channels")
		}
	}

	return c.JSON(groups)
}
