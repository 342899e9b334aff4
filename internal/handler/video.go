package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/topictube/topictube-go/internal/middleware"
	"github.com/mathieu-neron/topictube/topictube-go/internal/repository"
	"github.com/mathieu-neron/topictube/topictube-go/internal/service"
)

type VideoHandler struct {
	svc    *service.VideoService
	groups *service.GroupService
}

func NewVideoHandler(svc *service.VideoService, groups *service.GroupService) *VideoHandler {
	return &VideoHandler{svc: svc, groups: groups}
}

// GetGroups handles GET /api/videos/groups
func (h *VideoHandler) GetGroups(c fiber.Ctx) error {
	groups, err := h.groups.GetGroups(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load groups")
	}
	return c.JSON(groups)
}

// GetByVideoID handles GET /api/videos?videoId=X
func (h *VideoHandler) GetByVideoID(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(fiber.Query[string](c, "videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	video, err := h.svc.LookupByVideoID(c.Context(), videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup video")
	}

	return c.JSON(video)
}
