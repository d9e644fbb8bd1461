package handler

import (
	"video-quiz/internal/domain"
	"video-quiz/internal/dto"
	"video-quiz/internal/logger"
	"video-quiz/internal/middleware"
	"video-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VideoHandler handles video processing HTTP requests
type VideoHandler struct {
	service   domain.VideoService
	cache     domain.Cache
	validator *validation.Validator
}

// NewVideoHandler creates a new VideoHandler instance
func NewVideoHandler(service domain.VideoService, cache domain.Cache, validator *validation.Validator) *VideoHandler {
	return &VideoHandler{
		service:   service,
		cache:     cache,
		validator: validator,
	}
}

// ProcessVideo godoc
// @Summary Process a YouTube video
// @Description Downloads the audio, fetches and cleans the transcript, and summarizes it
// @Tags video
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.ProcessRequest true "Video URL"
// @Success 200 {object} dto.ProcessResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /process [post]
func (h *VideoHandler) ProcessVideo(c *fiber.Ctx) error {
	var req dto.ProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	videoID, errs := h.validator.ValidateVideoURL(req.YoutubeURL)
	if len(errs) > 0 {
		return errs
	}

	logger.Get().Info("Processing video",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("video_id", videoID))

	result, err := h.service.Process(c.UserContext(), domain.VideoRequest{URL: validation.CanonicalVideoURL(videoID), VideoID: videoID})
	if err != nil {
		return err
	}

	return c.JSON(dto.ProcessResponse{
		VideoID:       result.VideoID,
		Transcription: result.Transcription,
		Summary:       result.Summary,
		ProcessTime:   result.ProcessTime,
		Cached:        result.Cached,
	})
}

// Health godoc
// @Summary Health check
// @Description Reports service status and cache reachability
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *VideoHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Cache: "ok"}
	if err := h.cache.Ping(c.UserContext()); err != nil {
		logger.Get().Warn("Cache ping failed", zap.Error(err))
		resp.Cache = "unavailable"
	}
	return c.JSON(resp)
}
