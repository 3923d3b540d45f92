package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/seo-audit/internal/audit"
	"github.com/jonesrussell/seo-audit/internal/deck"
	"github.com/jonesrussell/seo-audit/internal/events"
	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/repository"
)

type SlidesHandler struct {
	service   *audit.Service
	deck      *deck.Client
	images    *deck.ImageStore
	publisher *events.Publisher
	logger    logger.Logger
}

func NewSlidesHandler(
	service *audit.Service,
	deckClient *deck.Client,
	images *deck.ImageStore,
	publisher *events.Publisher,
	log logger.Logger,
) *SlidesHandler {
	return &SlidesHandler{
		service:   service,
		deck:      deckClient,
		images:    images,
		publisher: publisher,
		logger:    log,
	}
}

type generateSlidesRequest struct {
	ProjectID   string            `json:"project_id" binding:"required"`
	Screenshots map[string]string `json:"screenshots"`
	Annotations map[string]string `json:"annotations"`
	IssueCounts map[string]int    `json:"issue_counts"`
}

func (h *SlidesHandler) Generate(c *gin.Context) {
	var req generateSlidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	project, err := h.service.Get(c.Request.Context(), req.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
			return
		}
		h.logger.Error("Failed to load audit for slides",
			logger.String("project_id", req.ProjectID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load audit"})
		return
	}

	screenshots := h.images.UploadAll(c.Request.Context(), req.Screenshots)

	result, err := h.deck.Generate(c.Request.Context(), deck.BuildInput{
		Domain:      project.Domain,
		Data:        project.Data,
		Screenshots: screenshots,
		Annotations: req.Annotations,
		IssueCounts: req.IssueCounts,
	})
	if err != nil {
		h.logger.Error("Failed to generate deck",
			logger.String("project_id", req.ProjectID),
			logger.String("domain", project.Domain),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate presentation"})
		return
	}

	h.publisher.PublishAsync(events.AuditEvent{
		EventType: events.EventDeckGenerated,
		ProjectID: project.ID,
		Domain:    project.Domain,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"presentation_id":  result.PresentationID,
		"presentation_url": result.PresentationURL,
		"slide_count":      result.SlideCount,
	})
}
