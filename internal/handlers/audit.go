// Package handlers contains the gin HTTP handlers for the audit API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/seo-audit/internal/audit"
	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/repository"
)

type AuditHandler struct {
	service *audit.Service
	logger  logger.Logger
}

func NewAuditHandler(service *audit.Service, log logger.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  log,
	}
}

type createAuditRequest struct {
	Domain string `json:"domain" binding:"required"`
}

func (h *AuditHandler) Create(c *gin.Context) {
	var req createAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	project, err := h.service.CreateAudit(c.Request.Context(), req.Domain)
	if err != nil {
		h.logger.Error("Failed to create audit",
			logger.String("domain", req.Domain),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create audit"})
		return
	}

	h.logger.Info("Audit created",
		logger.String("project_id", project.ID),
		logger.String("domain", project.Domain),
		logger.String("task_id", project.TaskID),
	)

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"project_id": project.ID,
		"task_id":    project.TaskID,
		"domain":     project.Domain,
	})
}

func (h *AuditHandler) List(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list audits",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audits": projects,
		"count":  len(projects),
	})
}

func (h *AuditHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	project, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Debug("Audit not found",
			logger.String("project_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"audit":   project,
	})
}

func (h *AuditHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
			return
		}
		h.logger.Error("Failed to delete audit",
			logger.String("project_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete audit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuditHandler) Status(c *gin.Context) {
	taskID := c.Param("taskID")

	summary, err := h.service.Status(c.Request.Context(), taskID)
	if err != nil {
		h.logger.Error("Failed to check crawl status",
			logger.String("task_id", taskID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check crawl status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"crawl_progress": summary.CrawlProgress,
		"pages_crawled":  summary.PagesCrawled,
		"pages_in_queue": summary.PagesInQueue,
		"total_pages":    summary.TotalPages,
		"finished":       summary.Finished(),
	})
}

type fetchResultsRequest struct {
	IssueCounts map[string]int `json:"issue_counts"`
}

func (h *AuditHandler) FetchResults(c *gin.Context) {
	taskID := c.Param("taskID")

	// Body is optional; callers may supply precomputed issue counts.
	var req fetchResultsRequest
	_ = c.ShouldBindJSON(&req)

	project, err := h.service.FetchResults(c.Request.Context(), taskID, req.IssueCounts)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No audit found for task"})
			return
		}
		h.logger.Error("Failed to fetch audit results",
			logger.String("task_id", taskID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit results"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"audit":   project,
	})
}

func (h *AuditHandler) RunPageSpeed(c *gin.Context) {
	id := c.Param("id")

	result, err := h.service.RunPageSpeed(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
			return
		}
		h.logger.Error("Failed to run pagespeed analysis",
			logger.String("project_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run pagespeed analysis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"pagespeed": result,
	})
}

func (h *AuditHandler) RunReadability(c *gin.Context) {
	id := c.Param("id")
	refresh := c.Query("refresh") != ""

	results, err := h.service.RunReadability(c.Request.Context(), id, refresh)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
			return
		}
		h.logger.Error("Failed to run readability analysis",
			logger.String("project_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run readability analysis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
	})
}
