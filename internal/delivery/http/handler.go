package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/saunafinder/backend/internal/domain"
	"github.com/saunafinder/backend/internal/usecase"
)

// maxVenueLimit caps GET /venues page size
const maxVenueLimit = 500

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pipeline *usecase.PipelineService
	venues   domain.VenueRepository
	cities   *usecase.CityCatalog
}

// NewHandler creates a new HTTP handler. Either dependency may be nil; the
// routes that need it then answer 503.
func NewHandler(pipeline *usecase.PipelineService, venues domain.VenueRepository) *Handler {
	cities := usecase.NewCityCatalog()
	if pipeline != nil {
		cities = pipeline.Cities()
	}
	return &Handler{pipeline: pipeline, venues: venues, cities: cities}
}

// ClassifyRequest is the body of POST /api/v1/classify
type ClassifyRequest struct {
	City      string              `json:"city" binding:"required"`
	Candidate domain.RawCandidate `json:"candidate"`
}

// ClassifyResponse is the decision and, when included, the built record
type ClassifyResponse struct {
	Decision domain.Decision         `json:"decision"`
	Record   *domain.ClassifiedVenue `json:"record,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "saunafinder-backend",
		"version": "1.0.0",
	})
}

// ListCities returns the supported search regions
func (h *Handler) ListCities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cities": h.cities.List()})
}

// ListVenues returns stored venues for a city
func (h *Handler) ListVenues(c *gin.Context) {
	if h.venues == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "venue store not configured"})
		return
	}

	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city query parameter is required"})
		return
	}
	if _, err := h.cities.Get(city); err != nil {
		respondError(c, err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = min(n, maxVenueLimit)
	}

	venues, err := h.venues.List(c.Request.Context(), domain.VenueFilter{CitySlug: city, Limit: limit})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": city, "count": len(venues), "venues": venues})
}

// Classify runs the inclusion filter and record builder on one candidate
func (h *Handler) Classify(c *gin.Context) {
	if h.pipeline == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pipeline not configured"})
		return
	}

	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if req.Candidate.DisplayName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate.displayName is required"})
		return
	}

	decision, record, err := h.pipeline.Evaluate(req.Candidate, req.City)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClassifyResponse{Decision: decision, Record: record})
}

// Run executes a dry pipeline run for a city; nothing is written
func (h *Handler) Run(c *gin.Context) {
	if h.pipeline == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pipeline not configured"})
		return
	}

	var req usecase.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.pipeline.Run(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps domain errors to status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownCity), errors.Is(err, domain.ErrVenueNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSearchUnavailable), errors.Is(err, domain.ErrPlacesAPIFailure):
		status = http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
