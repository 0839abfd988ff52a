package handlers

import (
	"net/http"

	"salary-bias-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) CreateRun(c *gin.Context) {
	var req dto.CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// a rejected request must leave the previous run in place
	participant, err := h.surveySvc.ValidateParticipant(req.Participant)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	entries, err := h.generationSvc.Run(c.Request.Context(), req.SampleSize, req.SampleCount)
	if err != nil {
		log.WithError(err).Error("generate samples failed")
		mapDomainError(c, err)
		return
	}

	session, err := h.surveySvc.Start(c.Request.Context(), participant, req.SampleSize, req.SampleCount)
	if err != nil {
		log.WithError(err).Error("start survey session failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RunResponse{
		Session: dto.ToSurveySessionResponse(session),
		Visuals: dto.ToVisualResponses(entries, h.artifactURL),
	})
}

func (h *Handler) ListVisuals(c *gin.Context) {
	entries, err := h.generationSvc.Visuals()
	if err != nil {
		log.WithError(err).Error("list visuals failed")
		mapDomainError(c, err)
		return
	}

	items := dto.ToVisualResponses(entries, h.artifactURL)
	c.JSON(http.StatusOK, dto.ListVisualsResponse{Items: items, Total: len(items)})
}
