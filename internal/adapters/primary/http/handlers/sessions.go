package handlers

import (
	"net/http"

	"salary-bias-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	session, err := h.surveySvc.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSurveySessionResponse(session))
}

func (h *Handler) SubmitResponses(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	var req dto.SubmitResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.surveySvc.SubmitResponses(c.Request.Context(), id, req.Responses)
	if err != nil {
		log.WithError(err).Error("submit responses failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSurveySessionResponse(session))
}
