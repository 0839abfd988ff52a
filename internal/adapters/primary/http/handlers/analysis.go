package handlers

import (
	"net/http"

	"salary-bias-service/internal/adapters/primary/http/dto"
	"salary-bias-service/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ExportClusters(c *gin.Context) {
	assignment, err := h.clusterSvc.Export(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("export clusters failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClusterExportResponse(assignment))
}

func (h *Handler) GenerateClusterVisuals(c *gin.Context) {
	var req dto.ClusterVisualsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	params := services.DefaultClusterVisualRequest()
	if req.ImagesPerCluster > 0 {
		params.ImagesPerCluster = req.ImagesPerCluster
	}
	if req.SampleSize > 0 {
		params.SampleSize = req.SampleSize
	}
	if req.FullSampleSize > 0 {
		params.FullSampleSize = req.FullSampleSize
	}

	entries, err := h.clusterVisualSvc.Generate(c.Request.Context(), params)
	if err != nil {
		log.WithError(err).Error("generate cluster visuals failed")
		mapDomainError(c, err)
		return
	}

	items := dto.ToVisualResponses(entries, h.artifactURL)
	c.JSON(http.StatusCreated, dto.ListVisualsResponse{Items: items, Total: len(items)})
}

func (h *Handler) RunTTest(c *gin.Context) {
	results, err := h.analysisSvc.Run(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("t-test analysis failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TTestResponse{Items: results})
}

func (h *Handler) RunRegression(c *gin.Context) {
	preds, err := h.regressionSvc.Evaluate(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("regression evaluation failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PredictionsResponse{Items: preds})
}

func (h *Handler) ListPredictions(c *gin.Context) {
	preds, err := h.regressionSvc.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list predictions failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PredictionsResponse{Items: preds})
}
