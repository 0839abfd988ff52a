package handlers

import (
	"salary-bias-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

// ArtifactPrefix is the route under which generated files are served.
const ArtifactPrefix = "/artifacts"

type Handler struct {
	generationSvc    *services.GenerationService
	surveySvc        *services.SurveyService
	clusterSvc       *services.ClusterService
	clusterVisualSvc *services.ClusterVisualService
	analysisSvc      *services.BiasAnalysisService
	regressionSvc    *services.RegressionService
	artifactRoot     string
	artifactURL      string
}

func New(
	generationSvc *services.GenerationService,
	surveySvc *services.SurveyService,
	clusterSvc *services.ClusterService,
	clusterVisualSvc *services.ClusterVisualService,
	analysisSvc *services.BiasAnalysisService,
	regressionSvc *services.RegressionService,
	artifactRoot string,
) *Handler {
	return &Handler{
		generationSvc:    generationSvc,
		surveySvc:        surveySvc,
		clusterSvc:       clusterSvc,
		clusterVisualSvc: clusterVisualSvc,
		analysisSvc:      analysisSvc,
		regressionSvc:    regressionSvc,
		artifactRoot:     artifactRoot,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	h.artifactURL = r.BasePath() + ArtifactPrefix

	// Sample runs
	r.POST("/runs", h.CreateRun)
	r.GET("/visuals", h.ListVisuals)
	r.Static(ArtifactPrefix, h.artifactRoot)

	// Survey sessions
	r.GET("/sessions/:id", h.GetSession)
	r.POST("/sessions/:id/responses", h.SubmitResponses)

	// Clusters
	r.POST("/clusters", h.ExportClusters)
	r.POST("/cluster_visuals", h.GenerateClusterVisuals)

	// Analysis
	r.POST("/analysis/ttest", h.RunTTest)
	r.POST("/analysis/regression", h.RunRegression)
	r.GET("/analysis/predictions", h.ListPredictions)
}
