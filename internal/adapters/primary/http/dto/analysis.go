package dto

import "salary-bias-service/internal/core/domain"

type ClusterVisualsRequest struct {
	ImagesPerCluster int `json:"images_per_cluster" binding:"omitempty,min=1"`
	SampleSize       int `json:"sample_size" binding:"omitempty,min=1"`
	FullSampleSize   int `json:"full_sample_size" binding:"omitempty,min=1"`
}

type ClusterSummary struct {
	Cluster string `json:"cluster"`
	Total   int    `json:"total"`
	Male    int    `json:"male"`
	Female  int    `json:"female"`
}

type ClusterExportResponse struct {
	AgeMedian   float64          `json:"age_median"`
	YearsMedian float64          `json:"total_working_years_median"`
	Clusters    []ClusterSummary `json:"clusters"`
}

func ToClusterExportResponse(a *domain.ClusterAssignment) ClusterExportResponse {
	resp := ClusterExportResponse{
		AgeMedian:   a.AgeMedian,
		YearsMedian: a.YearsMedian,
		Clusters:    make([]ClusterSummary, 0, len(domain.Clusters)),
	}
	for _, c := range domain.Clusters {
		p := a.Partitions[c]
		resp.Clusters = append(resp.Clusters, ClusterSummary{
			Cluster: string(c),
			Total:   len(p.All),
			Male:    len(p.Male),
			Female:  len(p.Female),
		})
	}
	return resp
}

type TTestResponse struct {
	Items []domain.TTestResult `json:"items"`
}

type PredictionsResponse struct {
	Items []domain.ModelPrediction `json:"items"`
}
