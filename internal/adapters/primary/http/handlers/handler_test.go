package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"salary-bias-service/internal/adapters/secondary/filestore"
	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
	"salary-bias-service/internal/core/services"
	"salary-bias-service/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const apiPrefix = "/api/v1/salary-bias"

type testDeps struct {
	employees   *testutil.MockEmployeeRepo
	sessions    *testutil.MockSurveyRepo
	predictions *testutil.MockPredictionRepo
	renderer    *testutil.MockVisualRenderer
	store       ports.ArtifactStore
	root        string
}

func setupRouter(t *testing.T) (*gin.Engine, *testDeps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	store, err := filestore.NewStore(root)
	require.NoError(t, err)

	d := &testDeps{
		employees:   new(testutil.MockEmployeeRepo),
		sessions:    new(testutil.MockSurveyRepo),
		predictions: new(testutil.MockPredictionRepo),
		renderer:    new(testutil.MockVisualRenderer),
		store:       store,
		root:        root,
	}
	opts := domain.DefaultRenderOptions()

	h := New(
		services.NewGenerationService(d.employees, store, d.renderer, services.NewSampleGenerator(testutil.NewRand()), opts),
		services.NewSurveyService(d.sessions, store),
		services.NewClusterService(d.employees, store),
		services.NewClusterVisualService(d.employees, store, d.renderer, opts, 1),
		services.NewBiasAnalysisService(d.employees, store),
		services.NewRegressionService(d.employees, d.predictions, new(testutil.MockPredictionChartRenderer)),
		root,
	)
	r := gin.New()
	api := r.Group(apiPrefix)
	h.RegisterRoutes(api)

	return r, d
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRun(t *testing.T) {
	r, d := setupRouter(t)

	d.employees.On("List", mock.Anything).Return(testutil.Employees(10, 10), nil)
	d.renderer.On("Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	session := &domain.SurveySession{ID: uuid.New(), Participant: "alice", SampleSize: 3, SampleCount: 2, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	d.sessions.On("Create", mock.Anything, mock.AnythingOfType("*domain.SurveySession")).Return(nil)
	d.sessions.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(session, nil)

	w := doJSON(r, "POST", apiPrefix+"/runs", map[string]any{"sample_size": 3, "sample_count": 2, "participant": "alice"})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Session struct {
			ID          string            `json:"id"`
			Participant string            `json:"participant"`
			Responses   map[string]string `json:"responses"`
		} `json:"session"`
		Visuals []struct {
			VisualPath string   `json:"visual_path"`
			URL        string   `json:"url"`
			MaleIDs    []string `json:"male_ids"`
		} `json:"visuals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, session.ID.String(), resp.Session.ID)
	assert.Equal(t, "alice", resp.Session.Participant)
	assert.NotNil(t, resp.Session.Responses)
	require.Len(t, resp.Visuals, 2)
	assert.Equal(t, apiPrefix+"/artifacts/"+resp.Visuals[0].VisualPath, resp.Visuals[0].URL)
	assert.Len(t, resp.Visuals[1].MaleIDs, 3)
	d.renderer.AssertNumberOfCalls(t, "Render", 2)
}

func TestCreateRun_ValidationError(t *testing.T) {
	r, d := setupRouter(t)

	w := doJSON(r, "POST", apiPrefix+"/runs", map[string]any{"sample_size": 3, "sample_count": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "POST", apiPrefix+"/runs", map[string]any{"sample_size": 0, "sample_count": 2, "participant": "a"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	d.employees.AssertNotCalled(t, "List", mock.Anything)
}

func TestCreateRun_BlankParticipantKeepsPreviousRun(t *testing.T) {
	r, d := setupRouter(t)

	previous := []domain.MetadataEntry{{VisualPath: "visual_20240101_000000_1.png", MaleIDs: []string{"M1"}, FemaleIDs: []string{"F1"}}}
	require.NoError(t, d.store.WriteMetadata(previous))
	image := filepath.Join(d.root, "visual_20240101_000000_1.png")
	require.NoError(t, os.WriteFile(image, []byte("png"), 0o644))
	before, err := os.ReadFile(filepath.Join(d.root, "visuals.json"))
	require.NoError(t, err)

	w := doJSON(r, "POST", apiPrefix+"/runs", map[string]any{"sample_size": 3, "sample_count": 2, "participant": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "participant is required")

	after, err := os.ReadFile(filepath.Join(d.root, "visuals.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.FileExists(t, image)
	d.employees.AssertNotCalled(t, "List", mock.Anything)
	d.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	d.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRun_InsufficientData(t *testing.T) {
	r, d := setupRouter(t)
	d.employees.On("List", mock.Anything).Return(testutil.Employees(2, 10), nil)

	w := doJSON(r, "POST", apiPrefix+"/runs", map[string]any{"sample_size": 3, "sample_count": 1, "participant": "alice"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "not enough unique samples left")
	d.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListVisuals(t *testing.T) {
	r, d := setupRouter(t)

	w := doJSON(r, "GET", apiPrefix+"/visuals", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"total":0}`, w.Body.String())

	require.NoError(t, d.store.WriteMetadata([]domain.MetadataEntry{
		{VisualPath: "visual_1.png", Description: "Sample 1", MaleIDs: []string{"1"}, FemaleIDs: []string{"2"}},
	}))
	w = doJSON(r, "GET", apiPrefix+"/visuals", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(1), resp["total"])
}

func TestServeArtifact(t *testing.T) {
	r, d := setupRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(d.root, "visual_1.png"), []byte("png-bytes"), 0o644))

	w := doJSON(r, "GET", apiPrefix+"/artifacts/visual_1.png", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
}

func TestGetSession(t *testing.T) {
	r, d := setupRouter(t)

	id := uuid.New()
	d.sessions.On("GetByID", mock.Anything, id).Return(&domain.SurveySession{ID: id, Participant: "bob"}, nil)

	w := doJSON(r, "GET", apiPrefix+"/sessions/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"participant":"bob"`)
	assert.Contains(t, w.Body.String(), `"responses":{}`)
}

func TestGetSession_Errors(t *testing.T) {
	r, d := setupRouter(t)

	w := doJSON(r, "GET", apiPrefix+"/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := uuid.New()
	d.sessions.On("GetByID", mock.Anything, id).Return(nil, domain.ErrSessionNotFound)
	w = doJSON(r, "GET", apiPrefix+"/sessions/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitResponses(t *testing.T) {
	r, d := setupRouter(t)
	require.NoError(t, d.store.WriteMetadata([]domain.MetadataEntry{{VisualPath: "visual_1.png"}}))

	id := uuid.New()
	d.sessions.On("GetByID", mock.Anything, id).Return(&domain.SurveySession{ID: id, Responses: map[string]string{}}, nil)
	d.sessions.On("UpdateResponses", mock.Anything, id, map[string]string{"visual_1.png": "Red"}).Return(nil)

	w := doJSON(r, "POST", apiPrefix+"/sessions/"+id.String()+"/responses", map[string]any{
		"responses": map[string]string{"visual_1.png": "Red"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	d.sessions.AssertExpectations(t)

	w = doJSON(r, "POST", apiPrefix+"/sessions/"+id.String()+"/responses", map[string]any{
		"responses": map[string]string{"visual_7.png": "Blue"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "POST", apiPrefix+"/sessions/"+id.String()+"/responses", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportClusters(t *testing.T) {
	r, d := setupRouter(t)
	d.employees.On("List", mock.Anything).Return(testutil.Employees(20, 20), nil)

	w := doJSON(r, "POST", apiPrefix+"/clusters", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Clusters []struct {
			Cluster string `json:"cluster"`
			Total   int    `json:"total"`
		} `json:"clusters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Clusters, 4)
	total := 0
	for _, c := range resp.Clusters {
		total += c.Total
	}
	assert.Equal(t, 40, total)
}

func TestGenerateClusterVisuals(t *testing.T) {
	r, d := setupRouter(t)
	d.employees.On("List", mock.Anything).Return(testutil.Employees(30, 30), nil)
	d.renderer.On("Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	w := doJSON(r, "POST", apiPrefix+"/clusters", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "POST", apiPrefix+"/cluster_visuals", map[string]any{"images_per_cluster": 1, "sample_size": 2, "full_sample_size": 5})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "visual_final_5_male_5_female.png")

	// defaults need 100 per gender for the full sample
	w = doJSON(r, "POST", apiPrefix+"/cluster_visuals", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRunTTest(t *testing.T) {
	r, d := setupRouter(t)
	d.employees.On("List", mock.Anything).Return(testutil.Employees(40, 40), nil)

	w := doJSON(r, "POST", apiPrefix+"/analysis/ttest", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cluster":"Full_Dataset"`)
	assert.FileExists(t, filepath.Join(d.root, "cluster_ttest_results.csv"))
}

func TestRunRegression(t *testing.T) {
	r, d := setupRouter(t)
	d.employees.On("List", mock.Anything).Return(testutil.Employees(30, 30), nil)
	d.predictions.On("Create", mock.Anything, mock.AnythingOfType("*domain.ModelPrediction")).Return(nil)

	w := doJSON(r, "POST", apiPrefix+"/analysis/regression", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Items []domain.ModelPrediction `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 7)
}

func TestListPredictions(t *testing.T) {
	r, d := setupRouter(t)
	d.predictions.On("List", mock.Anything).Return([]domain.ModelPrediction{
		{ID: 1, ModelType: "Male Model", TestDataset: "Male Data", Phase: domain.PhaseBeforeSwap, MeanAbsoluteError: 10},
	}, nil)

	w := doJSON(r, "GET", apiPrefix+"/analysis/predictions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"phase":"Before Swap"`)
}

func TestMapDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrSessionNotFound, http.StatusNotFound},
		{domain.ErrMetadataNotFound, http.StatusNotFound},
		{domain.ErrInvalidSampleSize, http.StatusBadRequest},
		{domain.ErrInvalidIterations, http.StatusBadRequest},
		{domain.ErrInvalidResponse, http.StatusBadRequest},
		{domain.ErrMissingParticipant, http.StatusBadRequest},
		{fmt.Errorf("sample 2: %w", domain.ErrInsufficientData), http.StatusUnprocessableEntity},
		{domain.ErrMalformedInput, http.StatusUnprocessableEntity},
		{domain.ErrSchemaMismatch, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		mapDomainError(c, tt.err)
		assert.Equal(t, tt.code, w.Code, tt.err.Error())
	}
}
