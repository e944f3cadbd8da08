// internal/httpapi/router_test.go
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-audit/internal/analysis"
	"brand-audit/internal/catalog"
	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/common/logger"
	"brand-audit/internal/engine"
	"brand-audit/internal/intake"
	"brand-audit/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type failingAnalyzer struct{}

func (failingAnalyzer) Name() string { return "gemini" }

func (failingAnalyzer) Analyze(context.Context, *models.AuditRecord) (*models.AnalysisResult, error) {
	return nil, apperrors.NewRemoteAnalysisError("gemini", errors.New("connection refused"))
}

func newTestServer(t *testing.T, analyzer analysis.Analyzer) (*httptest.Server, *miniredis.Miniredis) {
	t.Helper()

	log := logger.NewTestLogger(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := intake.NewStore(rdb, "", time.Hour, log)
	svc := analysis.NewService(analyzer, nil, log)
	ready := func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

	srv := httptest.NewServer(NewRouter(svc, store, ready, log))
	t.Cleanup(srv.Close)
	return srv, mr
}

func fullRecord(status models.AssetStatus) map[string]interface{} {
	visual := map[string]string{}
	for _, id := range catalog.VisualIDs() {
		visual[string(id)] = string(status)
	}
	strategy := map[string]string{}
	for _, id := range catalog.StrategyIDs() {
		strategy[string(id)] = string(status)
	}
	return map[string]interface{}{
		"projectName":      "Acme Coffee",
		"projectContext":   "Specialty roaster",
		"visualAudit":      visual,
		"strategyAudit":    strategy,
		"risks":            []string{"r_none"},
		"objectives":       []string{"o_awareness"},
		"proposedServices": []string{"srv_identity"},
	}
}

func do(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, into interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

// ==========================
// Health Endpoint Tests
// ==========================

func TestHealthAndReady(t *testing.T) {
	srv, mr := newTestServer(t, engine.New(nil))

	resp := do(t, http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]string
	decode(t, resp, &health)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, engine.BackendName, health["backend"])

	assert.Equal(t, http.StatusOK, do(t, http.MethodGet, srv.URL+"/ready", nil).StatusCode)

	mr.SetError("server down")
	assert.Equal(t, http.StatusServiceUnavailable, do(t, http.MethodGet, srv.URL+"/ready", nil).StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, engine.New(nil))

	resp := do(t, http.MethodGet, srv.URL+"/metrics", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalog(t *testing.T) {
	srv, _ := newTestServer(t, engine.New(nil))

	resp := do(t, http.MethodGet, srv.URL+"/v1/catalog", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body CatalogResponse
	decode(t, resp, &body)
	assert.Len(t, body.Visual, 8)
	assert.Len(t, body.Strategy, 9)
	assert.Len(t, body.Risks, 8)
	assert.Len(t, body.Objectives, 7)
	assert.Len(t, body.Services, 8)
	require.Len(t, body.Phases, 4)
	assert.Equal(t, models.PhaseBrandingFirst, body.Phases[0].ID)
	assert.NotEmpty(t, body.Phases[3].Label)
}

// ==========================
// Audit Endpoint Tests
// ==========================

func TestValidate(t *testing.T) {
	srv, _ := newTestServer(t, engine.New(nil))

	t.Run("complete record", func(t *testing.T) {
		record := fullRecord(models.StatusYes)
		record["visualAudit"].(map[string]string)["v_mascot"] = "YES"

		resp := do(t, http.MethodPost, srv.URL+"/v1/audits/validate", record)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body ValidateResponse
		decode(t, resp, &body)
		assert.True(t, body.Valid)
		assert.Equal(t, []string{"visualAudit.v_mascot"}, body.UnknownIDs)
	})

	t.Run("none risk mixed with other risks", func(t *testing.T) {
		record := fullRecord(models.StatusYes)
		record["risks"] = []string{"r_none", "r_budget"}

		resp := do(t, http.MethodPost, srv.URL+"/v1/audits/validate", record)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body ValidateResponse
		decode(t, resp, &body)
		assert.True(t, body.Valid)
		require.Len(t, body.Warnings, 1)
		assert.Equal(t, "RISKS_CONFLICT", body.Warnings[0].Code)
	})

	t.Run("incomplete record", func(t *testing.T) {
		record := fullRecord(models.StatusYes)
		record["projectName"] = ""
		delete(record["strategyAudit"].(map[string]string), "s_tone")

		resp := do(t, http.MethodPost, srv.URL+"/v1/audits/validate", record)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body ValidateResponse
		decode(t, resp, &body)
		assert.False(t, body.Valid)
		assert.True(t, body.HasCode("PROJECT_NAME_REQUIRED"))
		assert.True(t, body.HasErrors("strategyAudit.s_tone"))
	})

	t.Run("bad status value", func(t *testing.T) {
		record := fullRecord(models.StatusYes)
		record["visualAudit"].(map[string]string)["v_flat"] = "MAYBE"

		resp := do(t, http.MethodPost, srv.URL+"/v1/audits/validate", record)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body ValidateResponse
		decode(t, resp, &body)
		assert.False(t, body.Valid)
		assert.True(t, body.HasCode("INVALID_ENUM_VALUE"))
	})

	t.Run("not json", func(t *testing.T) {
		resp := do(t, http.MethodPost, srv.URL+"/v1/audits/validate", "{oops")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAnalyze(t *testing.T) {
	srv, _ := newTestServer(t, engine.New(nil))

	t.Run("ready to scale", func(t *testing.T) {
		resp := do(t, http.MethodPost, srv.URL+"/v1/audits/analyze", fullRecord(models.StatusYes))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result models.AnalysisResult
		decode(t, resp, &result)
		assert.Equal(t, 100, result.Score)
		assert.Equal(t, models.PhaseReadyToScale, result.Phase)
		assert.NotEmpty(t, result.Headline)
		assert.Len(t, result.Observations, 17)
	})

	t.Run("validation failure is 422", func(t *testing.T) {
		record := fullRecord(models.StatusYes)
		record["objectives"] = []string{}

		resp := do(t, http.MethodPost, srv.URL+"/v1/audits/analyze", record)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body apperrors.StandardError
		decode(t, resp, &body)
		assert.Equal(t, apperrors.ErrCodeAuditValidationFailed, body.Code)
	})

	t.Run("malformed document is 422", func(t *testing.T) {
		record := fullRecord(models.StatusYes)
		record["risks"] = "r_budget"

		resp := do(t, http.MethodPost, srv.URL+"/v1/audits/analyze", record)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestAnalyze_RemoteFailureIs502(t *testing.T) {
	srv, _ := newTestServer(t, failingAnalyzer{})

	resp := do(t, http.MethodPost, srv.URL+"/v1/audits/analyze", fullRecord(models.StatusYes))
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body apperrors.StandardError
	decode(t, resp, &body)
	assert.Equal(t, apperrors.ErrCodeRemoteAnalysisFailed, body.Code)
}

// ==========================
// Draft Endpoint Tests
// ==========================

func TestDraftLifecycle(t *testing.T) {
	srv, mr := newTestServer(t, engine.New(nil))

	resp := do(t, http.MethodPost, srv.URL+"/v1/drafts", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var draft intake.Draft
	decode(t, resp, &draft)
	require.NotEmpty(t, draft.ID)
	assert.Equal(t, "/v1/drafts/"+draft.ID, resp.Header.Get("Location"))
	draftURL := srv.URL + "/v1/drafts/" + draft.ID

	commands := []intake.Command{
		{Op: intake.OpSetProject, ProjectName: "Acme Coffee"},
		{Op: intake.OpNext},
	}
	for _, id := range catalog.VisualIDs() {
		commands = append(commands, intake.Command{Op: intake.OpSetVisual, ID: string(id), Status: models.StatusYes})
	}
	for _, id := range catalog.StrategyIDs() {
		commands = append(commands, intake.Command{Op: intake.OpSetStrategy, ID: string(id), Status: models.StatusYes})
	}
	commands = append(commands,
		intake.Command{Op: intake.OpNext},
		intake.Command{Op: intake.OpToggleRisk, ID: string(catalog.RiskNone)},
		intake.Command{Op: intake.OpToggleObjective, ID: string(catalog.ObjectiveSales)},
		intake.Command{Op: intake.OpNext},
		intake.Command{Op: intake.OpToggleService, ID: string(catalog.ServiceAds)},
	)

	resp = do(t, http.MethodPatch, draftURL, UpdateDraftRequest{Commands: commands})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &draft)
	assert.Equal(t, intake.LastStep, draft.Step)
	assert.True(t, draft.Complete())

	resp = do(t, http.MethodGet, draftURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPost, draftURL+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result models.AnalysisResult
	decode(t, resp, &result)
	assert.Equal(t, models.PhaseReadyToScale, result.Phase)

	assert.Empty(t, mr.Keys(), "submitted drafts are removed and results never stored")
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, draftURL, nil).StatusCode)
}

func TestDraftErrors(t *testing.T) {
	srv, _ := newTestServer(t, engine.New(nil))

	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, srv.URL+"/v1/drafts/missing", nil).StatusCode)

	resp := do(t, http.MethodPost, srv.URL+"/v1/drafts", nil)
	var draft intake.Draft
	decode(t, resp, &draft)
	draftURL := srv.URL + "/v1/drafts/" + draft.ID

	tests := []struct {
		name     string
		method   string
		url      string
		body     interface{}
		expected int
	}{
		{name: "empty patch", method: http.MethodPatch, url: draftURL, body: UpdateDraftRequest{}, expected: http.StatusBadRequest},
		{name: "garbage patch", method: http.MethodPatch, url: draftURL, body: "[", expected: http.StatusBadRequest},
		{
			name:     "advance incomplete step",
			method:   http.MethodPatch,
			url:      draftURL,
			body:     UpdateDraftRequest{Commands: []intake.Command{{Op: intake.OpNext}}},
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "unknown id",
			method:   http.MethodPatch,
			url:      draftURL,
			body:     UpdateDraftRequest{Commands: []intake.Command{{Op: intake.OpToggleRisk, ID: "r_weather"}}},
			expected: http.StatusUnprocessableEntity,
		},
		{name: "submit incomplete", method: http.MethodPost, url: draftURL + "/submit", expected: http.StatusUnprocessableEntity},
		{name: "patch missing draft", method: http.MethodPatch, url: srv.URL + "/v1/drafts/missing",
			body: UpdateDraftRequest{Commands: []intake.Command{{Op: intake.OpBack}}}, expected: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, tt.url, tt.body)
			assert.Equal(t, tt.expected, resp.StatusCode)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, statusFor(apperrors.ErrCodeRemoteAnalysisTimeout))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(apperrors.ErrCodeDraftStoreFailed))
	assert.Equal(t, http.StatusInternalServerError, statusFor(apperrors.ErrCodeInternal))
}

func TestMaxBodyBytes(t *testing.T) {
	log := logger.NewNoOpLogger()
	svc := analysis.NewService(engine.New(nil), nil, log)
	srv := httptest.NewServer(NewRouter(svc, nil, nil, log, WithMaxBodyBytes(64)))
	defer srv.Close()

	resp := do(t, http.MethodPost, srv.URL+"/v1/audits/analyze", fullRecord(models.StatusYes))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/v1/drafts", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "draft routes need a store")
}
