package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fxsim/backend/internal/simulation"
	"github.com/wonny/fxsim/backend/pkg/config"
	"github.com/wonny/fxsim/backend/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
		Simulation: config.SimulationConfig{
			DefaultSampleCount: 1000,
			MaxSampleCount:     100_000,
		},
	}
}

func newTestHandler(t *testing.T) *SimulationHandler {
	t.Helper()
	cfg := testConfig()
	log := logger.NewWithWriter(cfg, &bytes.Buffer{})
	engine := simulation.NewEngine(log)
	return NewSimulationHandler(engine, cfg, log)
}

func simulateBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"spot_rate":          4000,
		"theta":              0.6,
		"sample_count":       2000,
		"domestic_rate":      map[string]float64{"min": 0.08, "max": 0.11},
		"foreign_rate":       map[string]float64{"min": 0.045, "max": 0.055},
		"domestic_inflation": map[string]float64{"min": 0.07, "max": 0.09},
		"foreign_inflation":  map[string]float64{"min": 0.025, "max": 0.035},
		"seed":               42,
	})
	return body
}

func doSimulate(t *testing.T, h *SimulationHandler) SimulateResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", bytes.NewReader(simulateBody()))
	rec := httptest.NewRecorder()
	h.Simulate(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SimulateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSimulate(t *testing.T) {
	h := newTestHandler(t)
	resp := doSimulate(t, h)

	assert.NotEmpty(t, resp.RunID)
	assert.False(t, resp.Cached)
	require.Len(t, resp.Summary, 4)
	assert.Equal(t, "Normal", resp.Summary[0].Scenario)
	assert.Equal(t, "Choque externo", resp.Summary[3].Scenario)
}

func TestSimulate_CachedOnIdenticalInput(t *testing.T) {
	h := newTestHandler(t)

	first := doSimulate(t, h)
	second := doSimulate(t, h)

	// 고정 시드 + 동일 입력 → 마지막 Run 재사용
	assert.True(t, second.Cached)
	assert.Equal(t, first.RunID, second.RunID)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestSimulate_InvalidBody(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/simulate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Simulate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulate_InvalidParameter(t *testing.T) {
	h := newTestHandler(t)

	body, _ := json.Marshal(map[string]interface{}{
		"spot_rate":    4000,
		"theta":        1.5, // out of [0,1]
		"sample_count": 100,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Simulate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulate_SampleCountCap(t *testing.T) {
	h := newTestHandler(t)

	body, _ := json.Marshal(map[string]interface{}{
		"spot_rate":    4000,
		"theta":        0.6,
		"sample_count": 10_000_000,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Simulate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSamples(t *testing.T) {
	h := newTestHandler(t)
	doSimulate(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios/Normal/samples", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "Normal"})
	rec := httptest.NewRecorder()
	h.GetSamples(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Scenario string    `json:"scenario"`
		Samples  []float64 `json:"samples"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Normal", resp.Scenario)
	assert.Len(t, resp.Samples, 2000)
}

func TestGetSamples_NoRunYet(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios/Normal/samples", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "Normal"})
	rec := httptest.NewRecorder()
	h.GetSamples(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSummary(t *testing.T) {
	h := newTestHandler(t)
	doSimulate(t, h)

	req := httptest.NewRequest(http.MethodGet,
		"/api/scenarios/Normal/summary?spot=4000&i_dom=0.095&i_for=0.05", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "Normal"})
	rec := httptest.NewRecorder()
	h.GetSummary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Summary struct {
			P5         float64 `json:"p5"`
			VaR95      float64 `json:"var_95"`
			CIPForward float64 `json:"cip_forward"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, resp.Summary.P5, resp.Summary.VaR95)
	assert.InDelta(t, 4084.81, resp.Summary.CIPForward, 0.01)
}

func TestGetSummary_UnknownScenario(t *testing.T) {
	h := newTestHandler(t)
	doSimulate(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios/Crisis/summary", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "Crisis"})
	rec := httptest.NewRecorder()
	h.GetSummary(rec, req)

	// 모르는 시나리오는 404, 이미 계산된 Run은 유지
	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, ok := h.currentRun()
	assert.True(t, ok)
}

func TestTailRisk(t *testing.T) {
	h := newTestHandler(t)
	doSimulate(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/tailrisk?confidence=0.99", nil)
	rec := httptest.NewRecorder()
	h.TailRisk(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Report []struct {
			Scenario   string  `json:"scenario"`
			Confidence float64 `json:"confidence"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Report, 4)
	assert.Equal(t, 0.99, resp.Report[0].Confidence)
}

func TestListScenarios(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios", nil)
	rec := httptest.NewRecorder()
	h.ListScenarios(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var scenarios []simulation.Scenario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scenarios))
	require.Len(t, scenarios, 4)
	assert.Equal(t, "Normal", scenarios[0].Name)
}

func TestForward(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/forward?spot=4000&i_dom=0.095&i_for=0.05", nil)
	rec := httptest.NewRecorder()
	h.Forward(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		CIPForward float64 `json:"cip_forward"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 4084.81, resp.CIPForward, 0.01)
}

func TestForward_MissingParams(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/forward?spot=4000", nil)
	rec := httptest.NewRecorder()
	h.Forward(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForward_WithOffer(t *testing.T) {
	h := newTestHandler(t)
	doSimulate(t, h)

	url := fmt.Sprintf("/api/forward?spot=4000&i_dom=0.095&i_for=0.05&offer=%v", 4100.0)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.Forward(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Scenario   string `json:"scenario"`
		Evaluation struct {
			OfferedRate    float64 `json:"offered_rate"`
			FairForward    float64 `json:"fair_forward"`
			PercentileRank float64 `json:"percentile_rank"`
		} `json:"evaluation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Normal", resp.Scenario)
	assert.Equal(t, 4100.0, resp.Evaluation.OfferedRate)
	assert.GreaterOrEqual(t, resp.Evaluation.PercentileRank, 0.0)
	assert.LessOrEqual(t, resp.Evaluation.PercentileRank, 100.0)
}

func TestConfidenceIntervals(t *testing.T) {
	h := newTestHandler(t)
	doSimulate(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/confidence-intervals?level=0.9", nil)
	rec := httptest.NewRecorder()
	h.ConfidenceIntervals(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Intervals []struct {
			Scenario string  `json:"scenario"`
			Lower    float64 `json:"lower"`
			Upper    float64 `json:"upper"`
		} `json:"intervals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Intervals, 4)
	for _, ci := range resp.Intervals {
		assert.Less(t, ci.Lower, ci.Upper, ci.Scenario)
	}
}
