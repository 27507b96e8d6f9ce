package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/fxsim/backend/internal/analytics"
	"github.com/wonny/fxsim/backend/internal/simulation"
	"github.com/wonny/fxsim/backend/pkg/config"
	"github.com/wonny/fxsim/backend/pkg/logger"
)

// SimulationHandler handles simulation API endpoints
// ⭐ 캐시 레이어: 마지막 Input/Run을 보관하고 입력이 바뀔 때만 재시뮬레이션
// core(Engine)는 무상태이며 호출될 때마다 전체 재계산
type SimulationHandler struct {
	engine *simulation.Engine
	cfg    *config.Config
	logger *logger.Logger

	mu        sync.Mutex
	lastInput *simulation.Input
	lastRun   *simulation.Run
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(engine *simulation.Engine, cfg *config.Config, log *logger.Logger) *SimulationHandler {
	return &SimulationHandler{
		engine: engine,
		cfg:    cfg,
		logger: log,
	}
}

// SimulateResponse is the POST /api/simulate response body
type SimulateResponse struct {
	RunID     string                  `json:"run_id"`
	CreatedAt time.Time               `json:"created_at"`
	Cached    bool                    `json:"cached"`
	Summary   []simulation.SummaryRow `json:"summary"`
}

// Simulate runs the scenario simulation for the posted input
// POST /api/simulate
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in simulation.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Config 기본값 적용
	if in.SampleCount == 0 {
		in.SampleCount = h.cfg.Simulation.DefaultSampleCount
	}
	if in.Seed == 0 {
		in.Seed = h.cfg.Simulation.Seed
	}
	if in.SampleCount > h.cfg.Simulation.MaxSampleCount {
		respondError(w, http.StatusBadRequest, "sample count exceeds SIM_MAX_SAMPLES")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// 입력이 동일하면 마지막 Run 재사용 (고정 시드일 때만 결과가 동일함이 보장됨)
	if h.lastRun != nil && h.lastInput != nil && h.lastInput.Equal(in) && in.Seed != 0 {
		respondJSON(w, http.StatusOK, SimulateResponse{
			RunID:     h.lastRun.ID,
			CreatedAt: h.lastRun.CreatedAt,
			Cached:    true,
			Summary:   h.lastRun.SummaryTable(),
		})
		return
	}

	run, err := h.engine.Run(ctx, in)
	if err != nil {
		h.logger.WithError(err).Error("Simulation run failed")
		respondDomainError(w, err)
		return
	}

	// 새 Run이 이전 Run을 완전히 대체 (last-request-wins)
	h.lastInput = &in
	h.lastRun = run

	respondJSON(w, http.StatusOK, SimulateResponse{
		RunID:     run.ID,
		CreatedAt: run.CreatedAt,
		Cached:    false,
		Summary:   run.SummaryTable(),
	})
}

// ListScenarios returns the fixed scenario catalog
// GET /api/scenarios
func (h *SimulationHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, simulation.Catalog())
}

// GetSamples returns one scenario's raw draws from the current run
// GET /api/scenarios/{name}/samples
func (h *SimulationHandler) GetSamples(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	run, ok := h.currentRun()
	if !ok {
		respondError(w, http.StatusNotFound, "no simulation run yet")
		return
	}

	samples, err := run.ScenarioSamples(name)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":   run.ID,
		"scenario": name,
		"samples":  samples,
	})
}

// GetSummary returns the comprehensive per-scenario summary
// GET /api/scenarios/{name}/summary?spot=&i_dom=&i_for=&tenor_days=&basis=
// 포인트 금리 미지정 시 마지막 입력의 spot과 구간 중간값 사용
func (h *SimulationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	run, ok := h.currentRun()
	if !ok {
		respondError(w, http.StatusNotFound, "no simulation run yet")
		return
	}

	q := r.URL.Query()
	spot := queryFloat(q.Get("spot"), run.Input.SpotRate)
	iDom := queryFloat(q.Get("i_dom"), run.Input.DomesticRate.Mid())
	iFor := queryFloat(q.Get("i_for"), run.Input.ForeignRate.Mid())
	tenorDays := queryInt(q.Get("tenor_days"), analytics.DefaultTenorDays)
	basis := queryInt(q.Get("basis"), analytics.DefaultDayCountBasis)

	summary, err := run.Summary(name, spot, iDom, iFor, tenorDays, basis)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":   run.ID,
		"scenario": name,
		"summary":  summary,
	})
}

// TailRisk returns VaR/Expected Shortfall for every scenario
// GET /api/tailrisk?confidence=0.95
func (h *SimulationHandler) TailRisk(w http.ResponseWriter, r *http.Request) {
	run, ok := h.currentRun()
	if !ok {
		respondError(w, http.StatusNotFound, "no simulation run yet")
		return
	}

	confidence := queryFloat(r.URL.Query().Get("confidence"), 0.95)

	report, err := run.TailRiskReport(confidence)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id": run.ID,
		"report": report,
	})
}

// ConfidenceIntervals returns per-scenario confidence bands
// GET /api/confidence-intervals?level=0.95
func (h *SimulationHandler) ConfidenceIntervals(w http.ResponseWriter, r *http.Request) {
	run, ok := h.currentRun()
	if !ok {
		respondError(w, http.StatusNotFound, "no simulation run yet")
		return
	}

	level := queryFloat(r.URL.Query().Get("level"), 0.95)

	intervals, err := run.ConfidenceIntervals(level)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":    run.ID,
		"intervals": intervals,
	})
}

// Forward computes the CIP implied forward and optionally evaluates an offer
// GET /api/forward?spot=&i_dom=&i_for=&tenor_days=&basis=&offer=&scenario=
// offer가 있으면 시뮬레이션 분포(기본 Normal 시나리오) 대비 위치도 평가
func (h *SimulationHandler) Forward(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	spot, err := strconv.ParseFloat(q.Get("spot"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "spot is required")
		return
	}
	iDom, err := strconv.ParseFloat(q.Get("i_dom"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "i_dom is required")
		return
	}
	iFor, err := strconv.ParseFloat(q.Get("i_for"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "i_for is required")
		return
	}
	tenorDays := queryInt(q.Get("tenor_days"), analytics.DefaultTenorDays)
	basis := queryInt(q.Get("basis"), analytics.DefaultDayCountBasis)

	forward, err := analytics.CIPForward(spot, iDom, iFor, tenorDays, basis)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := map[string]interface{}{"cip_forward": forward}

	if offerStr := q.Get("offer"); offerStr != "" {
		offer, err := strconv.ParseFloat(offerStr, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid offer")
			return
		}

		run, ok := h.currentRun()
		if !ok {
			respondError(w, http.StatusNotFound, "offer evaluation requires a simulation run")
			return
		}

		scenario := q.Get("scenario")
		if scenario == "" {
			scenario = "Normal"
		}
		samples, err := run.ScenarioSamples(scenario)
		if err != nil {
			respondDomainError(w, err)
			return
		}

		eval, err := analytics.EvaluateForward(offer, samples, spot, iDom, iFor, tenorDays, basis)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		resp["evaluation"] = eval
		resp["scenario"] = scenario
	}

	respondJSON(w, http.StatusOK, resp)
}

// currentRun returns the last completed run, if any
func (h *SimulationHandler) currentRun() (*simulation.Run, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lastRun == nil {
		return nil, false
	}
	return h.lastRun, true
}

func queryFloat(s string, defaultValue float64) float64 {
	if s == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func queryInt(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return v
}
