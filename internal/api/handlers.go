package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/assessment"
	"github.com/ZanzyTHEbar/function-o-meter/internal/collector"
	"github.com/ZanzyTHEbar/function-o-meter/internal/database"
	"github.com/ZanzyTHEbar/function-o-meter/internal/distribution"
	"github.com/ZanzyTHEbar/function-o-meter/internal/errors"
	"github.com/ZanzyTHEbar/function-o-meter/internal/sampler"
	"github.com/ZanzyTHEbar/function-o-meter/internal/types"
	"github.com/ZanzyTHEbar/function-o-meter/internal/typology"
)

const (
	maxListLimit   = 100
	maxBatchSize   = 50
	requestTimeout = 30 * time.Second
)

// Handler serves the /api/v1 routes.
type Handler struct {
	assessment   *assessment.Service
	distribution *distribution.Service
}

// NewHandler creates a handler over the assessment and distribution services.
func NewHandler(svc *assessment.Service, dist *distribution.Service) *Handler {
	return &Handler{assessment: svc, distribution: dist}
}

// fail maps domain errors to AppErrors and hands them to errors.ErrorHandler.
func fail(c *gin.Context, err error) {
	var appErr *errors.AppError
	switch {
	case stderrors.As(err, &appErr):
	case stderrors.Is(err, sampler.ErrUnsupportedMode),
		stderrors.Is(err, assessment.ErrUnknownPersona):
		appErr = errors.NewValidationError(err.Error())
	case stderrors.Is(err, database.ErrRunNotFound):
		appErr = errors.NewNotFoundError("run", c.Param("id"))
	case stderrors.Is(err, database.ErrRunCompleted):
		appErr = errors.NewConflictError("run already completed", err)
	default:
		appErr = errors.ToAppError(err)
	}
	_ = c.Error(appErr)
}

func bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(errors.NewValidationError("invalid request body", err.Error()))
		return false
	}
	return true
}

func withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// Sample godoc
// @Summary      Select scenarios
// @Description  Deterministic selection for a mode and seed; a valid explicit_ids list is used as is.
// @Tags         assessment
// @Accept       json
// @Produce      json
// @Param        request  body      types.SampleRequest  true  "Selection request"
// @Success      200      {object}  types.SampleResponse
// @Failure      400      {object}  errors.ErrorResponse
// @Router       /api/v1/sample [post]
func (h *Handler) Sample(c *gin.Context) {
	var req types.SampleRequest
	if !bind(c, &req) {
		return
	}

	sel, err := h.assessment.Sample(req.Mode, req.Seed, req.ExplicitIDs)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, types.SampleResponse{
		Mode:        sel.Mode,
		Seed:        sel.Seed,
		ScenarioIDs: sel.ScenarioIDs,
		Source:      string(sel.Source),
	})
}

// Score godoc
// @Summary      Score responses
// @Tags         assessment
// @Accept       json
// @Produce      json
// @Param        request  body      types.ResponsesRequest  true  "Responses"
// @Success      200      {object}  analysis.ScoreResult
// @Failure      400      {object}  errors.ErrorResponse
// @Router       /api/v1/score [post]
func (h *Handler) Score(c *gin.Context) {
	var req types.ResponsesRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.assessment.Score(req.Responses))
}

// Derive godoc
// @Summary      Derive type codes from scores
// @Tags         assessment
// @Accept       json
// @Produce      json
// @Param        request  body      types.DeriveRequest  true  "Scores keyed by function code"
// @Success      200      {object}  typology.Types
// @Failure      400      {object}  errors.ErrorResponse
// @Router       /api/v1/derive [post]
func (h *Handler) Derive(c *gin.Context) {
	var req types.DeriveRequest
	if !bind(c, &req) {
		return
	}

	scores, err := analysis.FunctionScoresFromMap(req.Scores)
	if err != nil {
		_ = c.Error(errors.NewValidationError("invalid scores", err.Error()))
		return
	}
	c.JSON(http.StatusOK, h.assessment.Derive(scores))
}

// Analyze godoc
// @Summary      Score responses and derive types
// @Tags         assessment
// @Accept       json
// @Produce      json
// @Param        request  body      types.ResponsesRequest  true  "Responses"
// @Success      200      {object}  assessment.Analysis
// @Failure      400      {object}  errors.ErrorResponse
// @Router       /api/v1/analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	var req types.ResponsesRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.assessment.Analyze(req.Responses))
}

// GetScenario godoc
// @Summary      Fetch one scenario with its options
// @Tags         corpus
// @Produce      json
// @Param        id   path      string  true  "Scenario ID"
// @Success      200  {object}  corpus.Scenario
// @Failure      404  {object}  errors.ErrorResponse
// @Router       /api/v1/scenarios/{id} [get]
func (h *Handler) GetScenario(c *gin.Context) {
	id := c.Param("id")
	sc, ok := h.assessment.Corpus().Scenario(id)
	if !ok {
		_ = c.Error(errors.NewNotFoundError("scenario", id))
		return
	}
	c.JSON(http.StatusOK, sc)
}

// CreateRun godoc
// @Summary      Start a run
// @Description  Samples scenarios for the mode; an empty seed gets a generated one.
// @Tags         runs
// @Accept       json
// @Produce      json
// @Param        request  body      types.CreateRunRequest  true  "Run request"
// @Success      201      {object}  database.Run
// @Failure      400      {object}  errors.ErrorResponse
// @Router       /api/v1/runs [post]
func (h *Handler) CreateRun(c *gin.Context) {
	var req types.CreateRunRequest
	if !bind(c, &req) {
		return
	}

	run, err := h.assessment.CreateRun(c.Request.Context(), assessment.RunRequest{
		Mode:        req.Mode,
		Seed:        req.Seed,
		ExplicitIDs: req.ExplicitIDs,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, run)
}

// ListRuns godoc
// @Summary      List runs, newest first
// @Tags         runs
// @Produce      json
// @Param        limit  query     int  false  "Maximum runs (1-100)"
// @Success      200    {object}  types.RunListResponse
// @Router       /api/v1/runs [get]
func (h *Handler) ListRuns(c *gin.Context) {
	limit := database.DefaultListLimit
	if s := c.Query("limit"); s != "" {
		if l, err := strconv.Atoi(s); err == nil && l > 0 && l <= maxListLimit {
			limit = l
		}
	}

	runs, err := h.assessment.ListRuns(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RunListResponse{Runs: runs, Count: len(runs)})
}

// GetRun godoc
// @Summary      Fetch a run
// @Tags         runs
// @Produce      json
// @Param        id   path      string  true  "Run ID"
// @Success      200  {object}  database.Run
// @Failure      404  {object}  errors.ErrorResponse
// @Router       /api/v1/runs/{id} [get]
func (h *Handler) GetRun(c *gin.Context) {
	run, err := h.assessment.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// SubmitResponses godoc
// @Summary      Complete a run with its answers
// @Description  Answers to scenarios outside the run are ignored. A completed run cannot be resubmitted.
// @Tags         runs
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Run ID"
// @Param        request  body      types.ResponsesRequest  true  "Responses"
// @Success      200      {object}  database.Run
// @Failure      404      {object}  errors.ErrorResponse
// @Failure      409      {object}  errors.ErrorResponse
// @Router       /api/v1/runs/{id}/responses [post]
func (h *Handler) SubmitResponses(c *gin.Context) {
	var req types.ResponsesRequest
	if !bind(c, &req) {
		return
	}

	run, err := h.assessment.SubmitResponses(c.Request.Context(), c.Param("id"), req.Responses)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// DeleteRun godoc
// @Summary      Delete a run and its answers
// @Tags         runs
// @Produce      json
// @Param        id   path      string  true  "Run ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errors.ErrorResponse
// @Router       /api/v1/runs/{id} [delete]
func (h *Handler) DeleteRun(c *gin.Context) {
	id := c.Param("id")
	if err := h.assessment.DeleteRun(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "run deleted", "id": id})
}

// ListPersonas godoc
// @Summary      List simulation personas
// @Tags         simulations
// @Produce      json
// @Success      200  {array}  collector.Persona
// @Router       /api/v1/personas [get]
func (h *Handler) ListPersonas(c *gin.Context) {
	c.JSON(http.StatusOK, collector.Personas())
}

// Simulate godoc
// @Summary      Run an assessment answered by a persona
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Param        request  body      assessment.SimulationRequest  true  "Simulation"
// @Success      201      {object}  database.Run
// @Failure      400      {object}  errors.ErrorResponse
// @Failure      502      {object}  errors.ErrorResponse
// @Router       /api/v1/simulations [post]
func (h *Handler) Simulate(c *gin.Context) {
	var req assessment.SimulationRequest
	if !bind(c, &req) {
		return
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	run, err := h.assessment.Simulate(ctx, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, run)
}

// SimulateBatch godoc
// @Summary      Run several persona simulations concurrently
// @Description  Results keep request order; a failed item carries its error.
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Param        request  body      types.BatchSimulationRequest  true  "Simulations"
// @Success      200      {object}  types.BatchSimulationResponse
// @Failure      400      {object}  errors.ErrorResponse
// @Router       /api/v1/simulations/batch [post]
func (h *Handler) SimulateBatch(c *gin.Context) {
	var req types.BatchSimulationRequest
	if !bind(c, &req) {
		return
	}
	if len(req.Requests) == 0 || len(req.Requests) > maxBatchSize {
		_ = c.Error(errors.NewValidationError("batch must hold between 1 and 50 requests"))
		return
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	results := h.assessment.SimulateBatch(ctx, req.Requests)
	c.JSON(http.StatusOK, types.NewBatchSimulationResponse(results))
}

// TypeStats godoc
// @Summary      Type distribution across completed runs
// @Tags         stats
// @Produce      json
// @Param        scheme  query     string  false  "stack, axis or myers"  default(stack)
// @Success      200     {object}  distribution.Distribution
// @Failure      400     {object}  errors.ErrorResponse
// @Router       /api/v1/stats/types [get]
func (h *Handler) TypeStats(c *gin.Context) {
	scheme, err := typology.ParseScheme(c.DefaultQuery("scheme", string(typology.SchemeStack)))
	if err != nil {
		_ = c.Error(errors.NewValidationError(err.Error()))
		return
	}

	d, err := h.distribution.Get(c.Request.Context(), scheme)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
