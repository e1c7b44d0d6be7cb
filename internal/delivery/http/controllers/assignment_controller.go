package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"venueseating/internal/delivery/http/helpers"
	"venueseating/internal/domain"
)

type AssignmentController struct {
	Logger  *slog.Logger
	Service domain.AssignmentService
	Emails  domain.EmailService
}

// NewAssignmentController creates an AssignmentController. emails may be
// nil; run summaries are then never sent.
func NewAssignmentController(logger *slog.Logger, svc domain.AssignmentService, emails domain.EmailService) *AssignmentController {
	return &AssignmentController{
		Logger:  logger,
		Service: svc,
		Emails:  emails,
	}
}

// RunAssignmentRequest is the request body for POST /charts/{chartID}/assignments/run.
// NotifyEmail, when set, receives a summary email after a committed run.
type RunAssignmentRequest struct {
	GroupByCategory      bool   `json:"group_by_category"`
	KeepVIPTogether      bool   `json:"keep_vip_together"`
	SeparateDietary      bool   `json:"separate_dietary"`
	FillTablesEvenly     bool   `json:"fill_tables_evenly"`
	PrioritizeAccessible bool   `json:"prioritize_accessible"`
	NotifyEmail          string `json:"notify_email"`
}

// Validate implements helpers.Validator.
func (r *RunAssignmentRequest) Validate() []string {
	r.NotifyEmail = strings.TrimSpace(r.NotifyEmail)
	if r.NotifyEmail != "" && !strings.Contains(r.NotifyEmail, "@") {
		return []string{"notify_email must be a valid email address"}
	}
	return nil
}

// RunResultSuccessResponse is the success response envelope for assignment runs.
type RunResultSuccessResponse struct {
	Data  *domain.RunResult `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RunAssignment godoc
// @Summary Run automatic seat assignment
// @Description Seats every eligible guest under the given rules. When eligible guests outnumber free seats the run aborts with a shortfall and makes no assignments; a committed run may still report per-guest exceptions.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Param body body controllers.RunAssignmentRequest true "Rule set for this run"
// @Success 200 {object} controllers.RunResultSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /charts/{chartID}/assignments/run [post]
func (c *AssignmentController) RunAssignment(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	if !uuidRegex.MatchString(chartID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid chartID")
		return
	}
	var req RunAssignmentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rules := domain.RuleSet{
		GroupByCategory:      req.GroupByCategory,
		KeepVIPTogether:      req.KeepVIPTogether,
		SeparateDietary:      req.SeparateDietary,
		FillTablesEvenly:     req.FillTablesEvenly,
		PrioritizeAccessible: req.PrioritizeAccessible,
	}
	result, err := c.Service.RunAssignment(r.Context(), chartID, rules)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if req.NotifyEmail != "" && c.Emails != nil && result.Shortfall == nil {
		data := &domain.RunSummaryEmailData{
			OperatorEmail: req.NotifyEmail,
			ChartID:       chartID,
			AssignedCount: result.AssignedCount,
			Exceptions:    result.Exceptions,
		}
		if err := c.Emails.SendRunSummary(r.Context(), data); err != nil {
			// The run itself committed; a summary email failure is not an
			// error the caller should see.
			c.Logger.WarnContext(r.Context(), "run summary email failed", "chart_id", chartID, "err", err)
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// AssignSeatRequest is the request body for PUT .../seats/{seatID}/assignment.
type AssignSeatRequest struct {
	GuestID string `json:"guest_id"`
}

// Validate implements helpers.Validator.
func (r *AssignSeatRequest) Validate() []string {
	if r.GuestID == "" {
		return []string{"guest_id is required"}
	}
	return nil
}

// AssignSeat godoc
// @Summary Manually assign a guest to a seat
// @Description Manual override: always permitted regardless of rule set, subject only to the one-seat/one-guest invariant and the seat not being blocked.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Param seatID path string true "Seat ID (UUID)"
// @Param body body controllers.AssignSeatRequest true "Guest to seat"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /charts/{chartID}/seats/{seatID}/assignment [put]
func (c *AssignmentController) AssignSeat(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	seatID := r.PathValue("seatID")
	if !uuidRegex.MatchString(chartID) || !uuidRegex.MatchString(seatID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	var req AssignSeatRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.AssignSeat(r.Context(), chartID, seatID, req.GuestID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// UnassignSeat godoc
// @Summary Manually unassign a seat
// @Description Frees the seat and releases its guest back to the unassigned pool. Idempotent for already-free seats.
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Param seatID path string true "Seat ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /charts/{chartID}/seats/{seatID}/assignment [delete]
func (c *AssignmentController) UnassignSeat(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	seatID := r.PathValue("seatID")
	if !uuidRegex.MatchString(chartID) || !uuidRegex.MatchString(seatID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	if err := c.Service.UnassignSeat(r.Context(), chartID, seatID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}
