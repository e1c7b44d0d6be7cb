package controllers

import (
	"log/slog"
	"net/http"

	"venueseating/internal/delivery/http/helpers"
	"venueseating/internal/domain"
)

type ChartController struct {
	Logger  *slog.Logger
	Service domain.ChartService
}

func NewChartController(logger *slog.Logger, svc domain.ChartService) *ChartController {
	return &ChartController{
		Logger:  logger,
		Service: svc,
	}
}

// ChartSuccessResponse is the success response envelope for chart endpoints.
type ChartSuccessResponse struct {
	Data  *domain.SeatingChart `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// CreateChartRequest is the request body for POST /charts.
type CreateChartRequest struct {
	EventID      string  `json:"event_id"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
}

// Validate implements helpers.Validator.
func (r *CreateChartRequest) Validate() []string {
	var errs []string
	if r.EventID == "" {
		errs = append(errs, "event_id is required")
	}
	if r.CanvasWidth <= 0 {
		errs = append(errs, "canvas_width must be positive")
	}
	if r.CanvasHeight <= 0 {
		errs = append(errs, "canvas_height must be positive")
	}
	return errs
}

// CreateChart godoc
// @Summary Create the seating chart for an event
// @Description Lazily creates the chart for the event. Idempotent: returns 201 when a new chart is created, 200 when the event already has one.
// @Tags charts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateChartRequest true "Event id and canvas dimensions"
// @Success 200 {object} controllers.ChartSuccessResponse "Existing chart"
// @Success 201 {object} controllers.ChartSuccessResponse "New chart created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /charts [post]
func (c *ChartController) CreateChart(w http.ResponseWriter, r *http.Request) {
	var req CreateChartRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	chart, created, err := c.Service.CreateChart(r.Context(), req.EventID, req.CanvasWidth, req.CanvasHeight)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if created {
		helpers.WriteJSONSuccess(w, http.StatusCreated, chart)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, chart)
}

// GetChart godoc
// @Summary Get a seating chart by id
// @Tags charts
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Success 200 {object} controllers.ChartSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /charts/{chartID} [get]
func (c *ChartController) GetChart(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	if !uuidRegex.MatchString(chartID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid chartID")
		return
	}
	chart, err := c.Service.GetChart(r.Context(), chartID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, chart)
}

// GetChartByEvent godoc
// @Summary Get the seating chart for an event
// @Tags charts
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ChartSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/chart [get]
func (c *ChartController) GetChartByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	chart, err := c.Service.GetChartByEventID(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, chart)
}

// TableSuccessResponse is the success response envelope for table endpoints.
type TableSuccessResponse struct {
	Data  *domain.Table     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateTableRequest is the request body for POST /charts/{chartID}/tables.
type CreateTableRequest struct {
	Type      string  `json:"type"`
	Label     string  `json:"label"`
	SeatCount int     `json:"seat_count"`
	CenterX   float64 `json:"center_x"`
	CenterY   float64 `json:"center_y"`
}

// Validate implements helpers.Validator.
func (r *CreateTableRequest) Validate() []string {
	var errs []string
	if r.Label == "" {
		errs = append(errs, "label is required")
	}
	if !domain.ValidTableType(domain.TableType(r.Type)) {
		errs = append(errs, "type must be one of: round, rectangle, cocktail")
	}
	if r.SeatCount < 0 {
		errs = append(errs, "seat_count must not be negative")
	}
	return errs
}

// CreateTable godoc
// @Summary Add a table to a chart
// @Description Creates the table and its seats atomically. Seats are placed evenly around the center and labeled "{label}-{n}".
// @Tags charts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Param body body controllers.CreateTableRequest true "Table descriptor"
// @Success 201 {object} controllers.TableSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate label)"
// @Router /charts/{chartID}/tables [post]
func (c *ChartController) CreateTable(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	if !uuidRegex.MatchString(chartID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid chartID")
		return
	}
	var req CreateTableRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	table, err := c.Service.CreateTable(r.Context(), chartID, domain.TableType(req.Type), req.Label, req.SeatCount, req.CenterX, req.CenterY)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, table)
}

// MoveTableRequest is the request body for PATCH .../tables/{tableID}/position.
type MoveTableRequest struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
}

// MoveTable godoc
// @Summary Move a table
// @Description Translates the table and all of its seats by the same delta.
// @Tags charts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Param tableID path string true "Table ID (UUID)"
// @Param body body controllers.MoveTableRequest true "New center"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /charts/{chartID}/tables/{tableID}/position [patch]
func (c *ChartController) MoveTable(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	tableID := r.PathValue("tableID")
	if !uuidRegex.MatchString(chartID) || !uuidRegex.MatchString(tableID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	var req MoveTableRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.MoveTable(r.Context(), chartID, tableID, req.CenterX, req.CenterY); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// RemoveTable godoc
// @Summary Remove a table
// @Description Removes the table and all of its seats. Assigned guests on those seats are released back to the unassigned pool.
// @Tags charts
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Param tableID path string true "Table ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /charts/{chartID}/tables/{tableID} [delete]
func (c *ChartController) RemoveTable(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	tableID := r.PathValue("tableID")
	if !uuidRegex.MatchString(chartID) || !uuidRegex.MatchString(tableID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	if err := c.Service.RemoveTable(r.Context(), chartID, tableID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// SeatSuccessResponse is the success response envelope for seat endpoints.
type SeatSuccessResponse struct {
	Data  *domain.Seat      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AddIndividualSeatRequest is the request body for POST /charts/{chartID}/seats.
type AddIndividualSeatRequest struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Type  string  `json:"type"`
}

// Validate implements helpers.Validator.
func (r *AddIndividualSeatRequest) Validate() []string {
	var errs []string
	if r.Label == "" {
		errs = append(errs, "label is required")
	}
	if r.Type != "" && !domain.ValidSeatType(domain.SeatType(r.Type)) {
		errs = append(errs, "type must be one of: regular, vip, accessible, blocked")
	}
	return errs
}

// AddIndividualSeat godoc
// @Summary Add an individual (unattached) seat
// @Tags charts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Param body body controllers.AddIndividualSeatRequest true "Seat descriptor"
// @Success 201 {object} controllers.SeatSuccessResponse
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate label)"
// @Router /charts/{chartID}/seats [post]
func (c *ChartController) AddIndividualSeat(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	if !uuidRegex.MatchString(chartID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid chartID")
		return
	}
	var req AddIndividualSeatRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	seat, err := c.Service.AddIndividualSeat(r.Context(), chartID, req.Label, req.X, req.Y, domain.SeatType(req.Type))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, seat)
}

// MoveSeatRequest is the request body for PATCH .../seats/{seatID}/position.
type MoveSeatRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MoveSeat godoc
// @Summary Move a seat
// @Tags charts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Param seatID path string true "Seat ID (UUID)"
// @Param body body controllers.MoveSeatRequest true "New position"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /charts/{chartID}/seats/{seatID}/position [patch]
func (c *ChartController) MoveSeat(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	seatID := r.PathValue("seatID")
	if !uuidRegex.MatchString(chartID) || !uuidRegex.MatchString(seatID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	var req MoveSeatRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.MoveSeat(r.Context(), chartID, seatID, req.X, req.Y); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// SetSeatTypeRequest is the request body for PATCH .../seats/{seatID}/type.
type SetSeatTypeRequest struct {
	Type string `json:"type"`
}

// Validate implements helpers.Validator.
func (r *SetSeatTypeRequest) Validate() []string {
	if !domain.ValidSeatType(domain.SeatType(r.Type)) {
		return []string{"type must be one of: regular, vip, accessible, blocked"}
	}
	return nil
}

// SetSeatType godoc
// @Summary Change a seat's type
// @Description Blocking a seat that currently holds an assignment is rejected; unassign first.
// @Tags charts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Param seatID path string true "Seat ID (UUID)"
// @Param body body controllers.SetSeatTypeRequest true "New seat type"
// @Success 200 {object} helpers.APIResponse
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (seat occupied)"
// @Router /charts/{chartID}/seats/{seatID}/type [patch]
func (c *ChartController) SetSeatType(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	seatID := r.PathValue("seatID")
	if !uuidRegex.MatchString(chartID) || !uuidRegex.MatchString(seatID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	var req SetSeatTypeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SetSeatType(r.Context(), chartID, seatID, domain.SeatType(req.Type)); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// SaveDraft godoc
// @Summary Autosave the chart's current state as a draft
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Router /charts/{chartID}/draft [post]
func (c *ChartController) SaveDraft(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	if !uuidRegex.MatchString(chartID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid chartID")
		return
	}
	if err := c.Service.SaveDraft(r.Context(), chartID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// LoadDraft godoc
// @Summary Load the chart's draft snapshot
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Success 200 {object} controllers.ChartSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no draft)"
// @Router /charts/{chartID}/draft [get]
func (c *ChartController) LoadDraft(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	if !uuidRegex.MatchString(chartID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid chartID")
		return
	}
	chart, err := c.Service.LoadDraft(r.Context(), chartID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, chart)
}

// DiscardDraft godoc
// @Summary Discard the chart's draft snapshot
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param chartID path string true "Chart ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Router /charts/{chartID}/draft [delete]
func (c *ChartController) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("chartID")
	if !uuidRegex.MatchString(chartID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid chartID")
		return
	}
	if err := c.Service.DiscardDraft(r.Context(), chartID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}
