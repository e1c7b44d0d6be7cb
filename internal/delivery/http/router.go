package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"venueseating/internal/delivery/http/controllers"
	"venueseating/internal/delivery/http/middleware"
	"venueseating/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Every chart route requires a bearer token minted by the platform's auth
// service.
func NewRouter(
	chartController *controllers.ChartController,
	assignmentController *controllers.AssignmentController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Charts
	mux.HandleFunc("POST /charts", auth(chartController.CreateChart))
	mux.HandleFunc("GET /charts/{chartID}", auth(chartController.GetChart))
	mux.HandleFunc("GET /events/{eventID}/chart", auth(chartController.GetChartByEvent))

	// Tables
	mux.HandleFunc("POST /charts/{chartID}/tables", auth(chartController.CreateTable))
	mux.HandleFunc("PATCH /charts/{chartID}/tables/{tableID}/position", auth(chartController.MoveTable))
	mux.HandleFunc("DELETE /charts/{chartID}/tables/{tableID}", auth(chartController.RemoveTable))

	// Seats
	mux.HandleFunc("POST /charts/{chartID}/seats", auth(chartController.AddIndividualSeat))
	mux.HandleFunc("PATCH /charts/{chartID}/seats/{seatID}/position", auth(chartController.MoveSeat))
	mux.HandleFunc("PATCH /charts/{chartID}/seats/{seatID}/type", auth(chartController.SetSeatType))

	// Drafts (autosave)
	mux.HandleFunc("POST /charts/{chartID}/draft", auth(chartController.SaveDraft))
	mux.HandleFunc("GET /charts/{chartID}/draft", auth(chartController.LoadDraft))
	mux.HandleFunc("DELETE /charts/{chartID}/draft", auth(chartController.DiscardDraft))

	// Assignments
	mux.HandleFunc("POST /charts/{chartID}/assignments/run", auth(assignmentController.RunAssignment))
	mux.HandleFunc("PUT /charts/{chartID}/seats/{seatID}/assignment", auth(assignmentController.AssignSeat))
	mux.HandleFunc("DELETE /charts/{chartID}/seats/{seatID}/assignment", auth(assignmentController.UnassignSeat))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
