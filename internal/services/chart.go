package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"venueseating/internal/domain"
	"venueseating/internal/geometry"
)

type chartService struct {
	chartRepo domain.ChartRepository
	guests    domain.GuestProvider
	drafts    domain.DraftStore
	publisher domain.ChartEventPublisher
	logger    *slog.Logger
}

// NewChartService creates a ChartService with the given repository and
// collaborators. drafts and publisher may be nil; the corresponding
// features degrade to no-ops.
func NewChartService(
	chartRepo domain.ChartRepository,
	guests domain.GuestProvider,
	drafts domain.DraftStore,
	publisher domain.ChartEventPublisher,
	logger *slog.Logger,
) domain.ChartService {
	return &chartService{
		chartRepo: chartRepo,
		guests:    guests,
		drafts:    drafts,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *chartService) CreateChart(ctx context.Context, eventID string, width, height float64) (*domain.SeatingChart, bool, error) {
	if eventID == "" {
		return nil, false, fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	if width <= 0 || height <= 0 {
		return nil, false, fmt.Errorf("%w: canvas dimensions must be positive", domain.ErrInvalidInput)
	}

	// One chart per event; creation is lazy and idempotent.
	if existing, err := s.chartRepo.GetByEventID(ctx, eventID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get chart by event: %w", err)
	}

	chart := domain.NewSeatingChart(eventID, width, height)
	chart.ID = uuid.NewString()
	chart.Version = 1
	chart.UpdatedAt = time.Now().UTC()
	if err := s.chartRepo.Create(ctx, chart); err != nil {
		return nil, false, fmt.Errorf("create chart: %w", err)
	}
	return chart, true, nil
}

func (s *chartService) GetChart(ctx context.Context, chartID string) (*domain.SeatingChart, error) {
	chart, err := s.chartRepo.GetByID(ctx, chartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get chart: %w", err)
	}
	return chart, nil
}

func (s *chartService) GetChartByEventID(ctx context.Context, eventID string) (*domain.SeatingChart, error) {
	chart, err := s.chartRepo.GetByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get chart by event: %w", err)
	}
	return chart, nil
}

func (s *chartService) CreateTable(ctx context.Context, chartID string, tableType domain.TableType, label string, seatCount int, cx, cy float64) (*domain.Table, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("%w: table label is required", domain.ErrInvalidInput)
	}
	if !domain.ValidTableType(tableType) {
		return nil, fmt.Errorf("%w: unknown table type %q", domain.ErrInvalidInput, tableType)
	}
	if seatCount < 0 {
		return nil, fmt.Errorf("%w: seat count must not be negative", domain.ErrInvalidInput)
	}
	if tableType == domain.TableCocktail && seatCount != 0 {
		return nil, fmt.Errorf("%w: cocktail tables are standing-only", domain.ErrInvalidInput)
	}

	chart, err := s.GetChart(ctx, chartID)
	if err != nil {
		return nil, err
	}
	if chart.HasTableLabel(label) {
		return nil, fmt.Errorf("%w: table %q", domain.ErrDuplicateLabel, label)
	}

	// Seats are created atomically with the table, labeled "{label}-{i+1}".
	// Labels are unique chart-wide, so a collision with any existing seat
	// (including individual seats) rejects the whole table.
	positions := geometry.SeatPositions(tableType, seatCount, cx, cy)
	table := &domain.Table{
		ID:      uuid.NewString(),
		Type:    tableType,
		Label:   label,
		CenterX: cx,
		CenterY: cy,
	}
	for i, pos := range positions {
		seatLabel := fmt.Sprintf("%s-%d", label, i+1)
		if chart.HasSeatLabel(seatLabel) {
			return nil, fmt.Errorf("%w: seat %q", domain.ErrDuplicateLabel, seatLabel)
		}
		table.Seats = append(table.Seats, &domain.Seat{
			ID:      uuid.NewString(),
			TableID: table.ID,
			Label:   seatLabel,
			X:       pos.X,
			Y:       pos.Y,
			Type:    domain.SeatRegular,
		})
	}

	chart.Tables = append(chart.Tables, table)
	if err := s.save(ctx, chart); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *chartService) MoveTable(ctx context.Context, chartID, tableID string, cx, cy float64) error {
	chart, err := s.GetChart(ctx, chartID)
	if err != nil {
		return err
	}
	table, ok := chart.FindTable(tableID)
	if !ok {
		return domain.ErrNotFound
	}

	// Rigid-body translation: every seat keeps its offset from the center.
	dx := cx - table.CenterX
	dy := cy - table.CenterY
	table.CenterX = cx
	table.CenterY = cy
	for _, seat := range table.Seats {
		seat.X += dx
		seat.Y += dy
	}
	return s.save(ctx, chart)
}

func (s *chartService) RemoveTable(ctx context.Context, chartID, tableID string) error {
	chart, err := s.GetChart(ctx, chartID)
	if err != nil {
		return err
	}
	table, ok := chart.FindTable(tableID)
	if !ok {
		return domain.ErrNotFound
	}

	// Release every assigned guest before touching the chart so a provider
	// failure leaves the stored layout untouched (no partial cascade).
	for _, seat := range table.Seats {
		if seat.GuestID == "" {
			continue
		}
		if err := s.guests.ReleaseSeat(ctx, seat.GuestID, seat.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("release seat %s: %w", seat.Label, err)
		}
	}

	tables := chart.Tables[:0]
	for _, t := range chart.Tables {
		if t.ID != tableID {
			tables = append(tables, t)
		}
	}
	chart.Tables = tables
	return s.save(ctx, chart)
}

func (s *chartService) AddIndividualSeat(ctx context.Context, chartID, label string, x, y float64, seatType domain.SeatType) (*domain.Seat, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("%w: seat label is required", domain.ErrInvalidInput)
	}
	if seatType == "" {
		seatType = domain.SeatRegular
	}
	if !domain.ValidSeatType(seatType) {
		return nil, fmt.Errorf("%w: unknown seat type %q", domain.ErrInvalidInput, seatType)
	}

	chart, err := s.GetChart(ctx, chartID)
	if err != nil {
		return nil, err
	}
	if chart.HasSeatLabel(label) {
		return nil, fmt.Errorf("%w: seat %q", domain.ErrDuplicateLabel, label)
	}

	seat := &domain.Seat{
		ID:    uuid.NewString(),
		Label: label,
		X:     x,
		Y:     y,
		Type:  seatType,
	}
	chart.Individual = append(chart.Individual, seat)
	if err := s.save(ctx, chart); err != nil {
		return nil, err
	}
	return seat, nil
}

func (s *chartService) MoveSeat(ctx context.Context, chartID, seatID string, x, y float64) error {
	chart, err := s.GetChart(ctx, chartID)
	if err != nil {
		return err
	}
	seat, ok := chart.FindSeat(seatID)
	if !ok {
		return domain.ErrNotFound
	}
	seat.X = x
	seat.Y = y
	return s.save(ctx, chart)
}

func (s *chartService) SetSeatType(ctx context.Context, chartID, seatID string, seatType domain.SeatType) error {
	if !domain.ValidSeatType(seatType) {
		return fmt.Errorf("%w: unknown seat type %q", domain.ErrInvalidInput, seatType)
	}
	chart, err := s.GetChart(ctx, chartID)
	if err != nil {
		return err
	}
	seat, ok := chart.FindSeat(seatID)
	if !ok {
		return domain.ErrNotFound
	}
	if seatType == domain.SeatBlocked && seat.GuestID != "" {
		return fmt.Errorf("%w: unassign before blocking", domain.ErrSeatOccupied)
	}
	seat.Type = seatType
	return s.save(ctx, chart)
}

func (s *chartService) SaveDraft(ctx context.Context, chartID string) error {
	if s.drafts == nil {
		return nil
	}
	chart, err := s.GetChart(ctx, chartID)
	if err != nil {
		return err
	}
	blob, err := domain.MarshalChart(chart)
	if err != nil {
		return fmt.Errorf("marshal chart: %w", err)
	}
	if err := s.drafts.SaveDraft(ctx, chartID, blob); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *chartService) LoadDraft(ctx context.Context, chartID string) (*domain.SeatingChart, error) {
	if s.drafts == nil {
		return nil, domain.ErrNotFound
	}
	blob, err := s.drafts.LoadDraft(ctx, chartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load draft: %w", err)
	}
	chart, err := domain.UnmarshalChart(blob)
	if err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return chart, nil
}

func (s *chartService) DiscardDraft(ctx context.Context, chartID string) error {
	if s.drafts == nil {
		return nil
	}
	if err := s.drafts.DiscardDraft(ctx, chartID); err != nil {
		return fmt.Errorf("discard draft: %w", err)
	}
	return nil
}

// save bumps the chart version, persists it, and notifies downstream
// consumers. Publish failures are logged, never surfaced.
func (s *chartService) save(ctx context.Context, chart *domain.SeatingChart) error {
	chart.Version++
	chart.UpdatedAt = time.Now().UTC()
	if err := s.chartRepo.Save(ctx, chart); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	if s.publisher != nil {
		event := domain.ChartUpdatedEvent{
			ChartID:   chart.ID,
			EventID:   chart.EventID,
			Reason:    domain.ChartUpdateSaved,
			UpdatedAt: chart.UpdatedAt,
		}
		if err := s.publisher.PublishChartUpdated(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "publish chart.updated failed", "chart_id", chart.ID, "err", err)
		}
	}
	return nil
}
