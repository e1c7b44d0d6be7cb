package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"venueseating/internal/domain"
)

// runState tracks the phase of one assignment run. A run either reaches
// committed or aborts during the validating precheck; there is no other
// exit.
type runState string

const (
	runValidating runState = "validating"
	runGrouping   runState = "grouping"
	runAllocating runState = "allocating"
	runCommitted  runState = "committed"
	runAborted    runState = "aborted"
)

type assignmentService struct {
	chartRepo domain.ChartRepository
	guests    domain.GuestProvider
	publisher domain.ChartEventPublisher
	logger    *slog.Logger
}

// NewAssignmentService creates an AssignmentService. publisher may be nil.
func NewAssignmentService(
	chartRepo domain.ChartRepository,
	guests domain.GuestProvider,
	publisher domain.ChartEventPublisher,
	logger *slog.Logger,
) domain.AssignmentService {
	return &assignmentService{
		chartRepo: chartRepo,
		guests:    guests,
		publisher: publisher,
		logger:    logger,
	}
}

// guestGroup is one named partition of the unassigned pool, allocated as a
// unit.
type guestGroup struct {
	name   string
	guests []*domain.Guest
}

// seatPair is one computed (guest, seat) assignment awaiting commit.
type seatPair struct {
	guest *domain.Guest
	seat  *domain.Seat
}

func (s *assignmentService) RunAssignment(ctx context.Context, chartID string, rules domain.RuleSet) (*domain.RunResult, error) {
	chart, err := s.chartRepo.GetByID(ctx, chartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get chart: %w", err)
	}

	// Validating: eligible pool vs free seats. The precheck is
	// all-or-nothing; a shortfall aborts before any mutation.
	s.logState(ctx, chartID, runValidating)
	listed, err := s.guests.ListEligibleGuests(ctx, chart.EventID)
	if err != nil {
		return nil, fmt.Errorf("list eligible guests: %w", err)
	}
	seated := chart.SeatedGuestIDs()
	var unassigned []*domain.Guest
	for _, g := range listed {
		if !g.Eligible() {
			continue
		}
		if _, ok := seated[g.ID]; ok {
			continue
		}
		unassigned = append(unassigned, g)
	}
	free := chart.FreeSeats()
	if len(free) < len(unassigned) {
		s.logState(ctx, chartID, runAborted)
		return &domain.RunResult{
			Exceptions: []domain.RunException{},
			Shortfall:  &domain.Shortfall{Needed: len(unassigned), Available: len(free)},
		}, nil
	}

	// Grouping: fixed precedence of accessible, vip, then category (or one
	// group holding everyone).
	s.logState(ctx, chartID, runGrouping)
	exceptions := []domain.RunException{}
	var pairs []seatPair
	pool := unassigned

	if rules.PrioritizeAccessible {
		var accessible, rest []*domain.Guest
		for _, g := range pool {
			if g.AccessibilityNeed {
				accessible = append(accessible, g)
			} else {
				rest = append(rest, g)
			}
		}
		accessibleSeats, remaining := splitSeatsByType(free, domain.SeatAccessible)
		free = remaining
		for _, g := range accessible {
			if len(accessibleSeats) == 0 {
				// Never silently reseat an accessibility guest elsewhere.
				exceptions = append(exceptions, domain.RunException{
					GuestID: g.ID,
					Reason:  "no accessible seat available",
				})
				continue
			}
			pairs = append(pairs, seatPair{guest: g, seat: accessibleSeats[0]})
			accessibleSeats = accessibleSeats[1:]
		}
		// Accessible seats not needed by the accessible group stay in the
		// general pool.
		free = append(free, accessibleSeats...)
		pool = rest
	}

	var groups []guestGroup
	if rules.KeepVIPTogether {
		var vips, rest []*domain.Guest
		for _, g := range pool {
			if g.IsVIP {
				vips = append(vips, g)
			} else {
				rest = append(rest, g)
			}
		}
		if len(vips) > 0 {
			groups = append(groups, guestGroup{name: "vip", guests: vips})
		}
		pool = rest
	}
	if rules.GroupByCategory {
		groups = append(groups, groupByCategory(pool)...)
	} else if len(pool) > 0 {
		groups = append(groups, guestGroup{name: "all", guests: pool})
	}

	// Allocating: greedy bin-fill over per-table free seat buckets. Ties
	// break on table discovery order and the algorithm never backtracks.
	s.logState(ctx, chartID, runAllocating)
	buckets := bucketByTable(chart, free)
	for _, group := range groups {
		ranked := rankBuckets(buckets, len(group.guests), rules.FillTablesEvenly)
		remaining := group.guests
		for _, b := range ranked {
			for len(remaining) > 0 && len(b.seats) > 0 {
				pairs = append(pairs, seatPair{guest: remaining[0], seat: b.seats[0]})
				remaining = remaining[1:]
				b.seats = b.seats[1:]
			}
			if len(remaining) == 0 {
				break
			}
		}
	}

	// Committed: claim pair by pair. A failed claim leaves its seat free,
	// surfaces as an exception, and never aborts the rest of the run.
	assigned := 0
	for _, p := range pairs {
		if err := s.guests.ClaimSeat(ctx, p.guest.ID, p.seat.ID); err != nil {
			s.logger.WarnContext(ctx, "seat claim failed",
				"chart_id", chartID, "guest_id", p.guest.ID, "seat_id", p.seat.ID, "err", err)
			exceptions = append(exceptions, domain.RunException{GuestID: p.guest.ID, Reason: err.Error()})
			continue
		}
		p.seat.GuestID = p.guest.ID
		assigned++
	}
	if assigned > 0 {
		chart.Version++
		chart.UpdatedAt = time.Now().UTC()
		if err := s.chartRepo.Save(ctx, chart); err != nil {
			return nil, fmt.Errorf("save chart: %w", err)
		}
		s.publishCommitted(ctx, chart)
	}
	s.logState(ctx, chartID, runCommitted)

	return &domain.RunResult{
		AssignedCount: assigned,
		Exceptions:    exceptions,
	}, nil
}

func (s *assignmentService) AssignSeat(ctx context.Context, chartID, seatID, guestID string) error {
	if guestID == "" {
		return fmt.Errorf("%w: guest id is required", domain.ErrInvalidInput)
	}
	chart, err := s.chartRepo.GetByID(ctx, chartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get chart: %w", err)
	}
	seat, ok := chart.FindSeat(seatID)
	if !ok {
		return domain.ErrNotFound
	}
	if seat.Type == domain.SeatBlocked {
		return domain.ErrSeatBlocked
	}
	if seat.GuestID == guestID {
		return nil
	}
	if seat.GuestID != "" {
		return domain.ErrSeatOccupied
	}
	if _, already := chart.SeatedGuestIDs()[guestID]; already {
		return domain.ErrGuestAlreadySeated
	}
	if err := s.guests.ClaimSeat(ctx, guestID, seat.ID); err != nil {
		return fmt.Errorf("claim seat: %w", err)
	}
	seat.GuestID = guestID
	chart.Version++
	chart.UpdatedAt = time.Now().UTC()
	if err := s.chartRepo.Save(ctx, chart); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	s.publishCommitted(ctx, chart)
	return nil
}

func (s *assignmentService) UnassignSeat(ctx context.Context, chartID, seatID string) error {
	chart, err := s.chartRepo.GetByID(ctx, chartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get chart: %w", err)
	}
	seat, ok := chart.FindSeat(seatID)
	if !ok {
		return domain.ErrNotFound
	}
	if seat.GuestID == "" {
		return nil
	}
	if err := s.guests.ReleaseSeat(ctx, seat.GuestID, seat.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("release seat: %w", err)
	}
	seat.GuestID = ""
	chart.Version++
	chart.UpdatedAt = time.Now().UTC()
	if err := s.chartRepo.Save(ctx, chart); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	s.publishCommitted(ctx, chart)
	return nil
}

func (s *assignmentService) publishCommitted(ctx context.Context, chart *domain.SeatingChart) {
	if s.publisher == nil {
		return
	}
	event := domain.ChartUpdatedEvent{
		ChartID:   chart.ID,
		EventID:   chart.EventID,
		Reason:    domain.ChartUpdateAssignmentCommitted,
		UpdatedAt: chart.UpdatedAt,
	}
	if err := s.publisher.PublishChartUpdated(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish chart.updated failed", "chart_id", chart.ID, "err", err)
	}
}

func (s *assignmentService) logState(ctx context.Context, chartID string, state runState) {
	s.logger.DebugContext(ctx, "assignment run", "chart_id", chartID, "state", string(state))
}

// splitSeatsByType returns the seats of the given type and the rest, both
// in input order.
func splitSeatsByType(seats []*domain.Seat, seatType domain.SeatType) (matching, rest []*domain.Seat) {
	for _, seat := range seats {
		if seat.Type == seatType {
			matching = append(matching, seat)
		} else {
			rest = append(rest, seat)
		}
	}
	return matching, rest
}

// groupByCategory partitions guests by their category tag in first-seen
// order. Guests with no category fall into "general".
func groupByCategory(guests []*domain.Guest) []guestGroup {
	var groups []guestGroup
	index := make(map[string]int)
	for _, g := range guests {
		name := g.Category
		if name == "" {
			name = "general"
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, guestGroup{name: name})
		}
		groups[i].guests = append(groups[i].guests, g)
	}
	return groups
}

// tableBucket is the free seats of one table, in seat order. Individual
// seats share a single bucket with an empty table id.
type tableBucket struct {
	tableID string
	seats   []*domain.Seat
}

// bucketByTable partitions free seats by owning table, preserving the
// chart's table discovery order. The individual-seat bucket comes last.
func bucketByTable(chart *domain.SeatingChart, free []*domain.Seat) []*tableBucket {
	isFree := make(map[string]*domain.Seat, len(free))
	for _, seat := range free {
		isFree[seat.ID] = seat
	}
	var buckets []*tableBucket
	for _, table := range chart.Tables {
		b := &tableBucket{tableID: table.ID}
		for _, seat := range table.Seats {
			if _, ok := isFree[seat.ID]; ok {
				b.seats = append(b.seats, seat)
			}
		}
		if len(b.seats) > 0 {
			buckets = append(buckets, b)
		}
	}
	individual := &tableBucket{}
	for _, seat := range chart.Individual {
		if _, ok := isFree[seat.ID]; ok {
			individual.seats = append(individual.seats, seat)
		}
	}
	if len(individual.seats) > 0 {
		buckets = append(buckets, individual)
	}
	return buckets
}

// rankBuckets orders candidate tables for one group. With fillTablesEvenly,
// tables that can hold the whole group rank ahead of those that cannot,
// then larger free counts first; ties keep discovery order. Without the
// rule, discovery order stands.
func rankBuckets(buckets []*tableBucket, groupSize int, fillEvenly bool) []*tableBucket {
	ranked := make([]*tableBucket, 0, len(buckets))
	for _, b := range buckets {
		if len(b.seats) > 0 {
			ranked = append(ranked, b)
		}
	}
	if !fillEvenly {
		return ranked
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		iFits := len(ranked[i].seats) >= groupSize
		jFits := len(ranked[j].seats) >= groupSize
		if iFits != jFits {
			return iFits
		}
		return len(ranked[i].seats) > len(ranked[j].seats)
	})
	return ranked
}
