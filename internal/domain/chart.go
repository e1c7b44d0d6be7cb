package domain

import (
	"context"
	"time"
)

// TableType classifies the physical shape of a table.
type TableType string

const (
	TableRound     TableType = "round"
	TableRectangle TableType = "rectangle"
	TableCocktail  TableType = "cocktail"
)

// ValidTableType reports whether t is one of the known table types.
func ValidTableType(t TableType) bool {
	switch t {
	case TableRound, TableRectangle, TableCocktail:
		return true
	}
	return false
}

// SeatType classifies a seat. Blocked seats never hold assignments.
type SeatType string

const (
	SeatRegular    SeatType = "regular"
	SeatVIP        SeatType = "vip"
	SeatAccessible SeatType = "accessible"
	SeatBlocked    SeatType = "blocked"
)

// ValidSeatType reports whether t is one of the known seat types.
func ValidSeatType(t SeatType) bool {
	switch t {
	case SeatRegular, SeatVIP, SeatAccessible, SeatBlocked:
		return true
	}
	return false
}

// Seat is a single assignable position in a chart. TableID is empty for
// individual (unattached) seats. GuestID is empty while the seat is free.
// swagger:model Seat
type Seat struct {
	ID      string   `json:"id"`
	TableID string   `json:"table_id,omitempty"`
	Label   string   `json:"label"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Type    SeatType `json:"type"`
	GuestID string   `json:"guest_id,omitempty"`
}

// IsFree reports whether the seat can receive an assignment: no guest and
// not blocked.
func (s *Seat) IsFree() bool {
	return s.GuestID == "" && s.Type != SeatBlocked
}

// Table is a placeable table with its owned seats. Cocktail tables have no
// seats; they are still labeled, positionable objects.
// swagger:model Table
type Table struct {
	ID      string    `json:"id"`
	Type    TableType `json:"type"`
	Label   string    `json:"label"`
	CenterX float64   `json:"center_x"`
	CenterY float64   `json:"center_y"`
	Seats   []*Seat   `json:"seats"`
}

// FreeSeatCount returns the number of seats on the table that can receive
// an assignment.
func (t *Table) FreeSeatCount() int {
	n := 0
	for _, s := range t.Seats {
		if s.IsFree() {
			n++
		}
	}
	return n
}

// SeatingChart is one venue's complete table/seat layout for an event.
// Individual holds seats that belong to no table. Version counts explicit
// saves; concurrent editors are last-write-wins.
// swagger:model SeatingChart
type SeatingChart struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	CanvasWidth  float64   `json:"canvas_width"`
	CanvasHeight float64   `json:"canvas_height"`
	Tables       []*Table  `json:"tables"`
	Individual   []*Seat   `json:"individual_seats"`
	Version      int       `json:"version"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSeatingChart returns an empty chart for the event. ID is typically set
// by the service on create.
func NewSeatingChart(eventID string, width, height float64) *SeatingChart {
	return &SeatingChart{
		EventID:      eventID,
		CanvasWidth:  width,
		CanvasHeight: height,
	}
}

// FindTable returns the table with the given id.
func (c *SeatingChart) FindTable(tableID string) (*Table, bool) {
	for _, t := range c.Tables {
		if t.ID == tableID {
			return t, true
		}
	}
	return nil, false
}

// FindSeat returns the seat with the given id, searching tables in order
// and then individual seats.
func (c *SeatingChart) FindSeat(seatID string) (*Seat, bool) {
	for _, s := range c.AllSeats() {
		if s.ID == seatID {
			return s, true
		}
	}
	return nil, false
}

// AllSeats returns every seat in the chart: table seats in table order,
// then individual seats. The returned slice shares the chart's seat
// pointers.
func (c *SeatingChart) AllSeats() []*Seat {
	var seats []*Seat
	for _, t := range c.Tables {
		seats = append(seats, t.Seats...)
	}
	seats = append(seats, c.Individual...)
	return seats
}

// FreeSeats returns every seat that can receive an assignment, in AllSeats
// order.
func (c *SeatingChart) FreeSeats() []*Seat {
	var free []*Seat
	for _, s := range c.AllSeats() {
		if s.IsFree() {
			free = append(free, s)
		}
	}
	return free
}

// HasTableLabel reports whether any table already uses the label.
func (c *SeatingChart) HasTableLabel(label string) bool {
	for _, t := range c.Tables {
		if t.Label == label {
			return true
		}
	}
	return false
}

// HasSeatLabel reports whether any seat already uses the label. Seat labels
// are unique chart-wide.
func (c *SeatingChart) HasSeatLabel(label string) bool {
	for _, s := range c.AllSeats() {
		if s.Label == label {
			return true
		}
	}
	return false
}

// SeatedGuestIDs returns the set of guest ids currently assigned to a seat
// anywhere in the chart.
func (c *SeatingChart) SeatedGuestIDs() map[string]struct{} {
	seated := make(map[string]struct{})
	for _, s := range c.AllSeats() {
		if s.GuestID != "" {
			seated[s.GuestID] = struct{}{}
		}
	}
	return seated
}

// ChartRepository defines storage operations for seating charts.
type ChartRepository interface {
	Create(ctx context.Context, chart *SeatingChart) error
	GetByID(ctx context.Context, id string) (*SeatingChart, error)
	GetByEventID(ctx context.Context, eventID string) (*SeatingChart, error)
	// Save persists the full chart state. Last write wins.
	Save(ctx context.Context, chart *SeatingChart) error
}

// ChartService defines layout operations over one chart: table and seat
// CRUD plus draft autosave. All mutations persist the chart before
// returning.
type ChartService interface {
	// CreateChart lazily creates the chart for an event. Returns
	// (chart, created, err): created is false when the event already has one.
	CreateChart(ctx context.Context, eventID string, width, height float64) (*SeatingChart, bool, error)
	GetChart(ctx context.Context, chartID string) (*SeatingChart, error)
	GetChartByEventID(ctx context.Context, eventID string) (*SeatingChart, error)
	CreateTable(ctx context.Context, chartID string, tableType TableType, label string, seatCount int, cx, cy float64) (*Table, error)
	MoveTable(ctx context.Context, chartID, tableID string, cx, cy float64) error
	RemoveTable(ctx context.Context, chartID, tableID string) error
	AddIndividualSeat(ctx context.Context, chartID, label string, x, y float64, seatType SeatType) (*Seat, error)
	MoveSeat(ctx context.Context, chartID, seatID string, x, y float64) error
	SetSeatType(ctx context.Context, chartID, seatID string, seatType SeatType) error
	SaveDraft(ctx context.Context, chartID string) error
	LoadDraft(ctx context.Context, chartID string) (*SeatingChart, error)
	DiscardDraft(ctx context.Context, chartID string) error
}
