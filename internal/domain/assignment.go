package domain

import (
	"context"
	"time"
)

// RuleSet is the configuration for one assignment run. It is supplied by
// the caller on each run and never persisted with the chart.
// SeparateDietary is accepted for forward compatibility; it currently has
// no allocation effect.
// swagger:model RuleSet
type RuleSet struct {
	GroupByCategory      bool `json:"group_by_category"`
	KeepVIPTogether      bool `json:"keep_vip_together"`
	SeparateDietary      bool `json:"separate_dietary"`
	FillTablesEvenly     bool `json:"fill_tables_evenly"`
	PrioritizeAccessible bool `json:"prioritize_accessible"`
}

// Shortfall reports the gap that aborted a run: more eligible guests than
// free seats.
// swagger:model Shortfall
type Shortfall struct {
	Needed    int `json:"needed"`
	Available int `json:"available"`
}

// RunException is one guest the run could not seat, with the reason.
// swagger:model RunException
type RunException struct {
	GuestID string `json:"guest_id"`
	Reason  string `json:"reason"`
}

// RunResult is the outcome of one assignment run. A non-nil Shortfall
// means the run aborted with zero mutations; a committed run may still
// carry exceptions for individual guests.
// swagger:model RunResult
type RunResult struct {
	AssignedCount int            `json:"assigned_count"`
	Exceptions    []RunException `json:"exceptions"`
	Shortfall     *Shortfall     `json:"shortfall,omitempty"`
}

// AssignmentService runs rule-driven assignment and manual overrides.
type AssignmentService interface {
	// RunAssignment seats every eligible guest of the chart's event under
	// the given rules. Aborts with a shortfall result (and no mutations)
	// when eligible guests outnumber free seats.
	RunAssignment(ctx context.Context, chartID string, rules RuleSet) (*RunResult, error)
	// AssignSeat places one guest on one seat regardless of rules, subject
	// only to the one-seat/one-guest invariant and the seat not being
	// blocked.
	AssignSeat(ctx context.Context, chartID, seatID, guestID string) error
	// UnassignSeat frees one seat and releases its guest.
	UnassignSeat(ctx context.Context, chartID, seatID string) error
}

// Reasons for a chart.updated event.
const (
	ChartUpdateSaved               = "saved"
	ChartUpdateAssignmentCommitted = "assignment_committed"
)

// ChartUpdatedEvent notifies downstream consumers (presentation layer,
// messaging) that a chart changed and should be re-read.
type ChartUpdatedEvent struct {
	ChartID   string    `json:"chart_id"`
	EventID   string    `json:"event_id"`
	Reason    string    `json:"reason"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChartEventPublisher publishes chart change notifications. Publish
// failures must not fail the request that triggered them.
type ChartEventPublisher interface {
	PublishChartUpdated(ctx context.Context, event ChartUpdatedEvent) error
}

// DraftStore holds best-effort autosave snapshots of in-progress layout
// edits. Drafts expire on their own; explicit saves go to the chart
// repository.
type DraftStore interface {
	SaveDraft(ctx context.Context, chartID string, blob []byte) error
	// LoadDraft returns ErrNotFound when no draft exists or drafts are
	// disabled.
	LoadDraft(ctx context.Context, chartID string) ([]byte, error)
	DiscardDraft(ctx context.Context, chartID string) error
}
