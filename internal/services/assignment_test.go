package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venueseating/internal/domain"
)

// seedChart builds a chart with the given tables and stores it in the repo.
// tables is a list of (label, seatCount) pairs; all tables are round.
func seedChart(t *testing.T, repo *fakeChartRepo, tables ...struct {
	label string
	seats int
}) *domain.SeatingChart {
	t.Helper()
	svc := NewChartService(repo, newFakeGuestProvider(), nil, nil, testLogger())
	chart, _, err := svc.CreateChart(context.Background(), "11111111-1111-1111-1111-111111111111", 800, 600)
	require.NoError(t, err)
	for _, tbl := range tables {
		_, err := svc.CreateTable(context.Background(), chart.ID, domain.TableRound, tbl.label, tbl.seats, 0, 0)
		require.NoError(t, err)
	}
	return repo.mustGet(t, chart.ID)
}

type tableSpec = struct {
	label string
	seats int
}

// seatCountsByLabel maps table label to the number of assigned seats.
func seatCountsByLabel(chart *domain.SeatingChart) map[string]int {
	counts := make(map[string]int)
	for _, table := range chart.Tables {
		for _, seat := range table.Seats {
			if seat.GuestID != "" {
				counts[table.Label]++
			}
		}
	}
	return counts
}

// assertOneSeatPerGuest fails if any guest holds more than one seat or any
// seat appears twice.
func assertOneSeatPerGuest(t *testing.T, chart *domain.SeatingChart) {
	t.Helper()
	guestsSeen := make(map[string]string)
	seatsSeen := make(map[string]bool)
	for _, seat := range chart.AllSeats() {
		require.False(t, seatsSeen[seat.ID], "seat %s listed twice", seat.Label)
		seatsSeen[seat.ID] = true
		if seat.GuestID == "" {
			continue
		}
		prev, ok := guestsSeen[seat.GuestID]
		require.False(t, ok, "guest %s holds both %s and %s", seat.GuestID, prev, seat.Label)
		guestsSeen[seat.GuestID] = seat.Label
	}
}

func TestRunAssignment_ShortfallAbortsWithoutMutation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 2})
	guests := newFakeGuestProvider(confirmedGuest("g-1"), confirmedGuest("g-2"), confirmedGuest("g-3"))
	svc := NewAssignmentService(repo, guests, nil, testLogger())

	result, err := svc.RunAssignment(ctx, chart.ID, domain.RuleSet{})
	require.NoError(t, err)

	require.NotNil(t, result.Shortfall)
	assert.Equal(t, 3, result.Shortfall.Needed)
	assert.Equal(t, 2, result.Shortfall.Available)
	assert.Zero(t, result.AssignedCount)

	// All-or-nothing precheck: zero claims, zero seat mutations.
	assert.Empty(t, guests.claims)
	after := repo.mustGet(t, chart.ID)
	assert.Empty(t, after.SeatedGuestIDs())
	assert.Equal(t, chart.Version, after.Version)
}

func TestRunAssignment_BlockedSeatsDoNotCount(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 2})
	stored := repo.mustGet(t, chart.ID)
	stored.Tables[0].Seats[0].Type = domain.SeatBlocked
	require.NoError(t, repo.Save(ctx, stored))

	guests := newFakeGuestProvider(confirmedGuest("g-1"), confirmedGuest("g-2"))
	svc := NewAssignmentService(repo, guests, nil, testLogger())

	result, err := svc.RunAssignment(ctx, chart.ID, domain.RuleSet{})
	require.NoError(t, err)
	require.NotNil(t, result.Shortfall, "a blocked seat is not free capacity")
	assert.Equal(t, 1, result.Shortfall.Available)
}

func TestRunAssignment_EvenFillSpillsToSecondTable(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 8}, tableSpec{"B", 8})
	var pool []*domain.Guest
	for _, id := range []string{"g-1", "g-2", "g-3", "g-4", "g-5", "g-6", "g-7", "g-8", "g-9", "g-10"} {
		pool = append(pool, confirmedGuest(id))
	}
	guests := newFakeGuestProvider(pool...)
	svc := NewAssignmentService(repo, guests, nil, testLogger())

	result, err := svc.RunAssignment(ctx, chart.ID, domain.RuleSet{FillTablesEvenly: true})
	require.NoError(t, err)

	assert.Nil(t, result.Shortfall)
	assert.Equal(t, 10, result.AssignedCount)
	assert.Empty(t, result.Exceptions)

	// Neither table can hold the whole group, so the first is saturated
	// before spilling into the second.
	after := repo.mustGet(t, chart.ID)
	counts := seatCountsByLabel(after)
	assert.Equal(t, 8, counts["A"])
	assert.Equal(t, 2, counts["B"])
	assertOneSeatPerGuest(t, after)
}

func TestRunAssignment_VIPsLandOnOneTable(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"Small", 4}, tableSpec{"Big", 8})

	pool := []*domain.Guest{confirmedGuest("v-1"), confirmedGuest("v-2"), confirmedGuest("v-3")}
	for _, g := range pool {
		g.IsVIP = true
	}
	for _, id := range []string{"g-1", "g-2", "g-3", "g-4", "g-5"} {
		pool = append(pool, confirmedGuest(id))
	}
	guests := newFakeGuestProvider(pool...)
	svc := NewAssignmentService(repo, guests, nil, testLogger())

	result, err := svc.RunAssignment(ctx, chart.ID, domain.RuleSet{KeepVIPTogether: true, FillTablesEvenly: true})
	require.NoError(t, err)
	assert.Equal(t, 8, result.AssignedCount)

	// The VIP group is allocated as its own bin first; both tables fit 3,
	// so the larger one wins and all VIPs sit together.
	after := repo.mustGet(t, chart.ID)
	big, _ := after.FindTable(chart.Tables[1].ID)
	vipTables := make(map[string]bool)
	for _, table := range after.Tables {
		for _, seat := range table.Seats {
			switch seat.GuestID {
			case "v-1", "v-2", "v-3":
				vipTables[table.ID] = true
			}
		}
	}
	require.Len(t, vipTables, 1, "all VIPs on one table")
	assert.True(t, vipTables[big.ID])
	assertOneSeatPerGuest(t, after)
}

func TestRunAssignment_AccessibleGuestsNeverSilentlyReseated(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 3})

	// One accessible seat, two guests who need one.
	stored := repo.mustGet(t, chart.ID)
	stored.Tables[0].Seats[0].Type = domain.SeatAccessible
	require.NoError(t, repo.Save(ctx, stored))

	first := confirmedGuest("g-1")
	first.AccessibilityNeed = true
	second := confirmedGuest("g-2")
	second.AccessibilityNeed = true
	guests := newFakeGuestProvider(first, second)
	svc := NewAssignmentService(repo, guests, nil, testLogger())

	result, err := svc.RunAssignment(ctx, chart.ID, domain.RuleSet{PrioritizeAccessible: true})
	require.NoError(t, err)

	// One guest gets the accessible seat; the other is reported, not
	// dropped into a regular seat, even though regular seats remain free.
	assert.Equal(t, 1, result.AssignedCount)
	require.Len(t, result.Exceptions, 1)
	assert.Equal(t, "g-2", result.Exceptions[0].GuestID)
	assert.Equal(t, "no accessible seat available", result.Exceptions[0].Reason)

	after := repo.mustGet(t, chart.ID)
	accessibleSeat, _ := after.FindSeat(stored.Tables[0].Seats[0].ID)
	assert.Equal(t, "g-1", accessibleSeat.GuestID)
	assert.Len(t, after.SeatedGuestIDs(), 1)
}

func TestRunAssignment_CategoryGrouping(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 4}, tableSpec{"B", 4})

	family1 := confirmedGuest("f-1")
	family1.Category = "family"
	family2 := confirmedGuest("f-2")
	family2.Category = "family"
	work1 := confirmedGuest("w-1")
	work1.Category = "business"
	work2 := confirmedGuest("w-2")
	work2.Category = "business"
	untagged := confirmedGuest("u-1")

	guests := newFakeGuestProvider(family1, work1, family2, work2, untagged)
	svc := NewAssignmentService(repo, guests, nil, testLogger())

	result, err := svc.RunAssignment(ctx, chart.ID, domain.RuleSet{GroupByCategory: true, FillTablesEvenly: true})
	require.NoError(t, err)
	assert.Equal(t, 5, result.AssignedCount)

	// Category members end up on the same table.
	after := repo.mustGet(t, chart.ID)
	tableOf := make(map[string]string)
	for _, table := range after.Tables {
		for _, seat := range table.Seats {
			if seat.GuestID != "" {
				tableOf[seat.GuestID] = table.ID
			}
		}
	}
	assert.Equal(t, tableOf["f-1"], tableOf["f-2"])
	assert.Equal(t, tableOf["w-1"], tableOf["w-2"])
	assertOneSeatPerGuest(t, after)
}

func TestRunAssignment_ClaimFailureIsPerPair(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 4})

	guests := newFakeGuestProvider(confirmedGuest("g-1"), confirmedGuest("g-2"), confirmedGuest("g-3"))
	guests.claimErrs["g-2"] = domain.ErrClaimRejected
	svc := NewAssignmentService(repo, guests, nil, testLogger())

	result, err := svc.RunAssignment(ctx, chart.ID, domain.RuleSet{})
	require.NoError(t, err)

	// The failed pair rolls back alone; the run still commits.
	assert.Equal(t, 2, result.AssignedCount)
	require.Len(t, result.Exceptions, 1)
	assert.Equal(t, "g-2", result.Exceptions[0].GuestID)
	assert.Nil(t, result.Shortfall)

	after := repo.mustGet(t, chart.ID)
	seated := after.SeatedGuestIDs()
	assert.Contains(t, seated, "g-1")
	assert.Contains(t, seated, "g-3")
	assert.NotContains(t, seated, "g-2")
	assertOneSeatPerGuest(t, after)
}

func TestRunAssignment_SkipsIneligibleAndAlreadySeated(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 4})

	// g-seated already holds a seat in the chart.
	stored := repo.mustGet(t, chart.ID)
	stored.Tables[0].Seats[3].GuestID = "g-seated"
	require.NoError(t, repo.Save(ctx, stored))

	checkedIn := confirmedGuest("g-checked-in")
	checkedIn.CheckedIn = true
	pending := confirmedGuest("g-pending")
	pending.RSVPStatus = domain.RSVPPending
	guests := newFakeGuestProvider(confirmedGuest("g-1"), checkedIn, pending, confirmedGuest("g-seated"))
	svc := NewAssignmentService(repo, guests, nil, testLogger())

	result, err := svc.RunAssignment(ctx, chart.ID, domain.RuleSet{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.AssignedCount)

	after := repo.mustGet(t, chart.ID)
	assert.Len(t, after.SeatedGuestIDs(), 2) // g-1 plus the pre-seated guest
	assertOneSeatPerGuest(t, after)
}

func TestRunAssignment_CommitsPublishEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 4})
	guests := newFakeGuestProvider(confirmedGuest("g-1"))
	pub := &fakePublisher{}
	svc := NewAssignmentService(repo, guests, pub, testLogger())

	_, err := svc.RunAssignment(ctx, chart.ID, domain.RuleSet{})
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.ChartUpdateAssignmentCommitted, pub.events[0].Reason)
}

func TestRunAssignment_ChartNotFound(t *testing.T) {
	svc := NewAssignmentService(newFakeChartRepo(), newFakeGuestProvider(), nil, testLogger())
	_, err := svc.RunAssignment(context.Background(), "44444444-4444-4444-4444-444444444444", domain.RuleSet{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignSeat_ManualOverride(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 2})
	guests := newFakeGuestProvider()
	svc := NewAssignmentService(repo, guests, nil, testLogger())

	seatID := chart.Tables[0].Seats[0].ID
	require.NoError(t, svc.AssignSeat(ctx, chart.ID, seatID, "g-1"))

	after := repo.mustGet(t, chart.ID)
	seat, _ := after.FindSeat(seatID)
	assert.Equal(t, "g-1", seat.GuestID)
	require.Len(t, guests.claims, 1)

	// Re-assigning the same guest to the same seat is a no-op.
	require.NoError(t, svc.AssignSeat(ctx, chart.ID, seatID, "g-1"))
	assert.Len(t, guests.claims, 1)
}

func TestAssignSeat_Conflicts(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 3})
	svc := NewAssignmentService(repo, newFakeGuestProvider(), nil, testLogger())

	stored := repo.mustGet(t, chart.ID)
	stored.Tables[0].Seats[0].GuestID = "g-1"
	stored.Tables[0].Seats[1].Type = domain.SeatBlocked
	require.NoError(t, repo.Save(ctx, stored))

	occupied := stored.Tables[0].Seats[0].ID
	blocked := stored.Tables[0].Seats[1].ID
	free := stored.Tables[0].Seats[2].ID

	err := svc.AssignSeat(ctx, chart.ID, occupied, "g-2")
	require.ErrorIs(t, err, domain.ErrSeatOccupied)

	err = svc.AssignSeat(ctx, chart.ID, blocked, "g-2")
	require.ErrorIs(t, err, domain.ErrSeatBlocked)

	err = svc.AssignSeat(ctx, chart.ID, free, "g-1")
	require.ErrorIs(t, err, domain.ErrGuestAlreadySeated)

	err = svc.AssignSeat(ctx, chart.ID, "55555555-5555-5555-5555-555555555555", "g-2")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignSeat_ClaimFailureLeavesSeatFree(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 2})
	guests := newFakeGuestProvider()
	guests.claimErrs["g-1"] = domain.ErrClaimRejected
	svc := NewAssignmentService(repo, guests, nil, testLogger())

	seatID := chart.Tables[0].Seats[0].ID
	err := svc.AssignSeat(ctx, chart.ID, seatID, "g-1")
	require.ErrorIs(t, err, domain.ErrClaimRejected)

	after := repo.mustGet(t, chart.ID)
	seat, _ := after.FindSeat(seatID)
	assert.Empty(t, seat.GuestID)
}

func TestUnassignSeat(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChartRepo()
	chart := seedChart(t, repo, tableSpec{"A", 2})
	guests := newFakeGuestProvider()
	svc := NewAssignmentService(repo, guests, nil, testLogger())

	seatID := chart.Tables[0].Seats[0].ID
	stored := repo.mustGet(t, chart.ID)
	seat, _ := stored.FindSeat(seatID)
	seat.GuestID = "g-1"
	require.NoError(t, repo.Save(ctx, stored))

	require.NoError(t, svc.UnassignSeat(ctx, chart.ID, seatID))

	after := repo.mustGet(t, chart.ID)
	freed, _ := after.FindSeat(seatID)
	assert.Empty(t, freed.GuestID)
	require.Len(t, guests.releases, 1)
	assert.Equal(t, "g-1", guests.releases[0][0])

	// Unassigning an already-free seat is a no-op.
	require.NoError(t, svc.UnassignSeat(ctx, chart.ID, seatID))
	assert.Len(t, guests.releases, 1)
}
