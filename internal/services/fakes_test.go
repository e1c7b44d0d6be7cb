package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"venueseating/internal/domain"
)

// fakeChartRepo implements domain.ChartRepository for tests. Charts are
// stored as serialized blobs so every load goes through the codec, the
// same way the Postgres repository behaves.
type fakeChartRepo struct {
	blobs     map[string][]byte
	byEvent   map[string]string
	createErr error
	getErr    error
	saveErr   error
	saveCount int
}

func newFakeChartRepo() *fakeChartRepo {
	return &fakeChartRepo{
		blobs:   make(map[string][]byte),
		byEvent: make(map[string]string),
	}
}

func (f *fakeChartRepo) Create(ctx context.Context, chart *domain.SeatingChart) error {
	if f.createErr != nil {
		return f.createErr
	}
	blob, err := domain.MarshalChart(chart)
	if err != nil {
		return err
	}
	f.blobs[chart.ID] = blob
	f.byEvent[chart.EventID] = chart.ID
	return nil
}

func (f *fakeChartRepo) GetByID(ctx context.Context, id string) (*domain.SeatingChart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	blob, ok := f.blobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return domain.UnmarshalChart(blob)
}

func (f *fakeChartRepo) GetByEventID(ctx context.Context, eventID string) (*domain.SeatingChart, error) {
	id, ok := f.byEvent[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f.GetByID(ctx, id)
}

func (f *fakeChartRepo) Save(ctx context.Context, chart *domain.SeatingChart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.blobs[chart.ID]; !ok {
		return domain.ErrNotFound
	}
	blob, err := domain.MarshalChart(chart)
	if err != nil {
		return err
	}
	f.blobs[chart.ID] = blob
	f.saveCount++
	return nil
}

// mustGet reloads the stored chart, failing the test on any error.
func (f *fakeChartRepo) mustGet(t *testing.T, id string) *domain.SeatingChart {
	t.Helper()
	chart, err := f.GetByID(context.Background(), id)
	require.NoError(t, err)
	return chart
}

// fakeGuestProvider implements domain.GuestProvider for tests.
type fakeGuestProvider struct {
	guests     []*domain.Guest
	listErr    error
	claimErrs  map[string]error // guest id -> claim failure
	releaseErr error
	claims     [][2]string // (guest id, seat id) in claim order
	releases   [][2]string
}

func newFakeGuestProvider(guests ...*domain.Guest) *fakeGuestProvider {
	return &fakeGuestProvider{
		guests:    guests,
		claimErrs: make(map[string]error),
	}
}

func (f *fakeGuestProvider) ListEligibleGuests(ctx context.Context, eventID string) ([]*domain.Guest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.guests, nil
}

func (f *fakeGuestProvider) ClaimSeat(ctx context.Context, guestID, seatID string) error {
	if err, ok := f.claimErrs[guestID]; ok {
		return err
	}
	f.claims = append(f.claims, [2]string{guestID, seatID})
	return nil
}

func (f *fakeGuestProvider) ReleaseSeat(ctx context.Context, guestID, seatID string) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.releases = append(f.releases, [2]string{guestID, seatID})
	return nil
}

// fakePublisher implements domain.ChartEventPublisher for tests.
type fakePublisher struct {
	events []domain.ChartUpdatedEvent
	err    error
}

func (f *fakePublisher) PublishChartUpdated(ctx context.Context, event domain.ChartUpdatedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

// fakeDraftStore implements domain.DraftStore for tests.
type fakeDraftStore struct {
	drafts map[string][]byte
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[string][]byte)}
}

func (f *fakeDraftStore) SaveDraft(ctx context.Context, chartID string, blob []byte) error {
	f.drafts[chartID] = blob
	return nil
}

func (f *fakeDraftStore) LoadDraft(ctx context.Context, chartID string) ([]byte, error) {
	blob, ok := f.drafts[chartID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return blob, nil
}

func (f *fakeDraftStore) DiscardDraft(ctx context.Context, chartID string) error {
	delete(f.drafts, chartID)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// confirmedGuest builds an eligible guest for assignment tests.
func confirmedGuest(id string) *domain.Guest {
	return &domain.Guest{
		ID:         id,
		Name:       "Guest " + id,
		RSVPStatus: domain.RSVPConfirmed,
	}
}
