package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"venueseating/internal/domain"
)

type guestProvider struct {
	DB *sql.DB
}

// NewGuestProvider returns a domain.GuestProvider backed by the platform's
// shared guest tables. Seating state lives in seat_assignments; guest rows
// themselves are never written by this adapter.
func NewGuestProvider(db *sql.DB) domain.GuestProvider {
	return &guestProvider{DB: db}
}

// accessibilityKeywords flag a guest's free-text notes as an accessibility
// need. Matching is case-insensitive substring search; the notes field is
// shared with dietary remarks, so only mobility terms are checked.
var accessibilityKeywords = []string{"wheelchair", "accessib", "mobility", "step-free"}

func deriveAccessibilityNeed(notes string) bool {
	lower := strings.ToLower(notes)
	for _, kw := range accessibilityKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (p *guestProvider) ListEligibleGuests(ctx context.Context, eventID string) ([]*domain.Guest, error) {
	query := `
		SELECT g.id, g.name, g.rsvp_status, COALESCE(g.category, ''), g.is_vip, COALESCE(g.notes, ''), g.checked_in
		FROM guests g
		WHERE g.event_id = $1
		  AND g.rsvp_status = 'confirmed'
		  AND g.checked_in = false
		  AND NOT EXISTS (SELECT 1 FROM seat_assignments sa WHERE sa.guest_id = g.id)
		ORDER BY g.created_at
	`
	rows, err := p.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []*domain.Guest
	for rows.Next() {
		var g domain.Guest
		var notes string
		if err := rows.Scan(&g.ID, &g.Name, &g.RSVPStatus, &g.Category, &g.IsVIP, &notes, &g.CheckedIn); err != nil {
			return nil, err
		}
		g.AccessibilityNeed = deriveAccessibilityNeed(notes)
		guests = append(guests, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return guests, nil
}

// ClaimSeat records the assignment iff the guest is still claimable: not
// checked in and not already seated, and the seat not already taken.
// Another process can win the race; callers treat a rejection as a per-pair
// failure, not a fatal one.
func (p *guestProvider) ClaimSeat(ctx context.Context, guestID, seatID string) error {
	query := `
		INSERT INTO seat_assignments (id, guest_id, seat_id, created_at)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (
			SELECT 1 FROM guests g WHERE g.id = $2 AND g.checked_in = false
		)
		AND NOT EXISTS (SELECT 1 FROM seat_assignments sa WHERE sa.guest_id = $2)
		AND NOT EXISTS (SELECT 1 FROM seat_assignments sa WHERE sa.seat_id = $3)
	`
	res, err := p.DB.ExecContext(ctx, query, uuid.NewString(), guestID, seatID, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrClaimRejected
	}
	return nil
}

func (p *guestProvider) ReleaseSeat(ctx context.Context, guestID, seatID string) error {
	res, err := p.DB.ExecContext(ctx,
		`DELETE FROM seat_assignments WHERE guest_id = $1 AND seat_id = $2`, guestID, seatID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
