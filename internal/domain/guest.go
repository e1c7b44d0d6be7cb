package domain

import "context"

// RSVPStatus is a guest's reply state. Only confirmed guests are eligible
// for seating.
type RSVPStatus string

const (
	RSVPConfirmed RSVPStatus = "confirmed"
	RSVPDeclined  RSVPStatus = "declined"
	RSVPMaybe     RSVPStatus = "maybe"
	RSVPPending   RSVPStatus = "pending"
)

// Guest is the subset of the platform's guest record relevant to seating.
// Guest records are owned by the guest/RSVP subsystem; this core only reads
// them and claims or releases seats through the GuestProvider port.
// swagger:model Guest
type Guest struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	RSVPStatus        RSVPStatus `json:"rsvp_status"`
	Category          string     `json:"category"`
	IsVIP             bool       `json:"is_vip"`
	AccessibilityNeed bool       `json:"accessibility_need"`
	CheckedIn         bool       `json:"checked_in"`
}

// Eligible reports whether the guest can be auto-assigned: confirmed RSVP
// and not yet checked in. Already-seated guests are excluded by the
// provider's listing.
func (g *Guest) Eligible() bool {
	return g.RSVPStatus == RSVPConfirmed && !g.CheckedIn
}

// GuestProvider is the port to the guest/RSVP subsystem. Claim and release
// are the only guest-side writes this core ever performs; either may fail
// independently of the local run (another process can seat or check in the
// same guest concurrently).
type GuestProvider interface {
	// ListEligibleGuests returns guests with a confirmed RSVP who are not
	// checked in and not currently seated anywhere.
	ListEligibleGuests(ctx context.Context, eventID string) ([]*Guest, error)
	ClaimSeat(ctx context.Context, guestID, seatID string) error
	ReleaseSeat(ctx context.Context, guestID, seatID string) error
}
