// Package geometry computes seat positions around a table. It is pure:
// the same inputs always produce the same positions, which keeps layouts
// reproducible and test fixtures stable.
package geometry

import (
	"math"

	"venueseating/internal/domain"
)

// Ring radii in canvas units. Rectangular seating hugs the perimeter more
// tightly than round, so its ring is smaller.
const (
	RoundRadius     = 70.0
	RectangleRadius = 55.0
)

// Position is one seat location in canvas coordinates.
type Position struct {
	X float64
	Y float64
}

// SeatPositions returns n evenly spaced seat positions around the table
// center. Seat i sits at angle 2πi/n from center on the type's ring, so
// seat 0 is always due east. Cocktail tables are standing-only and always
// produce no positions. n must be non-negative; callers validate at the
// table-creation boundary, and n = 0 yields an empty result rather than an
// error (a decorative or standing table).
func SeatPositions(tableType domain.TableType, n int, cx, cy float64) []Position {
	if tableType == domain.TableCocktail || n <= 0 {
		return nil
	}
	radius := ringRadius(tableType)
	positions := make([]Position, n)
	for i := 0; i < n; i++ {
		theta := float64(i) / float64(n) * 2 * math.Pi
		positions[i] = Position{
			X: cx + radius*math.Cos(theta),
			Y: cy + radius*math.Sin(theta),
		}
	}
	return positions
}

func ringRadius(tableType domain.TableType) float64 {
	if tableType == domain.TableRectangle {
		return RectangleRadius
	}
	return RoundRadius
}
