// README: Named place with an area tag; equality semantics used by matching.
package location

import "strings"

// DefaultSafetyRating is assigned to every location until a caller sets one.
const DefaultSafetyRating = 3.0

type Location struct {
	Name         string
	Area         string
	SafetyRating float64
}

func New(name, area string) Location {
	return Location{
		Name:         name,
		Area:         area,
		SafetyRating: DefaultSafetyRating,
	}
}

// SetSafetyRating clamps the value into [0, 5].
func (l *Location) SetSafetyRating(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 5 {
		v = 5
	}
	l.SafetyRating = v
}

// Match reports whether two locations are equivalent for routing purposes:
// their areas match case-insensitively, or their names do. Two different
// buildings in the same zone still match on area alone.
func Match(a, b Location) bool {
	return strings.EqualFold(a.Area, b.Area) || strings.EqualFold(a.Name, b.Name)
}

func (l Location) String() string {
	return l.Name + " (" + l.Area + ")"
}
