package domain

// Position is the compass quadrant a beach faces, or a bearing falls into.
type Position string

const (
	PositionNorth Position = "N"
	PositionEast  Position = "E"
	PositionSouth Position = "S"
	PositionWest  Position = "W"
)

// Valid reports whether p is one of the four compass quadrants.
func (p Position) Valid() bool {
	switch p {
	case PositionNorth, PositionEast, PositionSouth, PositionWest:
		return true
	}
	return false
}

// Beach is a surf spot owned by a user.
type Beach struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	UserID   string   `json:"user"`
}
