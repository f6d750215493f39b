package navigation

// NavStatus represents the player's location status
type NavStatus string

const (
	NavStatusDocked    NavStatus = "DOCKED"
	NavStatusTraveling NavStatus = "TRAVELING"
)

var validNavStatuses = map[NavStatus]bool{
	NavStatusDocked:    true,
	NavStatusTraveling: true,
}

// IsValid reports whether the status is known
func (s NavStatus) IsValid() bool {
	return validNavStatuses[s]
}

func (s NavStatus) String() string {
	return string(s)
}
