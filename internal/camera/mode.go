package camera

// NavigationMode selects free flight or orbiting a focus point
type NavigationMode int

const (
	FollowNone NavigationMode = iota
	FollowOrigin
	FollowSelected
)

func (m NavigationMode) String() string {
	switch m {
	case FollowNone:
		return "free"
	case FollowOrigin:
		return "follow_origin"
	case FollowSelected:
		return "follow_selected"
	}
	return "unknown"
}

// Orbiting reports whether motion pivots around a focus point
func (m NavigationMode) Orbiting() bool {
	return m != FollowNone
}
