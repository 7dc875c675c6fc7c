package bot

import "fmt"

// Profile selects a bidding temperament. Profiles scale the pass threshold;
// they never change the legality of a decision.
type Profile int

const (
	Balanced Profile = iota
	Conservative
	Aggressive
	Adaptive
)

// String returns the string representation of a profile
func (p Profile) String() string {
	switch p {
	case Balanced:
		return "balanced"
	case Conservative:
		return "conservative"
	case Aggressive:
		return "aggressive"
	case Adaptive:
		return "adaptive"
	default:
		return "?"
	}
}

// ParseProfile resolves a profile name from configuration.
func ParseProfile(name string) (Profile, error) {
	switch name {
	case "", "balanced":
		return Balanced, nil
	case "conservative":
		return Conservative, nil
	case "aggressive":
		return Aggressive, nil
	case "adaptive":
		return Adaptive, nil
	default:
		return Balanced, fmt.Errorf("unknown profile %q", name)
	}
}
