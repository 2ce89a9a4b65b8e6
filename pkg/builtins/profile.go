package builtins

// Profile selects the build profile: the full built-in set, or the compact
// profile where heavyweight built-ins (Date, RegExp, the Error constructors,
// JSON) are excluded and surface as throwing accessors on the global object.
type Profile uint8

const (
	FullProfile Profile = iota
	CompactProfile
)

func (p Profile) String() string {
	switch p {
	case FullProfile:
		return "full"
	case CompactProfile:
		return "compact"
	default:
		return "unknown"
	}
}
