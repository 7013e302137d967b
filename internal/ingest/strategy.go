package ingest

import "fmt"

// Strategy is the policy governing how newly parsed messages interact with
// an already populated chat.
type Strategy int

const (
	// Amend inserts only messages the chat does not already hold.
	Amend Strategy = iota
	// Replace wipes the chat's stored messages before importing.
	Replace
	// Add inserts every parsed message unconditionally.
	Add
)

// ParseStrategy maps a user-facing selector value. Empty selects the
// default, amend.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "amend":
		return Amend, nil
	case "replace":
		return Replace, nil
	case "add":
		return Add, nil
	default:
		return 0, fmt.Errorf("unknown merge strategy %q (want replace, amend or add)", s)
	}
}

func (s Strategy) String() string {
	switch s {
	case Amend:
		return "amend"
	case Replace:
		return "replace"
	case Add:
		return "add"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}
