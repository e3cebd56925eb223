package baseclass

import "strings"

// Presence is the bit flag recording how a field obtained its value.
type Presence uint8

const (
	PresenceSupplied       Presence = 1 << iota // Value came from the call (after PreInit).
	PresencePositional                          // Value was passed positionally.
	PresenceDefaultApplied                      // Fixed default was applied.
	PresenceFactoryApplied                      // Default factory was invoked.
	PresenceAssigned                            // Field was reassigned through Set.
)

// Has reports whether all bits of flag are set.
func (p Presence) Has(flag Presence) bool { return p&flag == flag }

var presenceNames = []struct {
	flag Presence
	name string
}{
	{PresenceSupplied, "supplied"},
	{PresencePositional, "positional"},
	{PresenceDefaultApplied, "default"},
	{PresenceFactoryApplied, "factory"},
	{PresenceAssigned, "assigned"},
}

func (p Presence) String() string {
	if p == 0 {
		return "none"
	}
	parts := make([]string, 0, len(presenceNames))
	for _, pn := range presenceNames {
		if p&pn.flag != 0 {
			parts = append(parts, pn.name)
		}
	}
	return strings.Join(parts, "|")
}
