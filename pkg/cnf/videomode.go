package cnf

import (
	"fmt"
	"strings"
)

// VideoMode is the television standard a title boots into.
type VideoMode int

const (
	NTSC VideoMode = iota
	PAL
)

// VideoModes lists every known mode in declaration order.
var VideoModes = []VideoMode{NTSC, PAL}

// ParseVideoMode maps a VMODE token to a VideoMode. Surrounding whitespace is ignored but the match is exact and
// case-sensitive, the BIOS only recognizes the uppercase tokens.
func ParseVideoMode(s string) (VideoMode, error) {
	switch strings.TrimSpace(s) {
	case "NTSC":
		return NTSC, nil
	case "PAL":
		return PAL, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVideoMode, strings.TrimSpace(s))
	}
}

// Valid reports whether m is one of the known modes.
func (m VideoMode) Valid() bool {
	return m == NTSC || m == PAL
}

// String returns the canonical VMODE token.
func (m VideoMode) String() string {
	switch m {
	case NTSC:
		return "NTSC"
	case PAL:
		return "PAL"
	default:
		return fmt.Sprintf("VideoMode(%d)", int(m))
	}
}

func (m VideoMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVideoMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *VideoMode) UnmarshalText(text []byte) error {
	parsed, err := ParseVideoMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
