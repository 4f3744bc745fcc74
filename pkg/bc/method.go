package bc

import (
	"fmt"
	"strings"
)

// Method trades encode speed for quality.
type Method int

const (
	// Speed picks endpoints by luminance and skips refinement.
	Speed Method = iota
	// Balanced adds least-squares endpoint refinement.
	Balanced
	// Quality fits endpoints along the principal colour axis and refines them.
	Quality
)

func (m Method) String() string {
	switch m {
	case Speed:
		return "speed"
	case Balanced:
		return "balanced"
	case Quality:
		return "quality"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod parses a method name as printed by String.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "speed", "fast":
		return Speed, nil
	case "balanced", "":
		return Balanced, nil
	case "quality", "best":
		return Quality, nil
	}
	return Speed, fmt.Errorf("unknown method %q", s)
}
