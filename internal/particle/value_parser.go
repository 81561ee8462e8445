package particle

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Range is a closed interval a random value is drawn from.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns a Range that always yields v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Random returns a uniform value in [Min, Max).
func (r Range) Random(rng Rand) float64 {
	if r.Max == r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Validate reports an inverted range.
func (r Range) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("range min %v greater than max %v", r.Min, r.Max)
	}
	return nil
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// String formats the range in the bracket form accepted by ParseRange.
func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return fmt.Sprintf("[%s %s]",
		strconv.FormatFloat(r.Min, 'g', -1, 64),
		strconv.FormatFloat(r.Max, 'g', -1, 64))
}

// ParseRange parses a range value string.
// Supported formats:
//   - Fixed value: "120" → [120 120]
//   - Range: "[2 8]" → [2 8]
//
// The bounds are normalised so that Min <= Max ("[-14 -10]" and "[-10 -14]"
// are the same range).
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range")
	}

	if !strings.HasPrefix(s, "[") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range value %q: %w", s, err)
		}
		return Fixed(v), nil
	}

	if !strings.HasSuffix(s, "]") {
		return Range{}, fmt.Errorf("unterminated range %q", s)
	}
	parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("range %q must have exactly two bounds", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range min %q: %w", parts[0], err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range max %q: %w", parts[1], err)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return Range{Min: lo, Max: hi}, nil
}

// UnmarshalYAML accepts a number (5), a bracket string ("[2 8]") or a
// two-element sequence ([2, 8]).
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseRange(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*r = parsed
		return nil
	case yaml.SequenceNode:
		var bounds []float64
		if err := node.Decode(&bounds); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if len(bounds) != 2 {
			return fmt.Errorf("line %d: range must have exactly two bounds, got %d", node.Line, len(bounds))
		}
		lo, hi := bounds[0], bounds[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		*r = Range{Min: lo, Max: hi}
		return nil
	default:
		return fmt.Errorf("line %d: range must be a number or [min max]", node.Line)
	}
}

// MarshalYAML writes the range as a flow sequence.
func (r Range) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []float64{r.Min, r.Max} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(v, 'g', -1, 64),
		})
	}
	return node, nil
}
