package domain

import "fmt"

// LinesPerHexagram is the number of lines in a complete cast.
const LinesPerHexagram = 6

// BinarySignature turns six lines in casting order (bottom line first) into
// the canonical top-line-first signature. This is the only place the order
// is reversed.
func BinarySignature(lines []Line) (string, error) {
	if len(lines) != LinesPerHexagram {
		return "", fmt.Errorf("%w: expected %d lines, got %d", ErrInvalidInput, LinesPerHexagram, len(lines))
	}
	sig := make([]byte, LinesPerHexagram)
	for i, l := range lines {
		sig[LinesPerHexagram-1-i] = l.Binary()
	}
	return string(sig), nil
}

// FindPrimaryHexagram resolves the hexagram the lines form as cast.
func FindPrimaryHexagram(lines []Line) (Hexagram, error) {
	sig, err := BinarySignature(lines)
	if err != nil {
		return Hexagram{}, err
	}
	i, ok := hexagramsByBinary[sig]
	if !ok {
		return Hexagram{}, fmt.Errorf("%w: no hexagram for signature %q", ErrDataIntegrity, sig)
	}
	return hexagrams[i], nil
}

// FindTransformedHexagram flips every changing line and resolves the result.
// It returns nil when no line is changing.
func FindTransformedHexagram(lines []Line) (*Hexagram, error) {
	if _, err := BinarySignature(lines); err != nil {
		return nil, err
	}
	if !hasChanging(lines) {
		return nil, nil
	}
	next := TransformLines(lines)
	h, err := FindPrimaryHexagram(next)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// TransformLines returns a new sequence in which changing lines have moved to
// their opposite and are stable. Stable lines pass through unchanged.
func TransformLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = l.transformed()
	}
	return out
}

// ChangingLineIndices returns the 1-based positions (1 is the bottom line) of
// changing lines in ascending order.
func ChangingLineIndices(lines []Line) []int {
	idx := []int{}
	for i, l := range lines {
		if l.Changing {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func hasChanging(lines []Line) bool {
	for _, l := range lines {
		if l.Changing {
			return true
		}
	}
	return false
}
