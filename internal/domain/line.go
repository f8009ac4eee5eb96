package domain

import (
	"fmt"
)

// LineType is one of the four traditional line variants.
type LineType uint8

const (
	OldYin LineType = iota + 1
	YoungYang
	YoungYin
	OldYang
)

type lineTypeInfo struct {
	name     string
	value    int
	changing bool
	binary   byte
}

var lineTypes = map[LineType]lineTypeInfo{
	OldYin:    {name: "old_yin", value: 6, changing: true, binary: '0'},
	YoungYang: {name: "young_yang", value: 7, changing: false, binary: '1'},
	YoungYin:  {name: "young_yin", value: 8, changing: false, binary: '0'},
	OldYang:   {name: "old_yang", value: 9, changing: true, binary: '1'},
}

func (t LineType) String() string {
	if info, ok := lineTypes[t]; ok {
		return info.name
	}
	return fmt.Sprintf("LineType(%d)", uint8(t))
}

// Valid reports whether t is one of the four variants.
func (t LineType) Valid() bool {
	_, ok := lineTypes[t]
	return ok
}

// IsChanging reports whether the line moves to its opposite: old yin and old yang.
func (t LineType) IsChanging() bool {
	return lineTypes[t].changing
}

// Binary is the line's digit in a hexagram signature: '1' for yang, '0' for yin.
func (t LineType) Binary() byte {
	return lineTypes[t].binary
}

// Value is the traditional number: 6, 7, 8 or 9.
func (t LineType) Value() int {
	return lineTypes[t].value
}

// Opposite is the stable line a changing line becomes.
// Yang variants become young yin, yin variants become young yang.
func (t LineType) Opposite() LineType {
	if t.Binary() == '1' {
		return YoungYin
	}
	return YoungYang
}

func (t LineType) MarshalText() ([]byte, error) {
	info, ok := lineTypes[t]
	if !ok {
		return nil, fmt.Errorf("%w: unknown line type %d", ErrInvalidInput, uint8(t))
	}
	return []byte(info.name), nil
}

func (t *LineType) UnmarshalText(b []byte) error {
	for lt, info := range lineTypes {
		if info.name == string(b) {
			*t = lt
			return nil
		}
	}
	return fmt.Errorf("%w: unknown line type %q", ErrInvalidInput, string(b))
}

// LineTypeFromValue maps a coin sum to its line type.
func LineTypeFromValue(v int) (LineType, error) {
	switch v {
	case 6:
		return OldYin, nil
	case 7:
		return YoungYang, nil
	case 8:
		return YoungYin, nil
	case 9:
		return OldYang, nil
	default:
		return 0, fmt.Errorf("%w: line value must be 6, 7, 8 or 9, got %d", ErrInvalidInput, v)
	}
}

// Line is one resolved line of a hexagram.
type Line struct {
	Coins    [3]Coin  `json:"coins"`
	Type     LineType `json:"line_type"`
	Changing bool     `json:"is_changing"`
	Value    int      `json:"value"`
}

// ResolveLine scores three coins (heads 3, tails 2) and maps the sum to a
// line. Coin order does not matter.
func ResolveLine(coins [3]Coin) (Line, error) {
	sum := 0
	for _, c := range coins {
		sum += c.points()
	}
	lt, err := LineTypeFromValue(sum)
	if err != nil {
		return Line{}, err
	}
	return Line{
		Coins:    coins,
		Type:     lt,
		Changing: lt.IsChanging(),
		Value:    sum,
	}, nil
}

// canonicalCoins are the coins recorded for a line entered by value.
var canonicalCoins = map[int][3]Coin{
	6: {Tails, Tails, Tails},
	7: {Heads, Tails, Tails},
	8: {Heads, Heads, Tails},
	9: {Heads, Heads, Heads},
}

// LineFromValue builds a line from its traditional number, as entered by
// someone casting physical coins.
func LineFromValue(v int) (Line, error) {
	coins, ok := canonicalCoins[v]
	if !ok {
		_, err := LineTypeFromValue(v)
		return Line{}, err
	}
	return ResolveLine(coins)
}

// LinesFromValues converts a sequence of traditional numbers, bottom line first.
func LinesFromValues(values []int) ([]Line, error) {
	lines := make([]Line, len(values))
	for i, v := range values {
		l, err := LineFromValue(v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines[i] = l
	}
	return lines, nil
}

// Binary is the line's digit in a hexagram signature.
func (l Line) Binary() byte {
	return l.Type.Binary()
}

// IsYang reports whether the line is solid.
func (l Line) IsYang() bool {
	return l.Type.Binary() == '1'
}

// transformed returns the line a changing line becomes. Changing is taken as
// given; it is not re-derived from the coins.
func (l Line) transformed() Line {
	if !l.Changing {
		return l
	}
	next := l.Type.Opposite()
	return Line{
		Coins:    l.Coins,
		Type:     next,
		Changing: false,
		Value:    next.Value(),
	}
}
