package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nathankoerschner/threecoins/internal/domain"
)

const (
	H = domain.Heads
	T = domain.Tails
)

func TestResolveLine_AllTriples(t *testing.T) {
	tests := []struct {
		coins    [3]domain.Coin
		wantType domain.LineType
		wantVal  int
	}{
		{[3]domain.Coin{T, T, T}, domain.OldYin, 6},
		{[3]domain.Coin{H, T, T}, domain.YoungYang, 7},
		{[3]domain.Coin{T, H, T}, domain.YoungYang, 7},
		{[3]domain.Coin{T, T, H}, domain.YoungYang, 7},
		{[3]domain.Coin{H, H, T}, domain.YoungYin, 8},
		{[3]domain.Coin{H, T, H}, domain.YoungYin, 8},
		{[3]domain.Coin{T, H, H}, domain.YoungYin, 8},
		{[3]domain.Coin{H, H, H}, domain.OldYang, 9},
	}

	for _, tt := range tests {
		l, err := domain.ResolveLine(tt.coins)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", tt.coins, err)
		}
		if l.Type != tt.wantType {
			t.Errorf("%v: expected %s, got %s", tt.coins, tt.wantType, l.Type)
		}
		if l.Value != tt.wantVal {
			t.Errorf("%v: expected value %d, got %d", tt.coins, tt.wantVal, l.Value)
		}
		if l.Coins != tt.coins {
			t.Errorf("%v: coins not copied, got %v", tt.coins, l.Coins)
		}
		wantChanging := tt.wantType == domain.OldYin || tt.wantType == domain.OldYang
		if l.Changing != wantChanging {
			t.Errorf("%v: expected changing=%v, got %v", tt.coins, wantChanging, l.Changing)
		}
	}
}

func TestLineType_Derivations(t *testing.T) {
	tests := []struct {
		lt       domain.LineType
		changing bool
		binary   byte
		value    int
		name     string
	}{
		{domain.OldYin, true, '0', 6, "old_yin"},
		{domain.YoungYang, false, '1', 7, "young_yang"},
		{domain.YoungYin, false, '0', 8, "young_yin"},
		{domain.OldYang, true, '1', 9, "old_yang"},
	}

	for _, tt := range tests {
		if tt.lt.IsChanging() != tt.changing {
			t.Errorf("%s: IsChanging = %v", tt.name, tt.lt.IsChanging())
		}
		if tt.lt.Binary() != tt.binary {
			t.Errorf("%s: Binary = %c", tt.name, tt.lt.Binary())
		}
		if tt.lt.Value() != tt.value {
			t.Errorf("%s: Value = %d", tt.name, tt.lt.Value())
		}
		if tt.lt.String() != tt.name {
			t.Errorf("expected %s, got %s", tt.name, tt.lt.String())
		}
	}
}

func TestLineType_Opposite(t *testing.T) {
	if got := domain.OldYang.Opposite(); got != domain.YoungYin {
		t.Errorf("old_yang: expected young_yin, got %s", got)
	}
	if got := domain.OldYin.Opposite(); got != domain.YoungYang {
		t.Errorf("old_yin: expected young_yang, got %s", got)
	}
}

func TestLineTypeFromValue_Invalid(t *testing.T) {
	for _, v := range []int{0, 5, 10, -7} {
		_, err := domain.LineTypeFromValue(v)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("v=%d: expected ErrInvalidInput, got %v", v, err)
		}
	}
}

func TestLineFromValue(t *testing.T) {
	for v := 6; v <= 9; v++ {
		l, err := domain.LineFromValue(v)
		if err != nil {
			t.Fatalf("v=%d: unexpected error: %v", v, err)
		}
		if l.Value != v {
			t.Errorf("v=%d: got value %d", v, l.Value)
		}
	}

	if _, err := domain.LineFromValue(4); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLinesFromValues_ReportsPosition(t *testing.T) {
	_, err := domain.LinesFromValues([]int{7, 8, 3})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if got := err.Error(); got != "line 3: invalid input: line value must be 6, 7, 8 or 9, got 3" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestLine_JSON(t *testing.T) {
	l, _ := domain.ResolveLine([3]domain.Coin{H, H, H})
	raw, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"coins":[true,true,true],"line_type":"old_yang","is_changing":true,"value":9}`
	if string(raw) != want {
		t.Errorf("expected %s, got %s", want, raw)
	}

	var back domain.Line
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != l {
		t.Errorf("round trip mismatch: %+v vs %+v", back, l)
	}
}

func TestLineType_UnmarshalUnknown(t *testing.T) {
	var lt domain.LineType
	if err := lt.UnmarshalText([]byte("ancient_yang")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
