package llm

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/nathankoerschner/threecoins/internal/domain"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestBuildUserPrompt_AllChanging(t *testing.T) {
	in := ports.InterpretInput{
		Question:      "What lies ahead?",
		Primary:       domain.HexagramSummary{Number: 1, EnglishName: "The Creative", ChineseName: "乾"},
		Transformed:   &domain.HexagramSummary{Number: 2, EnglishName: "The Receptive", ChineseName: "坤"},
		ChangingLines: []int{1, 2, 3, 4, 5, 6},
		Values:        []int{9, 9, 9, 9, 9, 9},
	}
	newGoldie(t).Assert(t, "user_prompt_all_changing", []byte(BuildUserPrompt(in)))
}

func TestBuildUserPrompt_Stable(t *testing.T) {
	in := ports.InterpretInput{
		Primary:       domain.HexagramSummary{Number: 11, EnglishName: "Peace", ChineseName: "泰"},
		ChangingLines: []int{},
	}
	newGoldie(t).Assert(t, "user_prompt_stable", []byte(BuildUserPrompt(in)))
}

func TestBuildSystemPrompt_Language(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"", ""},
		{"en", ""},
		{"en-GB", ""},
		{"ru", "- Respond entirely in Russian."},
		{"ja", "- Respond entirely in Japanese."},
	}

	for _, tt := range tests {
		got := BuildSystemPrompt(tt.lang)
		if tt.want == "" {
			if strings.Contains(got, "Respond entirely in") {
				t.Errorf("lang=%q: unexpected language instruction", tt.lang)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("lang=%q: expected %q in system prompt", tt.lang, tt.want)
		}
	}
}

func TestLanguageName_Unparseable(t *testing.T) {
	if got := LanguageName("not a tag!"); got != "not a tag!" {
		t.Errorf("expected input back, got %q", got)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]string{
		`{"text":"a"}`:                   `{"text":"a"}`,
		"```json\n{\"text\":\"a\"}\n```": `{"text":"a"}`,
		"```\n{\"text\":\"a\"}```":        `{"text":"a"}`,
		"  {\"text\":\"a\"}  ":            `{"text":"a"}`,
	}
	for in, want := range tests {
		if got := stripCodeFence(in); got != want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}
