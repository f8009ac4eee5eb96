// Package llm holds the provider-independent half of interpretation:
// prompt construction, response parsing and the model fallback chain.
package llm

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/nathankoerschner/threecoins/internal/domain"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

const (
	DefaultStyle      = "neutral"
	DefaultDisclaimer = "For reflection/entertainment; not medical/legal/financial advice."
)

const responseSchema = `{
  "text": "<your interpretation>",
  "style": "neutral",
  "disclaimer": "For reflection/entertainment; not medical/legal/financial advice."
}`

// LanguageName turns a BCP 47 tag into an English language name.
// Unparseable tags are returned as given.
func LanguageName(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return lang
}

func isEnglish(lang string) bool {
	if lang == "" {
		return true
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	return base.String() == "en"
}

func BuildSystemPrompt(lang string) string {
	langInstruction := ""
	if !isEnglish(lang) {
		langInstruction = fmt.Sprintf("\n- Respond entirely in %s.", LanguageName(lang))
	}

	return fmt.Sprintf(`You are an I Ching reader providing neutral, reflective interpretations of coin-oracle readings.

Rules:
- Be maximally neutral and balanced.
- Never provide medical, legal, or financial advice.
- Never predict specific outcomes or disasters.
- Never command actions or diagnose conditions.
- Explain the primary hexagram, then the changing lines, then the transformed hexagram if there is one.
- If a question is provided, incorporate it but never guarantee outcomes.%s

Respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this exact schema:
%s`, langInstruction, responseSchema)
}

func BuildUserPrompt(in ports.InterpretInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Primary hexagram: %s\n", formatHexagram(in.Primary))

	if len(in.ChangingLines) == 0 {
		b.WriteString("Changing lines: none\n")
	} else {
		pos := make([]string, len(in.ChangingLines))
		for i, p := range in.ChangingLines {
			pos[i] = strconv.Itoa(p)
		}
		fmt.Fprintf(&b, "Changing lines (counted from the bottom): %s\n", strings.Join(pos, ", "))
	}

	if in.Transformed != nil {
		fmt.Fprintf(&b, "Transformed hexagram: %s\n", formatHexagram(*in.Transformed))
	} else {
		b.WriteString("Transformed hexagram: none\n")
	}

	if len(in.Values) > 0 {
		vals := make([]string, len(in.Values))
		for i, v := range in.Values {
			vals[i] = strconv.Itoa(v)
		}
		fmt.Fprintf(&b, "Line values (bottom to top): %s\n", strings.Join(vals, " "))
	}

	if in.Question != "" {
		fmt.Fprintf(&b, "\nThe querent asks: %q\n", in.Question)
	}

	b.WriteString("\nProvide a cohesive interpretation as a single JSON object.")
	return b.String()
}

func RetryPrompt(badJSON string) string {
	return fmt.Sprintf(`Your previous response was not valid JSON. Here is what you returned:
%s

Return ONLY the corrected JSON object matching this schema (no markdown, no code fences):
%s`, badJSON, responseSchema)
}

func formatHexagram(h domain.HexagramSummary) string {
	return fmt.Sprintf("%d %s (%s)", h.Number, h.EnglishName, h.ChineseName)
}

// stripCodeFence removes a surrounding ``` or ```json fence some models add
// despite being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
