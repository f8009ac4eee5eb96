package domain

import (
	"errors"
	"fmt"
)

// ValidateTables checks the hexagram and trigram tables exhaustively.
// A non-nil result wraps ErrDataIntegrity and should stop the process.
func ValidateTables() error {
	var errs []error
	errs = append(errs, validateTrigrams(trigrams[:])...)
	errs = append(errs, validateHexagrams(hexagrams[:])...)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrDataIntegrity, errors.Join(errs...))
	}
	return nil
}

func validateTrigrams(ts []Trigram) []error {
	var errs []error
	if len(ts) != 8 {
		errs = append(errs, fmt.Errorf("trigram table has %d entries, want 8", len(ts)))
	}
	ids := make(map[int]bool, len(ts))
	bins := make(map[string]bool, len(ts))
	names := make(map[string]bool, len(ts))
	for _, t := range ts {
		if t.ID < 1 || t.ID > 8 {
			errs = append(errs, fmt.Errorf("trigram id %d out of range", t.ID))
		}
		if ids[t.ID] {
			errs = append(errs, fmt.Errorf("duplicate trigram id %d", t.ID))
		}
		ids[t.ID] = true
		if !isBinary(t.Binary, 3) {
			errs = append(errs, fmt.Errorf("trigram %d: bad binary %q", t.ID, t.Binary))
		}
		if bins[t.Binary] {
			errs = append(errs, fmt.Errorf("trigram %d: duplicate binary %q", t.ID, t.Binary))
		}
		bins[t.Binary] = true
		if t.Name == "" || t.ChineseName == "" {
			errs = append(errs, fmt.Errorf("trigram %d: empty name", t.ID))
		}
		if names[t.Name] {
			errs = append(errs, fmt.Errorf("trigram %d: duplicate name %q", t.ID, t.Name))
		}
		names[t.Name] = true
	}
	return errs
}

func validateHexagrams(hs []Hexagram) []error {
	var errs []error
	if len(hs) != 64 {
		errs = append(errs, fmt.Errorf("hexagram table has %d entries, want 64", len(hs)))
	}
	bins := make(map[string]int, len(hs))
	english := make(map[string]int, len(hs))
	chinese := make(map[string]int, len(hs))
	for i, h := range hs {
		if h.Number != i+1 {
			errs = append(errs, fmt.Errorf("hexagram at index %d has number %d", i, h.Number))
		}
		if h.Sequence != h.Number {
			errs = append(errs, fmt.Errorf("hexagram %d: sequence %d", h.Number, h.Sequence))
		}
		if !isBinary(h.Binary, 6) {
			errs = append(errs, fmt.Errorf("hexagram %d: bad binary %q", h.Number, h.Binary))
			continue
		}
		if prev, ok := bins[h.Binary]; ok {
			errs = append(errs, fmt.Errorf("hexagram %d: binary %q already used by %d", h.Number, h.Binary, prev))
		}
		bins[h.Binary] = h.Number

		if h.EnglishName == "" || h.ChineseName == "" {
			errs = append(errs, fmt.Errorf("hexagram %d: empty name", h.Number))
		}
		if prev, ok := english[h.EnglishName]; ok {
			errs = append(errs, fmt.Errorf("hexagram %d: english name %q already used by %d", h.Number, h.EnglishName, prev))
		}
		english[h.EnglishName] = h.Number
		if prev, ok := chinese[h.ChineseName]; ok {
			errs = append(errs, fmt.Errorf("hexagram %d: chinese name %q already used by %d", h.Number, h.ChineseName, prev))
		}
		chinese[h.ChineseName] = h.Number

		upper, err := TrigramByID(h.UpperTrigram)
		if err != nil {
			errs = append(errs, fmt.Errorf("hexagram %d: upper trigram: %w", h.Number, err))
		} else if upper.Binary != h.Binary[:3] {
			errs = append(errs, fmt.Errorf("hexagram %d: upper trigram %d does not match %q", h.Number, h.UpperTrigram, h.Binary))
		}
		lower, err := TrigramByID(h.LowerTrigram)
		if err != nil {
			errs = append(errs, fmt.Errorf("hexagram %d: lower trigram: %w", h.Number, err))
		} else if lower.Binary != h.Binary[3:] {
			errs = append(errs, fmt.Errorf("hexagram %d: lower trigram %d does not match %q", h.Number, h.LowerTrigram, h.Binary))
		}
	}
	return errs
}

func isBinary(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return false
		}
	}
	return true
}
