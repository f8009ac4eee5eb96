package domain

import "fmt"

// Trigram is one of the eight three-line figures.
type Trigram struct {
	ID          int    `json:"id"`
	Binary      string `json:"binary"` // top line first
	Name        string `json:"name"`
	ChineseName string `json:"chinese_name"`
	Image       string `json:"image"`
	Attribute   string `json:"attribute"`
	Symbol      string `json:"symbol"`
}

var trigrams = [8]Trigram{
	{ID: 1, Binary: "111", Name: "Qian", ChineseName: "乾", Image: "Heaven", Attribute: "strong", Symbol: "☰"},
	{ID: 2, Binary: "011", Name: "Dui", ChineseName: "兌", Image: "Lake", Attribute: "joyful", Symbol: "☱"},
	{ID: 3, Binary: "101", Name: "Li", ChineseName: "離", Image: "Fire", Attribute: "light-giving", Symbol: "☲"},
	{ID: 4, Binary: "001", Name: "Zhen", ChineseName: "震", Image: "Thunder", Attribute: "inciting movement", Symbol: "☳"},
	{ID: 5, Binary: "110", Name: "Xun", ChineseName: "巽", Image: "Wind", Attribute: "penetrating", Symbol: "☴"},
	{ID: 6, Binary: "010", Name: "Kan", ChineseName: "坎", Image: "Water", Attribute: "dangerous", Symbol: "☵"},
	{ID: 7, Binary: "100", Name: "Gen", ChineseName: "艮", Image: "Mountain", Attribute: "resting", Symbol: "☶"},
	{ID: 8, Binary: "000", Name: "Kun", ChineseName: "坤", Image: "Earth", Attribute: "devoted", Symbol: "☷"},
}

// Trigrams returns a copy of the trigram table ordered by id.
func Trigrams() []Trigram {
	out := make([]Trigram, len(trigrams))
	copy(out, trigrams[:])
	return out
}

func TrigramByID(id int) (Trigram, error) {
	if id < 1 || id > len(trigrams) {
		return Trigram{}, fmt.Errorf("%w: id %d", ErrTrigramNotFound, id)
	}
	return trigrams[id-1], nil
}

func TrigramByBinary(binary string) (Trigram, error) {
	for _, t := range trigrams {
		if t.Binary == binary {
			return t, nil
		}
	}
	return Trigram{}, fmt.Errorf("%w: binary %q", ErrTrigramNotFound, binary)
}
