package domain

import (
	"fmt"
)

// Hexagram is one of the 64 canonical figures.
type Hexagram struct {
	Number       int    `json:"number"`
	EnglishName  string `json:"english_name"`
	ChineseName  string `json:"chinese_name"`
	Pinyin       string `json:"pinyin"`
	Binary       string `json:"binary"` // top line first
	UpperTrigram int    `json:"upper_trigram"`
	LowerTrigram int    `json:"lower_trigram"`
	Sequence     int    `json:"sequence"` // King Wen order
}

// Symbol is the Unicode hexagram glyph (U+4DC0 block, King Wen order).
func (h Hexagram) Symbol() string {
	return string(rune(0x4DC0 + h.Number - 1))
}

// Upper returns the trigram formed by the top three lines.
func (h Hexagram) Upper() (Trigram, error) {
	return TrigramByID(h.UpperTrigram)
}

// Lower returns the trigram formed by the bottom three lines.
func (h Hexagram) Lower() (Trigram, error) {
	return TrigramByID(h.LowerTrigram)
}

func (h Hexagram) String() string {
	return fmt.Sprintf("%d %s (%s)", h.Number, h.EnglishName, h.ChineseName)
}

// HexagramSummary is the compact form handed to the interpretation backend.
type HexagramSummary struct {
	Number      int    `json:"number"`
	EnglishName string `json:"english_name"`
	ChineseName string `json:"chinese_name"`
}

func (h Hexagram) Summary() HexagramSummary {
	return HexagramSummary{
		Number:      h.Number,
		EnglishName: h.EnglishName,
		ChineseName: h.ChineseName,
	}
}

// HexagramDetails is static commentary for a hexagram, keyed by number.
type HexagramDetails struct {
	Number   int      `json:"number" yaml:"number"`
	Judgment string   `json:"judgment" yaml:"judgment"`
	Image    string   `json:"image" yaml:"image"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// hexagrams is indexed by Number-1 and never modified after init.
var hexagrams = [64]Hexagram{
	{Number: 1, EnglishName: "The Creative", ChineseName: "乾", Pinyin: "Qián", Binary: "111111", UpperTrigram: 1, LowerTrigram: 1, Sequence: 1},
	{Number: 2, EnglishName: "The Receptive", ChineseName: "坤", Pinyin: "Kūn", Binary: "000000", UpperTrigram: 8, LowerTrigram: 8, Sequence: 2},
	{Number: 3, EnglishName: "Difficulty at the Beginning", ChineseName: "屯", Pinyin: "Zhūn", Binary: "010001", UpperTrigram: 6, LowerTrigram: 4, Sequence: 3},
	{Number: 4, EnglishName: "Youthful Folly", ChineseName: "蒙", Pinyin: "Méng", Binary: "100010", UpperTrigram: 7, LowerTrigram: 6, Sequence: 4},
	{Number: 5, EnglishName: "Waiting", ChineseName: "需", Pinyin: "Xū", Binary: "010111", UpperTrigram: 6, LowerTrigram: 1, Sequence: 5},
	{Number: 6, EnglishName: "Conflict", ChineseName: "訟", Pinyin: "Sòng", Binary: "111010", UpperTrigram: 1, LowerTrigram: 6, Sequence: 6},
	{Number: 7, EnglishName: "The Army", ChineseName: "師", Pinyin: "Shī", Binary: "000010", UpperTrigram: 8, LowerTrigram: 6, Sequence: 7},
	{Number: 8, EnglishName: "Holding Together", ChineseName: "比", Pinyin: "Bǐ", Binary: "010000", UpperTrigram: 6, LowerTrigram: 8, Sequence: 8},
	{Number: 9, EnglishName: "The Taming Power of the Small", ChineseName: "小畜", Pinyin: "Xiǎo Chù", Binary: "110111", UpperTrigram: 5, LowerTrigram: 1, Sequence: 9},
	{Number: 10, EnglishName: "Treading", ChineseName: "履", Pinyin: "Lǚ", Binary: "111011", UpperTrigram: 1, LowerTrigram: 2, Sequence: 10},
	{Number: 11, EnglishName: "Peace", ChineseName: "泰", Pinyin: "Tài", Binary: "000111", UpperTrigram: 8, LowerTrigram: 1, Sequence: 11},
	{Number: 12, EnglishName: "Standstill", ChineseName: "否", Pinyin: "Pǐ", Binary: "111000", UpperTrigram: 1, LowerTrigram: 8, Sequence: 12},
	{Number: 13, EnglishName: "Fellowship with Men", ChineseName: "同人", Pinyin: "Tóng Rén", Binary: "111101", UpperTrigram: 1, LowerTrigram: 3, Sequence: 13},
	{Number: 14, EnglishName: "Possession in Great Measure", ChineseName: "大有", Pinyin: "Dà Yǒu", Binary: "101111", UpperTrigram: 3, LowerTrigram: 1, Sequence: 14},
	{Number: 15, EnglishName: "Modesty", ChineseName: "謙", Pinyin: "Qiān", Binary: "000100", UpperTrigram: 8, LowerTrigram: 7, Sequence: 15},
	{Number: 16, EnglishName: "Enthusiasm", ChineseName: "豫", Pinyin: "Yù", Binary: "001000", UpperTrigram: 4, LowerTrigram: 8, Sequence: 16},
	{Number: 17, EnglishName: "Following", ChineseName: "隨", Pinyin: "Suí", Binary: "011001", UpperTrigram: 2, LowerTrigram: 4, Sequence: 17},
	{Number: 18, EnglishName: "Work on What Has Been Spoiled", ChineseName: "蠱", Pinyin: "Gǔ", Binary: "100110", UpperTrigram: 7, LowerTrigram: 5, Sequence: 18},
	{Number: 19, EnglishName: "Approach", ChineseName: "臨", Pinyin: "Lín", Binary: "000011", UpperTrigram: 8, LowerTrigram: 2, Sequence: 19},
	{Number: 20, EnglishName: "Contemplation", ChineseName: "觀", Pinyin: "Guān", Binary: "110000", UpperTrigram: 5, LowerTrigram: 8, Sequence: 20},
	{Number: 21, EnglishName: "Biting Through", ChineseName: "噬嗑", Pinyin: "Shì Hé", Binary: "101001", UpperTrigram: 3, LowerTrigram: 4, Sequence: 21},
	{Number: 22, EnglishName: "Grace", ChineseName: "賁", Pinyin: "Bì", Binary: "100101", UpperTrigram: 7, LowerTrigram: 3, Sequence: 22},
	{Number: 23, EnglishName: "Splitting Apart", ChineseName: "剝", Pinyin: "Bō", Binary: "100000", UpperTrigram: 7, LowerTrigram: 8, Sequence: 23},
	{Number: 24, EnglishName: "Return", ChineseName: "復", Pinyin: "Fù", Binary: "000001", UpperTrigram: 8, LowerTrigram: 4, Sequence: 24},
	{Number: 25, EnglishName: "Innocence", ChineseName: "無妄", Pinyin: "Wú Wàng", Binary: "111001", UpperTrigram: 1, LowerTrigram: 4, Sequence: 25},
	{Number: 26, EnglishName: "The Taming Power of the Great", ChineseName: "大畜", Pinyin: "Dà Chù", Binary: "100111", UpperTrigram: 7, LowerTrigram: 1, Sequence: 26},
	{Number: 27, EnglishName: "The Corners of the Mouth", ChineseName: "頤", Pinyin: "Yí", Binary: "100001", UpperTrigram: 7, LowerTrigram: 4, Sequence: 27},
	{Number: 28, EnglishName: "Preponderance of the Great", ChineseName: "大過", Pinyin: "Dà Guò", Binary: "011110", UpperTrigram: 2, LowerTrigram: 5, Sequence: 28},
	{Number: 29, EnglishName: "The Abysmal", ChineseName: "坎", Pinyin: "Kǎn", Binary: "010010", UpperTrigram: 6, LowerTrigram: 6, Sequence: 29},
	{Number: 30, EnglishName: "The Clinging", ChineseName: "離", Pinyin: "Lí", Binary: "101101", UpperTrigram: 3, LowerTrigram: 3, Sequence: 30},
	{Number: 31, EnglishName: "Influence", ChineseName: "咸", Pinyin: "Xián", Binary: "011100", UpperTrigram: 2, LowerTrigram: 7, Sequence: 31},
	{Number: 32, EnglishName: "Duration", ChineseName: "恆", Pinyin: "Héng", Binary: "001110", UpperTrigram: 4, LowerTrigram: 5, Sequence: 32},
	{Number: 33, EnglishName: "Retreat", ChineseName: "遯", Pinyin: "Dùn", Binary: "111100", UpperTrigram: 1, LowerTrigram: 7, Sequence: 33},
	{Number: 34, EnglishName: "The Power of the Great", ChineseName: "大壯", Pinyin: "Dà Zhuàng", Binary: "001111", UpperTrigram: 4, LowerTrigram: 1, Sequence: 34},
	{Number: 35, EnglishName: "Progress", ChineseName: "晉", Pinyin: "Jìn", Binary: "101000", UpperTrigram: 3, LowerTrigram: 8, Sequence: 35},
	{Number: 36, EnglishName: "Darkening of the Light", ChineseName: "明夷", Pinyin: "Míng Yí", Binary: "000101", UpperTrigram: 8, LowerTrigram: 3, Sequence: 36},
	{Number: 37, EnglishName: "The Family", ChineseName: "家人", Pinyin: "Jiā Rén", Binary: "110101", UpperTrigram: 5, LowerTrigram: 3, Sequence: 37},
	{Number: 38, EnglishName: "Opposition", ChineseName: "睽", Pinyin: "Kuí", Binary: "101011", UpperTrigram: 3, LowerTrigram: 2, Sequence: 38},
	{Number: 39, EnglishName: "Obstruction", ChineseName: "蹇", Pinyin: "Jiǎn", Binary: "010100", UpperTrigram: 6, LowerTrigram: 7, Sequence: 39},
	{Number: 40, EnglishName: "Deliverance", ChineseName: "解", Pinyin: "Xiè", Binary: "001010", UpperTrigram: 4, LowerTrigram: 6, Sequence: 40},
	{Number: 41, EnglishName: "Decrease", ChineseName: "損", Pinyin: "Sǔn", Binary: "100011", UpperTrigram: 7, LowerTrigram: 2, Sequence: 41},
	{Number: 42, EnglishName: "Increase", ChineseName: "益", Pinyin: "Yì", Binary: "110001", UpperTrigram: 5, LowerTrigram: 4, Sequence: 42},
	{Number: 43, EnglishName: "Breakthrough", ChineseName: "夬", Pinyin: "Guài", Binary: "011111", UpperTrigram: 2, LowerTrigram: 1, Sequence: 43},
	{Number: 44, EnglishName: "Coming to Meet", ChineseName: "姤", Pinyin: "Gòu", Binary: "111110", UpperTrigram: 1, LowerTrigram: 5, Sequence: 44},
	{Number: 45, EnglishName: "Gathering Together", ChineseName: "萃", Pinyin: "Cuì", Binary: "011000", UpperTrigram: 2, LowerTrigram: 8, Sequence: 45},
	{Number: 46, EnglishName: "Pushing Upward", ChineseName: "升", Pinyin: "Shēng", Binary: "000110", UpperTrigram: 8, LowerTrigram: 5, Sequence: 46},
	{Number: 47, EnglishName: "Oppression", ChineseName: "困", Pinyin: "Kùn", Binary: "011010", UpperTrigram: 2, LowerTrigram: 6, Sequence: 47},
	{Number: 48, EnglishName: "The Well", ChineseName: "井", Pinyin: "Jǐng", Binary: "010110", UpperTrigram: 6, LowerTrigram: 5, Sequence: 48},
	{Number: 49, EnglishName: "Revolution", ChineseName: "革", Pinyin: "Gé", Binary: "011101", UpperTrigram: 2, LowerTrigram: 3, Sequence: 49},
	{Number: 50, EnglishName: "The Caldron", ChineseName: "鼎", Pinyin: "Dǐng", Binary: "101110", UpperTrigram: 3, LowerTrigram: 5, Sequence: 50},
	{Number: 51, EnglishName: "The Arousing", ChineseName: "震", Pinyin: "Zhèn", Binary: "001001", UpperTrigram: 4, LowerTrigram: 4, Sequence: 51},
	{Number: 52, EnglishName: "Keeping Still", ChineseName: "艮", Pinyin: "Gèn", Binary: "100100", UpperTrigram: 7, LowerTrigram: 7, Sequence: 52},
	{Number: 53, EnglishName: "Development", ChineseName: "漸", Pinyin: "Jiàn", Binary: "110100", UpperTrigram: 5, LowerTrigram: 7, Sequence: 53},
	{Number: 54, EnglishName: "The Marrying Maiden", ChineseName: "歸妹", Pinyin: "Guī Mèi", Binary: "001011", UpperTrigram: 4, LowerTrigram: 2, Sequence: 54},
	{Number: 55, EnglishName: "Abundance", ChineseName: "豐", Pinyin: "Fēng", Binary: "001101", UpperTrigram: 4, LowerTrigram: 3, Sequence: 55},
	{Number: 56, EnglishName: "The Wanderer", ChineseName: "旅", Pinyin: "Lǚ", Binary: "101100", UpperTrigram: 3, LowerTrigram: 7, Sequence: 56},
	{Number: 57, EnglishName: "The Gentle", ChineseName: "巽", Pinyin: "Xùn", Binary: "110110", UpperTrigram: 5, LowerTrigram: 5, Sequence: 57},
	{Number: 58, EnglishName: "The Joyous", ChineseName: "兌", Pinyin: "Duì", Binary: "011011", UpperTrigram: 2, LowerTrigram: 2, Sequence: 58},
	{Number: 59, EnglishName: "Dispersion", ChineseName: "渙", Pinyin: "Huàn", Binary: "110010", UpperTrigram: 5, LowerTrigram: 6, Sequence: 59},
	{Number: 60, EnglishName: "Limitation", ChineseName: "節", Pinyin: "Jié", Binary: "010011", UpperTrigram: 6, LowerTrigram: 2, Sequence: 60},
	{Number: 61, EnglishName: "Inner Truth", ChineseName: "中孚", Pinyin: "Zhōng Fú", Binary: "110011", UpperTrigram: 5, LowerTrigram: 2, Sequence: 61},
	{Number: 62, EnglishName: "Preponderance of the Small", ChineseName: "小過", Pinyin: "Xiǎo Guò", Binary: "001100", UpperTrigram: 4, LowerTrigram: 7, Sequence: 62},
	{Number: 63, EnglishName: "After Completion", ChineseName: "既濟", Pinyin: "Jì Jì", Binary: "010101", UpperTrigram: 6, LowerTrigram: 3, Sequence: 63},
	{Number: 64, EnglishName: "Before Completion", ChineseName: "未濟", Pinyin: "Wèi Jì", Binary: "101010", UpperTrigram: 3, LowerTrigram: 6, Sequence: 64},
}

var hexagramsByBinary = func() map[string]int {
	m := make(map[string]int, len(hexagrams))
	for i, h := range hexagrams {
		m[h.Binary] = i
	}
	return m
}()

// Hexagrams returns a copy of the full table in King Wen order.
func Hexagrams() []Hexagram {
	out := make([]Hexagram, len(hexagrams))
	copy(out, hexagrams[:])
	return out
}

func HexagramByNumber(n int) (Hexagram, error) {
	if n < 1 || n > len(hexagrams) {
		return Hexagram{}, fmt.Errorf("%w: number %d", ErrHexagramNotFound, n)
	}
	return hexagrams[n-1], nil
}

// HexagramByBinary looks up a top-line-first signature.
func HexagramByBinary(binary string) (Hexagram, error) {
	i, ok := hexagramsByBinary[binary]
	if !ok {
		return Hexagram{}, fmt.Errorf("%w: binary %q", ErrHexagramNotFound, binary)
	}
	return hexagrams[i], nil
}
