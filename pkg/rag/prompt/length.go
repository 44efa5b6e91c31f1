package prompt

import (
	"math"
	"regexp"
	"strings"
)

// LengthTargets captures the average shape of the matched letters. The
// generation prompt uses it to keep output length close to what worked
// before.
type LengthTargets struct {
	TargetWords      int
	TargetParagraphs int
	WordsRange       [2]int
}

var paragraphSplitter = regexp.MustCompile(`\n{2,}`)

// DeriveLengthTargets averages word and paragraph counts over the given
// letters and derives a ±15% acceptable band. The lower bound is floored at
// 50 words so unusually short examples cannot produce a degenerate target;
// the upper bound is clamped to never fall below the lower one. Returns nil
// when no non-blank letters are provided.
func DeriveLengthTargets(letters []string) *LengthTargets {
	var trimmed []string
	for _, letter := range letters {
		if t := strings.TrimSpace(letter); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	if len(trimmed) == 0 {
		return nil
	}

	var totalWords, totalParas int
	for _, letter := range trimmed {
		totalWords += wordCount(letter)
		totalParas += paragraphCount(letter)
	}

	avgWords := int(math.Round(float64(totalWords) / float64(len(trimmed))))
	avgParas := int(math.Round(float64(totalParas) / float64(len(trimmed))))

	low := int(math.Round(float64(avgWords) * 0.85))
	if low < 50 {
		low = 50
	}
	high := int(math.Round(float64(avgWords) * 1.15))
	if high < low {
		high = low
	}

	return &LengthTargets{
		TargetWords:      avgWords,
		TargetParagraphs: avgParas,
		WordsRange:       [2]int{low, high},
	}
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func paragraphCount(text string) int {
	count := 0
	for _, block := range paragraphSplitter.Split(text, -1) {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	if count < 1 {
		return 1
	}
	return count
}
