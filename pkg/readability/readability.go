// Package readability scores prose with the Flesch reading-ease formula and
// reports basic document statistics.
package readability

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MinScoredLength is the shortest trimmed text that gets a score.
	MinScoredLength = 20
	WordsPerMinute  = 225
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	silentEnding  = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)
	leadingY      = regexp.MustCompile(`^y`)
	vowelGroup    = regexp.MustCompile(`[aeiouy]{1,2}`)
	nonLetter     = regexp.MustCompile(`[^a-z]`)
)

type Stats struct {
	Words          int    `json:"words"`
	Characters     int    `json:"characters"`
	ReadingMinutes int    `json:"readingMinutes"`
	Score          int    `json:"score"`
	Label          string `json:"label"`
}

// Analyze computes statistics for plain text.
func Analyze(text string) Stats {
	words := len(strings.Fields(text))
	score := Score(text)
	return Stats{
		Words:          words,
		Characters:     utf8.RuneCountInString(text),
		ReadingMinutes: int(math.Ceil(float64(words) / WordsPerMinute)),
		Score:          score,
		Label:          Label(score),
	}
}

// Score returns the Flesch reading-ease score clamped to 0..100. Texts
// shorter than MinScoredLength score 0.
func Score(text string) int {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinScoredLength {
		return 0
	}

	sentences := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	words := strings.Fields(text)
	if sentences == 0 || len(words) == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += Syllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))
	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord

	return int(math.Round(math.Max(0, math.Min(100, score))))
}

// Syllables estimates the syllable count of a single word.
func Syllables(word string) int {
	word = nonLetter.ReplaceAllString(strings.ToLower(word), "")
	if len(word) <= 3 {
		return 1
	}
	word = silentEnding.ReplaceAllString(word, "")
	word = leadingY.ReplaceAllString(word, "")
	if n := len(vowelGroup.FindAllString(word, -1)); n > 0 {
		return n
	}
	return 1
}

func Label(score int) string {
	switch {
	case score >= 90:
		return "Very Easy"
	case score >= 80:
		return "Easy"
	case score >= 70:
		return "Fairly Easy"
	case score >= 60:
		return "Standard"
	case score >= 50:
		return "Fairly Difficult"
	case score >= 30:
		return "Difficult"
	default:
		return "Very Confusing"
	}
}
