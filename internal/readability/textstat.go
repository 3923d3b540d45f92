// Package readability scores page content with standard reading-level
// formulas over plain text extracted from HTML.
package readability

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

// ErrInsufficientText is returned for content too short to score reliably.
var ErrInsufficientText = errors.New("insufficient text for readability analysis")

const minTextLen = 50

// Stats is the raw material the formulas work from.
type Stats struct {
	Words         int
	Sentences     int
	Syllables     int
	ComplexWords  int
	PolySyllables int
}

// Analyze computes all readability scores for text. Text must be plain
// prose; strip markup before calling.
func Analyze(text string) (Stats, error) {
	text = strings.TrimSpace(text)
	if len(text) < minTextLen {
		return Stats{}, ErrInsufficientText
	}

	var s Stats
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	}) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" {
			continue
		}
		s.Words++
		syl := countSyllables(word)
		s.Syllables += syl
		if syl >= 3 {
			s.ComplexWords++
			s.PolySyllables++
		}
	}
	s.Sentences = countSentences(text)
	if s.Words == 0 {
		return Stats{}, ErrInsufficientText
	}
	return s, nil
}

func (s Stats) wordsPerSentence() float64 {
	return float64(s.Words) / float64(max(1, s.Sentences))
}

func (s Stats) syllablesPerWord() float64 {
	return float64(s.Syllables) / float64(max(1, s.Words))
}

// FleschKincaidGrade maps text to a US school grade level.
func (s Stats) FleschKincaidGrade() float64 {
	return round1(0.39*s.wordsPerSentence() + 11.8*s.syllablesPerWord() - 15.59)
}

// FleschReadingEase scores 0-100, higher is easier.
func (s Stats) FleschReadingEase() float64 {
	return round1(206.835 - 1.015*s.wordsPerSentence() - 84.6*s.syllablesPerWord())
}

func (s Stats) GunningFog() float64 {
	complexPct := float64(s.ComplexWords) / float64(max(1, s.Words)) * 100
	return round1(0.4 * (s.wordsPerSentence() + complexPct))
}

func (s Stats) SmogIndex() float64 {
	poly := float64(s.PolySyllables) * 30 / float64(max(1, s.Sentences))
	return round1(1.0430*math.Sqrt(poly) + 3.1291)
}

func (s Stats) AvgSentenceLength() float64 {
	return round1(s.wordsPerSentence())
}

func (s Stats) AvgSyllablesPerWord() float64 {
	return round2(s.syllablesPerWord())
}

func (s Stats) DifficultWordsPct() float64 {
	return round1(float64(s.ComplexWords) / float64(max(1, s.Words)) * 100)
}

// ReadingTimeMins assumes a 220 words-per-minute reader.
func (s Stats) ReadingTimeMins() float64 {
	return round1(float64(s.Words) / 220)
}

// Rating buckets a Flesch-Kincaid grade into the labels shown on audit
// results.
func Rating(grade float64) string {
	switch {
	case grade <= 6:
		return "easy"
	case grade <= 9:
		return "good"
	case grade <= 12:
		return "moderate"
	default:
		return "difficult"
	}
}

// countSyllables approximates English syllables by vowel groups, with the
// usual silent-e correction. Every word counts at least one.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func countSentences(text string) int {
	count := 0
	inTerminator := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if !inTerminator {
				count++
			}
			inTerminator = true
		default:
			if !unicode.IsSpace(r) {
				inTerminator = false
			}
		}
	}
	if count == 0 {
		count = 1
	}
	return count
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
