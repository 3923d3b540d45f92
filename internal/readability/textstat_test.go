package readability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePassage = "The cat sat on the mat. The dog ran fast in the big park. " +
	"Understanding complicated documentation requires considerable concentration. " +
	"Short words help. Readers enjoy simple prose!"

func TestAnalyze_RejectsShortText(t *testing.T) {
	_, err := Analyze("too short")
	assert.ErrorIs(t, err, ErrInsufficientText)

	_, err = Analyze("   ")
	assert.ErrorIs(t, err, ErrInsufficientText)
}

func TestAnalyze_CountsWordsAndSentences(t *testing.T) {
	s, err := Analyze(samplePassage)
	require.NoError(t, err)

	assert.Equal(t, 27, s.Words)
	assert.Equal(t, 5, s.Sentences)
	assert.Greater(t, s.Syllables, s.Words)
	assert.GreaterOrEqual(t, s.ComplexWords, 4)
}

func TestAnalyze_EllipsisCountsOneSentence(t *testing.T) {
	s, err := Analyze("Something happened... then it was over and everyone left quietly.")
	require.NoError(t, err)

	assert.Equal(t, 2, s.Sentences)
}

func TestStats_Formulas(t *testing.T) {
	// 10 words, 2 sentences, 14 syllables, 1 complex word.
	s := Stats{Words: 10, Sentences: 2, Syllables: 14, ComplexWords: 1, PolySyllables: 1}

	assert.InDelta(t, 0.39*5+11.8*1.4-15.59, s.FleschKincaidGrade(), 0.05)
	assert.InDelta(t, 206.835-1.015*5-84.6*1.4, s.FleschReadingEase(), 0.05)
	assert.InDelta(t, 0.4*(5+10), s.GunningFog(), 0.05)
	assert.InDelta(t, 5.0, s.AvgSentenceLength(), 0.001)
	assert.InDelta(t, 1.4, s.AvgSyllablesPerWord(), 0.001)
	assert.InDelta(t, 10.0, s.DifficultWordsPct(), 0.001)
}

func TestReadingTime(t *testing.T) {
	s := Stats{Words: 440}
	assert.InDelta(t, 2.0, s.ReadingTimeMins(), 0.001)
}

func TestRating(t *testing.T) {
	tests := []struct {
		grade float64
		want  string
	}{
		{4.2, "easy"},
		{6, "easy"},
		{6.1, "good"},
		{9, "good"},
		{9.1, "moderate"},
		{12, "moderate"},
		{12.1, "difficult"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Rating(tt.grade), "grade %v", tt.grade)
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"table", 2},
		{"make", 1},
		{"readable", 3},
		{"rhythm", 1},
		{"documentation", 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, countSyllables(tt.word), "word %q", tt.word)
	}
}

func TestAnalyze_LongProseScoresHarderThanSimple(t *testing.T) {
	simple := strings.Repeat("The cat sat on the mat. ", 10)
	dense := strings.Repeat("Organizational accountability necessitates comprehensive documentation. ", 10)

	a, err := Analyze(simple)
	require.NoError(t, err)
	b, err := Analyze(dense)
	require.NoError(t, err)

	assert.Less(t, a.FleschKincaidGrade(), b.FleschKincaidGrade())
	assert.Greater(t, a.FleschReadingEase(), b.FleschReadingEase())
}
