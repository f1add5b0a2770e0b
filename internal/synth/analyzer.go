package synth

import (
	"regexp"
	"strings"

	"symposium.app/api-server/internal/model"
)

// minQuoteLen is the shortest verbatim word sequence treated as a quote
// of an earlier message.
const minQuoteLen = 10

// contextRadius is how many characters of surrounding text a reference
// keeps on each side of its quote.
const contextRadius = 50

// Analyzer derives cross-references and metadata from a raw completion.
// The regex heuristic below is the only implementation today; the
// interface exists so a real classifier can replace it without touching
// the synthesizer contract.
type Analyzer interface {
	Analyze(content string, history []model.Message) ([]model.MessageRef, model.MessageMetadata)
}

type heuristicAnalyzer struct{}

// NewHeuristicAnalyzer returns the regex-based analyzer.
func NewHeuristicAnalyzer() Analyzer {
	return heuristicAnalyzer{}
}

var (
	technicalRe   = regexp.MustCompile(`(?i)\b(specifically|technically|in detail)\b`)
	hedgeRe       = regexp.MustCompile(`(?i)\b(might|maybe|perhaps|possibly)\b`)
	agreementRe   = regexp.MustCompile(`(?i)\b(agree|concur|support|correct|right)\b`)
	disagreeRe    = regexp.MustCompile(`(?i)\b(disagree|differ|contrary|however|but)\b`)
	alternativeRe = regexp.MustCompile(`(?i)\b(alternatively|alternative approach|different approach|another way|instead)\b`)
	additiveRe    = regexp.MustCompile(`(?i)\b(additionally|furthermore|moreover|building on)\b`)
)

func (heuristicAnalyzer) Analyze(content string, history []model.Message) ([]model.MessageRef, model.MessageMetadata) {
	refs := extractRefs(content, history)
	meta := model.MessageMetadata{
		Confidence:       confidence(content, refs),
		AgreementLevel:   agreementLevel(content),
		ContributionType: contributionType(content, refs),
	}
	return refs, meta
}

func confidence(content string, refs []model.MessageRef) float64 {
	score := 0.5
	if len(refs) > 0 {
		score += 0.3
	}
	if technicalRe.MatchString(content) {
		score += 0.3
	}
	if hedgeRe.MatchString(content) {
		score -= 0.2
	}
	return clamp01(score)
}

func agreementLevel(content string) float64 {
	agree := len(agreementRe.FindAllString(content, -1))
	disagree := len(disagreeRe.FindAllString(content, -1))
	return clamp01(0.5 + 0.2*float64(agree) - 0.2*float64(disagree))
}

// contributionType applies alternative framing first: a reply that both
// builds on and diverges from earlier turns counts as an alternative.
func contributionType(content string, refs []model.MessageRef) model.ContributionType {
	if alternativeRe.MatchString(content) {
		return model.ContributionAlternative
	}
	if additiveRe.MatchString(content) || len(refs) > 0 {
		return model.ContributionSupporting
	}
	return model.ContributionPrimary
}

// extractRefs finds, per prior expert message, word sequences of at
// least minQuoteLen characters that reappear verbatim in content.
// Scanning is greedy left to right; after a match the scan resumes past
// the quoted words rather than re-testing overlapping spans.
func extractRefs(content string, history []model.Message) []model.MessageRef {
	var refs []model.MessageRef
	for i := range history {
		src := &history[i]
		if !src.FromExpert() {
			continue
		}
		for _, quote := range findQuotes(src.Content, content) {
			refs = append(refs, model.MessageRef{
				MessageID: src.ID,
				ExpertID:  src.Author,
				Quote:     quote,
				Context:   quoteContext(content, quote),
			})
		}
	}
	return refs
}

func findQuotes(source, completion string) []string {
	words := strings.Fields(source)
	var quotes []string

	for i := 0; i < len(words); {
		quote, consumed := longestQuoteAt(words, i, completion)
		if quote == "" {
			i++
			continue
		}
		quotes = append(quotes, quote)
		i += consumed
	}
	return quotes
}

// longestQuoteAt grows a word sequence starting at i until it stops
// appearing in the completion, returning the longest hit of at least
// minQuoteLen characters and the number of words it spans.
func longestQuoteAt(words []string, i int, completion string) (string, int) {
	var best string
	bestLen := 0
	for j := i + 1; j <= len(words); j++ {
		candidate := strings.Join(words[i:j], " ")
		if !strings.Contains(completion, candidate) {
			break
		}
		if len(candidate) >= minQuoteLen {
			best = candidate
			bestLen = j - i
		}
	}
	return best, bestLen
}

// quoteContext returns the quote with up to contextRadius characters of
// the completion on each side.
func quoteContext(completion, quote string) string {
	idx := strings.Index(completion, quote)
	if idx < 0 {
		return ""
	}
	start := idx - contextRadius
	if start < 0 {
		start = 0
	}
	end := idx + len(quote) + contextRadius
	if end > len(completion) {
		end = len(completion)
	}
	return completion[start:end]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
