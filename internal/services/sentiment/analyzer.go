package sentiment

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	domain "cryptopulse/internal/domain/sentiment"
	"cryptopulse/pkg/logger"
)

// Scoring constants follow the VADER model: valences are normalized with
// alpha=15, ALL-CAPS emphasis adds 0.733, degree modifiers shift by 0.293
// and negation flips with a 0.74 damping factor.
const (
	normAlpha   = 15.0
	boosterIncr = 0.293
	boosterDecr = -0.293
	capsBoost   = 0.733
	negateDamp  = -0.74

	exclAmp    = 0.292
	maxExcl    = 4
	qmSmallAmp = 0.18
	qmLargeAmp = 0.96

	butDampBefore = 0.5
	butBoostAfter = 1.5
)

// Analyzer scores free text against a valence lexicon extended with
// crypto market slang.
type Analyzer struct {
	lexicon map[string]float64
	phrases []phraseRule
	log     *logger.Logger
}

type phraseRule struct {
	re   *regexp.Regexp
	repl string
}

// NewAnalyzer builds the analyzer with the merged lexicon
func NewAnalyzer() *Analyzer {
	lex := make(map[string]float64, len(baseLexicon)+len(cryptoPositive)+len(cryptoNegative))
	for w, v := range baseLexicon {
		lex[w] = v
	}
	for w, v := range cryptoPositive {
		lex[w] = v
	}
	for w, v := range cryptoNegative {
		lex[w] = v
	}

	a := &Analyzer{
		lexicon: lex,
		phrases: buildPhraseRules(lex),
		log:     logger.Get().With("component", "sentiment_analyzer"),
	}
	a.log.Info("Sentiment lexicon loaded",
		"terms", len(lex),
		"crypto_terms", len(cryptoPositive)+len(cryptoNegative),
	)
	return a
}

// buildPhraseRules compiles case-insensitive matchers that fold multi-word
// lexicon phrases into their single-token form before tokenization.
func buildPhraseRules(lex map[string]float64) []phraseRule {
	var keys []string
	for w := range lex {
		if strings.Contains(w, "_") {
			keys = append(keys, w)
		}
	}
	// Longest first so overlapping phrases resolve deterministically
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	rules := make([]phraseRule, 0, len(keys))
	for _, k := range keys {
		spaced := strings.ReplaceAll(k, "_", " ")
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(spaced) + `\b`)
		rules = append(rules, phraseRule{re: re, repl: k})
	}
	return rules
}

// Score computes polarity scores for a single text
func (a *Analyzer) Score(text string) domain.Scores {
	folded := a.foldPhrases(text)
	words := tokenize(folded)
	if len(words) == 0 {
		return domain.Scores{}
	}

	capDiff := hasCapsDifferential(words)
	butIdx := -1
	for i, w := range words {
		if w.lower == "but" {
			butIdx = i
			break
		}
	}

	valences := make([]float64, len(words))
	for i, w := range words {
		// Degree modifiers carry no valence of their own
		if _, ok := boosters[w.lower]; ok {
			continue
		}
		v, ok := a.lexicon[w.lower]
		if !ok {
			continue
		}

		if capDiff && w.allCaps {
			if v > 0 {
				v += capsBoost
			} else {
				v -= capsBoost
			}
		}

		// Look back up to three tokens for modifiers and negations
		for dist := 1; dist <= 3 && i-dist >= 0; dist++ {
			prev := words[i-dist].lower
			if b, ok := boosters[prev]; ok {
				s := b
				if v < 0 {
					s = -s
				}
				switch dist {
				case 2:
					s *= 0.95
				case 3:
					s *= 0.9
				}
				v += s
			}
			if _, ok := negations[prev]; ok {
				v *= negateDamp
			}
		}

		if butIdx >= 0 {
			if i < butIdx {
				v *= butDampBefore
			} else if i > butIdx {
				v *= butBoostAfter
			}
		}

		valences[i] = v
	}

	return scoreValences(valences, text)
}

// scoreValences folds per-token valences and punctuation emphasis into
// the final compound score and pos/neu/neg proportions.
func scoreValences(valences []float64, text string) domain.Scores {
	var sum float64
	for _, v := range valences {
		sum += v
	}

	amp := punctuationEmphasis(text)
	if sum > 0 {
		sum += amp
	} else if sum < 0 {
		sum -= amp
	}

	compound := sum / math.Sqrt(sum*sum+normAlpha)
	compound = math.Max(-1, math.Min(1, compound))

	var posSum, negSum float64
	var neuCount int
	for _, v := range valences {
		switch {
		case v > 0:
			posSum += v + 1
		case v < 0:
			negSum += v - 1
		default:
			neuCount++
		}
	}
	if sum > 0 {
		posSum += amp
	} else if sum < 0 {
		negSum -= amp
	}

	total := posSum + math.Abs(negSum) + float64(neuCount)
	if total == 0 {
		return domain.Scores{}
	}

	return domain.Scores{
		Compound: round4(compound),
		Positive: round3(math.Abs(posSum / total)),
		Neutral:  round3(float64(neuCount) / total),
		Negative: round3(math.Abs(negSum / total)),
	}
}

// AnalyzeText scores a text overall and per sentence, with a readable
// explanation of the result.
func (a *Analyzer) AnalyzeText(text string) domain.TextAnalysis {
	if strings.TrimSpace(text) == "" {
		return domain.TextAnalysis{
			Sentiment:   domain.LabelNeutral,
			Sentences:   []domain.SentenceScore{},
			Explanation: "No text provided",
		}
	}

	var sentences []domain.SentenceScore
	for _, s := range splitSentences(text) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		sc := a.Score(s)
		sentences = append(sentences, domain.SentenceScore{
			Text:      s,
			Compound:  sc.Compound,
			Sentiment: domain.Classify(sc.Compound),
		})
	}

	full := a.Score(text)
	label := domain.Classify(full.Compound)

	return domain.TextAnalysis{
		Compound:    full.Compound,
		Positive:    full.Positive,
		Neutral:     full.Neutral,
		Negative:    full.Negative,
		Sentiment:   label,
		Sentences:   sentences,
		Explanation: explain(full, label, sentences),
	}
}

// explain renders the human-readable summary shown in the dashboard
func explain(scores domain.Scores, label string, sentences []domain.SentenceScore) string {
	counts := map[string]int{}
	for _, s := range sentences {
		key := s.Sentiment
		if key != domain.LabelPositive && key != domain.LabelNegative {
			key = domain.LabelNeutral
		}
		counts[key]++
	}

	var b strings.Builder
	switch label {
	case domain.LabelPositive:
		intensity := "somewhat positive"
		if scores.Positive > 0.6 {
			intensity = "very positive"
		}
		b.WriteString("This text is " + intensity)
		if scores.Positive > 0.4 && len(sentences) > 0 {
			fmt.Fprintf(&b, ", with %d positive statement(s)", counts[domain.LabelPositive])
			if counts[domain.LabelNegative] > 0 {
				fmt.Fprintf(&b, " and %d negative statement(s)", counts[domain.LabelNegative])
			}
		}
	case domain.LabelNegative:
		intensity := "somewhat negative"
		if scores.Negative > 0.6 {
			intensity = "very negative"
		}
		b.WriteString("This text is " + intensity)
		if scores.Negative > 0.4 && len(sentences) > 0 {
			fmt.Fprintf(&b, ", with %d negative statement(s)", counts[domain.LabelNegative])
			if counts[domain.LabelPositive] > 0 {
				fmt.Fprintf(&b, " and %d positive statement(s)", counts[domain.LabelPositive])
			}
		}
	default:
		b.WriteString("This text is neutral")
		if len(sentences) > 1 {
			fmt.Fprintf(&b, ", with a mix of %d positive, %d negative, and %d neutral statements",
				counts[domain.LabelPositive], counts[domain.LabelNegative], counts[domain.LabelNeutral])
		}
	}
	b.WriteString(".")
	return b.String()
}

// foldPhrases rewrites known multi-word phrases into single tokens
func (a *Analyzer) foldPhrases(text string) string {
	for _, p := range a.phrases {
		text = p.re.ReplaceAllString(text, p.repl)
	}
	return text
}

type token struct {
	raw     string
	lower   string
	allCaps bool
}

// tokenize splits on whitespace and strips surrounding punctuation.
// Single-character leftovers are dropped.
func tokenize(text string) []token {
	fields := strings.Fields(text)
	out := make([]token, 0, len(fields))
	for _, f := range fields {
		clean := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '\''
		})
		if len([]rune(clean)) <= 1 {
			continue
		}
		out = append(out, token{
			raw:     clean,
			lower:   strings.ToLower(clean),
			allCaps: isAllCaps(clean),
		})
	}
	return out
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// hasCapsDifferential reports whether some but not all words are shouted
func hasCapsDifferential(words []token) bool {
	caps := 0
	for _, w := range words {
		if w.allCaps {
			caps++
		}
	}
	return caps > 0 && caps < len(words)
}

// punctuationEmphasis converts trailing exclamation and question marks
// into an intensity bump applied to the dominant polarity.
func punctuationEmphasis(text string) float64 {
	excl := strings.Count(text, "!")
	if excl > maxExcl {
		excl = maxExcl
	}
	amp := float64(excl) * exclAmp

	qm := strings.Count(text, "?")
	if qm > 1 {
		if qm <= 3 {
			amp += float64(qm) * qmSmallAmp
		} else {
			amp += qmLargeAmp
		}
	}
	return amp
}

// splitSentences breaks text after runs of sentence terminators
func splitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	var out []string
	var b strings.Builder

	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		j := i + 1
		for j < len(runes) && (runes[j] == '.' || runes[j] == '!' || runes[j] == '?') {
			b.WriteRune(runes[j])
			j++
		}
		if j < len(runes) && unicode.IsSpace(runes[j]) {
			out = append(out, b.String())
			b.Reset()
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
		}
		i = j - 1
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
