package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/credimport/models"
)

var threeDigits = regexp.MustCompile(`\b(\d{3})\b`)

// inScoreRange reports whether n is a plausible bureau score.
func inScoreRange(n int) bool {
	return n >= models.ScoreMin && n <= models.ScoreMax
}

// ScoreTokens returns every in-range 3-digit token in text, in order.
// Out-of-range tokens are never selected; the report navigator uses
// this same filter when polling for rendered scores.
func ScoreTokens(text string) []int {
	var out []int
	for _, m := range threeDigits.FindAllString(text, -1) {
		if n, err := strconv.Atoi(m); err == nil && inScoreRange(n) {
			out = append(out, n)
		}
	}
	return out
}

// firstScoreToken returns the first in-range token in text.
func firstScoreToken(text string) (int, bool) {
	tokens := ScoreTokens(text)
	if len(tokens) == 0 {
		return 0, false
	}
	return tokens[0], true
}

// extractScores tries the heuristics in fidelity order:
//
//  1. site-specific score cells from the profile, assigned positionally
//  2. bureau-tagged elements (class/id naming the bureau)
//  3. regex over the raw HTML for a TransUnion/Experian/Equifax
//     header followed by a 3-value row
//  4. loose scan of info-class cells for the first three distinct
//     in-range numbers, assigned positionally
func extractScores(doc *goquery.Document, rawHTML string, scoreCellSelectors []string) models.ScoreSet {
	if s := scoresFromCells(doc, scoreCellSelectors); !s.Empty() {
		return s
	}
	if s := scoresFromBureauTagged(doc); !s.Empty() {
		return s
	}
	if s := scoresFromHeaderRow(rawHTML); !s.Empty() {
		return s
	}
	return scoresFromInfoCells(doc)
}

// scoresFromCells scans the given cell selectors and assigns the first
// three distinct in-range numbers positionally.
func scoresFromCells(doc *goquery.Document, selectors []string) models.ScoreSet {
	var scores models.ScoreSet
	if len(selectors) == 0 {
		return scores
	}
	idx := 0
	seen := make(map[int]struct{}, 3)
	for _, sel := range selectors {
		doc.Find(sel).EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			n, ok := firstScoreToken(cleanText(cell))
			if !ok {
				return true
			}
			if _, dup := seen[n]; dup {
				return true
			}
			seen[n] = struct{}{}
			scores.Set(idx, n)
			idx++
			return idx < 3
		})
		if idx >= 3 {
			break
		}
	}
	return scores
}

// scoresFromBureauTagged looks for elements whose class or id names a
// bureau and contain an in-range number.
func scoresFromBureauTagged(doc *goquery.Document) models.ScoreSet {
	var scores models.ScoreSet
	for i, bureau := range models.Bureaus {
		sel := "[class*='" + bureau + "'], [id*='" + bureau + "']"
		doc.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			// Whole-section containers match too; only trust elements
			// whose own text is score-sized.
			text := cleanText(el)
			if len(text) > 40 {
				return true
			}
			if n, ok := firstScoreToken(text); ok {
				scores.Set(i, n)
				return false
			}
			return true
		})
	}
	return scores
}

// headerRowWindow bounds the raw-HTML scan after the bureau header.
const headerRowWindow = 3000

// scoresFromHeaderRow finds a TransUnion...Experian...Equifax header in
// the raw markup and reads the next three in-range numbers as the
// score row.
func scoresFromHeaderRow(rawHTML string) models.ScoreSet {
	var scores models.ScoreSet
	lower := strings.ToLower(rawHTML)
	tu := strings.Index(lower, "transunion")
	if tu < 0 {
		return scores
	}
	rest := lower[tu:]
	ex := strings.Index(rest, "experian")
	if ex < 0 {
		return scores
	}
	eq := strings.Index(rest[ex:], "equifax")
	if eq < 0 {
		return scores
	}
	start := ex + eq + len("equifax")
	end := start + headerRowWindow
	if end > len(rest) {
		end = len(rest)
	}
	tokens := ScoreTokens(rest[start:end])
	for i := 0; i < len(tokens) && i < 3; i++ {
		scores.Set(i, tokens[i])
	}
	return scores
}

// scoresFromInfoCells is the loosest DOM heuristic: any info-class cell
// holding an in-range number, first three distinct assigned positionally.
func scoresFromInfoCells(doc *goquery.Document) models.ScoreSet {
	var scores models.ScoreSet
	idx := 0
	seen := make(map[int]struct{}, 3)
	doc.Find("td[class*='info'], div[class*='info'], span[class*='info']").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		n, ok := firstScoreToken(cleanText(cell))
		if !ok {
			return true
		}
		if _, dup := seen[n]; dup {
			return true
		}
		seen[n] = struct{}{}
		scores.Set(idx, n)
		idx++
		return idx < 3
	})
	return scores
}
