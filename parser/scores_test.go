package parser

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/credimport/models"
)

func docFrom(t *testing.T, rawHTML string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestScoreTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{"single score", "Your score is 712", []int{712}},
		{"three scores in order", "712 705 698", []int{712, 705, 698}},
		{"out of range ignored", "999 250 712 851 299", []int{712}},
		{"boundary values", "300 850", []int{300, 850}},
		{"embedded in longer number", "17125", nil},
		{"no digits", "no scores here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreTokens(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ScoreTokens(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractScores_BureauTagged(t *testing.T) {
	doc := docFrom(t, `
		<div class="transunion_score">712</div>
		<div class="experian_score">705</div>
		<div class="equifax_score">698</div>`)

	scores := extractScores(doc, "", nil)
	want := models.ScoreSet{TransUnion: 712, Experian: 705, Equifax: 698}
	if scores != want {
		t.Errorf("scores = %+v, want %+v", scores, want)
	}
}

func TestExtractScores_BureauTaggedSkipsContainers(t *testing.T) {
	// The outer container carries the bureau class too, but its text is
	// longer than a score cell, so only the inner element is trusted.
	doc := docFrom(t, `
		<div class="transunion_panel">TransUnion reported a score of excellent standing this month
			<span class="transunion_value">688</span>
		</div>`)

	scores := extractScores(doc, "", nil)
	if scores.TransUnion != 688 {
		t.Errorf("TransUnion = %d, want 688", scores.TransUnion)
	}
}

func TestExtractScores_HeaderRowFallback(t *testing.T) {
	raw := `<table>
		<tr><th>TransUnion</th><th>Experian</th><th>Equifax</th></tr>
		<tr><td>712</td><td>705</td><td>698</td></tr>
	</table>`
	doc := docFrom(t, raw)

	scores := extractScores(doc, raw, nil)
	want := models.ScoreSet{TransUnion: 712, Experian: 705, Equifax: 698}
	if scores != want {
		t.Errorf("scores = %+v, want %+v", scores, want)
	}
}

func TestExtractScores_ProfileCellsFirst(t *testing.T) {
	raw := `
		<div class="score_value">720</div>
		<div class="score_value">710</div>
		<div class="score_value">700</div>
		<div class="transunion_score">650</div>`
	doc := docFrom(t, raw)

	scores := extractScores(doc, raw, []string{"div.score_value"})
	want := models.ScoreSet{TransUnion: 720, Experian: 710, Equifax: 700}
	if scores != want {
		t.Errorf("profile selectors should win: scores = %+v, want %+v", scores, want)
	}
}

func TestExtractScores_OutOfRangeNeverSelected(t *testing.T) {
	raw := `
		<div class="transunion_score">999</div>
		<div class="experian_score">250</div>
		<div class="equifax_score">698</div>`
	doc := docFrom(t, raw)

	scores := extractScores(doc, raw, nil)
	if scores.TransUnion != 0 || scores.Experian != 0 {
		t.Errorf("out-of-range values leaked into scores: %+v", scores)
	}
	if scores.Equifax != 698 {
		t.Errorf("Equifax = %d, want 698", scores.Equifax)
	}
}

func TestExtractScores_NoneFound(t *testing.T) {
	doc := docFrom(t, `<p>No report rendered yet</p>`)
	scores := extractScores(doc, "<p>No report rendered yet</p>", nil)
	if !scores.Empty() {
		t.Errorf("expected empty score set, got %+v", scores)
	}
}

func TestScoreSet_SetDropsOutOfRange(t *testing.T) {
	var s models.ScoreSet
	s.Set(0, 299)
	s.Set(1, 851)
	s.Set(2, 700)
	if s.TransUnion != 0 || s.Experian != 0 || s.Equifax != 700 {
		t.Errorf("ScoreSet.Set accepted out-of-range values: %+v", s)
	}
}
