package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// nodeText walks an html.Node subtree collecting text, skipping script
// and style subtrees that goquery's Text() would include.
func nodeText(node *html.Node, sb *strings.Builder) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		sb.WriteString(node.Data)
		return
	}
	if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		nodeText(child, sb)
	}
}

// cleanText returns the collapsed visible text of a selection.
func cleanText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		nodeText(n, &sb)
		sb.WriteByte(' ')
	}
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(sb.String(), " "))
}

// cellTexts returns the collapsed text of every th/td cell in a row.
func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, cleanText(cell))
	})
	return cells
}

// isPlaceholder reports whether a cell value carries no data. Hidden
// template fragments commonly leave "-" or "--" behind.
func isPlaceholder(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "-", "--", "n/a", "N/A":
		return true
	}
	return false
}

// presentValues filters a row's value cells down to the ones that carry
// data, preserving order (1st/2nd/3rd = transunion/experian/equifax).
func presentValues(cells []string) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		if !isPlaceholder(c) {
			out = append(out, c)
		}
	}
	return out
}
