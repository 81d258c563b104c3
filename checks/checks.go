// Package checks provides quality checks for translated units.
package checks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MarkupError reports HTML tags that differ between a source text and its
// translation.
type MarkupError struct {
	Missing []string // Tags present in the source but not the target
	Extra   []string // Tags present in the target but not the source
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("markup mismatch: missing %v, extra %v", e.Missing, e.Extra)
}

// Markup verifies that a translated text preserves the HTML tag inventory of
// its source. Tag order is not checked, only the multiset of tag names:
// translations legitimately reorder inline markup.
func Markup(source, target string) error {
	srcTags := tagInventory(source)
	tgtTags := tagInventory(target)

	missing := diffCounts(srcTags, tgtTags)
	extra := diffCounts(tgtTags, srcTags)

	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	return &MarkupError{Missing: missing, Extra: extra}
}

// tagInventory counts start and self-closing tags in an HTML fragment.
func tagInventory(fragment string) map[string]int {
	counts := make(map[string]int)
	tz := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			return counts
		}
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			name, _ := tz.TagName()
			counts[string(name)]++
		}
	}
}

// diffCounts returns the tags a has more of than b, sorted, one entry per
// missing occurrence.
func diffCounts(a, b map[string]int) []string {
	var out []string
	for tag, n := range a {
		for i := b[tag]; i < n; i++ {
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

// ExtractText returns the visible text of an HTML fragment with whitespace
// collapsed. Used to build plain-text context for suggestion prompts from
// HTML-bearing units.
func ExtractText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
