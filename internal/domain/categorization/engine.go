package categorization

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// keywordRef ties one matcher pattern back to the rule that owns it. The
// same keyword can belong to a category group and a tag rule at once, so a
// pattern carries a list of refs.
type keywordRef struct {
	groupIdx int // index into category rules, -1 if none
	tagIdx   int // index into tag rules, -1 if none
}

// Engine matches every rule keyword against a transaction's text in a
// single Aho-Corasick pass. It is built once at startup from the immutable
// rule tables and is safe for concurrent use.
type Engine struct {
	matcher *ahocorasick.Matcher
	refs    [][]keywordRef
	rules   []CategoryRule
	tags    []TagRule
}

// NewEngine compiles the keyword matcher from the given rule tables.
func NewEngine(rules []CategoryRule, tags []TagRule) *Engine {
	patternIndex := make(map[string]int)
	var patterns []string
	var refs [][]keywordRef

	add := func(keyword string, ref keywordRef) {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			return
		}
		if idx, ok := patternIndex[keyword]; ok {
			refs[idx] = append(refs[idx], ref)
			return
		}
		patternIndex[keyword] = len(patterns)
		patterns = append(patterns, keyword)
		refs = append(refs, []keywordRef{ref})
	}

	for gi, rule := range rules {
		for _, kw := range rule.Keywords {
			add(kw, keywordRef{groupIdx: gi, tagIdx: -1})
		}
	}
	for ti, rule := range tags {
		for _, kw := range rule.Keywords {
			add(kw, keywordRef{groupIdx: -1, tagIdx: ti})
		}
	}

	e := &Engine{refs: refs, rules: rules, tags: tags}
	if len(patterns) > 0 {
		e.matcher = ahocorasick.NewStringMatcher(patterns)
	}
	return e
}

func (e *Engine) hits(text string) []int {
	if e.matcher == nil {
		return nil
	}
	return e.matcher.Match([]byte(strings.ToLower(text)))
}

// Category returns the name of the rule group with the highest distinct
// keyword-hit count in text, plus that count. Ties resolve to the
// earlier-declared group. A zero count means no keyword hit at all.
func (e *Engine) Category(text string) (string, int) {
	counts := make([]int, len(e.rules))
	for _, patternIdx := range e.hits(text) {
		for _, ref := range e.refs[patternIdx] {
			if ref.groupIdx >= 0 {
				counts[ref.groupIdx]++
			}
		}
	}

	bestIdx, bestCount := -1, 0
	for i, c := range counts {
		// Strictly greater keeps the earliest group on equal counts.
		if c > bestCount {
			bestIdx, bestCount = i, c
		}
	}
	if bestIdx < 0 {
		return "", 0
	}
	return e.rules[bestIdx].Name, bestCount
}

// Tags returns every tag whose rule has at least one keyword hit in text,
// in tag-table declaration order.
func (e *Engine) Tags(text string) []string {
	hit := make([]bool, len(e.tags))
	for _, patternIdx := range e.hits(text) {
		for _, ref := range e.refs[patternIdx] {
			if ref.tagIdx >= 0 {
				hit[ref.tagIdx] = true
			}
		}
	}

	var tags []string
	for i, h := range hit {
		if h {
			tags = append(tags, e.tags[i].Tag)
		}
	}
	return tags
}
