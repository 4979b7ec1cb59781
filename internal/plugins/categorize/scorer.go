package categorize

import (
	"fmt"
	"regexp"

	"github.com/ahouse2/LCAS/internal/core/domain"
)

// Scorer is the pure keyword classifier. For a given (text, taxonomy)
// pair it always yields the identical assignment, independent of run
// order or concurrency, which is what makes reproducibility testing
// possible.
//
// The confidence score is a normalised keyword hit-count, not a
// calibrated probability: the count of distinct keywords with at least
// one case-insensitive, word-boundary occurrence in the text, divided
// by the node's keyword-set size.
type Scorer struct {
	nodes     []scoredNode
	review    string
	threshold float64
}

type scoredNode struct {
	name     string
	patterns []*regexp.Regexp
}

// NewScorer compiles keyword patterns for every scorable node in the
// taxonomy's declaration order. The review node and keyword-less nodes
// never participate in scoring.
func NewScorer(tax *domain.Taxonomy, threshold float64) (*Scorer, error) {
	s := &Scorer{review: tax.ReviewNode, threshold: threshold}
	for _, node := range tax.Flatten() {
		if node.Name == tax.ReviewNode || len(node.Keywords) == 0 {
			continue
		}
		sn := scoredNode{name: node.Name}
		for _, kw := range node.Keywords {
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("keyword %q in %s: %w", kw, node.Name, err)
			}
			sn.patterns = append(sn.patterns, re)
		}
		s.nodes = append(s.nodes, sn)
	}
	return s, nil
}

// Score classifies one item's text. Ties at the maximum score go to the
// node declared earlier in the taxonomy. A best score below the
// threshold routes the item to the review category; the best candidate
// and its score are retained in the runner-up fields for audit.
func (s *Scorer) Score(text string) domain.Assignment {
	bestIdx, secIdx := -1, -1
	var best, sec float64
	for i, node := range s.nodes {
		score := node.score(text)
		switch {
		case bestIdx < 0 || score > best:
			secIdx, sec = bestIdx, best
			bestIdx, best = i, score
		case secIdx < 0 || score > sec:
			secIdx, sec = i, score
		}
	}

	if bestIdx < 0 {
		// Taxonomy with no scorable nodes: everything is reviewed.
		return domain.Assignment{
			Category: s.review,
			Reason:   domain.ReasonBelowThreshold,
		}
	}

	if best < s.threshold {
		a := domain.Assignment{
			Category:   s.review,
			Confidence: best,
			Reason:     domain.ReasonBelowThreshold,
		}
		if best > 0 {
			a.RunnerUp = s.nodes[bestIdx].name
			a.RunnerUpScore = best
		}
		return a
	}

	a := domain.Assignment{
		Category:   s.nodes[bestIdx].name,
		Confidence: best,
	}
	if secIdx >= 0 && sec > 0 {
		a.RunnerUp = s.nodes[secIdx].name
		a.RunnerUpScore = sec
	}
	return a
}

// score counts distinct keywords present in the text, normalised by
// the keyword-set size to [0, 1].
func (n *scoredNode) score(text string) float64 {
	if len(n.patterns) == 0 {
		return 0
	}
	hits := 0
	for _, re := range n.patterns {
		if re.MatchString(text) {
			hits++
		}
	}
	return float64(hits) / float64(len(n.patterns))
}
