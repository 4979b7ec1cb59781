package domain

import (
	"errors"
	"fmt"
)

// ReviewCategory is the catch-all leaf that receives items the scorer
// cannot place with enough confidence. It never carries keywords.
const ReviewCategory = "FOR_HUMAN_REVIEW"

// TaxonomyNode is one category in the legal-argument tree.
// Declaration order among siblings is significant: it is the
// deterministic tie-break when two nodes score equally.
type TaxonomyNode struct {
	// Name is the category name, unique among its siblings.
	Name string

	// Keywords are the trigger words and phrases matched against an
	// item's extracted text. Empty for the review node.
	Keywords []string

	// Children are the sub-categories, in declared order.
	Children []TaxonomyNode
}

// Taxonomy is the configured category tree with an implicit root.
type Taxonomy struct {
	// Nodes are the top-level categories in declared order.
	Nodes []TaxonomyNode

	// ReviewNode names the designated catch-all leaf.
	// Defaults to ReviewCategory.
	ReviewNode string
}

// Validate checks the taxonomy invariants: sibling names unique at
// every level, the review node present and keyword-free.
func (t *Taxonomy) Validate() error {
	if t.ReviewNode == "" {
		return errors.New("review node not designated")
	}

	var reviewFound bool
	var walk func(nodes []TaxonomyNode) error
	walk = func(nodes []TaxonomyNode) error {
		seen := make(map[string]struct{}, len(nodes))
		for _, n := range nodes {
			if n.Name == "" {
				return errors.New("node with empty name")
			}
			if _, dup := seen[n.Name]; dup {
				return fmt.Errorf("duplicate sibling name %q", n.Name)
			}
			seen[n.Name] = struct{}{}

			if n.Name == t.ReviewNode {
				reviewFound = true
				if len(n.Keywords) > 0 {
					return fmt.Errorf("review node %q must not carry keywords", n.Name)
				}
			}
			if err := walk(n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(t.Nodes); err != nil {
		return err
	}
	if !reviewFound {
		return fmt.Errorf("review node %q not found in tree", t.ReviewNode)
	}
	return nil
}

// Flatten returns every non-root node in declaration order (depth
// first, parents before children). This is the scoring order and the
// tie-break order.
func (t *Taxonomy) Flatten() []TaxonomyNode {
	var out []TaxonomyNode
	var walk func(nodes []TaxonomyNode)
	walk = func(nodes []TaxonomyNode) {
		for _, n := range nodes {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(t.Nodes)
	return out
}

// DefaultTaxonomy returns the standard legal-argument category tree
// with its keyword sets. Cases override this from configuration.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		ReviewNode: ReviewCategory,
		Nodes: []TaxonomyNode{
			{
				Name: "CASE_SUMMARIES_AND_RELATED_DOCS",
				Keywords: []string{
					"summary", "overview", "timeline", "chronology", "authorities",
					"statute", "law", "code", "analysis", "argument",
				},
			},
			{
				Name: "CONSTITUTIONAL_VIOLATIONS",
				Keywords: []string{
					"constitutional", "due process", "peremptory", "challenge",
					"bias", "impartial", "fair trial",
				},
			},
			{
				Name: "ELECTRONIC_ABUSE",
				Keywords: []string{
					"spyware", "monitoring", "electronic", "surveillance", "tracking",
					"computer", "phone", "device", "hack", "access",
				},
			},
			{
				Name: "FRAUD_ON_THE_COURT",
				Keywords: []string{
					"fraud", "perjury", "false", "lie", "deception", "manipulation",
					"evidence", "exhibit", "misconduct", "ex parte", "communication",
				},
			},
			{
				Name: "NON_DISCLOSURE",
				Keywords: []string{
					"financial", "disclosure", "asset", "income", "property",
					"bank", "account", "cryptocurrency", "bitcoin", "coinbase",
				},
			},
			{
				Name: "TEXT_MESSAGES",
				Keywords: []string{
					"text", "message", "sms", "chat", "conversation", "whatsapp",
					"imessage",
				},
			},
			{
				Name: "POST_TRIAL_ABUSE",
				Keywords: []string{
					"post trial", "continued", "ongoing", "harassment",
					"violation", "contempt",
				},
			},
			{Name: ReviewCategory},
		},
	}
}
