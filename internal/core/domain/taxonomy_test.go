package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyValidate(t *testing.T) {
	t.Run("default taxonomy is valid", func(t *testing.T) {
		assert.NoError(t, DefaultTaxonomy().Validate())
	})

	t.Run("review node must exist", func(t *testing.T) {
		tax := &Taxonomy{
			ReviewNode: ReviewCategory,
			Nodes:      []TaxonomyNode{{Name: "A", Keywords: []string{"x"}}},
		}
		assert.Error(t, tax.Validate())
	})

	t.Run("review node must not carry keywords", func(t *testing.T) {
		tax := &Taxonomy{
			ReviewNode: ReviewCategory,
			Nodes: []TaxonomyNode{
				{Name: ReviewCategory, Keywords: []string{"review"}},
			},
		}
		assert.Error(t, tax.Validate())
	})

	t.Run("sibling names must be unique", func(t *testing.T) {
		tax := &Taxonomy{
			ReviewNode: ReviewCategory,
			Nodes: []TaxonomyNode{
				{Name: "A", Keywords: []string{"x"}},
				{Name: "A", Keywords: []string{"y"}},
				{Name: ReviewCategory},
			},
		}
		assert.Error(t, tax.Validate())
	})

	t.Run("same name allowed at different levels", func(t *testing.T) {
		tax := &Taxonomy{
			ReviewNode: ReviewCategory,
			Nodes: []TaxonomyNode{
				{
					Name:     "A",
					Keywords: []string{"x"},
					Children: []TaxonomyNode{{Name: "B", Keywords: []string{"y"}}},
				},
				{Name: "B", Keywords: []string{"z"}},
				{Name: ReviewCategory},
			},
		}
		assert.NoError(t, tax.Validate())
	})

	t.Run("empty node name rejected", func(t *testing.T) {
		tax := &Taxonomy{
			ReviewNode: ReviewCategory,
			Nodes: []TaxonomyNode{
				{Name: "", Keywords: []string{"x"}},
				{Name: ReviewCategory},
			},
		}
		assert.Error(t, tax.Validate())
	})
}

func TestTaxonomyFlatten(t *testing.T) {
	tax := &Taxonomy{
		ReviewNode: ReviewCategory,
		Nodes: []TaxonomyNode{
			{
				Name: "A",
				Children: []TaxonomyNode{
					{Name: "A1"},
					{Name: "A2", Children: []TaxonomyNode{{Name: "A2a"}}},
				},
			},
			{Name: "B"},
			{Name: ReviewCategory},
		},
	}

	var names []string
	for _, n := range tax.Flatten() {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"A", "A1", "A2", "A2a", "B", ReviewCategory}, names)
}

func TestDefaultTaxonomy(t *testing.T) {
	tax := DefaultTaxonomy()
	require.NoError(t, tax.Validate())

	names := make(map[string]bool)
	for _, n := range tax.Flatten() {
		names[n.Name] = true
	}
	for _, want := range []string{
		"CASE_SUMMARIES_AND_RELATED_DOCS",
		"CONSTITUTIONAL_VIOLATIONS",
		"ELECTRONIC_ABUSE",
		"FRAUD_ON_THE_COURT",
		"NON_DISCLOSURE",
		"TEXT_MESSAGES",
		"POST_TRIAL_ABUSE",
		ReviewCategory,
	} {
		assert.True(t, names[want], "missing %s", want)
	}
}
