package rerank

import (
	"testing"

	"coverletter-ai-be/internal/entity"
	"coverletter-ai-be/internal/repository/contract"
	"coverletter-ai-be/pkg/rag/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(title, projectType, description string, technologies []string, similarity float64) *contract.ScoredProject {
	return &contract.ScoredProject{
		Example: &entity.ProjectExample{
			ProjectTitle:       title,
			ProjectDescription: description,
			Metadata: entity.ProjectMetadata{
				ProjectType:  projectType,
				Technologies: technologies,
			},
		},
		Similarity: similarity,
	}
}

func webJob() analysis.JobAnalysis {
	return analysis.JobAnalysis{
		Domains:       []string{"Web Development"},
		Technologies:  []string{"react", "typescript"},
		PrimaryDomain: "Web Development",
		IsMultiDomain: false,
	}
}

func titles(candidates []*ProjectCandidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Example.Example.ProjectTitle
	}
	return out
}

func TestRerankScoring(t *testing.T) {
	job := webJob()

	candidates := []*contract.ScoredProject{
		project("dashboard", "Web Development", "admin dashboard built with react and typescript", []string{"react", "typescript"}, 0.4),
		project("pipeline", "Data Engineering", "batch etl pipeline in scala", nil, 0.9),
		project("storefront", "Web Development", "ecommerce storefront", []string{"react"}, 0.5),
		project("blog", "", "a small react blog", nil, 0.3),
	}

	result := NewReranker().Rerank(candidates, job)

	// dashboard: 1 domain + 2 tech = 2.0; storefront: 1 + 0.5 = 1.5;
	// blog: 0 + 0.5 = 0.5; pipeline: 0. Three relevant, so exactly those.
	require.Equal(t, []string{"dashboard", "storefront", "blog"}, titles(result))
	assert.InDelta(t, 2.0, result[0].RelevanceScore, 1e-9)
	assert.True(t, result[0].DomainMatch)
	assert.True(t, result[0].TechMatch)
	assert.InDelta(t, 0.5, result[2].RelevanceScore, 1e-9)
	assert.False(t, result[2].DomainMatch)
}

func TestRerankBackfillsToThree(t *testing.T) {
	job := webJob()

	candidates := []*contract.ScoredProject{
		project("relevant", "Web Development", "react app", []string{"react"}, 0.1),
		project("best-similar", "Embedded", "firmware in c", nil, 0.95),
		project("mid-similar", "Embedded", "rtos scheduler", nil, 0.8),
		project("low-similar", "Embedded", "bootloader", nil, 0.4),
		project("lowest", "Embedded", "drivers", nil, 0.2),
	}

	result := NewReranker().Rerank(candidates, job)

	// One relevant candidate plus the two highest-similarity others.
	require.Len(t, result, 3)
	assert.Equal(t, "relevant", result[0].Example.Example.ProjectTitle)
	assert.ElementsMatch(t, []string{"best-similar", "mid-similar"},
		[]string{result[1].Example.Example.ProjectTitle, result[2].Example.Example.ProjectTitle})
}

func TestRerankKeepsAllRelevantBeyondThree(t *testing.T) {
	job := webJob()

	candidates := []*contract.ScoredProject{
		project("a", "Web Development", "", nil, 0.5),
		project("b", "Web Development", "", nil, 0.4),
		project("c", "Web Development", "", nil, 0.3),
		project("d", "Web Development", "", nil, 0.2),
		project("irrelevant", "Embedded", "firmware", nil, 0.99),
	}

	result := NewReranker().Rerank(candidates, job)

	// Four relevant: returned in full, not padded and not truncated.
	assert.Equal(t, []string{"a", "b", "c", "d"}, titles(result))
}

func TestRerankFewerCandidatesThanMinimum(t *testing.T) {
	job := webJob()

	candidates := []*contract.ScoredProject{
		project("only", "Embedded", "firmware", nil, 0.7),
	}

	result := NewReranker().Rerank(candidates, job)

	require.Len(t, result, 1)
	assert.Equal(t, "only", result[0].Example.Example.ProjectTitle)
}

func TestRerankEmptyInput(t *testing.T) {
	result := NewReranker().Rerank(nil, webJob())
	assert.Empty(t, result)
}

func TestRerankGeneralDomainMatchesGeneralProjects(t *testing.T) {
	job := analysis.JobAnalysis{
		Domains:       []string{analysis.DefaultDomain},
		PrimaryDomain: analysis.DefaultDomain,
	}

	candidates := []*contract.ScoredProject{
		project("a", analysis.DefaultDomain, "", nil, 0.6),
		project("b", analysis.DefaultDomain, "", nil, 0.5),
		project("c", analysis.DefaultDomain, "", nil, 0.4),
		project("d", analysis.DefaultDomain, "", nil, 0.3),
	}

	result := NewReranker().Rerank(candidates, job)

	// All four are relevant, so the full set comes back untruncated.
	require.Equal(t, []string{"a", "b", "c", "d"}, titles(result))
	for _, c := range result {
		assert.True(t, c.DomainMatch)
		assert.Greater(t, c.RelevanceScore, 0.0)
	}
}

func TestRerankSimilarityTiebreak(t *testing.T) {
	job := webJob()

	candidates := []*contract.ScoredProject{
		project("lower", "Web Development", "", nil, 0.3),
		project("higher", "Web Development", "", nil, 0.7),
		project("middle", "Web Development", "", nil, 0.5),
	}

	result := NewReranker().Rerank(candidates, job)

	assert.Equal(t, []string{"higher", "middle", "lower"}, titles(result))
}
