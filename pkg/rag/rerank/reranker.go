package rerank

import (
	"sort"
	"strings"

	"coverletter-ai-be/internal/repository/contract"
	"coverletter-ai-be/pkg/rag/analysis"
)

// minResults is the floor on how many projects reranking may return when any
// candidates exist at all. Generation quality degrades sharply below this.
const minResults = 3

const techWeight = 0.5

// ProjectCandidate is a scored project annotated with domain-relevance
// signals. Similarity is the raw vector score from search, untouched by
// reranking.
type ProjectCandidate struct {
	Example        *contract.ScoredProject
	RelevanceScore float64
	DomainMatch    bool
	TechMatch      bool
}

// Reranker reorders project candidates by domain relevance while guaranteeing
// a minimum result count via similarity backfill.
type Reranker struct{}

func NewReranker() *Reranker {
	return &Reranker{}
}

// Rerank scores each candidate against the job analysis and applies the
// selection policy: if at least minResults candidates are relevant
// (RelevanceScore > 0) return exactly the relevant set, otherwise pad the
// relevant set with the highest-similarity remainder up to minResults.
func (r *Reranker) Rerank(candidates []*contract.ScoredProject, job analysis.JobAnalysis) []*ProjectCandidate {
	if len(candidates) == 0 {
		return []*ProjectCandidate{}
	}

	scored := make([]*ProjectCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = scoreCandidate(c, job)
	}

	// Relevance first, raw similarity as the tiebreaker. Stable so equal
	// candidates keep their search order.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].RelevanceScore != scored[j].RelevanceScore {
			return scored[i].RelevanceScore > scored[j].RelevanceScore
		}
		return scored[i].Example.Similarity > scored[j].Example.Similarity
	})

	var relevant []*ProjectCandidate
	for _, c := range scored {
		if c.RelevanceScore > 0 {
			relevant = append(relevant, c)
		}
	}

	if len(relevant) >= minResults {
		return relevant
	}

	// Backfill with high-similarity candidates regardless of relevance.
	target := minResults
	if target > len(scored) {
		target = len(scored)
	}
	result := make([]*ProjectCandidate, len(relevant), target)
	copy(result, relevant)

	bySimilarity := make([]*ProjectCandidate, len(scored))
	copy(bySimilarity, scored)
	sort.SliceStable(bySimilarity, func(i, j int) bool {
		return bySimilarity[i].Example.Similarity > bySimilarity[j].Example.Similarity
	})

	included := make(map[*ProjectCandidate]bool, len(result))
	for _, c := range result {
		included[c] = true
	}
	for _, c := range bySimilarity {
		if len(result) >= target {
			break
		}
		if included[c] {
			continue
		}
		result = append(result, c)
		included[c] = true
	}

	return result
}

func scoreCandidate(c *contract.ScoredProject, job analysis.JobAnalysis) *ProjectCandidate {
	projectType := c.Example.Metadata.ProjectType
	description := c.Example.ProjectDescription
	descriptionLower := strings.ToLower(description)

	// Every analysis domain counts, including the default: a General job
	// matching General-typed projects is a real signal, not noise.
	domainScore := 0.0
	for _, domain := range job.Domains {
		if strings.Contains(projectType, domain) || strings.Contains(description, domain) {
			domainScore++
		}
	}

	techCount := 0
	for _, tech := range job.Technologies {
		if matchesTechnology(c.Example.Metadata.Technologies, descriptionLower, tech) {
			techCount++
		}
	}

	return &ProjectCandidate{
		Example:        c,
		RelevanceScore: domainScore + techWeight*float64(techCount),
		DomainMatch:    domainScore > 0,
		TechMatch:      techCount > 0,
	}
}

func matchesTechnology(technologies []string, descriptionLower, tech string) bool {
	for _, t := range technologies {
		if strings.EqualFold(t, tech) {
			return true
		}
	}
	return strings.Contains(descriptionLower, tech)
}
