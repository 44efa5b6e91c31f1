package prompt

import (
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"coverletter-ai-be/internal/entity"
	"coverletter-ai-be/internal/repository/contract"
	"coverletter-ai-be/pkg/rag/analysis"
	"coverletter-ai-be/pkg/rag/rerank"
	"coverletter-ai-be/pkg/rag/search"

	"github.com/stretchr/testify/assert"
)

const sampleLetter = `Hi,

I am a Web Development specialist with 6+ years of experience specifically in React and Node.js. I have spearheaded a project similar to your requirements.

I developed a multi-tenant dashboard using React, TypeScript and PostgreSQL that reduced reporting time by 40%.

To better understand your requirements, I would appreciate your insights. What scale of traffic do you expect the platform to handle? How do you prioritize new feature requests? Which integrations are most critical for launch?

I look forward to the possibility of discussing how my skills align with your project's needs. I am available for a discussion at your earliest convenience.

Sincerely,
Jane`

func strongMatchContext() *search.RetrievalContext {
	return &search.RetrievalContext{
		R1: []*contract.ScoredCoverLetter{
			{
				Example: &entity.CoverLetterExample{
					JobTitle:    "React Developer",
					CoverLetter: sampleLetter,
				},
				Similarity: 0.42,
			},
		},
		R2: []*rerank.ProjectCandidate{
			{
				Example: &contract.ScoredProject{
					Example: &entity.ProjectExample{
						ProjectTitle:       "Analytics Dashboard",
						ProjectDescription: "Built with react and postgresql for a retail client",
						Metadata: entity.ProjectMetadata{
							ProjectType:  "Web Development",
							Technologies: []string{"React", "PostgreSQL"},
						},
					},
					Similarity: 0.35,
				},
				RelevanceScore: 1.5,
				DomainMatch:    true,
				TechMatch:      true,
			},
		},
		R3: []*contract.ScoredSkill{
			{
				Example: &entity.SkillExample{
					SkillName:        "React",
					SkillDescription: "Component architecture, hooks, performance tuning",
					Metadata:         entity.SkillMetadata{SkillCategory: "Technical"},
				},
				Similarity: 0.3,
			},
		},
		HasKnowledgeBase: true,
		TotalMatches:     3,
		JobAnalysis: analysis.JobAnalysis{
			Domains:       []string{"Web Development"},
			Technologies:  []string{"react", "postgresql"},
			PrimaryDomain: "Web Development",
		},
	}
}

func TestSystemPromptReflectsKnowledgeBase(t *testing.T) {
	withKB := NewBuilder("React Developer", "Build dashboards", "", strongMatchContext())
	assert.Contains(t, withKB.SystemPrompt(), "highly relevant similar cover letters")

	empty := &search.RetrievalContext{JobAnalysis: analysis.JobAnalysis{PrimaryDomain: "General"}}
	withoutKB := NewBuilder("React Developer", "Build dashboards", "", empty)
	assert.Contains(t, withoutKB.SystemPrompt(), "Limited knowledge base data available")
}

func TestUserPromptStrongMatchIncludesStyleAnalysis(t *testing.T) {
	builder := NewBuilder("React Developer", "Build dashboards with react", "Sarah", strongMatchContext())

	prompt := builder.UserPrompt()

	assert.Contains(t, prompt, "STYLE ANALYSIS FROM BEST MATCH")
	assert.Contains(t, prompt, "PERFECT STYLE MATCHING WITH ENHANCED CTA")
	assert.NotContains(t, prompt, "PROFESSIONAL TEMPLATE WITH ENHANCED CTA")
	assert.Contains(t, prompt, `Start with: "Hi Sarah,"`)
	assert.Contains(t, prompt, "Casual Hi,")
	assert.Contains(t, prompt, "Client Name: Sarah")
}

func TestUserPromptWeakMatchUsesTemplate(t *testing.T) {
	retrieval := strongMatchContext()
	retrieval.R1[0].Similarity = 0.1

	builder := NewBuilder("React Developer", "Build dashboards", "", retrieval)
	prompt := builder.UserPrompt()

	assert.NotContains(t, prompt, "STYLE ANALYSIS FROM BEST MATCH")
	assert.Contains(t, prompt, "PROFESSIONAL TEMPLATE WITH ENHANCED CTA")
	assert.Contains(t, prompt, `Start with: "Hi,"`)
	assert.Contains(t, prompt, "Client Name: Hiring Manager")
}

func TestUserPromptAtThresholdIsNotStrong(t *testing.T) {
	retrieval := strongMatchContext()
	retrieval.R1[0].Similarity = StrongMatchThreshold

	builder := NewBuilder("React Developer", "Build dashboards", "", retrieval)

	// Strictly greater than the threshold counts as strong.
	assert.Contains(t, builder.UserPrompt(), "PROFESSIONAL TEMPLATE WITH ENHANCED CTA")
}

func TestUserPromptProjectsAndSkills(t *testing.T) {
	builder := NewBuilder("React Developer", "Build dashboards with react", "", strongMatchContext())
	prompt := builder.UserPrompt()

	assert.Contains(t, prompt, "Title: Analytics Dashboard")
	assert.Contains(t, prompt, "Domain Match: YES | Tech Match: YES")
	assert.Contains(t, prompt, "Job Technologies Match: react, postgresql")
	assert.Contains(t, prompt, "- React:")
	assert.Contains(t, prompt, "Directly mentioned in job description")
}

func TestUserPromptLengthTargets(t *testing.T) {
	builder := NewBuilder("React Developer", "Build dashboards", "", strongMatchContext())
	prompt := builder.UserPrompt()

	assert.Contains(t, prompt, "LENGTH AND STRUCTURE TARGETS")
	assert.Contains(t, prompt, "~"+strconv.Itoa(wordCount(sampleLetter))+" words")
}

func TestExtractQuestionsFromLetter(t *testing.T) {
	questions := extractQuestions(sampleLetter)

	assert.GreaterOrEqual(t, len(questions), 3)
	for _, q := range questions {
		assert.True(t, strings.HasSuffix(q, "?"), "question %q should end with ?", q)
	}
}

func TestSkillDescriptionTruncatesOnRuneBoundary(t *testing.T) {
	retrieval := &search.RetrievalContext{
		R3: []*contract.ScoredSkill{
			{
				Example: &entity.SkillExample{
					SkillName:        "Localization",
					SkillDescription: strings.Repeat("é", 160),
					Metadata:         entity.SkillMetadata{SkillCategory: "Technical"},
				},
				Similarity: 0.3,
			},
		},
		HasKnowledgeBase: true,
		JobAnalysis:      analysis.JobAnalysis{PrimaryDomain: analysis.DefaultDomain},
	}

	prompt := NewBuilder("Translator", "Translate product copy", "", retrieval).UserPrompt()

	assert.True(t, utf8.ValidString(prompt))
	assert.Contains(t, prompt, strings.Repeat("é", 150)+"...")
	assert.NotContains(t, prompt, strings.Repeat("é", 151))
}
