package prompt

import (
	"fmt"
	"strings"

	"coverletter-ai-be/pkg/rag/analysis"
	"coverletter-ai-be/pkg/rag/rerank"
	"coverletter-ai-be/pkg/rag/search"
)

// StrongMatchThreshold decides whether the best retrieved letter is similar
// enough to drive exact style replication instead of the generic template.
const StrongMatchThreshold = 0.2

const maxQuestionExamples = 6

// Builder assembles the generation prompts from one retrieval context
type Builder struct {
	jobTitle       string
	jobDescription string
	clientName     string
	retrieval      *search.RetrievalContext
}

// NewBuilder creates a new prompt builder for one generation request
func NewBuilder(jobTitle, jobDescription, clientName string, retrieval *search.RetrievalContext) *Builder {
	return &Builder{
		jobTitle:       jobTitle,
		jobDescription: jobDescription,
		clientName:     clientName,
		retrieval:      retrieval,
	}
}

// SystemPrompt frames the model's role. The knowledge-base line changes with
// retrieval quality so the model knows whether to imitate or to template.
func (b *Builder) SystemPrompt() string {
	var prompt strings.Builder

	prompt.WriteString("You are an expert cover letter writer specializing in creating perfectly matched cover letters using RAG technology.\n")
	prompt.WriteString("Your goal is to analyze similar cover letters from the knowledge base and create a new cover letter that:\n")
	prompt.WriteString("1. EXACTLY matches the writing style, tone, and structure of similar previous cover letters\n")
	prompt.WriteString("2. Uses the same opening patterns, paragraph flow, and closing techniques\n")
	prompt.WriteString("3. Incorporates relevant past projects as concrete examples\n")
	prompt.WriteString("4. Maintains the professional voice and personality shown in previous letters\n")
	if b.retrieval.HasKnowledgeBase {
		prompt.WriteString("You have access to highly relevant similar cover letters, projects, and skills. Use this data to create a perfectly matched letter.")
	} else {
		prompt.WriteString("Limited knowledge base data available. Create a professional template following best practices.")
	}

	return prompt.String()
}

// UserPrompt builds the full generation instruction block.
func (b *Builder) UserPrompt() string {
	var prompt strings.Builder

	hasStrongMatch := b.hasStrongMatch()
	if hasStrongMatch {
		b.writeStyleAnalysis(&prompt)
	}
	b.writeLengthTargets(&prompt)
	b.writeJobDetails(&prompt)
	b.writeProjectsContext(&prompt)
	b.writeSkillsContext(&prompt)
	b.writeMainInstructions(&prompt, hasStrongMatch)
	b.writeOutputRequirements(&prompt, hasStrongMatch)

	return prompt.String()
}

func (b *Builder) hasStrongMatch() bool {
	return len(b.retrieval.R1) > 0 && b.retrieval.R1[0].Similarity > StrongMatchThreshold
}

func (b *Builder) bestLetter() string {
	if len(b.retrieval.R1) == 0 {
		return ""
	}
	return b.retrieval.R1[0].Example.CoverLetter
}

func (b *Builder) writeStyleAnalysis(prompt *strings.Builder) {
	best := b.retrieval.R1[0]
	letter := best.Example.CoverLetter

	fmt.Fprintf(prompt, "STYLE ANALYSIS FROM BEST MATCH (%.1f%% similar to %q):\n",
		best.Similarity*100, best.Example.JobTitle)

	opening := extractOpeningPattern(letter)
	prompt.WriteString("OPENING PATTERN TO REPLICATE EXACTLY:\n")
	fmt.Fprintf(prompt, "Original Opening: %q\n", opening.FullOpening)
	prompt.WriteString("Key Elements to Copy:\n")
	fmt.Fprintf(prompt, "- Greeting Style: %s\n", opening.GreetingStyle)
	fmt.Fprintf(prompt, "- Self-Introduction Pattern: %s\n", opening.IntroPattern)
	fmt.Fprintf(prompt, "- Experience Mention: %s\n", opening.ExperienceStyle)
	fmt.Fprintf(prompt, "- Project Reference Style: %s\n", opening.ProjectStyle)
	fmt.Fprintf(prompt, "- Tone and Enthusiasm: %s\n", opening.Tone)
	prompt.WriteString("CRITICAL: Your opening paragraph MUST follow this exact structure and style!\n\n")

	structure := analyzeStructure(letter)
	prompt.WriteString("STRUCTURE PATTERN TO MATCH:\n")
	fmt.Fprintf(prompt, "- Paragraph Count: %d\n", structure.Paragraphs)
	fmt.Fprintf(prompt, "- Flow: %s\n", structure.Flow)
	fmt.Fprintf(prompt, "- Transition Style: %s\n", structure.Transitions)
	fmt.Fprintf(prompt, "- Professional Level: %s\n\n", structure.Professionalism)

	closing := extractClosingPattern(letter)
	prompt.WriteString("CTA PATTERN TO MATCH:\n")
	fmt.Fprintf(prompt, "Original CTA: %q\n", closing.FullCTA)
	fmt.Fprintf(prompt, "Question Pattern: %s\n", closing.QuestionPattern)
	fmt.Fprintf(prompt, "Number of Questions: %d\n", closing.QuestionCount)
	fmt.Fprintf(prompt, "Question Topics: %s\n", strings.Join(closing.QuestionTopics, ", "))
	fmt.Fprintf(prompt, "CTA Style: %s\n", closing.CTAStyle)
	fmt.Fprintf(prompt, "Enthusiasm Level: %s\n", closing.Enthusiasm)
	prompt.WriteString("CRITICAL: Your CTA MUST include exactly 3 relevant questions about the job requirements!\n\n")

	prompt.WriteString("WRITING CHARACTERISTICS TO REPLICATE:\n")
	fmt.Fprintf(prompt, "- Sentence Length: %s\n", analyzeSentenceLength(letter))
	fmt.Fprintf(prompt, "- Vocabulary Level: %s\n", analyzeVocabulary(letter))
	fmt.Fprintf(prompt, "- Personal Pronouns Usage: %s\n", analyzePersonalPronouns(letter))
	fmt.Fprintf(prompt, "- Technical Detail Level: %s\n\n", analyzeTechnicalLevel(letter, analysis.TechnologyVocabulary()))

	b.writeQuestionExamples(prompt)
}

func (b *Builder) writeQuestionExamples(prompt *strings.Builder) {
	var allQuestions []string
	for _, candidate := range b.retrieval.R1 {
		allQuestions = append(allQuestions, extractQuestions(candidate.Example.CoverLetter)...)
	}

	prompt.WriteString("QUESTION EXAMPLES FROM SIMILAR LETTERS:\n")
	if len(allQuestions) == 0 {
		prompt.WriteString("None found - create relevant questions about the job requirements.\n\n")
		return
	}

	if len(allQuestions) > maxQuestionExamples {
		allQuestions = allQuestions[:maxQuestionExamples]
	}
	for i, question := range allQuestions {
		fmt.Fprintf(prompt, "%d. %s\n", i+1, question)
	}
	fmt.Fprintf(prompt, "Use these as inspiration but create 3 NEW questions specific to this %s role.\n\n",
		b.retrieval.JobAnalysis.PrimaryDomain)
}

func (b *Builder) writeLengthTargets(prompt *strings.Builder) {
	targets := b.lengthTargets()
	if targets == nil {
		return
	}

	prompt.WriteString("LENGTH AND STRUCTURE TARGETS (derived from matched letters):\n")
	fmt.Fprintf(prompt, "- Target paragraph count: %d (±1 paragraph)\n", targets.TargetParagraphs)
	fmt.Fprintf(prompt, "- Target total length: ~%d words (acceptable range: %d-%d words)\n\n",
		targets.TargetWords, targets.WordsRange[0], targets.WordsRange[1])
}

func (b *Builder) lengthTargets() *LengthTargets {
	letters := make([]string, 0, len(b.retrieval.R1))
	for _, candidate := range b.retrieval.R1 {
		letters = append(letters, candidate.Example.CoverLetter)
	}
	return DeriveLengthTargets(letters)
}

func (b *Builder) writeJobDetails(prompt *strings.Builder) {
	job := b.retrieval.JobAnalysis

	prompt.WriteString("TARGET JOB DETAILS:\n")
	fmt.Fprintf(prompt, "Position: %s\n", b.jobTitle)
	fmt.Fprintf(prompt, "Primary Domain: %s\n", job.PrimaryDomain)
	fmt.Fprintf(prompt, "Required Technologies: %s\n", strings.Join(job.Technologies, ", "))
	fmt.Fprintf(prompt, "Company Context: %s\n", b.jobDescription)
	fmt.Fprintf(prompt, "Client Name: %s\n\n", b.clientNameOrDefault())
}

func (b *Builder) clientNameOrDefault() string {
	if b.clientName != "" {
		return b.clientName
	}
	return "Hiring Manager"
}

func (b *Builder) writeProjectsContext(prompt *strings.Builder) {
	if len(b.retrieval.R2) == 0 {
		return
	}
	job := b.retrieval.JobAnalysis

	prompt.WriteString("DOMAIN-RELEVANT PROJECTS TO NATURALLY INTEGRATE:\n")
	fmt.Fprintf(prompt, "Job Analysis: Primary Domain = %s, Technologies = %s\n\n",
		job.PrimaryDomain, strings.Join(job.Technologies, ", "))

	for i, candidate := range b.retrieval.R2 {
		b.writeProject(prompt, i, candidate)
	}
}

func (b *Builder) writeProject(prompt *strings.Builder, index int, candidate *rerank.ProjectCandidate) {
	project := candidate.Example.Example
	job := b.retrieval.JobAnalysis

	projectType := project.Metadata.ProjectType
	if projectType == "" {
		projectType = "General"
	}

	fmt.Fprintf(prompt, "PROJECT %d (%.1f%% similarity, %.1f relevance):\n",
		index+1, candidate.Example.Similarity*100, candidate.RelevanceScore)
	fmt.Fprintf(prompt, "Domain Match: %s | Tech Match: %s | Type: %s\n",
		yesNo(candidate.DomainMatch), yesNo(candidate.TechMatch), projectType)
	fmt.Fprintf(prompt, "Title: %s\n", project.ProjectTitle)

	matched := b.matchedTechnologies(project.Metadata.Technologies, project.ProjectDescription)
	fmt.Fprintf(prompt, "Project Technologies: %s\n", strings.Join(project.Metadata.Technologies, ", "))
	fmt.Fprintf(prompt, "Job Technologies Match: %s\n", orNone(matched))

	topTech := project.Metadata.Technologies
	if len(topTech) > 2 {
		topTech = topTech[:2]
	}
	prompt.WriteString("INTEGRATION PHRASES FOR OPENING:\n")
	fmt.Fprintf(prompt, "%q\n", fmt.Sprintf(
		"I am a %s specialist with X+ years of experience specifically in %s. I have spearheaded a project similar to your requirements that is %s...",
		job.PrimaryDomain, strings.Join(topTech, " and "), project.ProjectTitle))
	fmt.Fprintf(prompt, "%q\n\n", fmt.Sprintf(
		"As a %s professional, I have successfully delivered %s, which directly aligns with your needs...",
		job.PrimaryDomain, project.ProjectTitle))
}

func (b *Builder) matchedTechnologies(projectTechnologies []string, description string) []string {
	descriptionLower := strings.ToLower(description)

	var matched []string
	for _, tech := range b.retrieval.JobAnalysis.Technologies {
		inList := false
		for _, projectTech := range projectTechnologies {
			if strings.EqualFold(projectTech, tech) {
				inList = true
				break
			}
		}
		if inList || strings.Contains(descriptionLower, strings.ToLower(tech)) {
			matched = append(matched, tech)
		}
	}
	return matched
}

func (b *Builder) writeSkillsContext(prompt *strings.Builder) {
	if len(b.retrieval.R3) == 0 {
		return
	}

	jobLower := strings.ToLower(b.jobDescription)

	prompt.WriteString("SKILLS TO WEAVE NATURALLY:\n")
	for _, candidate := range b.retrieval.R3 {
		skill := candidate.Example
		description := truncateRunes(skill.SkillDescription, 150)
		fmt.Fprintf(prompt, "- %s: %q   Integration tip: %s\n",
			skill.SkillName, description+"...", skillIntegrationTip(skill.SkillName, skill.Metadata.SkillCategory, jobLower))
	}
	prompt.WriteString("\n")
}

// truncateRunes cuts on a rune boundary so multi-byte characters never get
// split mid-sequence.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func skillIntegrationTip(skillName, skillCategory, jobDescriptionLower string) string {
	if skillName != "" && strings.Contains(jobDescriptionLower, strings.ToLower(skillName)) {
		return "Directly mentioned in job description - emphasize strongly"
	}
	if skillCategory == "Technical" {
		return "Weave into project examples naturally"
	}
	return "Mention as supporting capability"
}

func (b *Builder) writeMainInstructions(prompt *strings.Builder, hasStrongMatch bool) {
	job := b.retrieval.JobAnalysis

	if hasStrongMatch {
		topTech := job.Technologies
		if len(topTech) > 5 {
			topTech = topTech[:5]
		}
		prompt.WriteString("PERFECT STYLE MATCHING WITH ENHANCED CTA:\n")
		prompt.WriteString("You MUST create a cover letter that exactly matches the style of the fetched cover letters. This means:\n\n")
		prompt.WriteString("1. EXACT OPENING REPLICATION:\n")
		prompt.WriteString("   - Copy the EXACT greeting style and structure from the matched cover letter\n")
		prompt.WriteString("   - Use the SAME self-introduction pattern and experience mention style\n")
		prompt.WriteString("   - Match the tone, enthusiasm level, and professional formality EXACTLY\n")
		prompt.WriteString("   - If they mention a specific project early, you should do the same with a relevant project\n\n")
		prompt.WriteString("2. DOMAIN-FOCUSED STRUCTURE FLOW:\n")
		prompt.WriteString("   - Follow the exact paragraph breakdown and flow from the matched letters\n")
		fmt.Fprintf(prompt, "   - Emphasize %s projects and experience\n", job.PrimaryDomain)
		fmt.Fprintf(prompt, "   - Highlight relevant technologies: %s\n", strings.Join(topTech, ", "))
		prompt.WriteString("   - Match the overall length and paragraph count derived from matched letters\n\n")
		prompt.WriteString("3. ENHANCED CTA WITH 3 QUESTIONS:\n")
		prompt.WriteString("   - Start CTA with: \"To better understand your requirements and align our goals, I would appreciate your insights on the following questions:\"\n")
		prompt.WriteString("   - Ask EXACTLY 3 relevant questions about the job description\n")
		prompt.WriteString("   - Questions should be specific to the job requirements and show deep understanding\n")
		prompt.WriteString("   - End with the SAME enthusiasm and follow-up style as the matched letter\n\n")
		prompt.WriteString("4. DOMAIN-RELEVANT PROJECT INTEGRATION:\n")
		fmt.Fprintf(prompt, "   - Prioritize projects that match %s\n", job.PrimaryDomain)
		prompt.WriteString("   - Use specific technologies mentioned in the job description\n\n")
		fmt.Fprintf(prompt, "CRITICAL: The final cover letter should read as if the same person wrote it, just adapted for this %s opportunity.\n\n", job.PrimaryDomain)
		return
	}

	prompt.WriteString("PROFESSIONAL TEMPLATE WITH ENHANCED CTA:\n")
	prompt.WriteString("Since no strong style matches were found, create a professional cover letter that:\n")
	prompt.WriteString("1. Uses a confident, engaging professional tone\n")
	prompt.WriteString("2. Follows standard cover letter structure with domain focus\n")
	fmt.Fprintf(prompt, "3. Emphasizes %s expertise and relevant technologies\n", job.PrimaryDomain)
	prompt.WriteString("4. Incorporates available domain-relevant project examples naturally\n")
	prompt.WriteString("5. Includes 3 relevant questions about the job requirements in the CTA\n")
	prompt.WriteString("6. Includes a strong call to action with availability for discussion\n\n")
}

func (b *Builder) writeOutputRequirements(prompt *strings.Builder, hasStrongMatch bool) {
	prompt.WriteString("FINAL OUTPUT REQUIREMENTS:\n")
	if b.clientName != "" {
		fmt.Fprintf(prompt, "Start with: \"Hi %s,\"\n\n", b.clientName)
	} else {
		prompt.WriteString("Start with: \"Hi,\"\n\n")
	}

	prompt.WriteString("OPENING PARAGRAPH STRUCTURE:\n")
	if hasStrongMatch {
		fmt.Fprintf(prompt, "Follow the EXACT opening pattern identified above, incorporating your relevant %s experience and projects.\n\n",
			b.retrieval.JobAnalysis.PrimaryDomain)
	} else {
		fmt.Fprintf(prompt, "Start with: \"I am a %s specialist with X+ years of experience specifically in [relevant technologies]. I have spearheaded a project similar to your requirements that is [relevant project name]...\"\n\n",
			b.retrieval.JobAnalysis.PrimaryDomain)
	}

	prompt.WriteString("MIDDLE PARAGRAPHS:\n")
	prompt.WriteString("- Detailed project description with technical specifics\n")
	prompt.WriteString("- Clear alignment with job requirements\n")
	prompt.WriteString("- Measurable outcomes and business impact\n\n")

	prompt.WriteString("CTA PARAGRAPH STRUCTURE (MANDATORY):\n")
	prompt.WriteString("1. \"To better understand your requirements and align our goals, I would appreciate your insights on the following questions:\"\n")
	prompt.WriteString("2. Create 3 research-demonstrating questions. Each question must reference something SPECIFIC from the job description,\n")
	prompt.WriteString("   ask for deeper insights (\"Could you elaborate on...\", \"What are your priorities regarding...\", \"How do you envision...\"),\n")
	prompt.WriteString("   and prove strategic understanding of their business and technical challenges. DO NOT use generic template questions.\n")
	prompt.WriteString("3. \"I am excited about the opportunity to contribute my skills and expertise to your project.\"\n")
	prompt.WriteString("4. \"I look forward to the possibility of discussing how my skills align with your project's needs.\"\n")
	prompt.WriteString("5. \"I am available for a discussion at your earliest convenience.\"\n\n")

	if b.lengthTargets() != nil {
		prompt.WriteString("Match the paragraph count and overall length targets above; do not intentionally exceed or undercut that range unless necessary for clarity.\n")
	} else {
		prompt.WriteString("Keep length concise and professional.\n")
	}
	prompt.WriteString("End with professional closing: \"Sincerely,\" followed by a line break and \"[Your Name]\"\n")
}

func yesNo(matched bool) string {
	if matched {
		return "YES"
	}
	return "NO"
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
