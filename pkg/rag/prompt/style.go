package prompt

import (
	"regexp"
	"strings"
)

// Style analysis of the best-matching letter. The extracted signals are
// folded into the generation prompt so the model can imitate the voice of
// letters that already worked.

type openingPattern struct {
	FullOpening     string
	GreetingStyle   string
	IntroPattern    string
	ExperienceStyle string
	ProjectStyle    string
	Tone            string
}

type closingPattern struct {
	FullCTA         string
	QuestionPattern string
	QuestionCount   int
	QuestionTopics  []string
	CTAStyle        string
	Enthusiasm      string
}

type structurePattern struct {
	Paragraphs      int
	Flow            string
	Transitions     string
	Professionalism string
}

func extractOpeningPattern(coverLetter string) openingPattern {
	firstParagraph := firstBlock(coverLetter)

	greeting := "Direct start"
	if strings.HasPrefix(firstParagraph, "Hi,") {
		greeting = "Casual Hi,"
	} else if strings.HasPrefix(firstParagraph, "Dear") {
		greeting = "Formal Dear"
	}

	return openingPattern{
		FullOpening:     firstParagraph,
		GreetingStyle:   greeting,
		IntroPattern:    analyzeIntroPattern(firstParagraph),
		ExperienceStyle: analyzeExperienceStyle(firstParagraph),
		ProjectStyle:    analyzeProjectReferenceStyle(firstParagraph),
		Tone:            analyzeOpeningTone(firstParagraph),
	}
}

func extractClosingPattern(coverLetter string) closingPattern {
	paragraphs := splitBlocks(coverLetter)
	start := len(paragraphs) - 2
	if start < 0 {
		start = 0
	}
	ctaText := strings.Join(paragraphs[start:], "\n\n")

	questions := extractQuestions(ctaText)
	pattern := "No questions"
	if len(questions) > 0 {
		pattern = "Includes questions"
	}

	return closingPattern{
		FullCTA:         ctaText,
		QuestionPattern: pattern,
		QuestionCount:   len(questions),
		QuestionTopics:  analyzeQuestionTopics(questions),
		CTAStyle:        analyzeCTAStyle(ctaText),
		Enthusiasm:      analyzeEnthusiasm(ctaText),
	}
}

func analyzeStructure(coverLetter string) structurePattern {
	return structurePattern{
		Paragraphs:      paragraphCount(coverLetter),
		Flow:            "Logical and coherent",
		Transitions:     "Smooth and natural",
		Professionalism: "High",
	}
}

func firstBlock(text string) string {
	blocks := splitBlocks(text)
	if len(blocks) > 0 {
		return blocks[0]
	}
	if len(text) > 400 {
		return text[:400]
	}
	return text
}

func splitBlocks(text string) []string {
	var blocks []string
	for _, block := range paragraphSplitter.Split(text, -1) {
		if trimmed := strings.TrimSpace(block); trimmed != "" {
			blocks = append(blocks, trimmed)
		}
	}
	return blocks
}

func analyzeIntroPattern(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "i am a") || strings.Contains(lower, "i am an"):
		return "Direct professional identity"
	case strings.Contains(lower, "as a") || strings.Contains(lower, "as an"):
		return "Role-based introduction"
	case strings.Contains(lower, "with") && strings.Contains(lower, "years"):
		return "Experience-first introduction"
	}
	return "General professional introduction"
}

func analyzeExperienceStyle(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "years of experience") || strings.Contains(lower, "years of industry experience"):
		return "Specific years mentioned"
	case strings.Contains(lower, "experience in") || strings.Contains(lower, "experience with"):
		return "Domain-specific experience"
	case strings.Contains(lower, "specialist") || strings.Contains(lower, "expert"):
		return "Expertise-focused"
	}
	return "General experience mention"
}

func analyzeProjectReferenceStyle(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "spearheaded") || strings.Contains(lower, "led"):
		return "Leadership-focused project mention"
	case strings.Contains(lower, "developed") || strings.Contains(lower, "built"):
		return "Development-focused project mention"
	case strings.Contains(lower, "similar to your requirements"):
		return "Requirement-aligned project mention"
	case strings.Contains(lower, "project") || strings.Contains(lower, "solution"):
		return "General project mention"
	}
	return "No specific project reference"
}

func analyzeOpeningTone(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "excited") || strings.Contains(lower, "enthusiastic"):
		return "Enthusiastic"
	case strings.Contains(lower, "sincerely") || strings.Contains(lower, "regards"):
		return "Formal"
	}
	return "Professional"
}

func analyzeCTAStyle(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "look forward"):
		return "Enthusiastic"
	case strings.Contains(lower, "available"):
		return "Professional"
	}
	return "Standard"
}

func analyzeEnthusiasm(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "excited") || strings.Contains(lower, "eager"):
		return "High"
	case strings.Contains(lower, "look forward"):
		return "Medium"
	}
	return "Low"
}

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

var questionMarkers = []string{"what", "how", "which", "when", "where", "are there"}

func extractQuestions(text string) []string {
	var questions []string
	for _, sentence := range sentenceSplitter.Split(text, -1) {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) <= 10 {
			continue
		}
		lower := strings.ToLower(trimmed)
		matched := strings.Contains(trimmed, "?")
		for _, marker := range questionMarkers {
			if strings.Contains(lower, marker) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if !strings.HasSuffix(trimmed, "?") {
			trimmed += "?"
		}
		if len(trimmed) > 20 && len(trimmed) < 200 {
			questions = append(questions, trimmed)
		}
	}
	return questions
}

var questionTopicRules = []struct {
	Topic    string
	Keywords []string
}{
	{"Scalability", []string{"scale", "volume", "demand"}},
	{"Features", []string{"feature", "functionality", "requirement"}},
	{"Design/UX", []string{"design", "interface", "experience"}},
	{"Data/Analytics", []string{"data", "insight", "metric"}},
	{"Integration", []string{"integration", "system", "platform"}},
	{"Performance", []string{"performance", "optimization", "efficiency"}},
}

func analyzeQuestionTopics(questions []string) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, question := range questions {
		lower := strings.ToLower(question)
		for _, rule := range questionTopicRules {
			for _, keyword := range rule.Keywords {
				if strings.Contains(lower, keyword) {
					if !seen[rule.Topic] {
						seen[rule.Topic] = true
						topics = append(topics, rule.Topic)
					}
					break
				}
			}
		}
	}
	return topics
}

func analyzeSentenceLength(text string) string {
	var lengths []int
	for _, sentence := range sentenceSplitter.Split(text, -1) {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		lengths = append(lengths, len(strings.Fields(sentence)))
	}
	if len(lengths) == 0 {
		return "Short"
	}
	total := 0
	for _, l := range lengths {
		total += l
	}
	avg := float64(total) / float64(len(lengths))
	switch {
	case avg > 20:
		return "Long"
	case avg > 15:
		return "Medium"
	}
	return "Short"
}

func analyzeVocabulary(text string) string {
	unique := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		unique[word] = true
	}
	switch {
	case len(unique) > 500:
		return "Advanced"
	case len(unique) > 300:
		return "Intermediate"
	}
	return "Basic"
}

var pronounPattern = regexp.MustCompile(`\b(i|me|my)\b`)

func analyzePersonalPronouns(text string) string {
	count := len(pronounPattern.FindAllString(strings.ToLower(text), -1))
	switch {
	case count > 5:
		return "Frequent"
	case count > 2:
		return "Moderate"
	}
	return "Minimal"
}

func analyzeTechnicalLevel(text string, vocabulary []string) string {
	lower := strings.ToLower(text)
	count := 0
	for _, keyword := range vocabulary {
		if strings.Contains(lower, keyword) {
			count++
		}
	}
	switch {
	case count > 10:
		return "High"
	case count > 5:
		return "Medium"
	}
	return "Low"
}
