package analysis

import "strings"

// JobAnalysis is the keyword-derived profile of a job posting. It is computed
// fresh per request and never persisted.
type JobAnalysis struct {
	Domains       []string `json:"domains"`
	Technologies  []string `json:"technologies"`
	PrimaryDomain string   `json:"primary_domain"`
	IsMultiDomain bool     `json:"is_multi_domain"`
}

// DefaultDomain is used when no domain trigger matches the job text.
const DefaultDomain = "General"

// maxTechnologies caps the extracted technology list.
const maxTechnologies = 10

type domainDefinition struct {
	Name     string
	Triggers []string
}

// domainDefinitions is checked in order; the first matching domain becomes
// PrimaryDomain, so the order encodes priority (AI/ML before the broader
// Web Development, etc.). Do not sort.
var domainDefinitions = []domainDefinition{
	{
		Name: "AI/ML",
		Triggers: []string{
			"ai", "artificial intelligence", "machine learning", "ml",
			"deep learning", "neural network", "data science", "nlp",
			"computer vision", "tensorflow", "pytorch", "scikit-learn",
		},
	},
	{
		Name: "Web Development",
		Triggers: []string{
			"web", "frontend", "backend", "full stack", "react", "vue",
			"angular", "javascript", "html", "css", "node.js", "express",
		},
	},
	{
		Name: "Mobile Development",
		Triggers: []string{
			"mobile", "ios", "android", "flutter", "react native", "swift",
			"kotlin", "app development",
		},
	},
	{
		Name: "Data Science",
		Triggers: []string{
			"data", "analytics", "statistics", "sql", "python", "r ",
			"tableau", "power bi", "data warehouse", "etl",
		},
	},
	{
		Name: "DevOps",
		Triggers: []string{
			"devops", "cloud", "aws", "azure", "gcp", "docker", "kubernetes",
			"ci/cd", "terraform", "jenkins",
		},
	},
	{
		Name: "Design",
		Triggers: []string{
			"design", "ui", "ux", "figma", "photoshop", "sketch",
			"user experience", "user interface",
		},
	},
	{
		Name: "Management",
		Triggers: []string{
			"management", "project manager", "product manager", "team lead",
			"scrum", "agile", "leadership", "strategy",
		},
	},
}

// techVocabulary is scanned in order; extraction order therefore follows this
// list, not match strength.
var techVocabulary = []string{
	"react", "vue", "angular", "javascript", "typescript", "node.js",
	"python", "java", "php", "ruby", "go", "rust", "swift", "kotlin",
	"flutter", "react native", "mongodb", "postgresql", "mysql", "redis",
	"aws", "azure", "gcp", "docker", "kubernetes", "git", "jenkins",
	"terraform", "figma", "photoshop", "sketch", "tensorflow", "pytorch",
	"scikit-learn", "pandas", "numpy", "jupyter", "tableau", "power bi",
	"sql server", "oracle", "elasticsearch", "kafka", "spring", "django",
	"flask", "express", "laravel", "rails", "gin", "graphql", "rest api",
	"microservices", "serverless", "lambda", "html", "css", "sass", "less",
	"webpack", "vite", "babel", "jest", "cypress", "selenium", "postman",
	"jira", "confluence",
}

// TechnologyVocabulary exposes the scan vocabulary for callers that grade
// text against the same keyword set.
func TechnologyVocabulary() []string {
	return techVocabulary
}

// Analyzer derives domain tags and a technology keyword set from job text.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze classifies the combined job title + description.
func (a *Analyzer) Analyze(jobTitle, jobDescription string) JobAnalysis {
	combined := strings.ToLower(jobTitle + " " + jobDescription)

	var domains []string
	for _, def := range domainDefinitions {
		if containsAny(combined, def.Triggers) {
			domains = append(domains, def.Name)
		}
	}
	if len(domains) == 0 {
		domains = append(domains, DefaultDomain)
	}

	return JobAnalysis{
		Domains:       domains,
		Technologies:  extractTechnologies(combined),
		PrimaryDomain: domains[0],
		IsMultiDomain: len(domains) > 1,
	}
}

func containsAny(text string, triggers []string) bool {
	for _, trigger := range triggers {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	return false
}

func extractTechnologies(text string) []string {
	technologies := make([]string, 0, maxTechnologies)
	for _, tech := range techVocabulary {
		if strings.Contains(text, tech) {
			technologies = append(technologies, tech)
			if len(technologies) == maxTechnologies {
				break
			}
		}
	}
	return technologies
}
