package main

import (
	"context"
	"log"
	"os"
	"strings"

	"coverletter-ai-be/internal/dto"
	"coverletter-ai-be/internal/repository/unitofwork"
	"coverletter-ai-be/internal/service"
	"coverletter-ai-be/pkg/database"
	"coverletter-ai-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

type seedPublisher struct{}

// Publish is a no-op here; the seeder embeds rows inline instead of going
// through the running server's pipeline.
func (seedPublisher) Publish(ctx context.Context, payload []byte) error { return nil }

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	knowledgeService := service.NewKnowledgeService(uowFactory, seedPublisher{})

	var provider embedding.EmbeddingProvider
	if key := os.Getenv("COHERE_API_KEY"); key != "" {
		provider = embedding.NewCohereProvider(key)
	} else {
		color.Yellow("COHERE_API_KEY not set; seeding rows without embeddings")
	}

	ctx := context.Background()

	color.Cyan("Seeding cover letter examples...")
	for _, req := range sampleCoverLetters() {
		if _, err := knowledgeService.CreateCoverLetter(ctx, req); err != nil {
			color.Red("  failed: %s: %v", req.JobTitle, err)
			continue
		}
		color.Green("  created: %s", req.JobTitle)
	}

	color.Cyan("Seeding project examples...")
	for _, req := range sampleProjects() {
		if _, err := knowledgeService.CreateProject(ctx, req); err != nil {
			color.Red("  failed: %s: %v", req.ProjectTitle, err)
			continue
		}
		color.Green("  created: %s", req.ProjectTitle)
	}

	color.Cyan("Seeding skill examples...")
	for _, req := range sampleSkills() {
		if _, err := knowledgeService.CreateSkill(ctx, req); err != nil {
			color.Red("  failed: %s: %v", req.SkillName, err)
			continue
		}
		color.Green("  created: %s", req.SkillName)
	}

	if provider != nil {
		color.Cyan("Embedding seeded rows...")
		embedAll(ctx, uowFactory, provider)
	}

	color.Green("✅ Seeding completed")
}

// embedAll backfills embeddings for every row still missing one.
func embedAll(ctx context.Context, uowFactory unitofwork.RepositoryFactory, provider embedding.EmbeddingProvider) {
	uow := uowFactory.NewUnitOfWork(ctx)

	letters, err := uow.CoverLetterExampleRepository().FindAll(ctx)
	if err == nil {
		for _, letter := range letters {
			if len(letter.CombinedEmbedding) > 0 {
				continue
			}
			res, err := provider.Generate(ctx, letter.CombinedText(), embedding.InputTypeDocument)
			if err != nil {
				color.Red("  embed failed for cover letter %q: %v", letter.JobTitle, err)
				continue
			}
			letter.CombinedEmbedding = res.Embedding
			if err := uow.CoverLetterExampleRepository().Update(ctx, letter); err != nil {
				color.Red("  update failed for cover letter %q: %v", letter.JobTitle, err)
			}
		}
	}

	projects, err := uow.ProjectExampleRepository().FindAll(ctx)
	if err == nil {
		for _, project := range projects {
			if len(project.CombinedEmbedding) > 0 {
				continue
			}
			res, err := provider.Generate(ctx, project.CombinedText(), embedding.InputTypeDocument)
			if err != nil {
				color.Red("  embed failed for project %q: %v", project.ProjectTitle, err)
				continue
			}
			project.CombinedEmbedding = res.Embedding
			if err := uow.ProjectExampleRepository().Update(ctx, project); err != nil {
				color.Red("  update failed for project %q: %v", project.ProjectTitle, err)
			}
		}
	}

	skills, err := uow.SkillExampleRepository().FindAll(ctx)
	if err == nil {
		for _, skill := range skills {
			if len(skill.CombinedEmbedding) > 0 {
				continue
			}
			res, err := provider.Generate(ctx, skill.CombinedText(), embedding.InputTypeDocument)
			if err != nil {
				color.Red("  embed failed for skill %q: %v", skill.SkillName, err)
				continue
			}
			skill.CombinedEmbedding = res.Embedding
			if err := uow.SkillExampleRepository().Update(ctx, skill); err != nil {
				color.Red("  update failed for skill %q: %v", skill.SkillName, err)
			}
		}
	}
}

func sampleCoverLetters() []*dto.CreateCoverLetterExampleRequest {
	return []*dto.CreateCoverLetterExampleRequest{
		{
			JobTitle:       "Full Stack Developer",
			JobDescription: "Build and maintain a React storefront with a Node.js API and PostgreSQL database.",
			CoverLetter: strings.TrimSpace(`
Hi,

I am a Web Development specialist with 6+ years of experience specifically in React and Node.js. I have spearheaded a project similar to your requirements that is an ecommerce storefront serving 40k monthly visitors.

The storefront combined a React frontend with a Node.js API over PostgreSQL, and cut page load times by half while doubling conversion. I handled everything from schema design to deployment.

To better understand your requirements and align our goals, I would appreciate your insights on the following questions: What scale of traffic do you expect the platform to handle? How do you prioritize new feature development? Which integrations are most critical for your launch?

I am excited about the opportunity to contribute my skills and expertise to your project. I look forward to the possibility of discussing how my skills align with your project's needs. I am available for a discussion at your earliest convenience.

Sincerely,
[Your Name]`),
			Category: "web",
		},
		{
			JobTitle:       "Data Analyst",
			JobDescription: "Analyze customer behavior data with SQL and Python, building Tableau dashboards for leadership.",
			CoverLetter: strings.TrimSpace(`
Hi,

As a Data Science professional with deep experience in SQL and Python, I have delivered analytics projects that directly shaped product decisions.

Most recently I built a customer segmentation pipeline and a set of Tableau dashboards that leadership used to reallocate a six figure marketing budget.

What data sources does your team rely on most? How do you currently measure campaign effectiveness? Are there reporting gaps you want closed first?

I look forward to discussing how I can help. I am available at your earliest convenience.

Sincerely,
[Your Name]`),
			Category: "data",
		},
	}
}

func sampleProjects() []*dto.CreateProjectExampleRequest {
	return []*dto.CreateProjectExampleRequest{
		{
			ProjectTitle:       "Ecommerce Storefront",
			ProjectDescription: "React and TypeScript storefront backed by a Node.js API and PostgreSQL, with Stripe checkout and a Redis cache for catalog queries.",
			Category:           "web",
		},
		{
			ProjectTitle:       "Customer Segmentation Pipeline",
			ProjectDescription: "Python ETL over a PostgreSQL warehouse producing weekly customer segments, visualized in Tableau dashboards.",
			Category:           "data",
		},
		{
			ProjectTitle:       "Field Service Mobile App",
			ProjectDescription: "Flutter app for field technicians with offline sync, photo capture, and a REST API backend.",
			Category:           "mobile",
		},
	}
}

func sampleSkills() []*dto.CreateSkillExampleRequest {
	return []*dto.CreateSkillExampleRequest{
		{SkillName: "React", SkillDescription: "Component architecture, hooks, state management, and performance profiling in large single page applications.", Category: "web", SkillCategory: "Technical", ProficiencyLevel: "Expert"},
		{SkillName: "PostgreSQL", SkillDescription: "Schema design, query optimization, and operational tuning for transactional and analytical workloads.", Category: "web", SkillCategory: "Technical", ProficiencyLevel: "Advanced"},
		{SkillName: "Python", SkillDescription: "Data pipelines, scripting, and analysis with pandas and numpy.", Category: "data", SkillCategory: "Technical", ProficiencyLevel: "Advanced"},
		{SkillName: "Stakeholder Communication", SkillDescription: "Translating technical tradeoffs into clear options for non-technical decision makers.", Category: "", SkillCategory: "Soft", ProficiencyLevel: "Advanced"},
	}
}
