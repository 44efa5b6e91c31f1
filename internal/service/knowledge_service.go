package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"coverletter-ai-be/internal/dto"
	"coverletter-ai-be/internal/entity"
	"coverletter-ai-be/internal/repository/specification"
	"coverletter-ai-be/internal/repository/unitofwork"
	"coverletter-ai-be/pkg/rag/analysis"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	CreateCoverLetter(ctx context.Context, req *dto.CreateCoverLetterExampleRequest) (*dto.CreateExampleResponse, error)
	ListCoverLetters(ctx context.Context, req *dto.ListExamplesRequest) ([]*dto.CoverLetterExampleResponse, error)
	UpdateCoverLetter(ctx context.Context, req *dto.UpdateCoverLetterExampleRequest) (*dto.UpdateExampleResponse, error)
	DeleteCoverLetter(ctx context.Context, id uuid.UUID) error

	CreateProject(ctx context.Context, req *dto.CreateProjectExampleRequest) (*dto.CreateExampleResponse, error)
	ListProjects(ctx context.Context, req *dto.ListExamplesRequest) ([]*dto.ProjectExampleResponse, error)
	UpdateProject(ctx context.Context, req *dto.UpdateProjectExampleRequest) (*dto.UpdateExampleResponse, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	CreateSkill(ctx context.Context, req *dto.CreateSkillExampleRequest) (*dto.CreateExampleResponse, error)
	ListSkills(ctx context.Context, req *dto.ListExamplesRequest) ([]*dto.SkillExampleResponse, error)
	UpdateSkill(ctx context.Context, req *dto.UpdateSkillExampleRequest) (*dto.UpdateExampleResponse, error)
	DeleteSkill(ctx context.Context, id uuid.UUID) error
}

type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	analyzer         *analysis.Analyzer
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		analyzer:         analysis.NewAnalyzer(),
	}
}

func (s *knowledgeService) publishEmbed(ctx context.Context, kind string, exampleId uuid.UUID) error {
	payload, err := json.Marshal(dto.PublishEmbedExampleMessage{
		Kind:      kind,
		ExampleId: exampleId,
	})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payload)
}

// --- Cover letters ---

func (s *knowledgeService) CreateCoverLetter(ctx context.Context, req *dto.CreateCoverLetterExampleRequest) (*dto.CreateExampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	example := entity.CoverLetterExample{
		Id:             uuid.New(),
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		CoverLetter:    req.CoverLetter,
		Category:       req.Category,
		Metadata:       coverLetterMetadata(req.CoverLetter),
		CreatedAt:      time.Now(),
	}

	if err := uow.CoverLetterExampleRepository().Create(ctx, &example); err != nil {
		return nil, err
	}

	if err := s.publishEmbed(ctx, dto.EmbedKindCoverLetter, example.Id); err != nil {
		return nil, err
	}

	return &dto.CreateExampleResponse{Id: example.Id}, nil
}

func (s *knowledgeService) ListCoverLetters(ctx context.Context, req *dto.ListExamplesRequest) ([]*dto.CoverLetterExampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	examples, err := uow.CoverLetterExampleRepository().FindAll(ctx, listSpecs(req)...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.CoverLetterExampleResponse, 0, len(examples))
	for _, example := range examples {
		response = append(response, &dto.CoverLetterExampleResponse{
			Id:             example.Id,
			JobTitle:       example.JobTitle,
			JobDescription: example.JobDescription,
			CoverLetter:    example.CoverLetter,
			Category:       example.Category,
			WordCount:      example.Metadata.WordCount,
			ParagraphCount: example.Metadata.ParagraphCount,
			HasEmbedding:   len(example.CombinedEmbedding) > 0,
			CreatedAt:      example.CreatedAt,
			UpdatedAt:      example.UpdatedAt,
		})
	}
	return response, nil
}

func (s *knowledgeService) UpdateCoverLetter(ctx context.Context, req *dto.UpdateCoverLetterExampleRequest) (*dto.UpdateExampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	example, err := uow.CoverLetterExampleRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if example == nil {
		return nil, nil
	}

	now := time.Now()
	example.JobTitle = req.JobTitle
	example.JobDescription = req.JobDescription
	example.CoverLetter = req.CoverLetter
	example.Category = req.Category
	example.Metadata = coverLetterMetadata(req.CoverLetter)
	// Stale until the consumer re-embeds the new text.
	example.CombinedEmbedding = nil
	example.UpdatedAt = &now

	if err := uow.CoverLetterExampleRepository().Update(ctx, example); err != nil {
		return nil, err
	}

	if err := s.publishEmbed(ctx, dto.EmbedKindCoverLetter, example.Id); err != nil {
		return nil, err
	}

	return &dto.UpdateExampleResponse{Id: example.Id}, nil
}

func (s *knowledgeService) DeleteCoverLetter(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.CoverLetterExampleRepository().Delete(ctx, id)
}

// --- Projects ---

func (s *knowledgeService) CreateProject(ctx context.Context, req *dto.CreateProjectExampleRequest) (*dto.CreateExampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	example := entity.ProjectExample{
		Id:                 uuid.New(),
		ProjectTitle:       req.ProjectTitle,
		ProjectDescription: req.ProjectDescription,
		Category:           req.Category,
		Metadata:           s.projectMetadata(req.ProjectTitle, req.ProjectDescription),
		CreatedAt:          time.Now(),
	}

	if err := uow.ProjectExampleRepository().Create(ctx, &example); err != nil {
		return nil, err
	}

	if err := s.publishEmbed(ctx, dto.EmbedKindProject, example.Id); err != nil {
		return nil, err
	}

	return &dto.CreateExampleResponse{Id: example.Id}, nil
}

func (s *knowledgeService) ListProjects(ctx context.Context, req *dto.ListExamplesRequest) ([]*dto.ProjectExampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	examples, err := uow.ProjectExampleRepository().FindAll(ctx, listSpecs(req)...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ProjectExampleResponse, 0, len(examples))
	for _, example := range examples {
		response = append(response, &dto.ProjectExampleResponse{
			Id:                 example.Id,
			ProjectTitle:       example.ProjectTitle,
			ProjectDescription: example.ProjectDescription,
			Category:           example.Category,
			ProjectType:        example.Metadata.ProjectType,
			Technologies:       example.Metadata.Technologies,
			HasEmbedding:       len(example.CombinedEmbedding) > 0,
			CreatedAt:          example.CreatedAt,
			UpdatedAt:          example.UpdatedAt,
		})
	}
	return response, nil
}

func (s *knowledgeService) UpdateProject(ctx context.Context, req *dto.UpdateProjectExampleRequest) (*dto.UpdateExampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	example, err := uow.ProjectExampleRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if example == nil {
		return nil, nil
	}

	now := time.Now()
	example.ProjectTitle = req.ProjectTitle
	example.ProjectDescription = req.ProjectDescription
	example.Category = req.Category
	example.Metadata = s.projectMetadata(req.ProjectTitle, req.ProjectDescription)
	example.CombinedEmbedding = nil
	example.UpdatedAt = &now

	if err := uow.ProjectExampleRepository().Update(ctx, example); err != nil {
		return nil, err
	}

	if err := s.publishEmbed(ctx, dto.EmbedKindProject, example.Id); err != nil {
		return nil, err
	}

	return &dto.UpdateExampleResponse{Id: example.Id}, nil
}

func (s *knowledgeService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ProjectExampleRepository().Delete(ctx, id)
}

// --- Skills ---

func (s *knowledgeService) CreateSkill(ctx context.Context, req *dto.CreateSkillExampleRequest) (*dto.CreateExampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	example := entity.SkillExample{
		Id:               uuid.New(),
		SkillName:        req.SkillName,
		SkillDescription: req.SkillDescription,
		Category:         req.Category,
		Metadata: entity.SkillMetadata{
			SkillCategory:    req.SkillCategory,
			ProficiencyLevel: req.ProficiencyLevel,
		},
		CreatedAt: time.Now(),
	}

	if err := uow.SkillExampleRepository().Create(ctx, &example); err != nil {
		return nil, err
	}

	if err := s.publishEmbed(ctx, dto.EmbedKindSkill, example.Id); err != nil {
		return nil, err
	}

	return &dto.CreateExampleResponse{Id: example.Id}, nil
}

func (s *knowledgeService) ListSkills(ctx context.Context, req *dto.ListExamplesRequest) ([]*dto.SkillExampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	examples, err := uow.SkillExampleRepository().FindAll(ctx, listSpecs(req)...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SkillExampleResponse, 0, len(examples))
	for _, example := range examples {
		response = append(response, &dto.SkillExampleResponse{
			Id:               example.Id,
			SkillName:        example.SkillName,
			SkillDescription: example.SkillDescription,
			Category:         example.Category,
			SkillCategory:    example.Metadata.SkillCategory,
			ProficiencyLevel: example.Metadata.ProficiencyLevel,
			HasEmbedding:     len(example.CombinedEmbedding) > 0,
			CreatedAt:        example.CreatedAt,
			UpdatedAt:        example.UpdatedAt,
		})
	}
	return response, nil
}

func (s *knowledgeService) UpdateSkill(ctx context.Context, req *dto.UpdateSkillExampleRequest) (*dto.UpdateExampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	example, err := uow.SkillExampleRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if example == nil {
		return nil, nil
	}

	now := time.Now()
	example.SkillName = req.SkillName
	example.SkillDescription = req.SkillDescription
	example.Category = req.Category
	example.Metadata = entity.SkillMetadata{
		SkillCategory:    req.SkillCategory,
		ProficiencyLevel: req.ProficiencyLevel,
	}
	example.CombinedEmbedding = nil
	example.UpdatedAt = &now

	if err := uow.SkillExampleRepository().Update(ctx, example); err != nil {
		return nil, err
	}

	if err := s.publishEmbed(ctx, dto.EmbedKindSkill, example.Id); err != nil {
		return nil, err
	}

	return &dto.UpdateExampleResponse{Id: example.Id}, nil
}

func (s *knowledgeService) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SkillExampleRepository().Delete(ctx, id)
}

// listSpecs translates shared list-query parameters into specifications.
// Paging applies only when a positive limit is given.
func listSpecs(req *dto.ListExamplesRequest) []specification.Specification {
	specs := []specification.Specification{
		specification.ByCategory{Category: req.Category},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if req.Limit > 0 {
		page := req.Page
		if page < 1 {
			page = 1
		}
		specs = append(specs, specification.Pagination{
			Limit:  req.Limit,
			Offset: (page - 1) * req.Limit,
		})
	}
	return specs
}

// --- Metadata derivation ---

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

func coverLetterMetadata(coverLetter string) entity.CoverLetterMetadata {
	paragraphs := 0
	for _, block := range paragraphBreak.Split(coverLetter, -1) {
		if strings.TrimSpace(block) != "" {
			paragraphs++
		}
	}
	if paragraphs < 1 {
		paragraphs = 1
	}
	return entity.CoverLetterMetadata{
		WordCount:      len(strings.Fields(coverLetter)),
		ParagraphCount: paragraphs,
	}
}

// projectMetadata classifies the project with the same analyzer that scores
// incoming jobs, so rerank comparisons stay symmetric.
func (s *knowledgeService) projectMetadata(title, description string) entity.ProjectMetadata {
	result := s.analyzer.Analyze(title, description)

	technologies := result.Technologies
	if technologies == nil {
		technologies = []string{}
	}

	return entity.ProjectMetadata{
		ProjectType:  result.PrimaryDomain,
		Technologies: technologies,
		WordCount:    len(strings.Fields(description)),
	}
}
