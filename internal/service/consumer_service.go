package service

import (
	"context"
	"encoding/json"
	"time"

	"coverletter-ai-be/internal/dto"
	"coverletter-ai-be/internal/repository/specification"
	"coverletter-ai-be/internal/repository/unitofwork"
	"coverletter-ai-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            *zap.Logger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger *zap.Logger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedExampleMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("failed to unmarshal embed message", zap.Error(err))
		msg.Ack() // invalid payload would never succeed on retry
		return
	}

	cs.logger.Info("processing example embedding",
		zap.String("kind", payload.Kind),
		zap.String("example_id", payload.ExampleId.String()))

	if err := cs.embedExample(ctx, payload); err != nil {
		cs.logger.Error("failed to embed example",
			zap.String("kind", payload.Kind),
			zap.String("example_id", payload.ExampleId.String()),
			zap.Error(err))
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *consumerService) embedExample(ctx context.Context, payload dto.PublishEmbedExampleMessage) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	switch payload.Kind {
	case dto.EmbedKindCoverLetter:
		example, err := uow.CoverLetterExampleRepository().FindOne(ctx, specification.ByID{ID: payload.ExampleId})
		if err != nil {
			return err
		}
		if example == nil {
			cs.logger.Warn("cover letter example gone before embedding", zap.String("example_id", payload.ExampleId.String()))
			return nil
		}
		vector, err := cs.generate(ctx, example.CombinedText())
		if err != nil {
			return err
		}
		now := time.Now()
		example.CombinedEmbedding = vector
		example.UpdatedAt = &now
		return uow.CoverLetterExampleRepository().Update(ctx, example)

	case dto.EmbedKindProject:
		example, err := uow.ProjectExampleRepository().FindOne(ctx, specification.ByID{ID: payload.ExampleId})
		if err != nil {
			return err
		}
		if example == nil {
			cs.logger.Warn("project example gone before embedding", zap.String("example_id", payload.ExampleId.String()))
			return nil
		}
		vector, err := cs.generate(ctx, example.CombinedText())
		if err != nil {
			return err
		}
		now := time.Now()
		example.CombinedEmbedding = vector
		example.UpdatedAt = &now
		return uow.ProjectExampleRepository().Update(ctx, example)

	case dto.EmbedKindSkill:
		example, err := uow.SkillExampleRepository().FindOne(ctx, specification.ByID{ID: payload.ExampleId})
		if err != nil {
			return err
		}
		if example == nil {
			cs.logger.Warn("skill example gone before embedding", zap.String("example_id", payload.ExampleId.String()))
			return nil
		}
		vector, err := cs.generate(ctx, example.CombinedText())
		if err != nil {
			return err
		}
		now := time.Now()
		example.CombinedEmbedding = vector
		example.UpdatedAt = &now
		return uow.SkillExampleRepository().Update(ctx, example)
	}

	cs.logger.Warn("unknown embed kind", zap.String("kind", payload.Kind))
	return nil
}

func (cs *consumerService) generate(ctx context.Context, text string) ([]float32, error) {
	res, err := cs.embeddingProvider.Generate(ctx, text, embedding.InputTypeDocument)
	if err != nil {
		return nil, err
	}
	return res.Embedding, nil
}
