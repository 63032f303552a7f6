package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mindfold-ai/mindfold/internal/domain"
	"github.com/mindfold-ai/mindfold/internal/tagging"
)

var (
	ErrQuestionEmpty = errors.New("question is required")
	ErrAnswerEmpty   = errors.New("answer is required")
)

// InteractionService appends chat exchanges to the episodic store with
// an auto-tag pass and a heuristic confidence score.
type InteractionService struct {
	episodic domain.EpisodicStore
	logger   *zap.Logger
}

func NewInteractionService(episodic domain.EpisodicStore, logger *zap.Logger) *InteractionService {
	return &InteractionService{episodic: episodic, logger: logger}
}

// Log records one chat exchange. The record is immutable once appended.
func (s *InteractionService) Log(ctx context.Context, question, answer string, extraTags []string) (*domain.Interaction, error) {
	if question == "" {
		return nil, ErrQuestionEmpty
	}
	if answer == "" {
		return nil, ErrAnswerEmpty
	}

	in := &domain.Interaction{
		Platform:     domain.PlatformChat,
		Question:     question,
		Answer:       answer,
		AuthorIsUser: true,
		Tags:         tagging.Merge(tagging.Tags(question+" "+answer), extraTags),
		Confidence:   tagging.Confidence(question, answer),
	}

	if err := s.episodic.Append(ctx, in); err != nil {
		return nil, err
	}

	s.logger.Debug("interaction logged",
		zap.String("id", in.ID),
		zap.Int64("seq", in.Seq),
		zap.Float32("confidence", in.Confidence))

	return in, nil
}
