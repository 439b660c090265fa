// Package answering retrieves candidate context for a query and asks the
// LLM to answer against a job description.
package answering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hireloop/talentscout/internal/domain"
	"github.com/hireloop/talentscout/internal/repository/vectorindex"
)

const systemPrompt = "You are an expert recruiting assistant. You will be provided with candidate profile information, " +
	"a job description, and a query. Your task is to intelligently answer the query by highlighting " +
	"relevant skills, experience, and attributes that match the job description. Provide a clear, concise, and " +
	"comprehensive response."

const userTemplate = "Candidate Context:\n%s\n\n" +
	"Job Description:\n%s\n\n" +
	"Query:\n%s\n\n" +
	"Based on the above, please provide an intelligent and detailed response that highlights the candidates' " +
	"qualifications and how they align with the job requirements."

// Service answers recruiting queries over an indexed namespace.
type Service struct {
	embedder      domain.Embedder
	retriever     Retriever
	completer     Completer
	topK          int
	hasCredential bool
	logger        *zap.Logger
}

// New creates an answering service. hasCredential reflects whether an LLM
// API key was configured; without one Answer fails before any network
// call.
func New(embedder domain.Embedder, retriever Retriever, completer Completer, topK int, hasCredential bool, logger *zap.Logger) *Service {
	if topK <= 0 {
		topK = 4
	}
	return &Service{
		embedder:      embedder,
		retriever:     retriever,
		completer:     completer,
		topK:          topK,
		hasCredential: hasCredential,
		logger:        logger,
	}
}

// Answer embeds the query, retrieves the nearest chunks from the
// namespace, and returns one completion for the fixed recruiting prompt.
// An empty retrieval still produces a completion call.
func (s *Service) Answer(ctx context.Context, ns *vectorindex.Namespace, jobDescription, query string) (string, error) {
	if !s.hasCredential {
		return "", fmt.Errorf("llm api key not configured: %w", domain.ErrMissingCredential)
	}

	embedded, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.retriever.Query(ctx, ns, embedded.Embedding, s.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	texts := make([]string, len(scored))
	for i, c := range scored {
		texts[i] = c.Text
	}
	context := strings.Join(texts, "\n\n")

	s.logger.Debug("retrieved context",
		zap.String("build_id", ns.BuildID),
		zap.Int("chunks", len(scored)),
	)

	answer, err := s.completer.Complete(ctx, systemPrompt, fmt.Sprintf(userTemplate, context, jobDescription, query))
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	return answer, nil
}
