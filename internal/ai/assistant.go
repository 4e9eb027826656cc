// Package ai wraps the Gemini model behind the career-assistant
// features: free-form chat, mock interviews and headhunting summaries.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	apperrors "github.com/23BCE0066/Hirely/internal/common/errors"
	"github.com/23BCE0066/Hirely/internal/common/logger"
)

const chatPrompt = `You are Hirely's career assistant. You help candidates with
job search strategy, resume advice, interview preparation and career growth.
Keep answers practical and concise.

User question:
%s`

const mockInterviewPrompt = `You are an experienced interviewer conducting a mock
interview for the role of "%s". Ask one question at a time, and give brief,
constructive feedback on the candidate's previous answer before asking the next
question. Stay in character as the interviewer.

Conversation so far:
%s`

const headhuntPrompt = `You are a technical recruiter. Given the candidate profile
below, write a short headhunting summary: the roles they are best suited for,
their standout strengths, and one suggested next step. Do not invent details that
are not in the profile.

Candidate profile:
%s`

// Assistant holds a single model client reused across requests.
type Assistant struct {
	client llms.Model
	log    logger.Logger
}

func New(ctx context.Context, apiKey, model string, log logger.Logger) (*Assistant, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, apperrors.NewAIGenerationFailed(fmt.Errorf("initialize model client: %w", err))
	}
	return &Assistant{
		client: llm,
		log:    log.WithFields(map[string]interface{}{"component": "ai"}),
	}, nil
}

// Chat answers a free-form career question.
func (a *Assistant) Chat(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", apperrors.NewValidationError("question must not be empty")
	}
	return a.generate(ctx, "chat", fmt.Sprintf(chatPrompt, question))
}

// MockInterview continues an interview session for the given role.
// transcript carries the conversation so far; empty means start fresh.
func (a *Assistant) MockInterview(ctx context.Context, role, transcript string) (string, error) {
	if strings.TrimSpace(role) == "" {
		return "", apperrors.NewValidationError("role must not be empty")
	}
	if strings.TrimSpace(transcript) == "" {
		transcript = "(no answers yet, open with your first question)"
	}
	return a.generate(ctx, "mock_interview", fmt.Sprintf(mockInterviewPrompt, role, transcript))
}

// Headhunt produces a recruiter-style summary of a candidate profile.
func (a *Assistant) Headhunt(ctx context.Context, profile string) (string, error) {
	if strings.TrimSpace(profile) == "" {
		return "", apperrors.NewValidationError("profile must not be empty")
	}
	return a.generate(ctx, "headhunt", fmt.Sprintf(headhuntPrompt, profile))
}

func (a *Assistant) generate(ctx context.Context, feature, prompt string) (string, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, a.client, prompt)
	if err != nil {
		a.log.WithError(err).Error("model generation failed", map[string]interface{}{"feature": feature})
		return "", apperrors.NewAIGenerationFailed(err)
	}
	return resp, nil
}
