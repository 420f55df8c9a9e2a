package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/mteja/jobscout/internal/contentgen"
	"github.com/mteja/jobscout/internal/utils"
)

type generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Writer renders outreach emails through Gemini, falling back on the
// template writer for the subject line so subjects stay deterministic.
type Writer struct {
	generator generator
	subjects  *contentgen.TemplateWriter
	logger    *zap.Logger
	maxLogLen int
}

func NewWriter(gen generator, logger *zap.Logger, maxLogLength int) *Writer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Writer{
		generator: gen,
		subjects:  contentgen.NewTemplateWriter(),
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (w *Writer) Write(ctx context.Context, req *contentgen.Request) (*contentgen.Email, error) {
	templated, err := w.subjects.Write(ctx, req)
	if err != nil {
		return nil, err
	}

	senderJSON, err := json.MarshalIndent(map[string]any{
		"name":   req.Sender.Name,
		"email":  req.Sender.Email,
		"skills": req.Skills,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sender payload: %w", err)
	}

	jobJSON, err := json.MarshalIndent(req.Job, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job payload: %w", err)
	}

	prompt := buildPrompt(string(senderJSON), string(jobJSON))

	w.logger.Debug("gemini generate content request",
		zap.String("job_url", req.Job.URL),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, w.maxLogLen)),
	)

	body, err := w.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	w.logger.Debug("gemini generate content response",
		zap.String("job_url", req.Job.URL),
		zap.Int("response_length", utf8.RuneCountInString(body)),
		zap.String("response_preview", utils.TruncateForLog(body, w.maxLogLen)),
	)

	return &contentgen.Email{Subject: templated.Subject, Body: strings.TrimSpace(body)}, nil
}

func buildPrompt(senderJSON, jobJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate:\n{{SENDER_JSON}}\n\nJob posting:\n{{JOB_JSON}}\n\nWrite only the email body."
	}
	prompt := strings.ReplaceAll(template, "{{SENDER_JSON}}", senderJSON)
	return strings.ReplaceAll(prompt, "{{JOB_JSON}}", jobJSON)
}
