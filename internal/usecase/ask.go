package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/rgoyal8/surveyor/internal/config"
	"github.com/rgoyal8/surveyor/internal/ingest"
	"github.com/rgoyal8/surveyor/internal/llm"
	"github.com/rgoyal8/surveyor/internal/sandbox"
	"github.com/rgoyal8/surveyor/internal/types"
	"github.com/rgoyal8/surveyor/internal/validator"
)

// AskInput is a single-shot question, optionally grounded on project files.
type AskInput struct {
	Query       string
	Style       string // "plain", "summary", "bullets"
	Paths       []string
	ProjectRoot string
}

// AskOutput is the answer plus what context fed it.
type AskOutput struct {
	Answer        string   `json:"answer"`
	FilesIncluded []string `json:"files_included,omitempty"`
	FilesSkipped  []string `json:"files_skipped,omitempty"`
}

// Asker answers one-off questions without the agent loop: it ingests
// requested files as context and makes a single model call with no tools.
type Asker struct {
	cfg     config.Config
	backend llm.Backend
	fs      afero.Fs
	logger  *zap.Logger
}

// NewAsker creates an asker. A nil backend gets the configured HTTP client;
// a nil fs gets the OS filesystem.
func NewAsker(cfg config.Config, backend llm.Backend, fs afero.Fs, logger *zap.Logger) *Asker {
	if backend == nil {
		backend = llm.NewClient(
			cfg.LLM.Endpoint,
			cfg.LLM.APIKey,
			cfg.LLM.Model,
			time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
			cfg.LLM.Temperature,
			cfg.LLM.MaxTokens,
		)
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Asker{cfg: cfg, backend: backend, fs: fs, logger: logger}
}

// Run answers the question.
func (a *Asker) Run(ctx context.Context, in AskInput) (*AskOutput, error) {
	v := validator.NewInputValidator()
	if err := v.Validate(in.Query); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	in.Query = v.Sanitize(in.Query)

	if in.ProjectRoot == "" {
		in.ProjectRoot = "."
	}

	out := &AskOutput{}
	var contextFiles []llm.ContextFile

	if len(in.Paths) > 0 {
		blacklist := sandbox.NewBlacklist(a.cfg.Sandbox.ExtraIgnores...)
		caps := ingest.Caps{
			MaxFiles:      a.cfg.Ingest.MaxFiles,
			MaxTotalBytes: a.cfg.Ingest.MaxTotalBytes,
			MaxFileBytes:  a.cfg.Ingest.MaxFileBytes,
		}
		res, err := ingest.Collect(a.fs, in.ProjectRoot, in.Paths, blacklist, caps)
		if err != nil {
			return nil, fmt.Errorf("collect context: %w", err)
		}
		for _, f := range res.Files {
			contextFiles = append(contextFiles, llm.ContextFile{Path: f.Path, Content: f.Content})
			out.FilesIncluded = append(out.FilesIncluded, f.Path)
		}
		out.FilesSkipped = res.Skipped
		a.logger.Debug("ingested context",
			zap.Int("included", len(res.Files)),
			zap.Int("skipped", len(res.Skipped)),
			zap.Int64("bytes", res.TotalBytes))
	}

	prompt := llm.BuildAskPrompt(llm.AskPromptInput{
		Query:   in.Query,
		Style:   in.Style,
		Context: contextFiles,
	})

	msgs := []types.Message{{Role: types.RoleUser, Content: prompt}}
	resp, err := a.backend.Generate(ctx, msgs, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	out.Answer = resp.Message
	return out, nil
}
