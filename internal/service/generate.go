package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davey/lotvoice/internal/assets"
	"github.com/davey/lotvoice/internal/domain"
	"github.com/davey/lotvoice/internal/logger"
	"github.com/davey/lotvoice/internal/storage"
)

// ScriptSource produces script variants for a spec sheet.
type ScriptSource interface {
	Write(ctx context.Context, specs *domain.Specs) ([]domain.Variant, error)
}

// Synthesizer turns text into an audio file at the given path.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, path string) error
}

// Generator runs the full pipeline: validate specs, generate script variants,
// synthesize one audio file per variant into a fresh batch directory, and
// assemble the response entries.
type Generator struct {
	scripts ScriptSource
	speech  Synthesizer
	store   *assets.Store
	mirror  storage.ObjectStorage // nil when mirroring is disabled
	baseURL string
	logger  *logger.Logger
}

// NewGenerator creates a new generation orchestrator. mirror may be nil.
func NewGenerator(
	scripts ScriptSource,
	speech Synthesizer,
	store *assets.Store,
	mirror storage.ObjectStorage,
	baseURL string,
	log *logger.Logger,
) *Generator {
	return &Generator{
		scripts: scripts,
		speech:  speech,
		store:   store,
		mirror:  mirror,
		baseURL: baseURL,
		logger:  log,
	}
}

// GenerateResult is the response payload of a successful generation run.
type GenerateResult struct {
	BatchID string                 `json:"batchId"`
	Files   []domain.GeneratedFile `json:"files"`
}

// Generate runs the pipeline for one request. Script generation failures
// happen before any batch state exists; synthesis failures abort the run and
// leave earlier files on disk (no rollback).
func (g *Generator) Generate(ctx context.Context, specs *domain.Specs) (*GenerateResult, error) {
	if err := specs.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	variants, err := g.scripts.Write(ctx, specs)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	ctx = logger.WithField(ctx, logger.FieldBatchID, batchID)

	if _, err := g.store.CreateBatchDir(batchID); err != nil {
		return nil, err
	}

	files := make([]domain.GeneratedFile, 0, len(variants))
	for i, v := range variants {
		ordinal := i + 1
		script := strings.TrimSpace(v.Voiceover)
		path := g.store.FilePath(batchID, ordinal)

		if err := g.speech.Synthesize(ctx, script, path); err != nil {
			logger.CtxError(ctx, "Synthesis failed for variant %d: %v", ordinal, err)
			return nil, err
		}

		g.mirrorFile(ctx, batchID, ordinal, path)

		files = append(files, domain.GeneratedFile{
			Label:    fmt.Sprintf("Variant %d (%s)", ordinal, v.Style),
			URL:      g.store.PublicURL(g.baseURL, batchID, ordinal),
			Script:   script,
			Beats:    orEmpty(v.Beats),
			Hashtags: capHashtags(v.Hashtags),
		})
	}

	logger.With(logger.Fields{
		logger.FieldCount:      len(files),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info(ctx, "Batch generated")

	return &GenerateResult{BatchID: batchID, Files: files}, nil
}

// mirrorFile uploads a generated file to the object storage mirror. Mirror
// failures never fail the request; the local file is the source of truth.
func (g *Generator) mirrorFile(ctx context.Context, batchID string, ordinal int, path string) {
	if g.mirror == nil {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		logger.CtxWarn(ctx, "Mirror skipped, cannot open %s: %v", path, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		logger.CtxWarn(ctx, "Mirror skipped, cannot stat %s: %v", path, err)
		return
	}

	key := batchID + "/" + assets.FileName(ordinal)
	if err := g.mirror.Upload(ctx, key, f, info.Size(), "audio/mpeg"); err != nil {
		logger.CtxWarn(ctx, "Mirror upload failed for %s: %v", key, err)
	}
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func capHashtags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	if len(tags) > domain.MaxHashtags {
		return tags[:domain.MaxHashtags]
	}
	return tags
}
