// Package pipeline sequences the voice-to-form flow: transcription, field
// extraction, specification enrichment and form assembly.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"camo-inv-go/internal/assembler"
	"camo-inv-go/internal/enricher"
	"camo-inv-go/internal/logger"
	"camo-inv-go/internal/samples"
	"camo-inv-go/internal/types"
)

// Transcriber converts an audio byte stream into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Extractor turns transcription text into a structured equipment record.
type Extractor interface {
	Extract(ctx context.Context, transcription string) (types.EquipmentRecord, error)
}

// Orchestrator owns one invocation of the pipeline. Collaborators are
// injected by the caller, which also owns their lifecycle.
type Orchestrator struct {
	transcriber Transcriber
	extractor   Extractor
	enricher    *enricher.Enricher

	// CallTimeout bounds each collaborator call. A timed-out transcription
	// or extraction fails the invocation; a timed-out enrichment degrades.
	CallTimeout time.Duration
}

func New(t Transcriber, x Extractor, e *enricher.Enricher) *Orchestrator {
	return &Orchestrator{
		transcriber: t,
		extractor:   x,
		enricher:    e,
		CallTimeout: 25 * time.Second,
	}
}

// Run processes one audio input end-to-end and always returns an envelope,
// success or failure. With useSample true, or no audio at all, transcription
// and extraction are skipped in favor of the representative sample record,
// which already carries populated specifications.
func (o *Orchestrator) Run(ctx context.Context, audio []byte, useSample bool) types.Envelope {
	log := logger.Component("pipeline")
	start := time.Now()

	if useSample || len(audio) == 0 {
		return o.runSample(log, start)
	}

	// 1) transcription
	trCtx, cancel := context.WithTimeout(ctx, o.CallTimeout)
	transcription, err := o.transcriber.Transcribe(trCtx, audio)
	cancel()
	if err != nil {
		log.WithError(err).Warn("transcription failed")
		env := types.ErrorEnvelope("", fmt.Sprintf("transcription error: %v", err), types.ScrapeSkipped)
		env.DurationMs = time.Since(start).Milliseconds()
		return env
	}

	// 2) field extraction
	exCtx, cancel := context.WithTimeout(ctx, o.CallTimeout)
	rec, err := o.extractor.Extract(exCtx, transcription)
	cancel()
	if err != nil {
		log.WithError(err).Warn("extraction failed")
		env := types.ErrorEnvelope(transcription, fmt.Sprintf("extraction error: %v", err), types.ScrapeSkipped)
		env.DurationMs = time.Since(start).Milliseconds()
		return env
	}

	return o.enrichAndAssemble(ctx, log, start, transcription, rec)
}

// RunText processes already-transcribed text, skipping the transcription
// step. Used by the process-text surface.
func (o *Orchestrator) RunText(ctx context.Context, text string) types.Envelope {
	log := logger.Component("pipeline")
	start := time.Now()

	exCtx, cancel := context.WithTimeout(ctx, o.CallTimeout)
	rec, err := o.extractor.Extract(exCtx, text)
	cancel()
	if err != nil {
		log.WithError(err).Warn("extraction failed")
		env := types.ErrorEnvelope(text, fmt.Sprintf("extraction error: %v", err), types.ScrapeSkipped)
		env.DurationMs = time.Since(start).Milliseconds()
		return env
	}

	return o.enrichAndAssemble(ctx, log, start, text, rec)
}

// enrichAndAssemble runs the shared tail of both entry points: best-effort
// enrichment, additive merge, then form assembly.
func (o *Orchestrator) enrichAndAssemble(ctx context.Context, log *logrus.Entry, start time.Time, transcription string, rec types.EquipmentRecord) types.Envelope {
	enCtx, cancel := context.WithTimeout(ctx, o.CallTimeout)
	scraped, status := o.enricher.Enrich(enCtx, rec.Brand, rec.Model)
	cancel()
	rec.Specifications = enricher.Merge(rec.Specifications, scraped)

	payload, err := assembler.Assemble(rec)
	if err != nil {
		log.WithError(err).Error("assembly failed despite extractor guarantee")
		env := types.ErrorEnvelope(transcription, fmt.Sprintf("assembly error: %v", err), string(status))
		env.DurationMs = time.Since(start).Milliseconds()
		return env
	}

	env := types.Envelope{
		Success:           true,
		ProcessingStatus:  types.StatusSuccess,
		Transcription:     transcription,
		WebScrapingStatus: string(status),
		EquipmentRecord:   rec,
		FieldsPopulated:   payload.PopulatedCount(),
		DurationMs:        time.Since(start).Milliseconds(),
	}
	log.WithField("name", rec.Name).
		WithField("fields_populated", env.FieldsPopulated).
		WithField("web_scraping_status", env.WebScrapingStatus).
		Info("pipeline completed")
	return env
}

func (o *Orchestrator) runSample(log *logrus.Entry, start time.Time) types.Envelope {
	s := samples.Default()
	rec := s.Clone()
	payload, err := assembler.Assemble(rec)
	if err != nil {
		env := types.ErrorEnvelope(s.Transcription, fmt.Sprintf("assembly error: %v", err), types.ScrapeSkipped)
		env.DurationMs = time.Since(start).Milliseconds()
		return env
	}
	log.Info("sample mode: returning representative record")
	return types.Envelope{
		Success:           true,
		ProcessingStatus:  types.StatusSuccess,
		Transcription:     s.Transcription,
		WebScrapingStatus: types.ScrapeSkipped,
		EquipmentRecord:   rec,
		FieldsPopulated:   payload.PopulatedCount(),
		DurationMs:        time.Since(start).Milliseconds(),
	}
}
