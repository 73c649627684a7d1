// Package ingest is the boundary between free-form natural-language input
// and structured task creation. The primary path delegates to an external
// extraction service; every failure there degrades to a deterministic local
// splitter, so capture never hard-fails on the service.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mvu/taskpad/internal/model"
)

// ErrEmptyUtterance is returned when the utterance is empty or whitespace.
// Nothing reaches the store in that case.
var ErrEmptyUtterance = errors.New("ingest: empty utterance")

// TaskAdder is the slice of the task store the capture flow needs.
type TaskAdder interface {
	AddTask(title, description string, dueDate *time.Time, priority *model.Priority) (model.Task, error)
}

// Result describes the outcome of one capture.
type Result struct {
	// Transcription echoes the utterance that was processed.
	Transcription string

	// Added holds the tasks created, in extraction order.
	Added []model.Task

	// Dropped counts extracted titles that were discarded because the store
	// hit capacity mid-capture.
	Dropped int

	// Skipped counts extracted titles that failed boundary validation.
	Skipped int

	// UsedFallback reports whether the local splitter produced the titles.
	UsedFallback bool
}

// Service feeds extracted titles into the task store, one add per title.
type Service struct {
	extractor Extractor
	adder     TaskAdder
	log       *zap.Logger
}

// NewService creates a capture service. extractor may be nil, in which case
// only the local splitter is used.
func NewService(extractor Extractor, adder TaskAdder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{extractor: extractor, adder: adder, log: log}
}

// Capture converts one utterance into tasks. Each extracted title is handed
// to the store independently; capacity applies per add, and titles that no
// longer fit are counted in Result.Dropped rather than silently discarded.
//
// If ctx is cancelled while the extraction request is outstanding, the
// result is discarded and no tasks are added.
func (s *Service) Capture(ctx context.Context, utterance string) (Result, error) {
	res := Result{Transcription: utterance}

	if strings.TrimSpace(utterance) == "" {
		return res, ErrEmptyUtterance
	}

	titles := s.extract(ctx, utterance, &res)

	// The extraction call is the one genuinely asynchronous operation in the
	// capture flow. A request outstanding at dismiss time must be discarded
	// on arrival, not applied.
	if err := ctx.Err(); err != nil {
		s.log.Info("capture cancelled, discarding extracted titles",
			zap.Int("titles", len(titles)))
		return Result{Transcription: utterance}, fmt.Errorf("capture cancelled: %w", err)
	}

	for i, title := range titles {
		if err := ctx.Err(); err != nil {
			res.Dropped += len(titles) - i
			return res, fmt.Errorf("capture cancelled: %w", err)
		}

		trimmed, err := model.ValidateTitle(title)
		if err != nil {
			s.log.Warn("extracted title failed validation",
				zap.String("title", title), zap.Error(err))
			res.Skipped++
			continue
		}

		task, err := s.adder.AddTask(trimmed, "", nil, nil)
		if err != nil {
			// Capacity refusals drop this title and everything after it.
			res.Dropped = len(titles) - i
			s.log.Info("capture stopped at capacity",
				zap.Int("added", len(res.Added)),
				zap.Int("dropped", res.Dropped),
				zap.Error(err))
			return res, nil
		}
		res.Added = append(res.Added, task)
	}

	return res, nil
}

// extract runs the primary extractor and falls back to the local splitter on
// any error.
func (s *Service) extract(ctx context.Context, utterance string, res *Result) []string {
	if s.extractor != nil {
		titles, err := s.extractor.Extract(ctx, utterance)
		if err == nil {
			return titles
		}
		if ctx.Err() != nil {
			// Cancellation is handled by the caller; no fallback run.
			return nil
		}
		s.log.Warn("extraction service failed, using fallback splitter", zap.Error(err))
	}

	res.UsedFallback = true
	return Split(utterance)
}
