//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package pipeline implements the sequential stage runner behind the
// end-to-end command. Stages run in order; a stage failure stops the run and
// keeps the partial timing record.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/invops/defectaudit/internal/logging"
)

// Stage is one named step of the batch pipeline.
type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

// StageResult records the outcome and wall time of one executed stage.
type StageResult struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Runner executes stages sequentially.
type Runner struct {
	stages  []Stage
	results []StageResult
}

// New creates a runner over the given stages.
func New(stages ...Stage) (*Runner, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("pipeline needs at least one stage")
	}
	for i, s := range stages {
		if s.Name == "" {
			return nil, fmt.Errorf("stage %d has no name", i)
		}
		if s.Run == nil {
			return nil, fmt.Errorf("stage %q has no run function", s.Name)
		}
	}
	return &Runner{stages: stages}, nil
}

// Run executes the stages in order and stops at the first failure. Cancelling
// the context stops the run between stages.
func (r *Runner) Run(ctx context.Context) error {
	r.results = r.results[:0]
	start := time.Now()

	for i, s := range r.stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline cancelled before stage %q: %w", s.Name, err)
		}

		logging.Info().
			Str("stage", s.Name).
			Int("step", i+1).
			Int("of", len(r.stages)).
			Msg("Stage starting")

		stageStart := time.Now()
		err := s.Run(ctx)
		elapsed := time.Since(stageStart)
		r.results = append(r.results, StageResult{Name: s.Name, Duration: elapsed, Err: err})

		if err != nil {
			logging.Error().
				Err(err).
				Str("stage", s.Name).
				Dur("elapsed", elapsed).
				Msg("Stage failed")
			return fmt.Errorf("stage %q failed: %w", s.Name, err)
		}

		logging.Info().
			Str("stage", s.Name).
			Dur("elapsed", elapsed).
			Msg("Stage complete")
	}

	logging.Info().
		Int("stages", len(r.stages)).
		Dur("elapsed", time.Since(start)).
		Msg("Pipeline complete")
	return nil
}

// Results returns the per-stage record of the last run.
func (r *Runner) Results() []StageResult {
	out := make([]StageResult, len(r.results))
	copy(out, r.results)
	return out
}
