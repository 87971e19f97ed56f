// Package digest writes the weekly progress report to disk on a cron
// schedule.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/report"
	"github.com/robfig/cron/v3"
)

// Generator renders report text. service.ReportService satisfies it.
type Generator interface {
	Generate(ctx context.Context, opts report.Options, labels report.Labels) (string, error)
}

type Options struct {
	Spec            string
	OutDir          string
	Labels          report.Labels
	IncludeAdhoc    bool
	IncludeWorkLogs bool
	Timeout         time.Duration
	Logger          *slog.Logger
	// Now is overridable for tests.
	Now func() time.Time
}

type Scheduler struct {
	reports Generator
	opts    Options
	cron    *cron.Cron

	mu      sync.Mutex
	entry   cron.EntryID
	written []string
}

// New parses opts.Spec with the standard five-field parser, which also
// accepts descriptors such as @daily and @every 1h.
func New(reports Generator, opts Options) (*Scheduler, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("digest: output directory is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	if opts.Labels.Locale == "" {
		opts.Labels = report.English
	}

	s := &Scheduler{reports: reports, opts: opts, cron: cron.New()}
	id, err := s.cron.AddFunc(opts.Spec, s.tick)
	if err != nil {
		return nil, fmt.Errorf("digest: parsing schedule %q: %w", opts.Spec, err)
	}
	s.entry = id
	return s, nil
}

func (s *Scheduler) Start() {
	s.opts.Logger.Info("digest scheduler started", "schedule", s.opts.Spec, "out_dir", s.opts.OutDir)
	s.cron.Start()
}

// Stop halts the schedule and waits for a running job to finish or ctx
// to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.opts.Logger.Info("digest scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next is the next scheduled run, zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

// Written lists every file path produced so far.
func (s *Scheduler) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.written))
	copy(out, s.written)
	return out
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
	defer cancel()
	if _, err := s.RunOnce(ctx); err != nil {
		s.opts.Logger.Error("digest run failed", "error", err)
	}
}

// RunOnce writes the report for the week containing the current day and
// returns the file path. Existing files for the same day are overwritten.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	now := s.opts.Now()
	today := calendar.Today(now)
	week := calendar.WeekRange(today)

	text, err := s.reports.Generate(ctx, report.Options{
		From:            week.From,
		To:              week.To,
		IncludeAdhoc:    s.opts.IncludeAdhoc,
		IncludeWorkLogs: s.opts.IncludeWorkLogs,
		Today:           today,
	}, s.opts.Labels)
	if err != nil {
		return "", fmt.Errorf("generating report: %w", err)
	}

	if err := os.MkdirAll(s.opts.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := FileName(s.opts.OutDir, today)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	s.mu.Lock()
	s.written = append(s.written, path)
	s.mu.Unlock()
	s.opts.Logger.Info("digest written", "path", path, "from", week.From.String(), "to", week.To.String())
	return path, nil
}

// FileName is the report path for day inside dir.
func FileName(dir string, day calendar.Date) string {
	return filepath.Join(dir, "report-"+day.String()+".txt")
}
