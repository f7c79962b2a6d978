package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/prnow/prnow/internal/models"
	"github.com/prnow/prnow/pkg/logger"
)

// Task drafts a single email
type Task struct {
	Label string
	Run   func(ctx context.Context) (*models.OutreachEmail, error)
}

// Result is the outcome of one Task. Exactly one of Email and Err is set.
type Result struct {
	Label string
	Email *models.OutreachEmail
	Err   error
}

// DraftPool runs drafting tasks with a bounded number of requests in
// flight. One failing task never cancels the others.
type DraftPool struct {
	concurrency int
}

// NewDraftPool creates a pool; concurrency below 1 is treated as 1
func NewDraftPool(concurrency int) *DraftPool {
	return &DraftPool{concurrency: max(concurrency, 1)}
}

func (p *DraftPool) Concurrency() int {
	return p.concurrency
}

// Run executes tasks and returns their results in task order
func (p *DraftPool) Run(ctx context.Context, tasks []Task) []Result {
	results := make([]Result, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	start := time.Now()
	logger.WithFields(logrus.Fields{
		"tasks":       len(tasks),
		"concurrency": p.concurrency,
	}).Info("Starting draft batch")

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, task := range tasks {
		g.Go(func() error {
			results[i] = runTask(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.WithFields(logrus.Fields{
		"tasks":    len(tasks),
		"failed":   failed,
		"duration": time.Since(start).String(),
	}).Info("Draft batch finished")

	return results
}

func runTask(ctx context.Context, task Task) Result {
	if err := ctx.Err(); err != nil {
		return Result{Label: task.Label, Err: err}
	}

	email, err := task.Run(ctx)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"task":  task.Label,
			"error": err.Error(),
		}).Warn("Draft task failed")
		return Result{Label: task.Label, Err: err}
	}
	if email == nil {
		return Result{Label: task.Label, Err: errNoDraft}
	}
	return Result{Label: task.Label, Email: email}
}
