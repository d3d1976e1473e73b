package renamed

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Job is the handle for a server-side asynchronous unit of work (currently
// PDF splitting), tracked via a status URL. It has no background goroutine:
// all polling is driven by the caller through Status and Wait.
type Job struct {
	http         *httpClient
	statusURL    string
	pollInterval time.Duration
	maxAttempts  int
}

func newJob(http *httpClient, statusURL string, pollInterval time.Duration, maxAttempts int) *Job {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxPollAttempts
	}
	return &Job{
		http:         http,
		statusURL:    statusURL,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
	}
}

// StatusURL returns the server-issued URL this job polls.
func (j *Job) StatusURL() string {
	return j.statusURL
}

// Status performs a single poll with no waiting.
func (j *Job) Status() (*JobStatusResponse, error) {
	return j.StatusWithContext(context.Background())
}

// StatusWithContext performs a single poll with a caller-supplied context.
// Transport failures are retried only by the request executor's own budget.
func (j *Job) StatusWithContext(ctx context.Context) (*JobStatusResponse, error) {
	var status JobStatusResponse
	if err := j.http.get(ctx, j.statusURL, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ProgressCallback receives each status snapshot during Wait, in poll order,
// before terminal conditions are checked.
type ProgressCallback func(*JobStatusResponse)

// Wait polls until the job reaches a terminal state and returns the result.
func (j *Job) Wait(onProgress ProgressCallback) (*PdfSplitResult, error) {
	return j.WaitContext(context.Background(), onProgress)
}

// WaitContext polls until the job completes, fails, or the attempt budget is
// exhausted. Polls are strictly sequential; the inter-poll sleep and the
// in-flight request both honor ctx cancellation. A transport-level poll
// failure aborts the wait immediately: the request executor has already
// spent its retry budget on it.
func (j *Job) WaitContext(ctx context.Context, onProgress ProgressCallback) (*PdfSplitResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var lastStatus JobStatus
	lastProgress := -1

	for attempt := 0; attempt < j.maxAttempts; attempt++ {
		status, err := j.StatusWithContext(ctx)
		if err != nil {
			return nil, err
		}

		// One log line per change in status or progress; terminal
		// transitions are always new and therefore always logged.
		if status.Status != lastStatus || status.Progress != lastProgress {
			j.http.logf("Job %s: %s (%d%%)", status.JobID, status.Status, status.Progress)
			lastStatus = status.Status
			lastProgress = status.Progress
		}

		if onProgress != nil {
			onProgress(status)
		}

		switch status.Status {
		case JobStatusCompleted:
			if status.Result == nil {
				return nil, newJobError("Job completed but result is missing or invalid", status.JobID)
			}
			return status.Result, nil
		case JobStatusFailed:
			return nil, newJobError(status.Error, status.JobID)
		}

		if err := sleepWithContext(ctx, j.pollInterval); err != nil {
			return nil, err
		}
	}

	return nil, newJobError("Job polling timeout exceeded", "")
}

// WaitAll waits for several jobs concurrently and returns their results in
// input order. Each job polls independently; the first error cancels the
// remaining waits. onProgress, if supplied, receives the job's index along
// with each snapshot and must be safe for concurrent use.
func WaitAll(ctx context.Context, jobs []*Job, onProgress func(int, *JobStatusResponse)) ([]*PdfSplitResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]*PdfSplitResult, len(jobs))
	g, ctx := errgroup.WithContext(ctx)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			var cb ProgressCallback
			if onProgress != nil {
				cb = func(s *JobStatusResponse) { onProgress(i, s) }
			}
			result, err := job.WaitContext(ctx, cb)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
