package renamed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newPollTestJob(t *testing.T, baseURL string, maxAttempts int) *Job {
	t.Helper()
	client := newTestHTTPClient(t, baseURL, 0)
	t.Cleanup(client.close)
	return newJob(client, baseURL+"/jobs/job_1/status", time.Millisecond, maxAttempts)
}

func TestJobWaitCompletesAfterThreePolls(t *testing.T) {
	var polls int32
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&polls, 1)
		w.Header().Set("Content-Type", "application/json")
		switch n {
		case 1:
			fmt.Fprint(w, `{"jobId":"job_1","status":"processing","progress":33}`)
		case 2:
			fmt.Fprint(w, `{"jobId":"job_1","status":"processing","progress":66}`)
		default:
			fmt.Fprint(w, `{"jobId":"job_1","status":"completed","progress":100,"result":{"originalFilename":"scans.pdf","totalPages":6,"documents":[{"index":0,"filename":"invoice.pdf","pages":"1-3","downloadUrl":"https://cdn.renamed.to/d/1","size":1024}]}}`)
		}
	}))
	defer server.Close()

	job := newPollTestJob(t, server.URL, 150)

	var progress []int
	result, err := job.Wait(func(s *JobStatusResponse) {
		progress = append(progress, s.Progress)
	})
	if err != nil {
		t.Fatalf("wait failed: %v", err)
	}

	if got := atomic.LoadInt32(&polls); got != 3 {
		t.Fatalf("expected exactly 3 polls, got %d", got)
	}
	if len(progress) != 3 || progress[0] != 33 || progress[1] != 66 || progress[2] != 100 {
		t.Fatalf("unexpected progress callbacks: %v", progress)
	}
	if result.OriginalFilename != "scans.pdf" || result.TotalPages != 6 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Documents) != 1 || result.Documents[0].Filename != "invoice.pdf" {
		t.Fatalf("unexpected documents: %+v", result.Documents)
	}
}

func TestJobWaitTimesOutAfterMaxAttempts(t *testing.T) {
	var polls int32
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&polls, 1)
		fmt.Fprint(w, `{"jobId":"job_1","status":"processing","progress":10}`)
	}))
	defer server.Close()

	job := newPollTestJob(t, server.URL, 3)

	_, err := job.Wait(nil)
	if got := atomic.LoadInt32(&polls); got != 3 {
		t.Fatalf("expected exactly 3 polls, got %d", got)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindJob {
		t.Fatalf("expected job error, got %v", err)
	}
	if apiErr.Message != "Job polling timeout exceeded" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if apiErr.JobID != "" {
		t.Fatalf("synthetic timeout must not carry a job id, got %q", apiErr.JobID)
	}
}

func TestJobWaitFailedJobCarriesMessageAndID(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jobId":"job_1","status":"failed","error":"PDF is corrupted"}`)
	}))
	defer server.Close()

	job := newPollTestJob(t, server.URL, 150)

	_, err := job.Wait(nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindJob {
		t.Fatalf("expected job error, got %v", err)
	}
	if apiErr.Message != "PDF is corrupted" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if apiErr.JobID != "job_1" {
		t.Fatalf("jobID = %q", apiErr.JobID)
	}
}

func TestJobWaitFailedJobWithoutMessage(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jobId":"job_2","status":"failed"}`)
	}))
	defer server.Close()

	job := newPollTestJob(t, server.URL, 150)

	_, err := job.Wait(nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindJob {
		t.Fatalf("expected job error, got %v", err)
	}
	if apiErr.Message != "Job failed" {
		t.Fatalf("message = %q, want default", apiErr.Message)
	}
}

func TestJobWaitCompletedWithoutResultIsProtocolViolation(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jobId":"job_3","status":"completed","progress":100}`)
	}))
	defer server.Close()

	job := newPollTestJob(t, server.URL, 150)

	_, err := job.Wait(nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindJob {
		t.Fatalf("expected job error, got %v", err)
	}
	if apiErr.Message != "Job completed but result is missing or invalid" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if apiErr.JobID != "job_3" {
		t.Fatalf("jobID = %q", apiErr.JobID)
	}
}

func TestJobWaitPropagatesTransportError(t *testing.T) {
	var polls int32
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&polls, 1) == 1 {
			fmt.Fprint(w, `{"jobId":"job_1","status":"processing","progress":10}`)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	job := newPollTestJob(t, server.URL, 150)

	_, err := job.Wait(nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Kind != KindAuthentication {
		t.Fatalf("kind = %v, want the executor's classification untouched", apiErr.Kind)
	}
}

func TestJobWaitContextCancelsBetweenPolls(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jobId":"job_1","status":"processing","progress":10}`)
	}))
	defer server.Close()

	client := newTestHTTPClient(t, server.URL, 0)
	defer client.close()
	job := newJob(client, server.URL+"/jobs/job_1/status", time.Second, 150)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := job.WaitContext(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("cancellation did not interrupt the poll sleep")
	}
}

func TestJobWaitLogsOnlyChanges(t *testing.T) {
	var polls int32
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&polls, 1)
		switch {
		case n <= 3:
			fmt.Fprint(w, `{"jobId":"job_1","status":"processing","progress":50}`)
		default:
			fmt.Fprint(w, `{"jobId":"job_1","status":"completed","progress":100,"result":{"originalFilename":"a.pdf","totalPages":1,"documents":[]}}`)
		}
	}))
	defer server.Close()

	logger := &recordingLogger{}
	cfg := Config{
		APIKey:     "rt_test_key_123456",
		BaseURL:    server.URL,
		Timeout:    time.Second,
		MaxRetries: 0,
		Logger:     logger,
		Debug:      true,
	}
	client := newHTTPClient(cfg, newAuth(cfg))
	defer client.close()
	job := newJob(client, server.URL+"/jobs/job_1/status", time.Millisecond, 150)

	if _, err := job.WaitContext(context.Background(), nil); err != nil {
		t.Fatalf("wait failed: %v", err)
	}

	// 4 polls, but only 2 distinct snapshots: processing@50 and completed@100.
	jobLines := 0
	for _, line := range logger.Lines() {
		if len(line) >= 3 && line[:3] == "Job" {
			jobLines++
		}
	}
	if jobLines != 2 {
		t.Fatalf("expected 2 job log lines, got %d (%v)", jobLines, logger.Lines())
	}
}

func TestWaitAllReturnsResultsInOrder(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/jobs/a/status":
			fmt.Fprint(w, `{"jobId":"a","status":"completed","progress":100,"result":{"originalFilename":"a.pdf","totalPages":1,"documents":[]}}`)
		case "/jobs/b/status":
			fmt.Fprint(w, `{"jobId":"b","status":"completed","progress":100,"result":{"originalFilename":"b.pdf","totalPages":2,"documents":[]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestHTTPClient(t, server.URL, 0)
	defer client.close()

	jobs := []*Job{
		newJob(client, server.URL+"/jobs/a/status", time.Millisecond, 5),
		newJob(client, server.URL+"/jobs/b/status", time.Millisecond, 5),
	}

	results, err := WaitAll(context.Background(), jobs, nil)
	if err != nil {
		t.Fatalf("wait all failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].OriginalFilename != "a.pdf" || results[1].OriginalFilename != "b.pdf" {
		t.Fatalf("results out of order: %+v", results)
	}
}

func TestWaitAllFirstErrorWins(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/jobs/ok/status":
			fmt.Fprint(w, `{"jobId":"ok","status":"processing","progress":10}`)
		default:
			fmt.Fprint(w, `{"jobId":"bad","status":"failed","error":"PDF is corrupted"}`)
		}
	}))
	defer server.Close()

	client := newTestHTTPClient(t, server.URL, 0)
	defer client.close()

	jobs := []*Job{
		newJob(client, server.URL+"/jobs/ok/status", 10*time.Millisecond, 1000),
		newJob(client, server.URL+"/jobs/bad/status", time.Millisecond, 5),
	}

	_, err := WaitAll(context.Background(), jobs, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindJob {
		t.Fatalf("expected job error, got %v", err)
	}
	if apiErr.JobID != "bad" {
		t.Fatalf("jobID = %q", apiErr.JobID)
	}
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}
