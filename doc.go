// Package renamed is the Go SDK for the renamed.to API: AI-powered file
// renaming, PDF splitting, and structured data extraction.
//
// # Installation
//
//	go get github.com/renamed-to/renamed-go@v1.0.0
//
// # Quick Start
//
// Create a client and rename a file:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//		"os"
//
//		renamed "github.com/renamed-to/renamed-go"
//	)
//
//	func main() {
//		client, err := renamed.NewClient(
//			os.Getenv("RENAMED_API_KEY"),
//			"", // baseURL (optional)
//			0,  // timeout (0 = default 30s)
//			0,  // retries (0 = default 2)
//		)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer client.Close()
//
//		result, err := client.Documents.Rename(renamed.File("invoice.pdf"), nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(result.SuggestedFilename)
//	}
//
// PDF splitting is asynchronous. The upload returns a Job handle that is
// polled until the split finishes:
//
//	job, err := client.Documents.PDFSplit(renamed.File("scans.pdf"), &renamed.PdfSplitOptions{
//		Mode: renamed.SplitModeAuto,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := job.Wait(func(s *renamed.JobStatusResponse) {
//		fmt.Printf("Progress: %d%%\n", s.Progress)
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, doc := range result.Documents {
//		content, _ := client.Documents.Download(doc.DownloadURL)
//		_ = os.WriteFile(doc.Filename, content, 0644)
//	}
//
// # Core Features
//
//   - AI rename, PDF split, and structured extraction uploads
//   - Async job polling with progress callbacks and cancellation
//   - One error type with a Kind discriminant for exhaustive handling
//   - Automatic retry with exponential backoff for 5xx and network failures
//   - File upload support (path or reader)
//   - Context-aware variants of every operation
//   - Request/response hooks for monitoring
//
// # Errors
//
// Every expected failure mode surfaces as *APIError. Discriminate with the
// Kind field:
//
//	user, err := client.Users.Me()
//	var apiErr *renamed.APIError
//	if errors.As(err, &apiErr) {
//		switch apiErr.Kind {
//		case renamed.KindAuthentication:
//			// bad key
//		case renamed.KindRateLimit:
//			// back off apiErr.RetryAfter seconds
//		}
//	}
//
// # Environment Variables
//
//   - RENAMED_API_KEY: your API key
//   - RENAMED_BASE_URL: optional API base URL (defaults to https://www.renamed.to/api/v1)
//   - RENAMED_TIMEOUT: optional per-request timeout (defaults to 30s)
//   - RENAMED_MAX_RETRIES: optional max retries (defaults to 2)
//   - RENAMED_DEBUG: enable debug logging
package renamed
