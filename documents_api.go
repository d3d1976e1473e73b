package renamed

import (
	"context"
	"encoding/json"
	"fmt"
)

// DocumentsAPI groups the document operations: AI rename, PDF split,
// structured extraction, and result downloads.
type DocumentsAPI struct {
	cfg        Config
	httpClient *httpClient
}

func newDocumentsAPI(cfg Config, httpClient *httpClient) *DocumentsAPI {
	return &DocumentsAPI{cfg: cfg, httpClient: httpClient}
}

// Rename suggests an AI-generated filename for a document.
func (d *DocumentsAPI) Rename(file FileUpload, opts *RenameOptions) (*RenameResult, error) {
	return d.RenameWithContext(context.Background(), file, opts)
}

// RenameWithContext suggests a filename with a caller-supplied context.
func (d *DocumentsAPI) RenameWithContext(ctx context.Context, file FileUpload, opts *RenameOptions) (*RenameResult, error) {
	filename, content, err := file.read()
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if opts != nil && opts.Template != "" {
		fields["template"] = opts.Template
	}

	var result RenameResult
	if err := d.httpClient.upload(ctx, "/rename", filename, content, fields, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PDFSplit starts an asynchronous split of a PDF into multiple documents
// and returns the Job handle to poll for the result.
func (d *DocumentsAPI) PDFSplit(file FileUpload, opts *PdfSplitOptions) (*Job, error) {
	return d.PDFSplitWithContext(context.Background(), file, opts)
}

// PDFSplitWithContext starts a split job with a caller-supplied context.
// The context bounds only the initiating upload; pass one to Job.WaitContext
// to bound the polling as well.
func (d *DocumentsAPI) PDFSplitWithContext(ctx context.Context, file FileUpload, opts *PdfSplitOptions) (*Job, error) {
	filename, content, err := file.read()
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if opts != nil {
		if opts.Mode != "" {
			fields["mode"] = string(opts.Mode)
		}
		if opts.PagesPerSplit > 0 {
			fields["pagesPerSplit"] = fmt.Sprintf("%d", opts.PagesPerSplit)
		}
	}

	var resp pdfSplitResponse
	if err := d.httpClient.upload(ctx, "/pdf-split", filename, content, fields, &resp); err != nil {
		return nil, err
	}
	if resp.StatusURL == "" {
		return nil, newJobError("Split job did not return a status URL", "")
	}

	return newJob(d.httpClient, resp.StatusURL, d.cfg.PollInterval, d.cfg.MaxPollAttempts), nil
}

// Extract pulls structured data out of a document, guided by a prompt, a
// JSON schema, or both.
func (d *DocumentsAPI) Extract(file FileUpload, opts *ExtractOptions) (*ExtractResult, error) {
	return d.ExtractWithContext(context.Background(), file, opts)
}

// ExtractWithContext extracts data with a caller-supplied context.
func (d *DocumentsAPI) ExtractWithContext(ctx context.Context, file FileUpload, opts *ExtractOptions) (*ExtractResult, error) {
	filename, content, err := file.read()
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if opts != nil {
		if opts.Prompt != "" {
			fields["prompt"] = opts.Prompt
		}
		if opts.Schema != nil {
			schemaJSON, err := json.Marshal(opts.Schema)
			if err != nil {
				return nil, fmt.Errorf("encode schema: %w", err)
			}
			fields["schema"] = string(schemaJSON)
		}
	}

	var result ExtractResult
	if err := d.httpClient.upload(ctx, "/extract", filename, content, fields, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Download fetches a server-issued file URL (e.g. a split document's
// DownloadURL) and returns the raw bytes. The URL is absolute; the auth
// header is still attached.
func (d *DocumentsAPI) Download(url string) ([]byte, error) {
	return d.DownloadWithContext(context.Background(), url)
}

// DownloadWithContext downloads a file with a caller-supplied context.
func (d *DocumentsAPI) DownloadWithContext(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("download URL cannot be empty")
	}
	return d.httpClient.getBytes(ctx, url)
}
