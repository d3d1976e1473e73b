package renamed

// RenameResult is the outcome of a rename operation.
type RenameResult struct {
	OriginalFilename  string  `json:"originalFilename"`
	SuggestedFilename string  `json:"suggestedFilename"`
	FolderPath        string  `json:"folderPath,omitempty"`
	Confidence        float64 `json:"confidence"`
}

// RenameOptions are optional parameters for Rename.
type RenameOptions struct {
	// Template is a custom template for filename generation.
	Template string
}

// SplitMode selects how a PDF is split.
type SplitMode string

const (
	// SplitModeAuto lets the AI detect document boundaries.
	SplitModeAuto SplitMode = "auto"

	// SplitModePages splits every N pages.
	SplitModePages SplitMode = "pages"

	// SplitModeBlank splits at blank pages.
	SplitModeBlank SplitMode = "blank"
)

// PdfSplitOptions are optional parameters for PDFSplit.
type PdfSplitOptions struct {
	Mode SplitMode

	// PagesPerSplit is the chunk size for SplitModePages.
	PagesPerSplit int
}

// JobStatus enum values reported by the job status endpoint.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// SplitDocument is a single document produced by a PDF split.
type SplitDocument struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`

	// Pages is the page range included in this document, e.g. "1-3".
	Pages string `json:"pages"`

	// DownloadURL is an absolute, server-issued URL. Pass it to
	// Documents.Download; the auth header is still required.
	DownloadURL string `json:"downloadUrl"`

	// Size is the document size in bytes.
	Size int64 `json:"size"`
}

// PdfSplitResult is the terminal payload of a completed split job.
type PdfSplitResult struct {
	OriginalFilename string          `json:"originalFilename"`
	Documents        []SplitDocument `json:"documents"`
	TotalPages       int             `json:"totalPages"`
}

// JobStatusResponse is a snapshot from the job status endpoint. Each poll
// returns a fresh snapshot that fully supersedes the previous one.
//
// Result is non-nil if and only if Status is completed; Error is non-empty
// if and only if Status is failed.
type JobStatusResponse struct {
	JobID    string          `json:"jobId"`
	Status   JobStatus       `json:"status"`
	Progress int             `json:"progress,omitempty"`
	Error    string          `json:"error,omitempty"`
	Result   *PdfSplitResult `json:"result,omitempty"`
}

// ExtractOptions are optional parameters for Extract. At least one of
// Prompt or Schema should be set.
type ExtractOptions struct {
	// Schema is a JSON schema describing the fields to extract. It is
	// JSON-encoded into the upload's "schema" field.
	Schema map[string]any

	// Prompt is a natural language description of what to extract.
	Prompt string
}

// ExtractResult is the outcome of an extract operation.
type ExtractResult struct {
	Data       map[string]any `json:"data"`
	Confidence float64        `json:"confidence"`
}

// Team information attached to a user.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the authenticated user's profile.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`

	// Credits is nil when the server omits the field, which is distinct
	// from an explicit zero balance.
	Credits *int  `json:"credits,omitempty"`
	Team    *Team `json:"team,omitempty"`
}

// pdfSplitResponse is the initiation response from the pdf-split endpoint.
// It carries only the status URL; the result arrives via polling.
type pdfSplitResponse struct {
	StatusURL string `json:"statusUrl"`
}
