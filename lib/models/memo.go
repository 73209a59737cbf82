package models

// MemoPDF describes a PDF produced from a memo document
type MemoPDF struct {
	DriveFileID      string `json:"driveFileId"`
	Name             string `json:"name"`
	SourceDocumentID string `json:"sourceDocumentId"`
	ArchiveKey       string `json:"archiveKey,omitempty"`
	DownloadURL      string `json:"downloadUrl,omitempty"`
}

// MemoConversionResponse is the body of POST /memos/pdf
type MemoConversionResponse struct {
	Message string    `json:"message"`
	Files   []MemoPDF `json:"files"`
}
