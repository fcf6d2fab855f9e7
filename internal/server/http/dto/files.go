package dto

import "time"

// AttachmentResponse is one stored version of an order document.
type AttachmentResponse struct {
	FileID           string    `json:"file_id"`
	OrderNumber      string    `json:"order_number"`
	FileType         string    `json:"file_type"`
	Version          int       `json:"version"`
	IsActive         bool      `json:"is_active"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	UploadDate       time.Time `json:"upload_date"`
}

// ExtractionResponse carries document fields read from an uploaded file.
type ExtractionResponse struct {
	Success              bool    `json:"success"`
	Confidence           float64 `json:"confidence"`
	DocNumber            string  `json:"doc_number,omitempty"`
	DocDate              string  `json:"doc_date,omitempty"`
	RequiresConfirmation bool    `json:"requires_confirmation"`
}

// ErrorResponse is the error body. Step names the stage of a multi-step
// write sequence that failed, when one did.
type ErrorResponse struct {
	Error string `json:"error"`
	Step  string `json:"step,omitempty"`
}
