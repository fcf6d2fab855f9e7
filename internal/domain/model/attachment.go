package model

import "time"

// FileType names the three document kinds an order carries.
type FileType string

const (
	FileTypeInvoice             FileType = "invoice"
	FileTypeDeliveryOrder       FileType = "delivery_order"
	FileTypeSignedDeliveryOrder FileType = "signed_delivery_order"
)

// Known reports whether the file type is one of the supported kinds.
func (t FileType) Known() bool {
	switch t {
	case FileTypeInvoice, FileTypeDeliveryOrder, FileTypeSignedDeliveryOrder:
		return true
	}
	return false
}

// Attachment is one stored version of an order document. Versions are
// monotonic per (order, file type); at rest exactly one version of a group
// is active. ContentDigest is the BLAKE2b-256 hex digest of the payload.
type Attachment struct {
	FileID           string
	OrderNumber      string
	FileType         FileType
	Version          int
	IsActive         bool
	OriginalFilename string
	FileSize         int64
	ContentDigest    string
	StorageURL       string
	UploadDate       time.Time
}
