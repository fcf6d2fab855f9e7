package model

// ExtractionResult carries document fields read from an uploaded file by
// the extraction service. Confidence below the confirmation threshold means
// a human must verify the fields before they are written anywhere.
type ExtractionResult struct {
	Success    bool
	Confidence float64
	DocNumber  string
	DocDate    string
}
