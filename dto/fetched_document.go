package dto

// FetchedDocument is the raw result of one upstream document-content
// call: bytes plus a declared (possibly wrong) content type.
type FetchedDocument struct {
	DocumentID  string
	Data        []byte
	ContentType string
	FileName    string
}

// CaseDocumentSummary is one row of the upstream case document listing.
type CaseDocumentSummary struct {
	DocumentID   string `json:"documentId"`
	CaseNumber   string `json:"caseNumber"`
	FileName     string `json:"fileName"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category,omitempty"`
	ContentType  string `json:"contentType,omitempty"`
	SizeBytes    int    `json:"sizeBytes,omitempty"`
	ModifiedDate string `json:"modifiedDate,omitempty"`
}
