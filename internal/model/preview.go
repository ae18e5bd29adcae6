package model

// PreviewCandidate is one OCR candidate awaiting user selection.
type PreviewCandidate struct {
	Lemma      string  `json:"lemma"`
	Confidence float64 `json:"confidence"`
}

// PreviewResponse is returned by the image-preview endpoint. Candidates are
// not persisted until the client confirms them.
type PreviewResponse struct {
	UploadID string             `json:"upload_id"`
	Words    []PreviewCandidate `json:"words"`
}

// CancelPreviewResponse reports whether a session was actually removed.
// A caller cannot distinguish "already gone" from "never existed".
type CancelPreviewResponse struct {
	Removed bool `json:"removed"`
}
