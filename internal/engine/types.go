package engine

// Status is the outcome of verifying one tracked file.
type Status string

const (
	// StatusMatch means the current digest equals the recorded one.
	StatusMatch Status = "match"

	// StatusMismatch means the file content changed since it was added.
	StatusMismatch Status = "mismatch"

	// StatusError means the file could not be read to compute a digest.
	StatusError Status = "error"
)

// AddResult represents the result of adding a file.
type AddResult struct {
	// Path is the normalized path that was recorded
	Path string `json:"path"`

	// Digest is the recorded digest
	Digest string `json:"digest"`

	// Replaced is true when the path was already tracked
	Replaced bool `json:"replaced"`

	// PreviousDigest is the baseline that was overwritten, if any
	PreviousDigest string `json:"previousDigest,omitempty"`
}

// Changed reports whether re-adding the file moved its baseline.
func (r *AddResult) Changed() bool {
	return r.Replaced && r.PreviousDigest != r.Digest
}

// VerifyResult represents the result of verifying one file.
type VerifyResult struct {
	// Path is the normalized path of the tracked file
	Path string `json:"path"`

	// StoredDigest is the baseline recorded by add
	StoredDigest string `json:"storedDigest"`

	// CurrentDigest is the digest computed now (empty on StatusError)
	CurrentDigest string `json:"currentDigest,omitempty"`

	// Status is the verification outcome
	Status Status `json:"status"`

	// Err is the read error when Status is StatusError
	Err error `json:"-"`

	// Error is Err rendered for JSON output
	Error string `json:"error,omitempty"`
}

// VerifyAllResult represents the result of verifying every tracked file.
type VerifyAllResult struct {
	// Results holds one entry per tracked file, in listing order
	Results []VerifyResult `json:"results"`

	Matched    int `json:"matched"`
	Mismatched int `json:"mismatched"`
	Failed     int `json:"failed"`
}

// OK reports whether every tracked file matched its baseline.
func (r *VerifyAllResult) OK() bool {
	return r.Mismatched == 0 && r.Failed == 0
}

// RemoveResult represents the result of removing a file from tracking.
type RemoveResult struct {
	// Path is the path that is no longer tracked
	Path string `json:"path"`

	// Index is the 1-based listing position the entry had
	Index int `json:"index"`
}
