package cleanup

import "time"

// Orphan is a stored blob no record refers to.
type Orphan struct {
	ReferencePath string    `json:"referencePath"`
	SizeBytes     int64     `json:"sizeBytes"`
	ModTime       time.Time `json:"modTime"`
}

type SweepResult struct {
	CandidateCount int      `json:"candidateCount"`
	DeletedCount   int      `json:"deletedCount"`
	FailedCount    int      `json:"failedCount"`
	ReclaimedBytes int64    `json:"reclaimedBytes"`
	DryRun         bool     `json:"dryRun"`
	Orphans        []Orphan `json:"orphans"`
}
