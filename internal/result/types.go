package result

// Statuses recorded on a trial record.
const (
	// StatusScored means at least one configuration of the winning family
	// fit successfully.
	StatusScored = "scored"
	// StatusFailed means every configuration of every family failed for
	// this class; the recorded score is a placeholder (JSON cannot carry
	// the evaluator's -Inf).
	StatusFailed = "failed"
)

// TrialRecord captures the winning triple for one (class, trial) pair.
type TrialRecord struct {
	Class      string         `json:"class"`
	Trial      int            `json:"trial"`
	Winner     string         `json:"winner"`
	Params     map[string]any `json:"params"`
	Score      float64        `json:"score"`
	Status     string         `json:"status"`
	DurationMS int64          `json:"duration_ms"`
	Mode       string         `json:"mode"`
}
