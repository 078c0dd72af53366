package models

// Run is a recorded race result.
type Run struct {
	ID          string       `json:"id"`
	ServerName  string       `json:"server_name"`
	CreatedAt   int64        `json:"created_at"`
	FinishTime  int32        `json:"finish_time"`
	Checkpoints []Checkpoint `json:"checkpoints"`
}

// Checkpoint is a single checkpoint split of a run.
type Checkpoint struct {
	Index       int32 `json:"index"`
	Time        int32 `json:"time"`
	StuntsScore int32 `json:"stunts_score"`
}
