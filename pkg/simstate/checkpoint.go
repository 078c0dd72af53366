package simstate

// CheckpointTime is one entry of the logical checkpoint times array.
type CheckpointTime struct {
	Time        int32
	StuntsScore int32
}

// CheckpointData is the checkpoint state of a race.
//
// The game tracks two arrays. States holds one passed-flag per physical
// checkpoint on the map (including the finish); its length is the real
// checkpoint count regardless of laps. Times holds one entry per logical
// checkpoint pass that has to happen to finish, so laps multiply its
// length.
type CheckpointData struct {
	States []bool
	Times  []CheckpointTime
}

// InvalidateFinish resets the time of the last logical checkpoint to -1.
// The game stops simulating once the finish time is set; invalidating it
// keeps the simulation running past the finish.
func (c *CheckpointData) InvalidateFinish() {
	if len(c.Times) == 0 {
		return
	}
	c.Times[len(c.Times)-1].Time = -1
}
