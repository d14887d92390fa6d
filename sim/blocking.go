package sim

// BlockingDegree scores how badly a lane's order obstructs retrievals.
// priorities is read bottom-to-top. Zero means every container sits above
// all containers that must leave after it.
//
// The sequence is consumed from the top: the minimum of what remains splits
// off a run reaching to the current top, and every member of a run longer
// than one adds its gap to the run's minimum. The prefix below the minimum
// is then processed the same way until fewer than two elements remain.
// See https://iopscience.iop.org/article/10.1088/1742-6596/1873/1/012050.
func BlockingDegree(priorities []int) int {
	degree := 0
	seq := priorities
	for len(seq) > 1 {
		cut := indexOfMin(seq)
		run := seq[cut:]
		if len(run) > 1 {
			for _, p := range run {
				degree += p - run[0]
			}
		}
		seq = seq[:cut]
	}
	return degree
}

// indexOfMin returns the index of the first occurrence of the smallest value.
func indexOfMin(seq []int) int {
	idx := 0
	for i, v := range seq {
		if v < seq[idx] {
			idx = i
		}
	}
	return idx
}
