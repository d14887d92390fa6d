package trace

// TraceSummary aggregates statistics from one or more EpisodeTraces.
type TraceSummary struct {
	TotalDecisions         int
	LegalCount             int
	IllegalCount           int
	TotalRetrievals        int
	MaxConsecutiveFailures int
	ReasonDistribution     map[string]int // illegal reason → count
	MaxRelocationsPerItem  int            // most moves any single container needed
}

// Summarize computes aggregate statistics from the given traces.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(traces ...*EpisodeTrace) *TraceSummary {
	summary := &TraceSummary{
		ReasonDistribution: make(map[string]int),
	}
	for _, et := range traces {
		if et == nil {
			continue
		}
		summary.TotalDecisions += len(et.Relocations)
		for _, r := range et.Relocations {
			if r.Legal {
				summary.LegalCount++
				continue
			}
			summary.IllegalCount++
			summary.ReasonDistribution[r.Reason]++
			if r.ConsecutiveFailures > summary.MaxConsecutiveFailures {
				summary.MaxConsecutiveFailures = r.ConsecutiveFailures
			}
		}
		summary.TotalRetrievals += len(et.Retrievals)
		for _, r := range et.Retrievals {
			if r.Relocations > summary.MaxRelocationsPerItem {
				summary.MaxRelocationsPerItem = r.Relocations
			}
		}
	}
	return summary
}
