package trace

// TraceLevel controls the verbosity of episode tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every relocation attempt and retrieval.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether records should be collected at this level.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelDecisions
}

// EpisodeTrace collects decision records for one episode.
type EpisodeTrace struct {
	Episode     int                `yaml:"episode"`
	Relocations []RelocationRecord `yaml:"relocations"`
	Retrievals  []RetrievalRecord  `yaml:"retrievals"`
}

// NewEpisodeTrace creates an EpisodeTrace ready for recording.
func NewEpisodeTrace(episode int) *EpisodeTrace {
	return &EpisodeTrace{
		Episode:     episode,
		Relocations: make([]RelocationRecord, 0),
		Retrievals:  make([]RetrievalRecord, 0),
	}
}

// RecordRelocation appends a relocation attempt, legal or not.
func (et *EpisodeTrace) RecordRelocation(record RelocationRecord) {
	et.Relocations = append(et.Relocations, record)
}

// RecordRetrieval appends a retrieval record.
func (et *EpisodeTrace) RecordRetrieval(record RetrievalRecord) {
	et.Retrievals = append(et.Retrievals, record)
}
