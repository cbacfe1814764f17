package domain

// Stage is a step of the relinking pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageReading    Stage = "reading"
	StageExtracting Stage = "extracting"
	StageMapping    Stage = "mapping"
	StageRewriting  Stage = "rewriting"
	StageValidating Stage = "validating"
	StageWriting    Stage = "writing"
	StageDone       Stage = "done"
)

// String returns the string representation.
func (s Stage) String() string {
	return string(s)
}

// IsValid returns true if the stage is recognised.
func (s Stage) IsValid() bool {
	switch s {
	case StageReading, StageExtracting, StageMapping, StageRewriting,
		StageValidating, StageWriting, StageDone:
		return true
	default:
		return false
	}
}

// AllStages returns the pipeline stages in execution order.
func AllStages() []Stage {
	return []Stage{
		StageReading,
		StageExtracting,
		StageMapping,
		StageRewriting,
		StageValidating,
		StageWriting,
		StageDone,
	}
}
