package record

import (
	"slices"
	"strings"
	"time"
)

type SleepStageType uint8

const (
	SleepStageUnknown SleepStageType = iota
	SleepStageAwake
	SleepStageSleeping
	SleepStageOutOfBed
	SleepStageLight
	SleepStageDeep
	SleepStageREM
	SleepStageInBed
)

var sleepStageNames = [...]string{
	SleepStageUnknown:  "unknown",
	SleepStageAwake:    "awake",
	SleepStageSleeping: "sleeping",
	SleepStageOutOfBed: "out_of_bed",
	SleepStageLight:    "light",
	SleepStageDeep:     "deep",
	SleepStageREM:      "rem",
	SleepStageInBed:    "in_bed",
}

func (s SleepStageType) String() string {
	if int(s) >= len(sleepStageNames) {
		return sleepStageNames[SleepStageUnknown]
	}
	return sleepStageNames[s]
}

func ParseSleepStageType(raw string) SleepStageType {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for idx, name := range sleepStageNames {
		if name == normalized {
			return SleepStageType(idx)
		}
	}
	return SleepStageUnknown
}

// Asleep reports whether the stage counts towards time asleep.
func (s SleepStageType) Asleep() bool {
	switch s {
	case SleepStageSleeping, SleepStageLight, SleepStageDeep, SleepStageREM:
		return true
	default:
		return false
	}
}

type SleepStage struct {
	Start time.Time
	End   time.Time
	Type  SleepStageType
}

func (s SleepStage) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

func sleepStageSpan(stage SleepStage) (time.Time, time.Time) {
	return stage.Start, stage.End
}

type SleepSession struct {
	interval
	stages []SleepStage
}

// NewSleepSession validates stages against [start, end] and stores them
// sorted by start time.
func NewSleepSession(start, end time.Time, stages []SleepStage, meta Metadata) (SleepSession, error) {
	if err := requireInterval(start, end); err != nil {
		return SleepSession{}, err
	}
	sorted, err := sortChildren("stages", start, end, stages, sleepStageSpan)
	if err != nil {
		return SleepSession{}, err
	}
	return SleepSession{interval: interval{start: start, end: end, meta: meta}, stages: sorted}, nil
}

func (SleepSession) DataType() DataType { return DataTypeSleepSession }

func (s SleepSession) Stages() []SleepStage {
	return slices.Clone(s.stages)
}

// AsleepDuration sums the stages that count as sleep. A session without
// stages counts its whole span.
func (s SleepSession) AsleepDuration() time.Duration {
	if len(s.stages) == 0 {
		return s.Duration()
	}
	var total time.Duration
	for _, stage := range s.stages {
		if stage.Type.Asleep() {
			total += stage.Duration()
		}
	}
	return total
}

func (s SleepSession) withMetadata(meta Metadata) Record {
	s.meta = meta
	return s
}
