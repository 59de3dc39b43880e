package record

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type ExerciseType uint8

const (
	ExerciseTypeUnknown ExerciseType = iota
	ExerciseTypeOther
	ExerciseTypeRunning
	ExerciseTypeWalking
	ExerciseTypeHiking
	ExerciseTypeCycling
	ExerciseTypeSwimming
	ExerciseTypeRowing
	ExerciseTypeElliptical
	ExerciseTypeStrengthTraining
	ExerciseTypeHighIntensityIntervalTraining
	ExerciseTypeYoga
	ExerciseTypePilates
)

var exerciseTypeNames = [...]string{
	ExerciseTypeUnknown:                       "unknown",
	ExerciseTypeOther:                         "other",
	ExerciseTypeRunning:                       "running",
	ExerciseTypeWalking:                       "walking",
	ExerciseTypeHiking:                        "hiking",
	ExerciseTypeCycling:                       "cycling",
	ExerciseTypeSwimming:                      "swimming",
	ExerciseTypeRowing:                        "rowing",
	ExerciseTypeElliptical:                    "elliptical",
	ExerciseTypeStrengthTraining:              "strength_training",
	ExerciseTypeHighIntensityIntervalTraining: "high_intensity_interval_training",
	ExerciseTypeYoga:                          "yoga",
	ExerciseTypePilates:                       "pilates",
}

func (e ExerciseType) String() string {
	if int(e) >= len(exerciseTypeNames) {
		return exerciseTypeNames[ExerciseTypeUnknown]
	}
	return exerciseTypeNames[e]
}

func ParseExerciseType(raw string) ExerciseType {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for idx, name := range exerciseTypeNames {
		if name == normalized {
			return ExerciseType(idx)
		}
	}
	return ExerciseTypeUnknown
}

type ExerciseSegmentType uint8

const (
	ExerciseSegmentUnknown ExerciseSegmentType = iota
	ExerciseSegmentWarmUp
	ExerciseSegmentActive
	ExerciseSegmentRest
	ExerciseSegmentPause
	ExerciseSegmentCoolDown
	ExerciseSegmentSetOfRepetitions
)

type ExerciseSegment struct {
	Start       time.Time
	End         time.Time
	Type        ExerciseSegmentType
	Repetitions int
}

func exerciseSegmentSpan(segment ExerciseSegment) (time.Time, time.Time) {
	return segment.Start, segment.End
}

type ExerciseSession struct {
	interval
	exerciseType ExerciseType
	segments     []ExerciseSegment
}

// NewExerciseSession validates segments against [start, end] and stores them
// sorted by start time.
func NewExerciseSession(start, end time.Time, exerciseType ExerciseType, segments []ExerciseSegment, meta Metadata) (ExerciseSession, error) {
	if err := requireInterval(start, end); err != nil {
		return ExerciseSession{}, err
	}
	if exerciseType == ExerciseTypeUnknown || int(exerciseType) >= len(exerciseTypeNames) {
		return ExerciseSession{}, validationError("exercise_type", "exercise type is required")
	}
	for idx, segment := range segments {
		if segment.Repetitions < 0 {
			return ExerciseSession{}, validationError("segments", fmt.Sprintf("entry %d repetitions must not be negative", idx))
		}
	}
	sorted, err := sortChildren("segments", start, end, segments, exerciseSegmentSpan)
	if err != nil {
		return ExerciseSession{}, err
	}
	return ExerciseSession{
		interval:     interval{start: start, end: end, meta: meta},
		exerciseType: exerciseType,
		segments:     sorted,
	}, nil
}

func (ExerciseSession) DataType() DataType { return DataTypeExerciseSession }

func (e ExerciseSession) ExerciseType() ExerciseType {
	return e.exerciseType
}

func (e ExerciseSession) Segments() []ExerciseSegment {
	return slices.Clone(e.segments)
}

func (e ExerciseSession) withMetadata(meta Metadata) Record {
	e.meta = meta
	return e
}
