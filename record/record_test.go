package record

import (
	"testing"
	"time"

	"github.com/goliatone/go-health/units"
)

var baseTime = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

func at(seconds int) time.Time {
	return baseTime.Add(time.Duration(seconds) * time.Second)
}

func TestNewSteps_CountBounds(t *testing.T) {
	for _, count := range []int64{MinStepCount, 500, MaxStepCount} {
		if _, err := NewSteps(at(0), at(60), count, ManualEntry()); err != nil {
			t.Fatalf("expected count %d to be accepted: %v", count, err)
		}
	}
	for _, count := range []int64{0, -1, MaxStepCount + 1} {
		_, err := NewSteps(at(0), at(60), count, ManualEntry())
		if err == nil {
			t.Fatalf("expected count %d to be rejected", count)
		}
		if !IsValidation(err) {
			t.Fatalf("expected validation error for count %d, got %v", count, err)
		}
	}
}

func TestNewSteps_RequiresStartBeforeEnd(t *testing.T) {
	if _, err := NewSteps(at(60), at(60), 10, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected validation error for empty interval, got %v", err)
	}
	if _, err := NewSteps(at(60), at(0), 10, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected validation error for reversed interval, got %v", err)
	}
	if _, err := NewSteps(time.Time{}, at(0), 10, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected validation error for missing start, got %v", err)
	}
}

func TestNewBloodPressure_Bounds(t *testing.T) {
	mmHg := units.MillimetersOfMercury
	valid := [][2]float64{{20, 10}, {200, 180}, {120, 80}}
	for _, pair := range valid {
		if _, err := NewBloodPressure(at(0), mmHg(pair[0]), mmHg(pair[1]), BodyPositionSittingDown, BloodPressureLocationLeftUpperArm, ManualEntry()); err != nil {
			t.Fatalf("expected %v/%v to be accepted: %v", pair[0], pair[1], err)
		}
	}
	invalid := [][2]float64{{19, 80}, {201, 80}, {120, 9}, {120, 181}}
	for _, pair := range invalid {
		_, err := NewBloodPressure(at(0), mmHg(pair[0]), mmHg(pair[1]), BodyPositionUnknown, BloodPressureLocationUnknown, ManualEntry())
		if !IsValidation(err) {
			t.Fatalf("expected %v/%v to be rejected, got %v", pair[0], pair[1], err)
		}
	}
}

func TestInstantaneousBounds_CompareInCanonicalUnits(t *testing.T) {
	if _, err := NewBodyTemperature(at(0), units.Fahrenheit(98.6), BodyTemperatureLocationMouth, ManualEntry()); err != nil {
		t.Fatalf("expected 98.6F to be accepted: %v", err)
	}
	if _, err := NewBodyTemperature(at(0), units.Fahrenheit(213), BodyTemperatureLocationMouth, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected 213F to exceed 100C, got %v", err)
	}
	if _, err := NewBloodGlucose(at(0), units.MilligramsPerDeciliter(900), SpecimenSourceCapillaryBlood, MealTypeBreakfast, ManualEntry()); err != nil {
		t.Fatalf("expected 900 mg/dL to be accepted: %v", err)
	}
	if _, err := NewBloodGlucose(at(0), units.MilligramsPerDeciliter(901), SpecimenSourceCapillaryBlood, MealTypeBreakfast, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected 901 mg/dL to exceed 50 mmol/L, got %v", err)
	}
	if _, err := NewWeight(at(0), units.Pounds(-1), ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected negative weight to be rejected, got %v", err)
	}
	if _, err := NewWeight(at(0), units.Grams(1_000_000), ManualEntry()); err != nil {
		t.Fatalf("expected 1000 kg to be accepted: %v", err)
	}
	if _, err := NewHeight(at(0), units.Feet(10), ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected 10 ft to exceed 3 m, got %v", err)
	}
	if _, err := NewRestingHeartRate(at(0), 0, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected 0 bpm to be rejected, got %v", err)
	}
	if _, err := NewWeight(time.Time{}, units.Kilograms(70), ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected missing time to be rejected, got %v", err)
	}
}

func TestNewExerciseSession_RejectsOverlappingSegments(t *testing.T) {
	segments := []ExerciseSegment{
		{Start: at(0), End: at(40), Type: ExerciseSegmentActive},
		{Start: at(30), End: at(60), Type: ExerciseSegmentRest},
	}
	_, err := NewExerciseSession(at(0), at(120), ExerciseTypeRunning, segments, ManualEntry())
	if !IsValidation(err) {
		t.Fatalf("expected overlapping segments to be rejected, got %v", err)
	}
}

func TestNewExerciseSession_SortsContainedSegments(t *testing.T) {
	segments := []ExerciseSegment{
		{Start: at(60), End: at(120), Type: ExerciseSegmentCoolDown},
		{Start: at(0), End: at(30), Type: ExerciseSegmentWarmUp},
		{Start: at(30), End: at(60), Type: ExerciseSegmentActive, Repetitions: 12},
	}
	session, err := NewExerciseSession(at(0), at(120), ExerciseTypeStrengthTraining, segments, ManualEntry())
	if err != nil {
		t.Fatalf("expected contained segments to be accepted: %v", err)
	}
	stored := session.Segments()
	if len(stored) != 3 || stored[0].Type != ExerciseSegmentWarmUp || stored[2].Type != ExerciseSegmentCoolDown {
		t.Fatalf("expected segments sorted by start, got %+v", stored)
	}
	stored[0].Repetitions = 99
	if session.Segments()[0].Repetitions != 0 {
		t.Fatalf("expected segments accessor to return a copy")
	}
	if segments[0].Type != ExerciseSegmentCoolDown {
		t.Fatalf("expected input slice to be left untouched")
	}
}

func TestNewExerciseSession_Containment(t *testing.T) {
	early := []ExerciseSegment{{Start: at(-1), End: at(30)}}
	if _, err := NewExerciseSession(at(0), at(120), ExerciseTypeRunning, early, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected segment before session start to be rejected, got %v", err)
	}
	late := []ExerciseSegment{{Start: at(30), End: at(121)}}
	if _, err := NewExerciseSession(at(0), at(120), ExerciseTypeRunning, late, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected segment past session end to be rejected, got %v", err)
	}
	if _, err := NewExerciseSession(at(0), at(120), ExerciseTypeUnknown, nil, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected unknown exercise type to be rejected, got %v", err)
	}
	negative := []ExerciseSegment{{Start: at(0), End: at(30), Repetitions: -1}}
	if _, err := NewExerciseSession(at(0), at(120), ExerciseTypeRunning, negative, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected negative repetitions to be rejected, got %v", err)
	}
}

func TestNewSleepSession_AsleepDuration(t *testing.T) {
	stages := []SleepStage{
		{Start: at(0), End: at(600), Type: SleepStageAwake},
		{Start: at(600), End: at(1800), Type: SleepStageLight},
		{Start: at(1800), End: at(3000), Type: SleepStageDeep},
	}
	session, err := NewSleepSession(at(0), at(3000), stages, AutoRecorded(Device{Type: DeviceTypeWatch}))
	if err != nil {
		t.Fatalf("expected sleep session to be accepted: %v", err)
	}
	if session.AsleepDuration() != 40*time.Minute {
		t.Fatalf("expected 40m asleep, got %v", session.AsleepDuration())
	}
	if session.Duration() != 50*time.Minute {
		t.Fatalf("expected 50m in session, got %v", session.Duration())
	}
	zeroStage := []SleepStage{{Start: at(10), End: at(10), Type: SleepStageLight}}
	if _, err := NewSleepSession(at(0), at(3000), zeroStage, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected empty stage to be rejected, got %v", err)
	}
}

func TestNewHeartRate_Samples(t *testing.T) {
	samples := []HeartRateSample{
		{Time: at(30), BeatsPerMinute: 80},
		{Time: at(0), BeatsPerMinute: 72},
	}
	series, err := NewHeartRate(at(0), at(30), samples, ManualEntry())
	if err != nil {
		t.Fatalf("expected heart rate to be accepted: %v", err)
	}
	if got := series.SampleTimes(); !got[0].Equal(at(0)) || !got[1].Equal(at(30)) {
		t.Fatalf("expected samples sorted by time, got %v", got)
	}
	if _, err := NewHeartRate(at(0), at(0), []HeartRateSample{{Time: at(0), BeatsPerMinute: 60}}, ManualEntry()); err != nil {
		t.Fatalf("expected single-sample series to be accepted: %v", err)
	}
	if _, err := NewHeartRate(at(0), at(30), []HeartRateSample{{Time: at(31), BeatsPerMinute: 60}}, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected sample outside range to be rejected, got %v", err)
	}
	if _, err := NewHeartRate(at(0), at(30), []HeartRateSample{{Time: at(10), BeatsPerMinute: 301}}, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected 301 bpm to be rejected, got %v", err)
	}
	if _, err := NewPower(at(0), at(30), []PowerSample{{Time: at(5), Power: units.Watts(100_001)}}, ManualEntry()); !IsValidation(err) {
		t.Fatalf("expected power above limit to be rejected, got %v", err)
	}
}

func TestMetadata(t *testing.T) {
	var meta Metadata
	if meta.RecordingMethod() != RecordingMethodUnknown || meta.ID() != "" {
		t.Fatalf("unexpected zero metadata: %+v", meta)
	}
	if _, ok := meta.Device(); ok {
		t.Fatalf("expected zero metadata without device")
	}
	meta = AutoRecorded(Device{Type: DeviceTypeRing, Manufacturer: " Oura ", Model: "Gen3"}).WithID(" rec-1 ")
	device, ok := meta.Device()
	if !ok || device.Manufacturer != "Oura" || device.Type != DeviceTypeRing {
		t.Fatalf("unexpected device: %+v", device)
	}
	if meta.ID() != "rec-1" || meta.RecordingMethod() != RecordingMethodAutoRecorded {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if ParseDeviceType("chest_strap") != DeviceTypeChestStrap || ParseRecordingMethod("manual_entry") != RecordingMethodManualEntry {
		t.Fatalf("expected parse helpers to round trip names")
	}
}

func TestWithMetadata_ReturnsCopy(t *testing.T) {
	steps, err := NewSteps(at(0), at(60), 10, ManualEntry())
	if err != nil {
		t.Fatalf("new steps: %v", err)
	}
	updated := WithMetadata(steps, steps.Metadata().WithID("abc"))
	if updated.Metadata().ID() != "abc" {
		t.Fatalf("expected updated id, got %q", updated.Metadata().ID())
	}
	if steps.Metadata().ID() != "" {
		t.Fatalf("expected original record to keep its metadata")
	}
	if _, ok := updated.(Steps); !ok {
		t.Fatalf("expected concrete kind to be preserved, got %T", updated)
	}
}

func TestTimeRange_HalfOpen(t *testing.T) {
	rng, err := NewTimeRange(at(0), at(60))
	if err != nil {
		t.Fatalf("new range: %v", err)
	}
	if !rng.Contains(at(0)) || !rng.Contains(at(59)) {
		t.Fatalf("expected start inclusive")
	}
	if rng.Contains(at(60)) {
		t.Fatalf("expected end exclusive")
	}
	if _, err := NewTimeRange(at(60), at(60)); !IsValidation(err) {
		t.Fatalf("expected empty range to be rejected, got %v", err)
	}
}

func TestNormalizeDataTypes(t *testing.T) {
	got := NormalizeDataTypes([]DataType{" Weight ", "steps", "bogus", "steps", ""})
	if len(got) != 2 || got[0] != DataTypeSteps || got[1] != DataTypeWeight {
		t.Fatalf("unexpected normalized types: %v", got)
	}
	if DataTypeHeartRate.Shape() != ShapeSeries || DataTypeWeight.Shape() != ShapeInstantaneous {
		t.Fatalf("unexpected shapes")
	}
	if len(AllDataTypes()) != 16 {
		t.Fatalf("expected 16 data types, got %d", len(AllDataTypes()))
	}
}
