package sqlstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-health/record"
	"github.com/goliatone/go-health/units"
)

// recordPayload is the JSON column body. Quantities are stored in their
// canonical unit: meters, kilograms, percent, celsius, mmHg, mmol/L,
// kilocalories and watts.
type recordPayload struct {
	Metadata  metadataPayload `json:"metadata"`
	Value     float64         `json:"value,omitempty"`
	Secondary float64         `json:"secondary,omitempty"`
	Kind      uint8           `json:"kind,omitempty"`
	Location  uint8           `json:"location,omitempty"`
	Position  uint8           `json:"position,omitempty"`
	Specimen  uint8           `json:"specimen,omitempty"`
	Meal      uint8           `json:"meal,omitempty"`
	Stages    []spanPayload   `json:"stages,omitempty"`
	Segments  []spanPayload   `json:"segments,omitempty"`
	Samples   []samplePayload `json:"samples,omitempty"`
}

type metadataPayload struct {
	Method string         `json:"method"`
	Device *devicePayload `json:"device,omitempty"`
}

type devicePayload struct {
	Type         string `json:"type"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
}

type spanPayload struct {
	StartNS     int64 `json:"start"`
	EndNS       int64 `json:"end"`
	Type        uint8 `json:"type"`
	Repetitions int   `json:"repetitions,omitempty"`
}

type samplePayload struct {
	TimeNS int64   `json:"t"`
	Value  float64 `json:"v"`
}

// encodeRecord returns the JSON payload and the summable value column.
func encodeRecord(rec record.Record) (string, float64, error) {
	payload := recordPayload{Metadata: encodeMetadata(rec.Metadata())}
	switch r := rec.(type) {
	case record.Steps:
		payload.Value = float64(r.Count())
	case record.Distance:
		payload.Value = r.Length().InMeters()
	case record.FloorsClimbed:
		payload.Value = r.Floors()
	case record.ActiveEnergy:
		payload.Value = r.Energy().InKilocalories()
	case record.SleepSession:
		for _, stage := range r.Stages() {
			payload.Stages = append(payload.Stages, spanPayload{
				StartNS: stage.Start.UnixNano(),
				EndNS:   stage.End.UnixNano(),
				Type:    uint8(stage.Type),
			})
		}
		payload.Value = r.AsleepDuration().Seconds()
	case record.ExerciseSession:
		payload.Kind = uint8(r.ExerciseType())
		for _, segment := range r.Segments() {
			payload.Segments = append(payload.Segments, spanPayload{
				StartNS:     segment.Start.UnixNano(),
				EndNS:       segment.End.UnixNano(),
				Type:        uint8(segment.Type),
				Repetitions: segment.Repetitions,
			})
		}
		payload.Value = r.Duration().Seconds()
	case record.Weight:
		payload.Value = r.Mass().InKilograms()
	case record.Height:
		payload.Value = r.Length().InMeters()
	case record.BodyFat:
		payload.Value = r.Percentage().InPercent()
	case record.BodyTemperature:
		payload.Value = r.Temperature().InCelsius()
		payload.Location = uint8(r.Location())
	case record.BloodPressure:
		payload.Value = r.Systolic().InMillimetersOfMercury()
		payload.Secondary = r.Diastolic().InMillimetersOfMercury()
		payload.Position = uint8(r.BodyPosition())
		payload.Location = uint8(r.Location())
	case record.BloodGlucose:
		payload.Value = r.Level().InMillimolesPerLiter()
		payload.Specimen = uint8(r.SpecimenSource())
		payload.Meal = uint8(r.MealType())
	case record.OxygenSaturation:
		payload.Value = r.Percentage().InPercent()
	case record.RestingHeartRate:
		payload.Value = float64(r.BeatsPerMinute())
	case record.HeartRate:
		for _, sample := range r.Samples() {
			payload.Samples = append(payload.Samples, samplePayload{
				TimeNS: sample.Time.UnixNano(),
				Value:  float64(sample.BeatsPerMinute),
			})
		}
	case record.Power:
		for _, sample := range r.Samples() {
			payload.Samples = append(payload.Samples, samplePayload{
				TimeNS: sample.Time.UnixNano(),
				Value:  sample.Power.InWatts(),
			})
		}
	default:
		return "", 0, fmt.Errorf("sqlstore: unsupported record %T", rec)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("sqlstore: encode %s payload: %w", rec.DataType(), err)
	}
	return string(raw), payload.Value, nil
}

// decodeRow rebuilds the record through its validating constructor and
// stamps the row id on its metadata.
func decodeRow(row *recordRow) (record.Record, error) {
	var payload recordPayload
	if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
		return nil, fmt.Errorf("sqlstore: decode payload for %s: %w", row.ID, err)
	}
	meta := decodeMetadata(payload.Metadata).WithID(row.ID)
	start := fromUnixNano(row.StartNS)
	end := fromUnixNano(row.EndNS)

	switch record.DataType(row.DataType) {
	case record.DataTypeSteps:
		return record.NewSteps(start, end, int64(payload.Value), meta)
	case record.DataTypeDistance:
		return record.NewDistance(start, end, units.Meters(payload.Value), meta)
	case record.DataTypeFloorsClimbed:
		return record.NewFloorsClimbed(start, end, payload.Value, meta)
	case record.DataTypeActiveEnergy:
		return record.NewActiveEnergy(start, end, units.Kilocalories(payload.Value), meta)
	case record.DataTypeSleepSession:
		stages := make([]record.SleepStage, 0, len(payload.Stages))
		for _, stage := range payload.Stages {
			stages = append(stages, record.SleepStage{
				Start: fromUnixNano(stage.StartNS),
				End:   fromUnixNano(stage.EndNS),
				Type:  record.SleepStageType(stage.Type),
			})
		}
		return record.NewSleepSession(start, end, stages, meta)
	case record.DataTypeExerciseSession:
		segments := make([]record.ExerciseSegment, 0, len(payload.Segments))
		for _, segment := range payload.Segments {
			segments = append(segments, record.ExerciseSegment{
				Start:       fromUnixNano(segment.StartNS),
				End:         fromUnixNano(segment.EndNS),
				Type:        record.ExerciseSegmentType(segment.Type),
				Repetitions: segment.Repetitions,
			})
		}
		return record.NewExerciseSession(start, end, record.ExerciseType(payload.Kind), segments, meta)
	case record.DataTypeWeight:
		return record.NewWeight(start, units.Kilograms(payload.Value), meta)
	case record.DataTypeHeight:
		return record.NewHeight(start, units.Meters(payload.Value), meta)
	case record.DataTypeBodyFat:
		return record.NewBodyFat(start, units.Percent(payload.Value), meta)
	case record.DataTypeBodyTemperature:
		return record.NewBodyTemperature(start, units.Celsius(payload.Value), record.BodyTemperatureLocation(payload.Location), meta)
	case record.DataTypeBloodPressure:
		return record.NewBloodPressure(
			start,
			units.MillimetersOfMercury(payload.Value),
			units.MillimetersOfMercury(payload.Secondary),
			record.BodyPosition(payload.Position),
			record.BloodPressureLocation(payload.Location),
			meta,
		)
	case record.DataTypeBloodGlucose:
		return record.NewBloodGlucose(
			start,
			units.MillimolesPerLiter(payload.Value),
			record.SpecimenSource(payload.Specimen),
			record.MealType(payload.Meal),
			meta,
		)
	case record.DataTypeOxygenSaturation:
		return record.NewOxygenSaturation(start, units.Percent(payload.Value), meta)
	case record.DataTypeRestingHeartRate:
		return record.NewRestingHeartRate(start, int64(payload.Value), meta)
	case record.DataTypeHeartRate:
		samples := make([]record.HeartRateSample, 0, len(payload.Samples))
		for _, sample := range payload.Samples {
			samples = append(samples, record.HeartRateSample{
				Time:           fromUnixNano(sample.TimeNS),
				BeatsPerMinute: int64(sample.Value),
			})
		}
		return record.NewHeartRate(start, end, samples, meta)
	case record.DataTypePower:
		samples := make([]record.PowerSample, 0, len(payload.Samples))
		for _, sample := range payload.Samples {
			samples = append(samples, record.PowerSample{
				Time:  fromUnixNano(sample.TimeNS),
				Power: units.Watts(sample.Value),
			})
		}
		return record.NewPower(start, end, samples, meta)
	default:
		return nil, fmt.Errorf("sqlstore: unknown data type %q in row %s", row.DataType, row.ID)
	}
}

func encodeMetadata(meta record.Metadata) metadataPayload {
	out := metadataPayload{Method: meta.RecordingMethod().String()}
	if device, ok := meta.Device(); ok {
		out.Device = &devicePayload{
			Type:         device.Type.String(),
			Manufacturer: device.Manufacturer,
			Model:        device.Model,
		}
	}
	return out
}

func decodeMetadata(payload metadataPayload) record.Metadata {
	meta := record.NewMetadata(record.ParseRecordingMethod(payload.Method))
	if payload.Device != nil {
		meta = meta.WithDevice(record.Device{
			Type:         record.ParseDeviceType(payload.Device.Type),
			Manufacturer: payload.Device.Manufacturer,
			Model:        payload.Device.Model,
		})
	}
	return meta
}

func fromUnixNano(value int64) time.Time {
	return time.Unix(0, value).UTC()
}
