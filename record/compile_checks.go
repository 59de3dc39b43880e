package record

var (
	_ IntervalRecord      = Steps{}
	_ IntervalRecord      = Distance{}
	_ IntervalRecord      = FloorsClimbed{}
	_ IntervalRecord      = ActiveEnergy{}
	_ IntervalRecord      = SleepSession{}
	_ IntervalRecord      = ExerciseSession{}
	_ InstantaneousRecord = Weight{}
	_ InstantaneousRecord = Height{}
	_ InstantaneousRecord = BodyFat{}
	_ InstantaneousRecord = BodyTemperature{}
	_ InstantaneousRecord = BloodPressure{}
	_ InstantaneousRecord = BloodGlucose{}
	_ InstantaneousRecord = OxygenSaturation{}
	_ InstantaneousRecord = RestingHeartRate{}
	_ SeriesRecord        = HeartRate{}
	_ SeriesRecord        = Power{}
)
