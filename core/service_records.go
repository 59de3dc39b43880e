package core

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/goliatone/go-health/record"
	"github.com/goliatone/go-health/stitch"
)

func (s *Service) ReadData(ctx context.Context, req ReadRequest) (records []record.Record, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"data_type": string(req.Type)}
	defer func() {
		fields["count"] = len(records)
		s.observeOperation(ctx, startedAt, "read_data", err, fields)
	}()

	if err := validateRangeRequest(req.Type, req.Range); err != nil {
		return nil, err
	}
	platform, err := s.ActivePlatform()
	if err != nil {
		return nil, err
	}
	fields["platform_id"] = platform.ID()
	return s.readRecords(ctx, platform, req)
}

// readRecords reads req.Type from platform, stitching raw stages or samples
// when the platform offers them, then keeps records whose start falls in
// [Start, End) sorted by start.
func (s *Service) readRecords(ctx context.Context, platform Platform, req ReadRequest) ([]record.Record, error) {
	capabilities := platform.Capabilities()
	if !slices.Contains(capabilities.ReadTypes, req.Type) {
		return nil, s.unsupported(
			fmt.Sprintf("core: platform %q cannot read %s", platform.ID(), req.Type),
			map[string]any{"platform_id": platform.ID(), "data_type": string(req.Type)},
		)
	}

	var (
		raw []record.Record
		err error
	)
	switch source := any(platform); {
	case req.Type == record.DataTypeSleepSession && implements[SleepStageSource](source):
		raw, err = s.stitchSleep(ctx, source.(SleepStageSource), capabilities, req.Range)
	case req.Type == record.DataTypeHeartRate && implements[HeartRateSampleSource](source):
		raw, err = s.stitchHeartRate(ctx, source.(HeartRateSampleSource), capabilities, req.Range)
	default:
		raw, err = platform.Read(ctx, req)
		err = s.mapError(err)
	}
	if err != nil {
		return nil, err
	}

	out := make([]record.Record, 0, len(raw))
	for _, rec := range raw {
		if rec == nil || rec.DataType() != req.Type || !req.Range.Contains(rec.StartTime()) {
			continue
		}
		out = append(out, rec)
	}
	slices.SortStableFunc(out, func(a, b record.Record) int {
		return a.StartTime().Compare(b.StartTime())
	})
	return out, nil
}

func implements[T any](value any) bool {
	_, ok := value.(T)
	return ok
}

func (s *Service) stitchSleep(ctx context.Context, source SleepStageSource, capabilities PlatformCapabilities, rng record.TimeRange) ([]record.Record, error) {
	stages, err := source.ReadSleepStages(ctx, rng)
	if err != nil {
		return nil, s.mapError(err)
	}
	sessions, err := stitch.GroupSleepStages(stages,
		stitch.WithSleepGapTolerance(s.sleepGapTolerance(capabilities)),
		stitch.WithMetadata(record.NewMetadata(record.RecordingMethodAutoRecorded)),
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	out := make([]record.Record, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, session)
	}
	return out, nil
}

// sleepGapTolerance prefers the platform's explicit setting over the
// configured one.
func (s *Service) sleepGapTolerance(capabilities PlatformCapabilities) time.Duration {
	switch {
	case capabilities.SleepStageExactMatch:
		return 0
	case capabilities.SleepStageGapTolerance > 0:
		return capabilities.SleepStageGapTolerance
	default:
		return s.config.sleepGapTolerance()
	}
}

func (s *Service) stitchHeartRate(ctx context.Context, source HeartRateSampleSource, capabilities PlatformCapabilities, rng record.TimeRange) ([]record.Record, error) {
	samples, err := source.ReadHeartRateSamples(ctx, rng)
	if err != nil {
		return nil, s.mapError(err)
	}
	maxGap := capabilities.HeartRateMaxGap
	if maxGap <= 0 {
		maxGap = s.config.HeartRateMaxGap
	}
	series, err := stitch.GroupHeartRate(samples,
		stitch.WithHeartRateMaxGap(maxGap),
		stitch.WithMetadata(record.NewMetadata(record.RecordingMethodAutoRecorded)),
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	out := make([]record.Record, 0, len(series))
	for _, item := range series {
		out = append(out, item)
	}
	return out, nil
}

// WriteData submits one Write call per data type in lexical order. The
// returned error is the first failed group; every group outcome is in the
// result.
func (s *Service) WriteData(ctx context.Context, records []record.Record) (result WriteResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"count": len(records)}
	defer func() {
		fields["written"] = result.Written()
		fields["failed_groups"] = len(result.Failed())
		s.observeOperation(ctx, startedAt, "write_data", err, fields)
	}()

	platform, err := s.ActivePlatform()
	if err != nil {
		return WriteResult{}, err
	}
	fields["platform_id"] = platform.ID()
	return s.writeRecords(ctx, platform, records)
}

func (s *Service) writeRecords(ctx context.Context, platform Platform, records []record.Record) (WriteResult, error) {
	groups, order, err := groupByDataType(records)
	if err != nil {
		return WriteResult{}, err
	}
	capabilities := platform.Capabilities()
	result := WriteResult{
		PlatformID:        platform.ID(),
		AtomicGroupWrites: capabilities.AtomicGroupWrites,
		Groups:            make([]WriteGroupResult, 0, len(order)),
	}

	var firstErr error
	for _, dataType := range order {
		group := WriteGroupResult{DataType: dataType, Count: len(groups[dataType])}
		switch {
		case ctx != nil && ctx.Err() != nil:
			group.Err = cancelledError(ctx.Err())
		case !slices.Contains(capabilities.WriteTypes, dataType):
			group.Err = s.unsupported(
				fmt.Sprintf("core: platform %q cannot write %s", platform.ID(), dataType),
				map[string]any{"platform_id": platform.ID(), "data_type": string(dataType)},
			)
		default:
			ids, writeErr := platform.Write(ctx, dataType, groups[dataType])
			group.IDs = ids
			group.Err = s.mapError(writeErr)
		}
		if group.Err != nil && firstErr == nil {
			firstErr = group.Err
		}
		result.Groups = append(result.Groups, group)
	}
	return result, firstErr
}

func groupByDataType(records []record.Record) (map[record.DataType][]record.Record, []record.DataType, error) {
	groups := make(map[record.DataType][]record.Record)
	order := make([]record.DataType, 0)
	for idx, rec := range records {
		if rec == nil {
			return nil, nil, badInputError(fmt.Sprintf("core: record %d is nil", idx))
		}
		dataType := rec.DataType()
		if _, ok := groups[dataType]; !ok {
			order = append(order, dataType)
		}
		groups[dataType] = append(groups[dataType], rec)
	}
	slices.Sort(order)
	return groups, order, nil
}

// Aggregate prefers the platform's native aggregation and falls back to
// reading, stitching and summing manually.
func (s *Service) Aggregate(ctx context.Context, req AggregateRequest) (aggregated record.AggregatedRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"data_type": string(req.Type)}
	defer func() {
		s.observeOperation(ctx, startedAt, "aggregate", err, fields)
	}()

	if err := validateRangeRequest(req.Type, req.Range); err != nil {
		return nil, err
	}
	platform, err := s.ActivePlatform()
	if err != nil {
		return nil, err
	}
	fields["platform_id"] = platform.ID()

	if native, ok := platform.(NativeAggregator); ok {
		aggregated, err := native.Aggregate(ctx, req)
		if err == nil && aggregated != nil {
			fields["path"] = "native"
			return aggregated, nil
		}
		if err != nil && !IsUnsupported(err) {
			return nil, s.mapError(err)
		}
	}

	fields["path"] = "manual"
	records, err := s.readRecords(ctx, platform, ReadRequest{Type: req.Type, Range: req.Range})
	if err != nil {
		return nil, err
	}
	fields["count"] = len(records)
	aggregated, err = record.Summarize(req.Type, req.Range, records)
	if err != nil {
		return nil, s.mapError(err)
	}
	return aggregated, nil
}

func validateRangeRequest(dataType record.DataType, rng record.TimeRange) error {
	if !dataType.Valid() {
		return badInputError(fmt.Sprintf("core: unknown data type %q", dataType))
	}
	if err := rng.Validate(); err != nil {
		return err
	}
	return nil
}
