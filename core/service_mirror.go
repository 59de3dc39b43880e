package core

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-health/record"
)

// Mirror copies records of each requested type from the source platform into
// the target platform. An empty source selects the active platform and an
// empty type list mirrors every type both platforms support.
func (s *Service) Mirror(ctx context.Context, req MirrorRequest) (result MirrorResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"source_platform": req.SourcePlatform,
		"target_platform": req.TargetPlatform,
	}
	defer func() {
		fields["read"] = result.Read
		fields["written"] = result.Write.Written()
		s.observeOperation(ctx, startedAt, "mirror", err, fields)
	}()

	if strings.TrimSpace(req.TargetPlatform) == "" {
		return MirrorResult{}, badInputError("core: target platform is required")
	}
	if err := req.Range.Validate(); err != nil {
		return MirrorResult{}, err
	}
	source, err := s.platformByID(req.SourcePlatform)
	if err != nil {
		return MirrorResult{}, err
	}
	target, err := s.platformByID(req.TargetPlatform)
	if err != nil {
		return MirrorResult{}, err
	}
	if source.ID() == target.ID() {
		return MirrorResult{}, badInputError("core: source and target platform must differ")
	}
	fields["platform_id"] = source.ID()
	result.SourcePlatform = source.ID()
	result.TargetPlatform = target.ID()

	types := record.NormalizeDataTypes(req.Types)
	if len(types) == 0 {
		types = mirrorableTypes(source.Capabilities(), target.Capabilities())
	}
	if skip := record.NormalizeDataTypes(req.SkipTypes); len(skip) > 0 {
		fields["skipped_types"] = dataTypeNames(skip)
		types = withoutTypes(types, skip)
	}

	var records []record.Record
	for _, dataType := range types {
		batch, readErr := s.readRecords(ctx, source, ReadRequest{Type: dataType, Range: req.Range})
		if readErr != nil {
			return result, readErr
		}
		records = append(records, batch...)
	}
	result.Read = len(records)
	if len(records) == 0 {
		result.Write = WriteResult{PlatformID: target.ID(), AtomicGroupWrites: target.Capabilities().AtomicGroupWrites}
		return result, nil
	}

	result.Write, err = s.writeRecords(ctx, target, records)
	return result, err
}

func withoutTypes(types, skip []record.DataType) []record.DataType {
	out := make([]record.DataType, 0, len(types))
	for _, dataType := range types {
		if !slices.Contains(skip, dataType) {
			out = append(out, dataType)
		}
	}
	return out
}

func mirrorableTypes(source, target PlatformCapabilities) []record.DataType {
	writable := make(map[record.DataType]struct{}, len(target.WriteTypes))
	for _, dataType := range target.WriteTypes {
		writable[dataType] = struct{}{}
	}
	var out []record.DataType
	for _, dataType := range record.NormalizeDataTypes(source.ReadTypes) {
		if _, ok := writable[dataType]; ok {
			out = append(out, dataType)
		}
	}
	return out
}
