package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/record"
	"github.com/goliatone/go-health/units"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const aggregateCacheKeyPrefix = "go-health::aggregate::v1"

// AggregateCacheKey returns the cache key for a summed aggregate:
// go-health::aggregate::v1::<platform>::<data_type>::<revision>::<start_ns>::<end_ns>
// with each segment URL-path escaped.
func AggregateCacheKey(platformID string, dataType record.DataType, revision uint64, rng record.TimeRange) string {
	segments := []string{
		strings.TrimSpace(platformID),
		string(dataType),
		strconv.FormatUint(revision, 10),
		strconv.FormatInt(rng.Start.UTC().UnixNano(), 10),
		strconv.FormatInt(rng.End.UTC().UnixNano(), 10),
	}
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(append([]string{aggregateCacheKeyPrefix}, segments...), "::")
}

// Aggregate sums steps and distance in the database. Other types report
// unsupported so callers fall back to summing records themselves.
func (p *Platform) Aggregate(ctx context.Context, req core.AggregateRequest) (record.AggregatedRecord, error) {
	if !p.Available() {
		return nil, fmt.Errorf("sqlstore: platform is not configured")
	}
	if err := req.Range.Validate(); err != nil {
		return nil, err
	}
	switch req.Type {
	case record.DataTypeSteps, record.DataTypeDistance:
	default:
		return nil, unsupportedError(
			fmt.Sprintf("sqlstore: native aggregation is not available for %s", req.Type),
			map[string]any{"data_type": string(req.Type), "platform_id": p.id},
		)
	}
	if !p.supports(req.Type) {
		return nil, unsupportedError(
			fmt.Sprintf("sqlstore: data type %q is not enabled", req.Type),
			map[string]any{"data_type": string(req.Type), "platform_id": p.id},
		)
	}

	total, err := p.cachedSum(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.Type == record.DataTypeSteps {
		return record.NewStepsAggregate(req.Range, int64(total)), nil
	}
	return record.NewDistanceAggregate(req.Range, units.Meters(total)), nil
}

func (p *Platform) cachedSum(ctx context.Context, req core.AggregateRequest) (float64, error) {
	if p.cache == nil {
		return p.sum(ctx, req)
	}
	key := AggregateCacheKey(p.id, req.Type, p.Revision(), req.Range)
	return repositorycache.GetOrFetch(ctx, p.cache, key, func(ctx context.Context) (float64, error) {
		return p.sum(ctx, req)
	})
}

func (p *Platform) sum(ctx context.Context, req core.AggregateRequest) (float64, error) {
	var total float64
	err := p.db.NewSelect().
		Model((*recordRow)(nil)).
		ColumnExpr("COALESCE(SUM(?TableAlias.value), 0)").
		Where("?TableAlias.platform_id = ?", p.id).
		Where("?TableAlias.data_type = ?", string(req.Type)).
		Where("?TableAlias.start_ns >= ?", req.Range.Start.UTC().UnixNano()).
		Where("?TableAlias.start_ns < ?", req.Range.End.UTC().UnixNano()).
		Scan(ctx, &total)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: sum %s: %w", req.Type, err)
	}
	p.logger.Debug("sqlstore aggregate computed",
		"platform_id", p.id,
		"data_type", string(req.Type),
		"total", total,
	)
	return total, nil
}
