package core

import (
	"context"
	"time"

	"github.com/goliatone/go-health/authbridge"
	"github.com/goliatone/go-health/record"
	"github.com/goliatone/go-health/units"

	glog "github.com/goliatone/go-logger/glog"
)

// HealthManager is the facade presentation layers call into.
type HealthManager interface {
	IsAvailable() bool
	IsAuthorized(ctx context.Context, read, write []record.DataType) (bool, error)
	RequestAuthorization(ctx context.Context, read, write []record.DataType) (bool, error)
	ReadData(ctx context.Context, req ReadRequest) ([]record.Record, error)
	WriteData(ctx context.Context, records []record.Record) (WriteResult, error)
	Aggregate(ctx context.Context, req AggregateRequest) (record.AggregatedRecord, error)
	IsRevokeAuthorizationSupported() bool
	RevokeAuthorization(ctx context.Context) error
	RegionalPreferences(ctx context.Context) (RegionalPreferences, error)
}

// Platform adapts one native health store. Optional behavior is exposed
// through SleepStageSource, HeartRateSampleSource, NativeAggregator, Revoker,
// RegionalPreferenceSource and AuthorizationPresenter.
type Platform interface {
	ID() string
	Capabilities() PlatformCapabilities
	Available() bool
	AuthorizationStatus(ctx context.Context) (GrantSet, error)
	Read(ctx context.Context, req ReadRequest) ([]record.Record, error)
	Write(ctx context.Context, dataType record.DataType, records []record.Record) ([]string, error)
}

type PlatformCapabilities struct {
	ReadTypes  []record.DataType
	WriteTypes []record.DataType
	// AtomicGroupWrites reports whether a Write call is all-or-nothing.
	AtomicGroupWrites bool
	// Zero durations fall back to the configured defaults. SleepStageExactMatch
	// asks for a zero sleep gap tolerance regardless of configuration.
	SleepStageGapTolerance time.Duration
	SleepStageExactMatch   bool
	HeartRateMaxGap        time.Duration
}

type SleepStageSource interface {
	ReadSleepStages(ctx context.Context, rng record.TimeRange) ([]record.SleepStage, error)
}

type HeartRateSampleSource interface {
	ReadHeartRateSamples(ctx context.Context, rng record.TimeRange) ([]record.HeartRateSample, error)
}

// NativeAggregator computes aggregates in the platform. Returning an
// unsupported error makes the service fall back to manual summation.
type NativeAggregator interface {
	Aggregate(ctx context.Context, req AggregateRequest) (record.AggregatedRecord, error)
}

type Revoker interface {
	RevokeAuthorization(ctx context.Context) error
}

type RegionalPreferenceSource interface {
	RegionalPreferences(ctx context.Context) (RegionalPreferences, error)
}

// AuthorizationPresenter triggers the platform permission surface and reports
// the result through ticket.
type AuthorizationPresenter interface {
	PresentAuthorization(ctx context.Context, ticket *authbridge.Ticket, req AuthorizationRequest) error
}

type Registry interface {
	Register(platform Platform) error
	Get(platformID string) (Platform, bool)
	List() []Platform
}

type PermissionEvaluator interface {
	EvaluateAccess(ctx context.Context, platform Platform, read, write []record.DataType) (PermissionDecision, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type GrantSet struct {
	Read  []record.DataType
	Write []record.DataType
}

type AuthorizationRequest struct {
	PlatformID string
	Read       []record.DataType
	Write      []record.DataType
}

// AuthorizationPrompt is the payload carried through the authorization bridge.
type AuthorizationPrompt struct {
	Presenter AuthorizationPresenter
	Request   AuthorizationRequest
}

type PermissionDecision struct {
	Allowed      bool
	Reason       string
	MissingRead  []record.DataType
	MissingWrite []record.DataType
}

// ReadRequest selects records whose start time falls in Range, which is
// half-open: [Start, End).
type ReadRequest struct {
	Type  record.DataType
	Range record.TimeRange
}

type AggregateRequest struct {
	Type  record.DataType
	Range record.TimeRange
}

type WriteGroupResult struct {
	DataType record.DataType
	Count    int
	IDs      []string
	Err      error
}

// WriteResult reports one entry per data type group. Groups are submitted
// independently; a failed group never rolls back another.
type WriteResult struct {
	PlatformID        string
	AtomicGroupWrites bool
	Groups            []WriteGroupResult
}

func (r WriteResult) Written() int {
	total := 0
	for _, group := range r.Groups {
		if group.Err == nil {
			total += group.Count
		}
	}
	return total
}

func (r WriteResult) Failed() []WriteGroupResult {
	var out []WriteGroupResult
	for _, group := range r.Groups {
		if group.Err != nil {
			out = append(out, group)
		}
	}
	return out
}

type MeasurementSystem string

const (
	MeasurementSystemMetric   MeasurementSystem = "metric"
	MeasurementSystemImperial MeasurementSystem = "imperial"
)

const (
	PreferenceSourcePlatform = "platform"
	PreferenceSourceDefault  = "default"
)

type RegionalPreferences struct {
	Temperature       units.TemperatureUnit
	MeasurementSystem MeasurementSystem
	Source            string
}

type MirrorRequest struct {
	Range          record.TimeRange
	Types          []record.DataType
	SourcePlatform string
	TargetPlatform string
	// SkipTypes are left out of the copy, typically the groups an earlier
	// attempt of the same job already wrote.
	SkipTypes []record.DataType
}

type MirrorResult struct {
	SourcePlatform string
	TargetPlatform string
	Read           int
	Write          WriteResult
}
