package core

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-health/authbridge"
	"github.com/goliatone/go-health/record"
	"github.com/goliatone/go-health/units"

	goerrors "github.com/goliatone/go-errors"
)

var testEpoch = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func ts(minutes int) time.Time {
	return testEpoch.Add(time.Duration(minutes) * time.Minute)
}

func testRange(fromMinutes, toMinutes int) record.TimeRange {
	return record.TimeRange{Start: ts(fromMinutes), End: ts(toMinutes)}
}

type stubPlatform struct {
	id        string
	available bool
	caps      PlatformCapabilities

	mu         sync.Mutex
	grants     GrantSet
	statusErrs []error
	records    []record.Record
	writes     map[record.DataType]int
	writeErr   map[record.DataType]error
	readErr    error
	reads      int
}

func newStubPlatform(id string, types ...record.DataType) *stubPlatform {
	return &stubPlatform{
		id:        id,
		available: true,
		caps: PlatformCapabilities{
			ReadTypes:  types,
			WriteTypes: types,
		},
		writes:   map[record.DataType]int{},
		writeErr: map[record.DataType]error{},
	}
}

func (p *stubPlatform) ID() string                         { return p.id }
func (p *stubPlatform) Capabilities() PlatformCapabilities { return p.caps }
func (p *stubPlatform) Available() bool                    { return p.available }

// AuthorizationStatus fails with the queued statusErrs entries in order.
func (p *stubPlatform) AuthorizationStatus(context.Context) (GrantSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.statusErrs) > 0 {
		err := p.statusErrs[0]
		p.statusErrs = p.statusErrs[1:]
		if err != nil {
			return GrantSet{}, err
		}
	}
	return p.grants, nil
}

func (p *stubPlatform) grant(read, write []record.DataType) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grants = GrantSet{Read: read, Write: write}
}

func (p *stubPlatform) Read(_ context.Context, req ReadRequest) ([]record.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reads++
	if p.readErr != nil {
		return nil, p.readErr
	}
	var out []record.Record
	for _, rec := range p.records {
		if rec.DataType() == req.Type {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (p *stubPlatform) Write(_ context.Context, dataType record.DataType, records []record.Record) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.writeErr[dataType]; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		p.records = append(p.records, rec)
		ids = append(ids, string(dataType)+"-"+rec.StartTime().Format(time.RFC3339))
	}
	p.writes[dataType] += len(records)
	return ids, nil
}

type presentingPlatform struct {
	*stubPlatform
	present func(ctx context.Context, ticket *authbridge.Ticket, req AuthorizationRequest) error
}

func (p *presentingPlatform) PresentAuthorization(ctx context.Context, ticket *authbridge.Ticket, req AuthorizationRequest) error {
	return p.present(ctx, ticket, req)
}

type revokingPlatform struct {
	*stubPlatform
	revoked bool
}

func (p *revokingPlatform) RevokeAuthorization(context.Context) error {
	p.revoked = true
	p.grant(nil, nil)
	return nil
}

type stitchingPlatform struct {
	*stubPlatform
	stages  []record.SleepStage
	samples []record.HeartRateSample
}

func (p *stitchingPlatform) ReadSleepStages(context.Context, record.TimeRange) ([]record.SleepStage, error) {
	return p.stages, nil
}

func (p *stitchingPlatform) ReadHeartRateSamples(context.Context, record.TimeRange) ([]record.HeartRateSample, error) {
	return p.samples, nil
}

type aggregatingPlatform struct {
	*stubPlatform
	calls int
}

func (p *aggregatingPlatform) Aggregate(_ context.Context, req AggregateRequest) (record.AggregatedRecord, error) {
	p.calls++
	if req.Type != record.DataTypeSteps {
		return nil, newServiceError("native aggregation unavailable", goerrors.CategoryOperation, ErrorUnsupported)
	}
	return record.NewStepsAggregate(req.Range, 4242), nil
}

type preferencePlatform struct {
	*stubPlatform
	prefs RegionalPreferences
	err   error
}

func (p *preferencePlatform) RegionalPreferences(context.Context) (RegionalPreferences, error) {
	return p.prefs, p.err
}

func mustSteps(start, end time.Time, count int64) record.Record {
	rec, err := record.NewSteps(start, end, count, record.ManualEntry())
	if err != nil {
		panic(err)
	}
	return rec
}

func mustWeight(at time.Time, kg float64) record.Record {
	rec, err := record.NewWeight(at, units.Kilograms(kg), record.ManualEntry())
	if err != nil {
		panic(err)
	}
	return rec
}

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) Logger {
	return s
}

type stubLoggerProvider struct {
	logger Logger
}

func (s stubLoggerProvider) GetLogger(string) Logger {
	return s.logger
}

type mapRawLoader struct {
	values map[string]any
}

func (l mapRawLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.values))
	for key, value := range l.values {
		out[key] = value
	}
	return out, nil
}
