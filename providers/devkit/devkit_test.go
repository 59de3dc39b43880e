package devkit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-health/authbridge"
	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/record"
)

var devkitBase = time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)

func conformanceWindow() record.TimeRange {
	return record.TimeRange{Start: devkitBase, End: devkitBase.Add(6 * time.Hour)}
}

func TestSampleRecord_CoversEveryDataType(t *testing.T) {
	for _, dataType := range record.AllDataTypes() {
		rec, err := SampleRecord(dataType, devkitBase)
		if err != nil {
			t.Fatalf("fixture %s: %v", dataType, err)
		}
		if rec.DataType() != dataType {
			t.Fatalf("fixture %s built a %s record", dataType, rec.DataType())
		}
		if !rec.StartTime().Equal(devkitBase) {
			t.Fatalf("fixture %s starts at %s", dataType, rec.StartTime())
		}
	}
	if _, err := SampleRecord(record.DataType("mood"), devkitBase); err == nil {
		t.Fatalf("expected unknown data type to fail")
	}
}

func TestFakePlatform_PassesConformance(t *testing.T) {
	platform := NewFakePlatform("Fake")
	if platform.ID() != "fake" {
		t.Fatalf("expected normalized id, got %q", platform.ID())
	}
	if err := ValidatePlatformConformance(context.Background(), platform, conformanceWindow()); err != nil {
		t.Fatalf("conformance: %v", err)
	}
	if got := len(platform.Records(record.DataTypeSteps)); got != 2 {
		t.Fatalf("expected two steps fixtures stored, got %d", got)
	}
}

func TestValidatePlatformConformance_DetectsLeakyRangeEnd(t *testing.T) {
	leaky := &leakyPlatform{FakePlatform: NewFakePlatform("leaky", WithCapabilities(core.PlatformCapabilities{
		ReadTypes:  []record.DataType{record.DataTypeSteps},
		WriteTypes: []record.DataType{record.DataTypeSteps},
	}))}
	if err := ValidatePlatformConformance(context.Background(), leaky, conformanceWindow()); err == nil {
		t.Fatalf("expected inclusive range end to fail conformance")
	}
	if err := ValidatePlatformConformance(context.Background(), nil, conformanceWindow()); err == nil {
		t.Fatalf("expected nil platform to fail conformance")
	}
}

func TestFakePlatform_WriteGroupIsAtomic(t *testing.T) {
	platform := NewFakePlatform("fake")
	steps, _ := SampleRecord(record.DataTypeSteps, devkitBase)
	weight, _ := SampleRecord(record.DataTypeWeight, devkitBase)

	if _, err := platform.Write(context.Background(), record.DataTypeSteps, []record.Record{steps, weight}); !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(platform.Records(record.DataTypeSteps)) != 0 {
		t.Fatalf("expected failed group to store nothing")
	}
	if platform.WriteCalls(record.DataTypeSteps) != 1 {
		t.Fatalf("expected write call to be counted")
	}
}

func TestFakePlatform_ScriptedFailures(t *testing.T) {
	boom := errors.New("disk full")
	platform := NewFakePlatform("fake",
		WithWriteError(record.DataTypeWeight, boom),
		WithCapabilities(core.PlatformCapabilities{
			ReadTypes:  []record.DataType{record.DataTypeSteps, record.DataTypeWeight},
			WriteTypes: []record.DataType{record.DataTypeWeight},
		}),
	)
	weight, _ := SampleRecord(record.DataTypeWeight, devkitBase)
	if _, err := platform.Write(context.Background(), record.DataTypeWeight, []record.Record{weight}); !errors.Is(err, boom) {
		t.Fatalf("expected scripted write error, got %v", err)
	}
	steps, _ := SampleRecord(record.DataTypeSteps, devkitBase)
	if _, err := platform.Write(context.Background(), record.DataTypeSteps, []record.Record{steps}); !core.IsUnsupported(err) {
		t.Fatalf("expected unsupported write, got %v", err)
	}

	unreadable := NewFakePlatform("fake", WithReadError(boom))
	if _, err := unreadable.Read(context.Background(), core.ReadRequest{Type: record.DataTypeSteps, Range: conformanceWindow()}); !errors.Is(err, boom) {
		t.Fatalf("expected scripted read error, got %v", err)
	}
}

func TestFakePlatform_AuthorizationBehaviors(t *testing.T) {
	ctx := context.Background()
	req := core.AuthorizationRequest{PlatformID: "fake", Read: []record.DataType{record.DataTypeSteps}}

	cases := map[AuthorizationBehavior]authbridge.Outcome{
		AuthorizationGrant:   authbridge.OutcomeGranted,
		AuthorizationDeny:    authbridge.OutcomeDenied,
		AuthorizationDismiss: authbridge.OutcomeDismissed,
	}
	for behavior, want := range cases {
		platform := NewFakePlatform("fake", WithAuthorizationBehavior(behavior))
		if err := ValidatePresenterConformance(ctx, platform, req, want); err != nil {
			t.Fatalf("behavior %d: %v", behavior, err)
		}
		if len(platform.AuthorizationRequests()) != 1 {
			t.Fatalf("behavior %d: expected request to be captured", behavior)
		}
	}

	granted := NewFakePlatform("fake")
	if err := ValidatePresenterConformance(ctx, granted, req, authbridge.OutcomeGranted); err != nil {
		t.Fatalf("grant: %v", err)
	}
	status, _ := granted.AuthorizationStatus(ctx)
	if len(status.Read) != 1 || status.Read[0] != record.DataTypeSteps {
		t.Fatalf("expected grant to be stored, got %+v", status)
	}

	failing := NewFakePlatform("fake", WithAuthorizationBehavior(AuthorizationFail))
	if err := ValidatePresenterConformance(ctx, failing, req, authbridge.OutcomeGranted); err == nil {
		t.Fatalf("expected presenter failure")
	}
}

func TestFakePlatform_HoldThenResolve(t *testing.T) {
	platform := NewFakePlatform("fake", WithAuthorizationBehavior(AuthorizationHold))
	req := core.AuthorizationRequest{PlatformID: "fake", Write: []record.DataType{record.DataTypeWeight}}

	done := make(chan error, 1)
	go func() {
		done <- ValidatePresenterConformance(context.Background(), platform, req, authbridge.OutcomeGranted)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !platform.HasPending() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for held ticket")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !platform.ResolvePending(true) {
		t.Fatalf("expected held ticket to resolve")
	}
	if err := <-done; err != nil {
		t.Fatalf("held request: %v", err)
	}
	if platform.ResolvePending(true) || platform.DismissPending() {
		t.Fatalf("expected no pending ticket after resolution")
	}
	status, _ := platform.AuthorizationStatus(context.Background())
	if len(status.Write) != 1 {
		t.Fatalf("expected write grant after resolution, got %+v", status)
	}
}

func TestFakePlatform_NativeAggregateAndPreferences(t *testing.T) {
	ctx := context.Background()
	window := conformanceWindow()
	platform := NewFakePlatform("fake", WithNativeAggregate(record.NewStepsAggregate(window, 9000)))

	aggregated, err := platform.Aggregate(ctx, core.AggregateRequest{Type: record.DataTypeSteps, Range: window})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if aggregated.(record.StepsAggregate).Count != 9000 {
		t.Fatalf("expected scripted aggregate, got %+v", aggregated)
	}
	if _, err := platform.Aggregate(ctx, core.AggregateRequest{Type: record.DataTypeDistance, Range: window}); !core.IsUnsupported(err) {
		t.Fatalf("expected unsupported aggregate, got %v", err)
	}
	if _, err := platform.RegionalPreferences(ctx); !core.IsUnsupported(err) {
		t.Fatalf("expected unscripted preferences to be unsupported, got %v", err)
	}

	if err := platform.RevokeAuthorization(ctx); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if platform.Revocations() != 1 {
		t.Fatalf("expected revocation to be counted")
	}
}

func TestStitchingPlatform_FiltersRawInput(t *testing.T) {
	window := record.TimeRange{Start: devkitBase, End: devkitBase.Add(time.Hour)}
	platform := NewStitchingPlatform(NewFakePlatform("stitch"),
		[]record.SleepStage{
			{Start: devkitBase.Add(-time.Hour), End: devkitBase.Add(-30 * time.Minute), Type: record.SleepStageLight},
			{Start: devkitBase.Add(-10 * time.Minute), End: devkitBase.Add(10 * time.Minute), Type: record.SleepStageDeep},
		},
		[]record.HeartRateSample{
			{Time: devkitBase, BeatsPerMinute: 60},
			{Time: devkitBase.Add(time.Hour), BeatsPerMinute: 61},
		},
	)

	stages, _ := platform.ReadSleepStages(context.Background(), window)
	if len(stages) != 1 || stages[0].Type != record.SleepStageDeep {
		t.Fatalf("expected only the overlapping stage, got %+v", stages)
	}
	samples, _ := platform.ReadHeartRateSamples(context.Background(), window)
	if len(samples) != 1 || samples[0].BeatsPerMinute != 60 {
		t.Fatalf("expected half-open sample filter, got %+v", samples)
	}
}

// leakyPlatform includes records starting exactly at the range end.
type leakyPlatform struct {
	*FakePlatform
}

func (p *leakyPlatform) Read(ctx context.Context, req core.ReadRequest) ([]record.Record, error) {
	widened := req
	widened.Range.End = req.Range.End.Add(time.Nanosecond)
	return p.FakePlatform.Read(ctx, widened)
}
