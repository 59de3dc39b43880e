package core

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-health/record"
	"github.com/goliatone/go-health/units"
)

func TestMirror_CopiesSharedTypes(t *testing.T) {
	source := newStubPlatform("apple", record.DataTypeSteps, record.DataTypeWeight, record.DataTypeHeartRate)
	source.records = []record.Record{
		mustSteps(ts(0), ts(10), 100),
		mustWeight(ts(5), 72),
		mustSteps(ts(120), ts(130), 999),
	}
	target := newStubPlatform("fit", record.DataTypeSteps, record.DataTypeWeight)
	svc, err := NewService(Config{Platform: "apple"}, WithPlatforms(source, target))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Mirror(context.Background(), MirrorRequest{Range: testRange(0, 60), TargetPlatform: "fit"})
	if err != nil {
		t.Fatalf("mirror: %v", err)
	}
	if result.SourcePlatform != "apple" || result.TargetPlatform != "fit" {
		t.Fatalf("unexpected platforms: %+v", result)
	}
	if result.Read != 2 || result.Write.Written() != 2 {
		t.Fatalf("expected 2 records mirrored, got read=%d written=%d", result.Read, result.Write.Written())
	}
	if target.writes[record.DataTypeSteps] != 1 || target.writes[record.DataTypeWeight] != 1 {
		t.Fatalf("unexpected target writes: %v", target.writes)
	}
}

func TestMirror_SkipTypesLeavesWrittenGroupsAlone(t *testing.T) {
	source := newStubPlatform("apple", record.DataTypeSteps, record.DataTypeWeight)
	source.records = []record.Record{mustSteps(ts(0), ts(10), 100), mustWeight(ts(5), 72)}
	target := newStubPlatform("fit", record.DataTypeSteps, record.DataTypeWeight)
	target.writeErr[record.DataTypeWeight] = errors.New("disk full")
	svc, err := NewService(Config{}, WithPlatforms(source, target))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	req := MirrorRequest{Range: testRange(0, 60), SourcePlatform: "apple", TargetPlatform: "fit"}

	first, err := svc.Mirror(context.Background(), req)
	if !IsTransport(err) {
		t.Fatalf("expected failed weight group to surface, got %v", err)
	}
	if first.Write.Written() != 1 || len(first.Write.Failed()) != 1 {
		t.Fatalf("expected one written and one failed group, got %+v", first.Write)
	}

	delete(target.writeErr, record.DataTypeWeight)
	req.SkipTypes = []record.DataType{record.DataTypeSteps}
	second, err := svc.Mirror(context.Background(), req)
	if err != nil {
		t.Fatalf("retry mirror: %v", err)
	}
	if second.Read != 1 || second.Write.Written() != 1 {
		t.Fatalf("expected only the weight group on retry, got read=%d written=%d", second.Read, second.Write.Written())
	}
	if target.writes[record.DataTypeSteps] != 1 || target.writes[record.DataTypeWeight] != 1 {
		t.Fatalf("expected no duplicate target writes, got %v", target.writes)
	}
}

func TestMirror_RejectsInvalidRequests(t *testing.T) {
	source := newStubPlatform("apple", record.DataTypeSteps)
	svc, err := NewService(Config{}, WithPlatforms(source))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.Mirror(ctx, MirrorRequest{Range: testRange(0, 60)}); !IsBadInput(err) {
		t.Fatalf("expected bad input without target, got %v", err)
	}
	if _, err := svc.Mirror(ctx, MirrorRequest{Range: testRange(0, 60), TargetPlatform: "apple"}); !IsBadInput(err) {
		t.Fatalf("expected bad input for same platform, got %v", err)
	}
	if _, err := svc.Mirror(ctx, MirrorRequest{Range: testRange(0, 60), TargetPlatform: "fit"}); !IsPlatformNotFound(err) {
		t.Fatalf("expected missing target, got %v", err)
	}
}

func TestMirrorableTypes(t *testing.T) {
	types := mirrorableTypes(
		PlatformCapabilities{ReadTypes: []record.DataType{record.DataTypeWeight, record.DataTypeSteps, record.DataTypePower}},
		PlatformCapabilities{WriteTypes: []record.DataType{record.DataTypeSteps, record.DataTypeWeight}},
	)
	if len(types) != 2 || types[0] != record.DataTypeSteps || types[1] != record.DataTypeWeight {
		t.Fatalf("unexpected mirrorable types: %v", types)
	}
}

func TestRegionalPreferences(t *testing.T) {
	ctx := context.Background()

	plain, err := NewService(Config{DefaultTemperatureUnit: "fahrenheit"}, WithPlatforms(newStubPlatform("fit")))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	prefs, err := plain.RegionalPreferences(ctx)
	if err != nil {
		t.Fatalf("preferences: %v", err)
	}
	if prefs.Source != PreferenceSourceDefault || prefs.Temperature != units.TemperatureFahrenheit {
		t.Fatalf("expected configured defaults, got %+v", prefs)
	}

	platform := &preferencePlatform{
		stubPlatform: newStubPlatform("apple"),
		prefs:        RegionalPreferences{Temperature: units.TemperatureKelvin},
	}
	svc, err := NewService(Config{}, WithPlatforms(platform))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	prefs, err = svc.RegionalPreferences(ctx)
	if err != nil {
		t.Fatalf("preferences: %v", err)
	}
	if prefs.Source != PreferenceSourcePlatform || prefs.Temperature != units.TemperatureKelvin || prefs.MeasurementSystem != MeasurementSystemMetric {
		t.Fatalf("expected platform preferences, got %+v", prefs)
	}

	platform.err = context.DeadlineExceeded
	prefs, err = svc.RegionalPreferences(ctx)
	if err != nil || prefs.Source != PreferenceSourceDefault {
		t.Fatalf("expected default fallback on platform error, got %+v %v", prefs, err)
	}
}
