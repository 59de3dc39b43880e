package command

import (
	"context"
	"errors"
	"testing"
	"time"

	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/record"
)

type stubMutatingService struct {
	writeDataFn            func(ctx context.Context, records []record.Record) (core.WriteResult, error)
	requestAuthorizationFn func(ctx context.Context, read, write []record.DataType) (bool, error)
	revokeAuthorizationFn  func(ctx context.Context) error
	mirrorFn               func(ctx context.Context, req core.MirrorRequest) (core.MirrorResult, error)
}

func (s stubMutatingService) WriteData(ctx context.Context, records []record.Record) (core.WriteResult, error) {
	return s.writeDataFn(ctx, records)
}

func (s stubMutatingService) RequestAuthorization(ctx context.Context, read, write []record.DataType) (bool, error) {
	return s.requestAuthorizationFn(ctx, read, write)
}

func (s stubMutatingService) RevokeAuthorization(ctx context.Context) error {
	return s.revokeAuthorizationFn(ctx)
}

func (s stubMutatingService) Mirror(ctx context.Context, req core.MirrorRequest) (core.MirrorResult, error) {
	return s.mirrorFn(ctx, req)
}

var testStart = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func mustSteps(t *testing.T, count int64) record.Record {
	t.Helper()
	rec, err := record.NewSteps(testStart, testStart.Add(10*time.Minute), count, record.ManualEntry())
	if err != nil {
		t.Fatalf("new steps: %v", err)
	}
	return rec
}

func TestWriteRecordsCommand_StoresResultOnPartialFailure(t *testing.T) {
	failure := errors.New("weight group failed")
	svc := stubMutatingService{
		writeDataFn: func(_ context.Context, records []record.Record) (core.WriteResult, error) {
			if len(records) != 1 {
				t.Fatalf("expected 1 record, got %d", len(records))
			}
			return core.WriteResult{
				PlatformID: "fit",
				Groups: []core.WriteGroupResult{
					{DataType: record.DataTypeSteps, Count: 1, IDs: []string{"s1"}},
					{DataType: record.DataTypeWeight, Count: 1, Err: failure},
				},
			}, failure
		},
	}

	cmd := NewWriteRecordsCommand(svc)
	collector := gocmd.NewResult[core.WriteResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, WriteRecordsMessage{Records: []record.Record{mustSteps(t, 100)}})
	if !errors.Is(err, failure) {
		t.Fatalf("expected group failure to surface, got %v", err)
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.Written() != 1 || len(result.Failed()) != 1 {
		t.Fatalf("unexpected write result: %#v", result)
	}
}

func TestRequestAuthorizationCommand_StoresGrant(t *testing.T) {
	called := false
	svc := stubMutatingService{
		requestAuthorizationFn: func(_ context.Context, read, write []record.DataType) (bool, error) {
			called = true
			if len(read) != 1 || read[0] != record.DataTypeHeartRate || len(write) != 0 {
				t.Fatalf("unexpected authorization payload: %v %v", read, write)
			}
			return true, nil
		},
	}
	cmd := NewRequestAuthorizationCommand(svc)
	collector := gocmd.NewResult[bool]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, RequestAuthorizationMessage{Read: []record.DataType{record.DataTypeHeartRate}})
	if err != nil {
		t.Fatalf("execute request authorization: %v", err)
	}
	if !called {
		t.Fatalf("expected authorization service invocation")
	}
	if granted, ok := collector.Load(); !ok || !granted {
		t.Fatalf("expected stored grant, got %v %v", granted, ok)
	}
}

func TestRevokeAndMirrorCommands_DelegateToService(t *testing.T) {
	t.Run("revoke", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			revokeAuthorizationFn: func(context.Context) error {
				called = true
				return nil
			},
		}
		if err := NewRevokeAuthorizationCommand(svc).Execute(context.Background(), RevokeAuthorizationMessage{}); err != nil {
			t.Fatalf("execute revoke: %v", err)
		}
		if !called {
			t.Fatalf("expected revoke invocation")
		}
	})

	t.Run("mirror", func(t *testing.T) {
		svc := stubMutatingService{
			mirrorFn: func(_ context.Context, req core.MirrorRequest) (core.MirrorResult, error) {
				if req.TargetPlatform != "fit" {
					t.Fatalf("unexpected mirror target %q", req.TargetPlatform)
				}
				return core.MirrorResult{SourcePlatform: "apple", TargetPlatform: "fit", Read: 3}, nil
			},
		}
		collector := gocmd.NewResult[core.MirrorResult]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		err := NewMirrorCommand(svc).Execute(ctx, MirrorMessage{Request: core.MirrorRequest{
			Range:          record.TimeRange{Start: testStart, End: testStart.Add(time.Hour)},
			TargetPlatform: "fit",
		}})
		if err != nil {
			t.Fatalf("execute mirror: %v", err)
		}
		if result, ok := collector.Load(); !ok || result.Read != 3 {
			t.Fatalf("unexpected mirror result: %#v", result)
		}
	})
}

func TestMessages_ValidateReturnsRichError(t *testing.T) {
	cases := map[string]error{
		"write":         (WriteRecordsMessage{}).Validate(),
		"write nil":     (WriteRecordsMessage{Records: []record.Record{nil}}).Validate(),
		"authorization": (RequestAuthorizationMessage{Read: []record.DataType{"bogus"}}).Validate(),
		"mirror target": (MirrorMessage{}).Validate(),
		"mirror range":  (MirrorMessage{Request: core.MirrorRequest{TargetPlatform: "fit"}}).Validate(),
	}
	for name, err := range cases {
		if err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
		var rich *goerrors.Error
		if !goerrors.As(err, &rich) {
			t.Fatalf("%s: expected go-errors envelope, got %T", name, err)
		}
		if rich.Category != goerrors.CategoryValidation {
			t.Fatalf("%s: expected validation category, got %q", name, rich.Category)
		}
		if rich.TextCode != core.ErrorBadInput {
			t.Fatalf("%s: expected %q text code, got %q", name, core.ErrorBadInput, rich.TextCode)
		}
	}
}

func TestCommands_NilServiceReturnsRichError(t *testing.T) {
	var cmd *WriteRecordsCommand
	err := cmd.Execute(context.Background(), WriteRecordsMessage{})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}
