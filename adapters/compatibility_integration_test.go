package adapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-command"
	"github.com/goliatone/go-health/adapters/gocommand"
	"github.com/goliatone/go-health/adapters/gojob"
	"github.com/goliatone/go-health/adapters/gologger"
	healthcommand "github.com/goliatone/go-health/command"
	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/providers/devkit"
	healthquery "github.com/goliatone/go-health/query"
	"github.com/goliatone/go-health/record"
	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
	"github.com/goliatone/go-job/queue/worker"
	glog "github.com/goliatone/go-logger/glog"
)

var compatBase = time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)

func TestRuntimeCompatibility_GoJobGoCommandGoLogger(t *testing.T) {
	ctx := context.Background()

	logger := &compatLogger{}
	provider := &compatProvider{logger: logger}

	_, resolved, jobProvider, jobLogger := gologger.ResolveForJob("", provider, nil)
	if jobProvider == nil || jobLogger == nil {
		t.Fatalf("expected go-job logger bridges")
	}
	hook := gojob.NewLoggingHook(resolved)

	enqueued := &compatEnqueuer{}
	if err := gojob.NewMirrorEnqueuer(enqueued).Enqueue(ctx, core.MirrorRequest{
		Range:          record.TimeRange{Start: compatBase, End: compatBase.Add(time.Hour)},
		TargetPlatform: "archive",
	}); err != nil {
		t.Fatalf("enqueue via gojob adapter: %v", err)
	}
	if enqueued.last == nil || enqueued.last.JobID != gojob.JobIDMirror {
		t.Fatalf("expected mirror request mapped onto a go-job message")
	}

	queueRegistry := jobqueuecommand.NewRegistry()
	commandAdapter := gocommand.NewRegistryAdapter(command.NewRegistry())
	if err := commandAdapter.AddQueueResolver("queue", queueRegistry); err != nil {
		t.Fatalf("add queue resolver: %v", err)
	}
	svc, err := core.NewService(core.DefaultConfig(), core.WithPlatforms(devkit.NewFakePlatform("wearable")))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := commandAdapter.RegisterCommand(healthcommand.NewMirrorCommand(svc)); err != nil {
		t.Fatalf("register mirror command: %v", err)
	}
	if err := commandAdapter.Initialize(); err != nil {
		t.Fatalf("initialize command registry: %v", err)
	}
	if _, ok := queueRegistry.Get(healthcommand.TypeMirror); !ok {
		t.Fatalf("expected command resolver hook to mirror the health command into the go-job queue registry")
	}

	hook.OnSuccess(ctx, queueEvent(enqueued.last))
	if logger.infos == 0 {
		t.Fatalf("expected worker hook to log through the resolved provider logger")
	}
}

func TestRuntimeCompatibility_HealthHandlersDispatchThroughWrappers(t *testing.T) {
	platform := devkit.NewFakePlatform("wearable")
	seed, err := devkit.SampleRecords(compatBase, record.DataTypeWeight)
	if err != nil {
		t.Fatalf("fixtures: %v", err)
	}
	svc, err := core.NewService(core.DefaultConfig(), core.WithPlatforms(platform))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	adapter := gocommand.NewRegistryAdapter(command.NewRegistry())
	subscriptions, err := gocommand.RegisterHealth(adapter, svc)
	if err != nil {
		t.Fatalf("register health handlers: %v", err)
	}
	defer gocommand.Unsubscribe(subscriptions)
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}

	if err := gocommand.Dispatch(context.Background(), healthcommand.WriteRecordsMessage{Records: seed}); err != nil {
		t.Fatalf("dispatch write: %v", err)
	}
	if platform.WriteCalls(record.DataTypeWeight) != 1 {
		t.Fatalf("expected dispatch to reach the platform")
	}

	records, err := gocommand.Query[healthquery.ReadRecordsMessage, []record.Record](context.Background(), healthquery.ReadRecordsMessage{
		DataType: record.DataTypeWeight,
		Range:    record.TimeRange{Start: compatBase, End: compatBase.Add(time.Hour)},
	})
	if err != nil {
		t.Fatalf("query read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected dispatched write to be readable, got %d", len(records))
	}

	prefs, err := gocommand.Query[healthquery.RegionalPreferencesMessage, core.RegionalPreferences](context.Background(), healthquery.RegionalPreferencesMessage{})
	if err != nil {
		t.Fatalf("query preferences: %v", err)
	}
	if prefs.Source == core.PreferenceSourcePlatform {
		t.Fatalf("expected configured defaults when the platform has no preferences")
	}
}

func queueEvent(msg *job.ExecutionMessage) worker.Event {
	return worker.Event{
		Message:  msg,
		Attempt:  1,
		Duration: 10 * time.Millisecond,
	}
}

type compatEnqueuer struct {
	last *job.ExecutionMessage
}

func (e *compatEnqueuer) Enqueue(_ context.Context, msg *job.ExecutionMessage) error {
	e.last = msg
	return nil
}

var _ queue.Enqueuer = (*compatEnqueuer)(nil)

type compatProvider struct {
	logger *compatLogger
}

func (p *compatProvider) GetLogger(string) glog.Logger {
	if p == nil || p.logger == nil {
		return glog.Nop()
	}
	return p.logger
}

type compatLogger struct {
	infos int
}

func (*compatLogger) Trace(string, ...any) {}
func (*compatLogger) Debug(string, ...any) {}
func (*compatLogger) Warn(string, ...any)  {}
func (*compatLogger) Error(string, ...any) {}
func (*compatLogger) Fatal(string, ...any) {}

func (l *compatLogger) Info(string, ...any) {
	l.infos++
}

func (l *compatLogger) WithContext(context.Context) glog.Logger { return l }
