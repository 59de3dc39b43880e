package health_test

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"
	"testing"
	"time"

	health "github.com/goliatone/go-health"
	"github.com/goliatone/go-health/adapters/gojob"
	"github.com/goliatone/go-health/adapters/gologger"
	healthprometheus "github.com/goliatone/go-health/adapters/prometheus"
	"github.com/goliatone/go-health/core"
	healthmigrations "github.com/goliatone/go-health/migrations"
	"github.com/goliatone/go-health/providers/devkit"
	healthquery "github.com/goliatone/go-health/query"
	"github.com/goliatone/go-health/record"
	sqlstore "github.com/goliatone/go-health/store/sql"
	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var compositionBase = time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)

func TestDownstreamComposition_MirrorsWearableIntoSQLStoreThroughJobQueue(t *testing.T) {
	ctx := context.Background()

	wearable := devkit.NewFakePlatform("wearable")
	seed, err := devkit.SampleRecords(compositionBase, record.DataTypeSteps)
	require.NoError(t, err)
	later, err := devkit.SampleRecords(compositionBase.Add(2*time.Hour), record.DataTypeSteps)
	require.NoError(t, err)
	_, err = wearable.Write(ctx, record.DataTypeSteps, append(seed, later...))
	require.NoError(t, err)

	store, err := health.SQLPlatformFromPersistence(newCompositionClient(t), sqlstore.WithID("archive"))
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	recorder, err := healthprometheus.NewRecorder(registry)
	require.NoError(t, err)

	hooks := health.NewExtensionHooks()
	require.NoError(t, hooks.RegisterPlatformPack(health.PlatformPack{
		Name:      "local",
		Platforms: []core.Platform{wearable, store},
	}))

	cfg := health.DefaultConfig()
	cfg.Platform = "wearable"
	svc, err := health.NewService(cfg, append(hooks.ServiceOptions(), health.WithMetricsRecorder(recorder))...)
	require.NoError(t, err)

	facade, err := health.NewFacade(svc)
	require.NoError(t, err)

	jobs := newMemoryQueue()
	request := core.MirrorRequest{
		Range:          record.TimeRange{Start: compositionBase, End: compositionBase.Add(24 * time.Hour)},
		Types:          []record.DataType{record.DataTypeSteps},
		SourcePlatform: "wearable",
		TargetPlatform: "archive",
	}
	require.NoError(t, gojob.NewMirrorEnqueuer(jobs).Enqueue(ctx, request))

	worker := gojob.NewMirrorWorker(jobs, facade, gojob.WithLogger(gologger.MirrorLogger(nil, nil)))
	result, err := worker.ProcessNext(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, result.Read)
	require.Equal(t, 2, result.Write.Written())
	require.True(t, result.Write.AtomicGroupWrites)
	require.Equal(t, 1, jobs.acked)

	aggregated, err := store.Aggregate(ctx, core.AggregateRequest{Type: record.DataTypeSteps, Range: request.Range})
	require.NoError(t, err)
	require.Equal(t, int64(2400), aggregated.(record.StepsAggregate).Count)

	viaFacade, err := facade.Queries().Aggregate.Query(ctx, healthquery.AggregateMessage{
		DataType: record.DataTypeSteps,
		Range:    request.Range,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2400), viaFacade.(record.StepsAggregate).Count)

	mirrors := recorder.Operations().WithLabelValues("mirror", "success", "wearable", "")
	require.Equal(t, 1.0, testutil.ToFloat64(mirrors))
}

func newCompositionClient(t *testing.T) *persistence.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:health-composition-%d?mode=memory&cache=shared", time.Now().UnixNano())
	sqlDB, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	client, err := persistence.New(compositionConfig{server: dsn}, sqlDB, sqlitedialect.New())
	if err != nil {
		_ = sqlDB.Close()
		t.Fatalf("new persistence client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	_, err = healthmigrations.Register(context.Background(), func(_ context.Context, dialect string, _ string, fsys fs.FS) error {
		if dialect == healthmigrations.DialectSQLite {
			client.RegisterSQLMigrations(fsys)
		}
		return nil
	}, healthmigrations.WithValidationTargets(healthmigrations.DialectSQLite))
	require.NoError(t, err)
	require.NoError(t, client.Migrate(context.Background()))
	return client
}

type compositionConfig struct {
	server string
}

func (compositionConfig) GetDebug() bool                { return false }
func (compositionConfig) GetDriver() string             { return "sqlite3" }
func (c compositionConfig) GetServer() string           { return c.server }
func (compositionConfig) GetPingTimeout() time.Duration { return time.Second }
func (compositionConfig) GetOtelIdentifier() string     { return "go-health-composition" }

type memoryQueue struct {
	mu       sync.Mutex
	messages []*job.ExecutionMessage
	acked    int
	nacked   []queue.NackOptions
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{}
}

func (q *memoryQueue) Enqueue(_ context.Context, msg *job.ExecutionMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, msg)
	return nil
}

func (q *memoryQueue) Dequeue(context.Context) (queue.Delivery, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) == 0 {
		return nil, fmt.Errorf("memory queue is empty")
	}
	msg := q.messages[0]
	q.messages = q.messages[1:]
	return &memoryDelivery{queue: q, msg: msg}, nil
}

type memoryDelivery struct {
	queue *memoryQueue
	msg   *job.ExecutionMessage
}

func (d *memoryDelivery) Message() *job.ExecutionMessage {
	return d.msg
}

func (d *memoryDelivery) Ack(context.Context) error {
	d.queue.mu.Lock()
	defer d.queue.mu.Unlock()
	d.queue.acked++
	return nil
}

func (d *memoryDelivery) Nack(_ context.Context, opts queue.NackOptions) error {
	d.queue.mu.Lock()
	defer d.queue.mu.Unlock()
	d.queue.nacked = append(d.queue.nacked, opts)
	if opts.Requeue {
		d.queue.messages = append(d.queue.messages, d.msg)
	}
	return nil
}
