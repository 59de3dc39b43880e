package gojob

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/record"

	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	"github.com/goliatone/go-job/queue/worker"
	glog "github.com/goliatone/go-logger/glog"
)

const (
	JobIDMirror      = "health.mirror"
	ScriptPathMirror = "health/mirror"

	ParamSourcePlatform = "source_platform"
	ParamTargetPlatform = "target_platform"
	ParamStart          = "start"
	ParamEnd            = "end"
	ParamTypes          = "types"
)

// RetryPolicy bounds how many times a failed delivery is requeued.
type RetryPolicy struct {
	MaxAttempts     int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	DeadLetterOnMax bool
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     5,
		BaseDelay:       time.Second,
		MaxDelay:        time.Minute,
		DeadLetterOnMax: true,
	}
}

// NormalizeAttempt clamps the delay and stops requeueing once attempt
// reaches MaxAttempts.
func (p RetryPolicy) NormalizeAttempt(opts queue.NackOptions, attempt int) queue.NackOptions {
	out := opts
	out.Reason = strings.TrimSpace(out.Reason)
	if out.Delay < 0 {
		out.Delay = 0
	}
	if p.MaxDelay > 0 && out.Delay > p.MaxDelay {
		out.Delay = p.MaxDelay
	}
	if out.DeadLetter {
		out.Requeue = false
	}
	if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
		out.Requeue = false
		if p.DeadLetterOnMax || out.DeadLetter {
			out.DeadLetter = true
		}
	}
	if !out.Requeue && !out.DeadLetter {
		out.Requeue = true
	}
	return out
}

// Backoff doubles BaseDelay per attempt.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if p.BaseDelay <= 0 || attempt <= 0 {
		return 0
	}
	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return delay
}

// ToExecutionMessage encodes a mirror request as go-job parameters. The
// idempotency key is stable for the same target, range and types.
func ToExecutionMessage(req core.MirrorRequest) (*job.ExecutionMessage, error) {
	target := strings.TrimSpace(req.TargetPlatform)
	if target == "" {
		return nil, fmt.Errorf("gojob: target platform is required")
	}
	if err := req.Range.Validate(); err != nil {
		return nil, err
	}
	types := make([]string, 0, len(req.Types))
	for _, dataType := range record.NormalizeDataTypes(req.Types) {
		types = append(types, string(dataType))
	}
	start := req.Range.Start.UTC().Format(time.RFC3339Nano)
	end := req.Range.End.UTC().Format(time.RFC3339Nano)
	source := strings.TrimSpace(req.SourcePlatform)

	return &job.ExecutionMessage{
		JobID:      JobIDMirror,
		ScriptPath: ScriptPathMirror,
		Parameters: map[string]any{
			ParamSourcePlatform: source,
			ParamTargetPlatform: target,
			ParamStart:          start,
			ParamEnd:            end,
			ParamTypes:          types,
		},
		IdempotencyKey: strings.Join([]string{JobIDMirror, source, target, start, end, strings.Join(types, ",")}, "|"),
	}, nil
}

// FromExecutionMessage decodes a mirror request. Types accept a string
// slice, a decoded JSON array or a comma separated string.
func FromExecutionMessage(msg *job.ExecutionMessage) (core.MirrorRequest, error) {
	if msg == nil {
		return core.MirrorRequest{}, fmt.Errorf("gojob: execution message is required")
	}
	if strings.TrimSpace(msg.JobID) != JobIDMirror {
		return core.MirrorRequest{}, fmt.Errorf("gojob: unexpected job id %q", msg.JobID)
	}
	params := msg.Parameters
	start, err := timeParam(params, ParamStart)
	if err != nil {
		return core.MirrorRequest{}, err
	}
	end, err := timeParam(params, ParamEnd)
	if err != nil {
		return core.MirrorRequest{}, err
	}
	types, err := typesParam(params[ParamTypes])
	if err != nil {
		return core.MirrorRequest{}, err
	}
	req := core.MirrorRequest{
		Range:          record.TimeRange{Start: start, End: end},
		Types:          types,
		SourcePlatform: stringParam(params, ParamSourcePlatform),
		TargetPlatform: stringParam(params, ParamTargetPlatform),
	}
	if req.TargetPlatform == "" {
		return core.MirrorRequest{}, fmt.Errorf("gojob: %s parameter is required", ParamTargetPlatform)
	}
	if err := req.Range.Validate(); err != nil {
		return core.MirrorRequest{}, err
	}
	return req, nil
}

type MirrorEnqueuer struct {
	enqueuer queue.Enqueuer
}

func NewMirrorEnqueuer(enqueuer queue.Enqueuer) *MirrorEnqueuer {
	return &MirrorEnqueuer{enqueuer: enqueuer}
}

func (e *MirrorEnqueuer) Enqueue(ctx context.Context, req core.MirrorRequest) error {
	if e == nil || e.enqueuer == nil {
		return fmt.Errorf("gojob: enqueuer is not configured")
	}
	msg, err := ToExecutionMessage(req)
	if err != nil {
		return err
	}
	return e.enqueuer.Enqueue(ctx, msg)
}

type Mirrorer interface {
	Mirror(ctx context.Context, req core.MirrorRequest) (core.MirrorResult, error)
}

type MirrorWorkerOption func(*MirrorWorker)

func WithRetryPolicy(policy RetryPolicy) MirrorWorkerOption {
	return func(w *MirrorWorker) {
		w.policy = policy
	}
}

func WithLogger(logger glog.Logger) MirrorWorkerOption {
	return func(w *MirrorWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// MirrorWorker pulls mirror deliveries and runs them against the service.
// Attempts are counted per idempotency key for the lifetime of the worker.
type MirrorWorker struct {
	dequeuer queue.Dequeuer
	mirrorer Mirrorer
	policy   RetryPolicy
	logger   glog.Logger

	mu       sync.Mutex
	attempts map[string]int
	written  map[string][]record.DataType
}

func NewMirrorWorker(dequeuer queue.Dequeuer, mirrorer Mirrorer, opts ...MirrorWorkerOption) *MirrorWorker {
	w := &MirrorWorker{
		dequeuer: dequeuer,
		mirrorer: mirrorer,
		policy:   DefaultRetryPolicy(),
		logger:   glog.Nop(),
		attempts: map[string]int{},
		written:  map[string][]record.DataType{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// ProcessNext handles one delivery. Successful runs are acked. Failures are
// nacked: bad requests go straight to the dead letter queue and anything
// else is requeued with backoff until the retry policy gives up. A retry
// skips the type groups earlier attempts already wrote to the target.
func (w *MirrorWorker) ProcessNext(ctx context.Context) (core.MirrorResult, error) {
	if w == nil || w.dequeuer == nil || w.mirrorer == nil {
		return core.MirrorResult{}, fmt.Errorf("gojob: mirror worker is not configured")
	}
	delivery, err := w.dequeuer.Dequeue(ctx)
	if err != nil {
		return core.MirrorResult{}, err
	}
	if delivery == nil {
		return core.MirrorResult{}, fmt.Errorf("gojob: dequeuer returned no delivery")
	}

	msg := delivery.Message()
	req, err := FromExecutionMessage(msg)
	if err != nil {
		w.logger.Warn("gojob: dropping malformed mirror job", "error", err)
		if nackErr := delivery.Nack(ctx, queue.NackOptions{DeadLetter: true, Reason: err.Error()}); nackErr != nil {
			return core.MirrorResult{}, nackErr
		}
		return core.MirrorResult{}, err
	}

	key := msg.IdempotencyKey
	attempt := w.nextAttempt(key)
	req.SkipTypes = append(req.SkipTypes, w.writtenTypes(key)...)
	result, err := w.mirrorer.Mirror(ctx, req)
	if err == nil {
		w.clearAttempts(key)
		w.logger.Info("gojob: mirror job completed",
			"target_platform", result.TargetPlatform,
			"read", result.Read,
			"written", result.Write.Written(),
			"attempt", attempt,
		)
		return result, delivery.Ack(ctx)
	}

	opts := queue.NackOptions{
		Delay:   w.policy.Backoff(attempt),
		Requeue: true,
		Reason:  err.Error(),
	}
	if permanentFailure(err) {
		opts.Requeue = false
		opts.DeadLetter = true
	}
	opts = w.policy.NormalizeAttempt(opts, attempt)
	if opts.Requeue {
		w.rememberWritten(key, result.Write)
	} else {
		w.clearAttempts(key)
	}
	w.logger.Warn("gojob: mirror job failed",
		"target_platform", req.TargetPlatform,
		"attempt", attempt,
		"requeue", opts.Requeue,
		"dead_letter", opts.DeadLetter,
		"error", err,
	)
	if nackErr := delivery.Nack(ctx, opts); nackErr != nil {
		return result, nackErr
	}
	return result, err
}

func (w *MirrorWorker) nextAttempt(key string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.attempts[key]++
	return w.attempts[key]
}

func (w *MirrorWorker) clearAttempts(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.attempts, key)
	delete(w.written, key)
}

func (w *MirrorWorker) writtenTypes(key string) []record.DataType {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.written[key])
}

func (w *MirrorWorker) rememberWritten(key string, result core.WriteResult) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, group := range result.Groups {
		if group.Err == nil && !slices.Contains(w.written[key], group.DataType) {
			w.written[key] = append(w.written[key], group.DataType)
		}
	}
}

func permanentFailure(err error) bool {
	return core.IsValidation(err) ||
		core.IsBadInput(err) ||
		core.IsUnsupported(err) ||
		core.IsPlatformNotFound(err)
}

// LoggingHook reports go-job worker events through glog.
type LoggingHook struct {
	logger glog.Logger
}

func NewLoggingHook(logger glog.Logger) *LoggingHook {
	return &LoggingHook{logger: glog.Ensure(logger)}
}

func (h *LoggingHook) OnStart(_ context.Context, event worker.Event) {
	h.logger.Debug("gojob: job started", eventFields(event)...)
}

func (h *LoggingHook) OnSuccess(_ context.Context, event worker.Event) {
	h.logger.Info("gojob: job succeeded", eventFields(event)...)
}

func (h *LoggingHook) OnFailure(_ context.Context, event worker.Event) {
	h.logger.Error("gojob: job failed", eventFields(event)...)
}

func (h *LoggingHook) OnRetry(_ context.Context, event worker.Event) {
	h.logger.Warn("gojob: job retry scheduled", eventFields(event)...)
}

func eventFields(event worker.Event) []any {
	message := event.Message
	if message == nil && event.Delivery != nil {
		message = event.Delivery.Message()
	}
	fields := []any{"attempt", event.Attempt}
	if message != nil {
		fields = append(fields, "job_id", message.JobID, "idempotency_key", message.IdempotencyKey)
	}
	if event.Delay > 0 {
		fields = append(fields, "delay_ms", event.Delay.Milliseconds())
	}
	if event.Duration > 0 {
		fields = append(fields, "duration_ms", event.Duration.Milliseconds())
	}
	if event.Err != nil {
		fields = append(fields, "error", event.Err.Error())
	}
	return fields
}

func stringParam(params map[string]any, key string) string {
	value, _ := params[key].(string)
	return strings.TrimSpace(value)
}

func timeParam(params map[string]any, key string) (time.Time, error) {
	raw := stringParam(params, key)
	if raw == "" {
		return time.Time{}, fmt.Errorf("gojob: %s parameter is required", key)
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("gojob: invalid %s parameter: %w", key, err)
	}
	return parsed.UTC(), nil
}

func typesParam(raw any) ([]record.DataType, error) {
	var values []string
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		values = typed
	case []any:
		for _, item := range typed {
			value, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("gojob: %s entries must be strings", ParamTypes)
			}
			values = append(values, value)
		}
	case string:
		if strings.TrimSpace(typed) != "" {
			values = strings.Split(typed, ",")
		}
	default:
		return nil, fmt.Errorf("gojob: unsupported %s parameter %T", ParamTypes, raw)
	}

	out := make([]record.DataType, 0, len(values))
	for _, value := range values {
		dataType, ok := record.ParseDataType(value)
		if !ok {
			return nil, fmt.Errorf("gojob: unknown data type %q", value)
		}
		out = append(out, dataType)
	}
	return record.NormalizeDataTypes(out), nil
}

var (
	_ worker.Hook = (*LoggingHook)(nil)
	_ Mirrorer    = (*core.Service)(nil)
)
