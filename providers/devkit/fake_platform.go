package devkit

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-health/authbridge"
	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/record"
)

// AuthorizationBehavior scripts how FakePlatform answers the permission
// surface.
type AuthorizationBehavior int

const (
	AuthorizationGrant AuthorizationBehavior = iota
	AuthorizationDeny
	AuthorizationDismiss
	// AuthorizationHold keeps the ticket open until ResolvePending or
	// DismissPending is called.
	AuthorizationHold
	AuthorizationFail
)

type FakeOption func(*FakePlatform)

func WithAvailable(available bool) FakeOption {
	return func(p *FakePlatform) {
		p.available = available
	}
}

func WithCapabilities(capabilities core.PlatformCapabilities) FakeOption {
	return func(p *FakePlatform) {
		p.caps = capabilities
	}
}

func WithGrants(grants core.GrantSet) FakeOption {
	return func(p *FakePlatform) {
		p.grants = core.NormalizeGrantSet(grants)
	}
}

func WithAuthorizationBehavior(behavior AuthorizationBehavior) FakeOption {
	return func(p *FakePlatform) {
		p.authBehavior = behavior
	}
}

func WithRecords(records ...record.Record) FakeOption {
	return func(p *FakePlatform) {
		for _, rec := range records {
			p.store(rec)
		}
	}
}

// WithNativeAggregate scripts the answer of the native aggregation path.
// Types without a scripted aggregate report unsupported.
func WithNativeAggregate(aggregated record.AggregatedRecord) FakeOption {
	return func(p *FakePlatform) {
		if aggregated != nil {
			p.aggregates[aggregated.DataType()] = aggregated
		}
	}
}

func WithRegionalPreferences(prefs core.RegionalPreferences) FakeOption {
	return func(p *FakePlatform) {
		p.prefs = &prefs
	}
}

func WithWriteError(dataType record.DataType, err error) FakeOption {
	return func(p *FakePlatform) {
		p.writeErrs[dataType] = err
	}
}

func WithReadError(err error) FakeOption {
	return func(p *FakePlatform) {
		p.readErr = err
	}
}

// FakePlatform is an in-memory core.Platform with scripted authorization,
// aggregation and failure behavior. Group writes are atomic.
type FakePlatform struct {
	mu           sync.Mutex
	id           string
	available    bool
	caps         core.PlatformCapabilities
	grants       core.GrantSet
	authBehavior AuthorizationBehavior
	records      []storedRecord
	nextID       int
	aggregates   map[record.DataType]record.AggregatedRecord
	prefs        *core.RegionalPreferences
	writeErrs    map[record.DataType]error
	readErr      error

	pending        *authbridge.Ticket
	pendingRequest core.AuthorizationRequest
	requests       []core.AuthorizationRequest
	writeCalls     map[record.DataType]int
	revocations    int
}

type storedRecord struct {
	id  string
	rec record.Record
}

// NewFakePlatform supports every data type unless WithCapabilities narrows
// it.
func NewFakePlatform(id string, opts ...FakeOption) *FakePlatform {
	all := record.AllDataTypes()
	p := &FakePlatform{
		id:        strings.TrimSpace(strings.ToLower(id)),
		available: true,
		caps: core.PlatformCapabilities{
			ReadTypes:         all,
			WriteTypes:        all,
			AtomicGroupWrites: true,
		},
		aggregates: map[record.DataType]record.AggregatedRecord{},
		writeErrs:  map[record.DataType]error{},
		writeCalls: map[record.DataType]int{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *FakePlatform) ID() string {
	if p == nil {
		return ""
	}
	return p.id
}

func (p *FakePlatform) Capabilities() core.PlatformCapabilities {
	return p.caps
}

func (p *FakePlatform) Available() bool {
	return p != nil && p.available
}

func (p *FakePlatform) AuthorizationStatus(context.Context) (core.GrantSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return core.NormalizeGrantSet(p.grants), nil
}

func (p *FakePlatform) Read(_ context.Context, req core.ReadRequest) ([]record.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readErr != nil {
		return nil, p.readErr
	}
	if !slices.Contains(p.caps.ReadTypes, req.Type) {
		return nil, unsupported(fmt.Sprintf("devkit: %s cannot read %s", p.id, req.Type))
	}
	var out []record.Record
	for _, stored := range p.records {
		if stored.rec.DataType() == req.Type && req.Range.Contains(stored.rec.StartTime()) {
			out = append(out, stored.rec)
		}
	}
	return out, nil
}

func (p *FakePlatform) Write(_ context.Context, dataType record.DataType, records []record.Record) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writeCalls[dataType]++

	if !slices.Contains(p.caps.WriteTypes, dataType) {
		return nil, unsupported(fmt.Sprintf("devkit: %s cannot write %s", p.id, dataType))
	}
	if err := p.writeErrs[dataType]; err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec == nil || rec.DataType() != dataType {
			return nil, goerrors.NewValidation("devkit: record does not belong to the write group",
				goerrors.FieldError{Field: "data_type", Message: "must be " + string(dataType)},
			).WithTextCode(core.ErrorValidation)
		}
	}
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, p.store(rec))
	}
	return ids, nil
}

// Aggregate answers from the scripted aggregates only.
func (p *FakePlatform) Aggregate(_ context.Context, req core.AggregateRequest) (record.AggregatedRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	aggregated, ok := p.aggregates[req.Type]
	if !ok {
		return nil, unsupported(fmt.Sprintf("devkit: %s has no native %s aggregate", p.id, req.Type))
	}
	return aggregated, nil
}

func (p *FakePlatform) RegionalPreferences(context.Context) (core.RegionalPreferences, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.prefs == nil {
		return core.RegionalPreferences{}, unsupported("devkit: regional preferences are not scripted")
	}
	return *p.prefs, nil
}

func (p *FakePlatform) RevokeAuthorization(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revocations++
	p.grants = core.GrantSet{}
	return nil
}

func (p *FakePlatform) PresentAuthorization(_ context.Context, ticket *authbridge.Ticket, req core.AuthorizationRequest) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)

	switch p.authBehavior {
	case AuthorizationGrant:
		p.grants = core.NormalizeGrantSet(core.GrantSet{
			Read:  append(append([]record.DataType(nil), p.grants.Read...), req.Read...),
			Write: append(append([]record.DataType(nil), p.grants.Write...), req.Write...),
		})
		ticket.Resolve(true)
	case AuthorizationDeny:
		ticket.Resolve(false)
	case AuthorizationDismiss:
		ticket.Dismiss()
	case AuthorizationHold:
		p.pending = ticket
		p.pendingRequest = req
	case AuthorizationFail:
		return fmt.Errorf("devkit: permission surface unavailable")
	}
	return nil
}

// ResolvePending settles a held ticket. Granting also stores the requested
// grants.
func (p *FakePlatform) ResolvePending(granted bool) bool {
	p.mu.Lock()
	ticket, req := p.pending, p.pendingRequest
	p.pending = nil
	if ticket != nil && granted {
		p.grants = core.NormalizeGrantSet(core.GrantSet{
			Read:  append(append([]record.DataType(nil), p.grants.Read...), req.Read...),
			Write: append(append([]record.DataType(nil), p.grants.Write...), req.Write...),
		})
	}
	p.mu.Unlock()
	if ticket == nil {
		return false
	}
	return ticket.Resolve(granted)
}

func (p *FakePlatform) DismissPending() bool {
	p.mu.Lock()
	ticket := p.pending
	p.pending = nil
	p.mu.Unlock()
	if ticket == nil {
		return false
	}
	return ticket.Dismiss()
}

func (p *FakePlatform) HasPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

func (p *FakePlatform) AuthorizationRequests() []core.AuthorizationRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]core.AuthorizationRequest(nil), p.requests...)
}

// SetWriteError scripts (or with nil clears) the error returned for writes
// of dataType.
func (p *FakePlatform) SetWriteError(dataType record.DataType, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		delete(p.writeErrs, dataType)
		return
	}
	p.writeErrs[dataType] = err
}

func (p *FakePlatform) WriteCalls(dataType record.DataType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writeCalls[dataType]
}

func (p *FakePlatform) Revocations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revocations
}

// Records returns every stored record of dataType in insertion order.
func (p *FakePlatform) Records(dataType record.DataType) []record.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []record.Record
	for _, stored := range p.records {
		if stored.rec.DataType() == dataType {
			out = append(out, stored.rec)
		}
	}
	return out
}

func (p *FakePlatform) store(rec record.Record) string {
	if rec == nil {
		return ""
	}
	p.nextID++
	id := fmt.Sprintf("%s-%d", p.id, p.nextID)
	p.records = append(p.records, storedRecord{id: id, rec: rec})
	return id
}

// StitchingPlatform exposes raw sleep stages and heart rate samples so the
// service builds sessions and series itself.
type StitchingPlatform struct {
	*FakePlatform
	stages  []record.SleepStage
	samples []record.HeartRateSample
}

func NewStitchingPlatform(base *FakePlatform, stages []record.SleepStage, samples []record.HeartRateSample) *StitchingPlatform {
	return &StitchingPlatform{
		FakePlatform: base,
		stages:       append([]record.SleepStage(nil), stages...),
		samples:      append([]record.HeartRateSample(nil), samples...),
	}
}

func (p *StitchingPlatform) ReadSleepStages(_ context.Context, rng record.TimeRange) ([]record.SleepStage, error) {
	out := make([]record.SleepStage, 0, len(p.stages))
	for _, stage := range p.stages {
		if stage.End.After(rng.Start) && stage.Start.Before(rng.End) {
			out = append(out, stage)
		}
	}
	return out, nil
}

func (p *StitchingPlatform) ReadHeartRateSamples(_ context.Context, rng record.TimeRange) ([]record.HeartRateSample, error) {
	out := make([]record.HeartRateSample, 0, len(p.samples))
	for _, sample := range p.samples {
		if rng.Contains(sample.Time) {
			out = append(out, sample)
		}
	}
	return out, nil
}

func unsupported(message string) error {
	return goerrors.New(message, goerrors.CategoryOperation).
		WithTextCode(core.ErrorUnsupported)
}

var (
	_ core.Platform                 = (*FakePlatform)(nil)
	_ core.NativeAggregator         = (*FakePlatform)(nil)
	_ core.Revoker                  = (*FakePlatform)(nil)
	_ core.RegionalPreferenceSource = (*FakePlatform)(nil)
	_ core.AuthorizationPresenter   = (*FakePlatform)(nil)
	_ core.SleepStageSource         = (*StitchingPlatform)(nil)
	_ core.HeartRateSampleSource    = (*StitchingPlatform)(nil)
)
