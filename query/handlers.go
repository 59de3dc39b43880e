package query

import (
	"context"

	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/record"
)

type RecordReader interface {
	ReadData(ctx context.Context, req core.ReadRequest) ([]record.Record, error)
	Aggregate(ctx context.Context, req core.AggregateRequest) (record.AggregatedRecord, error)
}

type AuthorizationReader interface {
	IsAvailable() bool
	IsAuthorized(ctx context.Context, read, write []record.DataType) (bool, error)
	IsRevokeAuthorizationSupported() bool
}

type PreferencesReader interface {
	RegionalPreferences(ctx context.Context) (core.RegionalPreferences, error)
}

// AuthorizationStatus is the read-only view of the active platform's access.
type AuthorizationStatus struct {
	Available       bool
	Authorized      bool
	RevokeSupported bool
}

type ReadRecordsQuery struct {
	reader RecordReader
}

func NewReadRecordsQuery(reader RecordReader) *ReadRecordsQuery {
	return &ReadRecordsQuery{reader: reader}
}

func (q *ReadRecordsQuery) Query(ctx context.Context, msg ReadRecordsMessage) ([]record.Record, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: record reader is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return q.reader.ReadData(ctx, core.ReadRequest{Type: msg.DataType, Range: msg.Range})
}

type AggregateQuery struct {
	reader RecordReader
}

func NewAggregateQuery(reader RecordReader) *AggregateQuery {
	return &AggregateQuery{reader: reader}
}

func (q *AggregateQuery) Query(ctx context.Context, msg AggregateMessage) (record.AggregatedRecord, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: record reader is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return q.reader.Aggregate(ctx, core.AggregateRequest{Type: msg.DataType, Range: msg.Range})
}

type AuthorizationStatusQuery struct {
	reader AuthorizationReader
}

func NewAuthorizationStatusQuery(reader AuthorizationReader) *AuthorizationStatusQuery {
	return &AuthorizationStatusQuery{reader: reader}
}

// Query skips the grant check when no platform is available.
func (q *AuthorizationStatusQuery) Query(ctx context.Context, msg AuthorizationStatusMessage) (AuthorizationStatus, error) {
	if q == nil || q.reader == nil {
		return AuthorizationStatus{}, queryDependencyError("query: authorization reader is required")
	}
	if err := msg.Validate(); err != nil {
		return AuthorizationStatus{}, err
	}
	status := AuthorizationStatus{Available: q.reader.IsAvailable()}
	if !status.Available {
		return status, nil
	}
	authorized, err := q.reader.IsAuthorized(ctx, msg.Read, msg.Write)
	if err != nil {
		return AuthorizationStatus{}, err
	}
	status.Authorized = authorized
	status.RevokeSupported = q.reader.IsRevokeAuthorizationSupported()
	return status, nil
}

type RegionalPreferencesQuery struct {
	reader PreferencesReader
}

func NewRegionalPreferencesQuery(reader PreferencesReader) *RegionalPreferencesQuery {
	return &RegionalPreferencesQuery{reader: reader}
}

func (q *RegionalPreferencesQuery) Query(ctx context.Context, _ RegionalPreferencesMessage) (core.RegionalPreferences, error) {
	if q == nil || q.reader == nil {
		return core.RegionalPreferences{}, queryDependencyError("query: preferences reader is required")
	}
	return q.reader.RegionalPreferences(ctx)
}
