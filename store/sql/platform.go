package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-health/authbridge"
	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/record"
	glog "github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const (
	DefaultPlatformID = "sql"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	readPageSize = 500
)

// Platform is a core.Platform backed by the health_records and health_grants
// tables. Every write group runs in a single transaction.
type Platform struct {
	id        string
	db        *bun.DB
	records   repository.Repository[*recordRow]
	grants    repository.Repository[*grantRow]
	dataTypes []record.DataType
	cache     repositorycache.CacheService
	logger    glog.Logger
	revision  atomic.Uint64
}

type Option func(*Platform)

func WithID(id string) Option {
	return func(p *Platform) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			p.id = trimmed
		}
	}
}

// WithCache enables the aggregate read-through cache.
func WithCache(cache repositorycache.CacheService) Option {
	return func(p *Platform) {
		p.cache = cache
	}
}

func WithLogger(logger glog.Logger) Option {
	return func(p *Platform) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDataTypes restricts the types the platform reads and writes.
func WithDataTypes(types ...record.DataType) Option {
	return func(p *Platform) {
		if normalized := record.NormalizeDataTypes(types); len(normalized) > 0 {
			p.dataTypes = normalized
		}
	}
}

func New(db *bun.DB, opts ...Option) (*Platform, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	platform := &Platform{
		id:        DefaultPlatformID,
		db:        db,
		dataTypes: record.AllDataTypes(),
		logger:    glog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(platform)
		}
	}

	records := repository.NewRepository[*recordRow](db, recordHandlers())
	if validator, ok := records.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid record repository wiring: %w", err)
		}
	}
	grants := repository.NewRepository[*grantRow](db, grantHandlers())
	if validator, ok := grants.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid grant repository wiring: %w", err)
		}
	}
	platform.records = records
	platform.grants = grants
	return platform, nil
}

// NewFromPersistence accepts a *persistence.Client, a *bun.DB or anything
// exposing DB() *bun.DB.
func NewFromPersistence(client any, opts ...Option) (*Platform, error) {
	db, err := resolveBunDB(client)
	if err != nil {
		return nil, err
	}
	return New(db, opts...)
}

// OpenDB opens a bun db for the postgres or sqlite3 driver.
func OpenDB(driver, dsn string) (*bun.DB, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlstore: dsn is required")
	}
	switch driver {
	case DriverPostgres:
		sqlDB, err := sql.Open(DriverPostgres, dsn)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case DriverSQLite, "sqlite":
		sqlDB, err := sql.Open(DriverSQLite, dsn)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: open sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case *persistence.Client:
		if typed == nil || typed.DB() == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return typed.DB(), nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}

func (p *Platform) ID() string {
	if p == nil {
		return ""
	}
	return p.id
}

func (p *Platform) DB() *bun.DB {
	if p == nil {
		return nil
	}
	return p.db
}

func (p *Platform) Capabilities() core.PlatformCapabilities {
	if p == nil {
		return core.PlatformCapabilities{}
	}
	return core.PlatformCapabilities{
		ReadTypes:         append([]record.DataType(nil), p.dataTypes...),
		WriteTypes:        append([]record.DataType(nil), p.dataTypes...),
		AtomicGroupWrites: true,
	}
}

func (p *Platform) Available() bool {
	return p != nil && p.db != nil && p.records != nil
}

// Revision increases after every committed write or revoke.
func (p *Platform) Revision() uint64 {
	if p == nil {
		return 0
	}
	return p.revision.Load()
}

func (p *Platform) Read(ctx context.Context, req core.ReadRequest) ([]record.Record, error) {
	if !p.Available() {
		return nil, fmt.Errorf("sqlstore: platform is not configured")
	}
	if err := req.Range.Validate(); err != nil {
		return nil, err
	}
	if !p.supports(req.Type) {
		return nil, unsupportedError(
			fmt.Sprintf("sqlstore: data type %q is not enabled", req.Type),
			map[string]any{"data_type": string(req.Type), "platform_id": p.id},
		)
	}

	start := req.Range.Start.UTC().UnixNano()
	end := req.Range.End.UTC().UnixNano()
	out := make([]record.Record, 0)
	for offset := 0; ; offset += readPageSize {
		rows, _, err := p.records.List(ctx,
			repository.SelectBy("platform_id", "=", p.id),
			repository.SelectBy("data_type", "=", string(req.Type)),
			repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.
					Where("?TableAlias.start_ns >= ?", start).
					Where("?TableAlias.start_ns < ?", end)
			}),
			repository.OrderBy("start_ns ASC"),
			repository.OrderBy("id ASC"),
			repository.SelectPaginate(readPageSize, offset),
		)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: read %s: %w", req.Type, err)
		}
		for _, row := range rows {
			rec, decodeErr := decodeRow(row)
			if decodeErr != nil {
				return nil, decodeErr
			}
			out = append(out, rec)
		}
		if len(rows) < readPageSize {
			break
		}
	}
	return out, nil
}

func (p *Platform) Write(ctx context.Context, dataType record.DataType, records []record.Record) ([]string, error) {
	if !p.Available() {
		return nil, fmt.Errorf("sqlstore: platform is not configured")
	}
	if !p.supports(dataType) {
		return nil, unsupportedError(
			fmt.Sprintf("sqlstore: data type %q is not enabled", dataType),
			map[string]any{"data_type": string(dataType), "platform_id": p.id},
		)
	}
	if len(records) == 0 {
		return nil, validationError("records", "at least one record is required")
	}

	now := time.Now().UTC()
	rows := make([]*recordRow, 0, len(records))
	for i, rec := range records {
		if rec == nil {
			return nil, validationError("records", fmt.Sprintf("record %d is nil", i))
		}
		if rec.DataType() != dataType {
			return nil, validationError("records", fmt.Sprintf("record %d is %s, expected %s", i, rec.DataType(), dataType))
		}
		payload, value, err := encodeRecord(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &recordRow{
			ID:         uuid.NewString(),
			PlatformID: p.id,
			DataType:   string(dataType),
			StartNS:    rec.StartTime().UTC().UnixNano(),
			EndNS:      rec.EndTime().UTC().UnixNano(),
			Value:      value,
			Payload:    payload,
			CreatedAt:  now,
		})
	}

	ids := make([]string, 0, len(rows))
	err := p.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, row := range rows {
			inserted, createErr := p.records.CreateTx(ctx, tx, row)
			if createErr != nil {
				return createErr
			}
			ids = append(ids, inserted.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sqlstore: write %s group: %w", dataType, err)
	}
	p.revision.Add(1)
	p.logger.Debug("sqlstore records written",
		"platform_id", p.id,
		"data_type", string(dataType),
		"count", len(ids),
	)
	return ids, nil
}

func (p *Platform) AuthorizationStatus(ctx context.Context) (core.GrantSet, error) {
	if !p.Available() {
		return core.GrantSet{}, fmt.Errorf("sqlstore: platform is not configured")
	}
	rows, _, err := p.grants.List(ctx,
		repository.SelectBy("platform_id", "=", p.id),
		repository.OrderBy("data_type ASC"),
	)
	if err != nil {
		return core.GrantSet{}, fmt.Errorf("sqlstore: load grants: %w", err)
	}
	var set core.GrantSet
	for _, row := range rows {
		dataType, ok := record.ParseDataType(row.DataType)
		if !ok {
			continue
		}
		switch row.Access {
		case grantAccessRead:
			set.Read = append(set.Read, dataType)
		case grantAccessWrite:
			set.Write = append(set.Write, dataType)
		}
	}
	return core.NormalizeGrantSet(set), nil
}

// PresentAuthorization has no user surface: the requested grants are stored
// and the ticket resolves as granted.
func (p *Platform) PresentAuthorization(ctx context.Context, ticket *authbridge.Ticket, req core.AuthorizationRequest) error {
	if !p.Available() {
		return fmt.Errorf("sqlstore: platform is not configured")
	}
	if ticket == nil {
		return fmt.Errorf("sqlstore: authorization ticket is required")
	}
	current, err := p.AuthorizationStatus(ctx)
	if err != nil {
		return err
	}
	requested := core.NormalizeGrantSet(core.GrantSet{Read: req.Read, Write: req.Write})
	missingRead, missingWrite := current.Missing(requested.Read, requested.Write)

	now := time.Now().UTC()
	err = p.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := p.insertGrants(ctx, tx, grantAccessRead, missingRead, now); err != nil {
			return err
		}
		return p.insertGrants(ctx, tx, grantAccessWrite, missingWrite, now)
	})
	if err != nil {
		return fmt.Errorf("sqlstore: store grants: %w", err)
	}
	ticket.Resolve(true)
	return nil
}

func (p *Platform) RevokeAuthorization(ctx context.Context) error {
	if !p.Available() {
		return fmt.Errorf("sqlstore: platform is not configured")
	}
	_, err := p.db.NewDelete().
		Model((*grantRow)(nil)).
		Where("platform_id = ?", p.id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("sqlstore: revoke grants: %w", err)
	}
	p.revision.Add(1)
	return nil
}

func (p *Platform) insertGrants(ctx context.Context, tx bun.Tx, access string, types []record.DataType, now time.Time) error {
	for _, dataType := range types {
		row := &grantRow{
			ID:         uuid.NewString(),
			PlatformID: p.id,
			Access:     access,
			DataType:   string(dataType),
			CreatedAt:  now,
		}
		if _, err := p.grants.CreateTx(ctx, tx, row); err != nil {
			return err
		}
	}
	return nil
}

func (p *Platform) supports(dataType record.DataType) bool {
	for _, candidate := range p.dataTypes {
		if candidate == dataType {
			return true
		}
	}
	return false
}

const (
	grantAccessRead  = "read"
	grantAccessWrite = "write"
)
