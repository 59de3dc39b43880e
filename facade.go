package health

import (
	"context"
	"fmt"

	gocmd "github.com/goliatone/go-command"
	healthcommand "github.com/goliatone/go-health/command"
	"github.com/goliatone/go-health/core"
	healthquery "github.com/goliatone/go-health/query"
	"github.com/goliatone/go-health/record"
)

type CommandQueryService interface {
	healthcommand.MutatingService
	healthcommand.MirrorService
	healthquery.RecordReader
	healthquery.AuthorizationReader
	healthquery.PreferencesReader
}

type Commands struct {
	WriteRecords         *healthcommand.WriteRecordsCommand
	RequestAuthorization *healthcommand.RequestAuthorizationCommand
	RevokeAuthorization  *healthcommand.RevokeAuthorizationCommand
	Mirror               *healthcommand.MirrorCommand
}

type Queries struct {
	ReadRecords         *healthquery.ReadRecordsQuery
	Aggregate           *healthquery.AggregateQuery
	AuthorizationStatus *healthquery.AuthorizationStatusQuery
	RegionalPreferences *healthquery.RegionalPreferencesQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("health: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		WriteRecords:         healthcommand.NewWriteRecordsCommand(service),
		RequestAuthorization: healthcommand.NewRequestAuthorizationCommand(service),
		RevokeAuthorization:  healthcommand.NewRevokeAuthorizationCommand(service),
		Mirror:               healthcommand.NewMirrorCommand(service),
	}
	facade.queries = Queries{
		ReadRecords:         healthquery.NewReadRecordsQuery(service),
		Aggregate:           healthquery.NewAggregateQuery(service),
		AuthorizationStatus: healthquery.NewAuthorizationStatusQuery(service),
		RegionalPreferences: healthquery.NewRegionalPreferencesQuery(service),
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

// WriteRecords runs the write command and returns the per-group result even
// when a group failed.
func (f *Facade) WriteRecords(ctx context.Context, records []record.Record) (core.WriteResult, error) {
	collector := gocmd.NewResult[core.WriteResult]()
	err := f.Commands().WriteRecords.Execute(gocmd.ContextWithResult(ctx, collector), healthcommand.WriteRecordsMessage{
		Records: records,
	})
	result, _ := collector.Load()
	return result, err
}

func (f *Facade) RequestAuthorization(ctx context.Context, read, write []record.DataType) (bool, error) {
	collector := gocmd.NewResult[bool]()
	err := f.Commands().RequestAuthorization.Execute(gocmd.ContextWithResult(ctx, collector), healthcommand.RequestAuthorizationMessage{
		Read:  read,
		Write: write,
	})
	if err != nil {
		return false, err
	}
	granted, _ := collector.Load()
	return granted, nil
}

func (f *Facade) Mirror(ctx context.Context, req core.MirrorRequest) (core.MirrorResult, error) {
	collector := gocmd.NewResult[core.MirrorResult]()
	err := f.Commands().Mirror.Execute(gocmd.ContextWithResult(ctx, collector), healthcommand.MirrorMessage{
		Request: req,
	})
	result, _ := collector.Load()
	return result, err
}

var _ CommandQueryService = (*core.Service)(nil)
