package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/record"
)

type MutatingService interface {
	WriteData(ctx context.Context, records []record.Record) (core.WriteResult, error)
	RequestAuthorization(ctx context.Context, read, write []record.DataType) (bool, error)
	RevokeAuthorization(ctx context.Context) error
}

type MirrorService interface {
	Mirror(ctx context.Context, req core.MirrorRequest) (core.MirrorResult, error)
}

// WriteRecordsCommand stores the core.WriteResult even when a group failed so
// callers can inspect per-group outcomes next to the returned error.
type WriteRecordsCommand struct {
	service MutatingService
}

func NewWriteRecordsCommand(service MutatingService) *WriteRecordsCommand {
	return &WriteRecordsCommand{service: service}
}

func (c *WriteRecordsCommand) Execute(ctx context.Context, msg WriteRecordsMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: write records service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.service.WriteData(ctx, msg.Records)
	storeResult(ctx, out)
	return err
}

type RequestAuthorizationCommand struct {
	service MutatingService
}

func NewRequestAuthorizationCommand(service MutatingService) *RequestAuthorizationCommand {
	return &RequestAuthorizationCommand{service: service}
}

func (c *RequestAuthorizationCommand) Execute(ctx context.Context, msg RequestAuthorizationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: authorization service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	granted, err := c.service.RequestAuthorization(ctx, msg.Read, msg.Write)
	if err != nil {
		return err
	}
	storeResult(ctx, granted)
	return nil
}

type RevokeAuthorizationCommand struct {
	service MutatingService
}

func NewRevokeAuthorizationCommand(service MutatingService) *RevokeAuthorizationCommand {
	return &RevokeAuthorizationCommand{service: service}
}

func (c *RevokeAuthorizationCommand) Execute(ctx context.Context, _ RevokeAuthorizationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: revoke service is required")
	}
	return c.service.RevokeAuthorization(ctx)
}

type MirrorCommand struct {
	service MirrorService
}

func NewMirrorCommand(service MirrorService) *MirrorCommand {
	return &MirrorCommand{service: service}
}

func (c *MirrorCommand) Execute(ctx context.Context, msg MirrorMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: mirror service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.service.Mirror(ctx, msg.Request)
	storeResult(ctx, out)
	return err
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
