package gocommand

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	healthcommand "github.com/goliatone/go-health/command"
	"github.com/goliatone/go-health/core"
	healthquery "github.com/goliatone/go-health/query"
	"github.com/goliatone/go-health/record"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) RegisterCommand(cmd any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(cmd)
}

func (a *RegistryAdapter) RegisterQuery(qry any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(qry)
}

func (a *RegistryAdapter) AddResolver(key string, resolver command.Resolver) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.AddResolver(strings.TrimSpace(key), resolver)
}

func (a *RegistryAdapter) AddQueueResolver(key string, queueRegistry *jobqueuecommand.Registry) error {
	if queueRegistry == nil {
		return fmt.Errorf("gocommand: queue registry is required")
	}
	return a.AddResolver(key, jobqueuecommand.QueueResolver(queueRegistry))
}

func (a *RegistryAdapter) HasResolver(key string) bool {
	if a == nil || a.registry == nil {
		return false
	}
	return a.registry.HasResolver(strings.TrimSpace(key))
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.Initialize()
}

func SubscribeCommand[T any](cmd command.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
}

func SubscribeCommandFunc[T any](handler command.CommandFunc[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(handler, runnerOpts...)
}

func SubscribeQuery[T any, R any](qry command.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func SubscribeQueryFunc[T any, R any](qry command.QueryFunc[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

func RegisterAndSubscribe[T any](
	adapter *RegistryAdapter,
	cmd command.Commander[T],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if cmd == nil {
		return nil, fmt.Errorf("gocommand: command is required")
	}
	subscription := SubscribeCommand(cmd, runnerOpts...)
	if err := adapter.RegisterCommand(cmd); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

func RegisterAndSubscribeQuery[T any, R any](
	adapter *RegistryAdapter,
	qry command.Querier[T, R],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if qry == nil {
		return nil, fmt.Errorf("gocommand: query is required")
	}
	subscription := SubscribeQuery(qry, runnerOpts...)
	if err := adapter.RegisterQuery(qry); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

// HealthService is everything the command and query handlers need.
// *core.Service satisfies it.
type HealthService interface {
	healthcommand.MutatingService
	healthcommand.MirrorService
	healthquery.RecordReader
	healthquery.AuthorizationReader
	healthquery.PreferencesReader
}

// RegisterHealth registers and subscribes every health command and query
// handler. On failure the subscriptions made so far are released.
func RegisterHealth(
	adapter *RegistryAdapter,
	service HealthService,
	runnerOpts ...runner.Option,
) ([]commanddispatcher.Subscription, error) {
	if service == nil {
		return nil, fmt.Errorf("gocommand: health service is required")
	}

	subscriptions := make([]commanddispatcher.Subscription, 0, 8)
	track := func(sub commanddispatcher.Subscription, err error) error {
		if err != nil {
			return err
		}
		subscriptions = append(subscriptions, sub)
		return nil
	}
	steps := []func() error{
		func() error {
			return track(RegisterAndSubscribe[healthcommand.WriteRecordsMessage](adapter, healthcommand.NewWriteRecordsCommand(service), runnerOpts...))
		},
		func() error {
			return track(RegisterAndSubscribe[healthcommand.RequestAuthorizationMessage](adapter, healthcommand.NewRequestAuthorizationCommand(service), runnerOpts...))
		},
		func() error {
			return track(RegisterAndSubscribe[healthcommand.RevokeAuthorizationMessage](adapter, healthcommand.NewRevokeAuthorizationCommand(service), runnerOpts...))
		},
		func() error {
			return track(RegisterAndSubscribe[healthcommand.MirrorMessage](adapter, healthcommand.NewMirrorCommand(service), runnerOpts...))
		},
		func() error {
			return track(RegisterAndSubscribeQuery[healthquery.ReadRecordsMessage, []record.Record](adapter, healthquery.NewReadRecordsQuery(service), runnerOpts...))
		},
		func() error {
			return track(RegisterAndSubscribeQuery[healthquery.AggregateMessage, record.AggregatedRecord](adapter, healthquery.NewAggregateQuery(service), runnerOpts...))
		},
		func() error {
			return track(RegisterAndSubscribeQuery[healthquery.AuthorizationStatusMessage, healthquery.AuthorizationStatus](adapter, healthquery.NewAuthorizationStatusQuery(service), runnerOpts...))
		},
		func() error {
			return track(RegisterAndSubscribeQuery[healthquery.RegionalPreferencesMessage, core.RegionalPreferences](adapter, healthquery.NewRegionalPreferencesQuery(service), runnerOpts...))
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			Unsubscribe(subscriptions)
			return nil, err
		}
	}
	return subscriptions, nil
}

func Unsubscribe(subscriptions []commanddispatcher.Subscription) {
	for _, sub := range subscriptions {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
}

var _ HealthService = (*core.Service)(nil)
