package health

import "github.com/goliatone/go-health/core"

type Config = core.Config

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies

type HealthManager = core.HealthManager
type Platform = core.Platform
type PlatformCapabilities = core.PlatformCapabilities
type Registry = core.Registry
type PermissionEvaluator = core.PermissionEvaluator
type MetricsRecorder = core.MetricsRecorder
type AuthorizationBridge = core.AuthorizationBridge

type ReadRequest = core.ReadRequest
type AggregateRequest = core.AggregateRequest

type WriteResult = core.WriteResult

type MirrorRequest = core.MirrorRequest
type MirrorResult = core.MirrorResult

type GrantSet = core.GrantSet

type RegionalPreferences = core.RegionalPreferences

var (
	WithLogger              = core.WithLogger
	WithLoggerProvider      = core.WithLoggerProvider
	WithMetricsRecorder     = core.WithMetricsRecorder
	WithErrorFactory        = core.WithErrorFactory
	WithErrorMapper         = core.WithErrorMapper
	WithConfigProvider      = core.WithConfigProvider
	WithOptionsResolver     = core.WithOptionsResolver
	WithRegistry            = core.WithRegistry
	WithPlatforms           = core.WithPlatforms
	WithPermissionEvaluator = core.WithPermissionEvaluator
	WithAuthorizationBridge = core.WithAuthorizationBridge
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return core.Setup(cfg, opts...)
}
