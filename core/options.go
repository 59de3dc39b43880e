package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-health/authbridge"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
)

type ErrorFactory func(message string, category ...goerrors.Category) *goerrors.Error

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type AuthorizationBridge = authbridge.Bridge[AuthorizationPrompt]

type serviceBuilder struct {
	runtimeConfig       Config
	logger              Logger
	loggerProvider      LoggerProvider
	metricsRecorder     MetricsRecorder
	errorFactory        ErrorFactory
	errorMapper         ErrorMapper
	configProvider      ConfigProvider
	optionsResolver     OptionsResolver
	registry            Registry
	platforms           []Platform
	permissionEvaluator PermissionEvaluator
	bridge              *AuthorizationBridge
}

type Option func(*serviceBuilder)

func WithLogger(logger Logger) Option {
	return func(b *serviceBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *serviceBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *serviceBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorFactory(factory ErrorFactory) Option {
	return func(b *serviceBuilder) {
		b.errorFactory = factory
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *serviceBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *serviceBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *serviceBuilder) {
		b.optionsResolver = resolver
	}
}

func WithRegistry(registry Registry) Option {
	return func(b *serviceBuilder) {
		b.registry = registry
	}
}

// WithPlatforms registers platforms on the service registry at build time.
func WithPlatforms(platforms ...Platform) Option {
	return func(b *serviceBuilder) {
		b.platforms = append(b.platforms, platforms...)
	}
}

func WithPermissionEvaluator(evaluator PermissionEvaluator) Option {
	return func(b *serviceBuilder) {
		b.permissionEvaluator = evaluator
	}
}

func WithAuthorizationBridge(bridge *AuthorizationBridge) Option {
	return func(b *serviceBuilder) {
		b.bridge = bridge
	}
}

func defaultServiceBuilder(runtime Config) serviceBuilder {
	loggerProvider, logger := glog.Resolve("health", nil, nil)
	return serviceBuilder{
		runtimeConfig:       runtime,
		loggerProvider:      loggerProvider,
		logger:              logger,
		metricsRecorder:     NopMetricsRecorder{},
		errorFactory:        goerrors.New,
		errorMapper:         defaultErrorMapper,
		configProvider:      NewCfgxConfigProvider(nil),
		optionsResolver:     GoOptionsResolver{},
		registry:            NewPlatformRegistry(),
		permissionEvaluator: GrantPermissionEvaluator{},
	}
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	return serviceErrorMapper(err)
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// StaticConfigLoader serves a fixed raw map, e.g. values decoded from a file.
func StaticConfigLoader(values map[string]any) RawConfigLoader {
	return staticRawConfigLoader{Values: values}
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	// An explicit zero tolerance in the source means exact matching; the
	// layered merge would otherwise treat it as unset.
	if _, ok := raw["sleep_gap_tolerance"]; ok && cfg.SleepGapTolerance == 0 {
		cfg.SleepExactMatch = true
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

// configToLayerMap skips zero values outside the defaults layer so an unset
// field never shadows a lower layer.
func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	setString := func(key, value string) {
		if includeZero || strings.TrimSpace(value) != "" {
			layer[key] = strings.TrimSpace(value)
		}
	}
	setString("service_name", cfg.ServiceName)
	setString("platform", cfg.Platform)
	setString("default_temperature_unit", cfg.DefaultTemperatureUnit)
	setString("default_measurement_system", cfg.DefaultMeasurementSystem)

	if includeZero || cfg.SleepGapTolerance > 0 {
		layer["sleep_gap_tolerance"] = cfg.SleepGapTolerance
	}
	if includeZero || cfg.SleepExactMatch {
		layer["sleep_exact_match"] = cfg.SleepExactMatch
	}
	if includeZero || cfg.HeartRateMaxGap > 0 {
		layer["heart_rate_max_gap"] = cfg.HeartRateMaxGap
	}
	return layer
}
