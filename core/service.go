package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-health/authbridge"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

type Service struct {
	config              Config
	logger              Logger
	loggerProvider      LoggerProvider
	metricsRecorder     MetricsRecorder
	errorFactory        ErrorFactory
	errorMapper         ErrorMapper
	configProvider      ConfigProvider
	optionsResolver     OptionsResolver
	registry            Registry
	permissionEvaluator PermissionEvaluator
	bridge              *AuthorizationBridge
}

type ServiceDependencies struct {
	Logger              Logger
	LoggerProvider      LoggerProvider
	MetricsRecorder     MetricsRecorder
	ErrorFactory        ErrorFactory
	ErrorMapper         ErrorMapper
	ConfigProvider      ConfigProvider
	OptionsResolver     OptionsResolver
	Registry            Registry
	PermissionEvaluator PermissionEvaluator
	AuthorizationBridge *AuthorizationBridge
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("health", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("health"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		builder.registry = NewPlatformRegistry()
	}
	if builder.permissionEvaluator == nil {
		builder.permissionEvaluator = GrantPermissionEvaluator{}
	}
	if builder.bridge == nil {
		builder.bridge = authbridge.New[AuthorizationPrompt](
			authbridge.PresenterFunc[AuthorizationPrompt](presentPrompt),
			authbridge.WithLogger[AuthorizationPrompt](logger),
		)
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	for _, platform := range builder.platforms {
		if err := builder.registry.Register(platform); err != nil {
			return nil, mapBuildError(builder.errorMapper, err)
		}
	}

	return &Service{
		config:              finalConfig,
		logger:              logger,
		loggerProvider:      provider,
		metricsRecorder:     builder.metricsRecorder,
		errorFactory:        builder.errorFactory,
		errorMapper:         builder.errorMapper,
		configProvider:      builder.configProvider,
		optionsResolver:     builder.optionsResolver,
		registry:            builder.registry,
		permissionEvaluator: builder.permissionEvaluator,
		bridge:              builder.bridge,
	}, nil
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return NewService(cfg, opts...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func presentPrompt(ctx context.Context, ticket *authbridge.Ticket, prompt AuthorizationPrompt) error {
	if prompt.Presenter == nil {
		return fmt.Errorf("core: authorization presenter is required")
	}
	return prompt.Presenter.PresentAuthorization(ctx, ticket, prompt.Request)
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:              s.logger,
		LoggerProvider:      s.loggerProvider,
		MetricsRecorder:     s.metricsRecorder,
		ErrorFactory:        s.errorFactory,
		ErrorMapper:         s.errorMapper,
		ConfigProvider:      s.configProvider,
		OptionsResolver:     s.optionsResolver,
		Registry:            s.registry,
		PermissionEvaluator: s.permissionEvaluator,
		AuthorizationBridge: s.bridge,
	}
}

// ActivePlatform returns the configured platform, or the first available one
// in ID order when none is configured.
func (s *Service) ActivePlatform() (Platform, error) {
	if s == nil || s.registry == nil {
		return nil, platformNotFoundError("core: platform registry is not configured", "")
	}
	if id := strings.TrimSpace(s.config.Platform); id != "" {
		platform, ok := s.registry.Get(id)
		if !ok {
			return nil, platformNotFoundError(fmt.Sprintf("core: platform not registered: %s", id), id)
		}
		return platform, nil
	}
	for _, platform := range s.registry.List() {
		if platform != nil && platform.Available() {
			return platform, nil
		}
	}
	return nil, platformNotFoundError("core: no available platform", "")
}

func (s *Service) platformByID(platformID string) (Platform, error) {
	if strings.TrimSpace(platformID) == "" {
		return s.ActivePlatform()
	}
	platform, ok := s.registry.Get(platformID)
	if !ok {
		return nil, platformNotFoundError(fmt.Sprintf("core: platform not registered: %s", platformID), platformID)
	}
	return platform, nil
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return serviceErrorMapper(err)
	}
	if mapped := s.errorMapper(err); mapped != nil {
		return mapped
	}
	return err
}

func (s *Service) unsupported(message string, metadata map[string]any) error {
	factory := goerrors.New
	if s != nil && s.errorFactory != nil {
		factory = s.errorFactory
	}
	err := factory(message, goerrors.CategoryOperation).WithTextCode(ErrorUnsupported)
	if len(metadata) > 0 {
		err = err.WithMetadata(metadata)
	}
	return ensureServiceErrorEnvelope(err)
}
