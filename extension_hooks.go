package health

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-health/core"
)

// PlatformPack groups platform adapters a downstream module ships together.
type PlatformPack struct {
	Name      string
	Platforms []core.Platform
}

type CommandQueryBundleFactory func(service CommandQueryService) (any, error)

type ExtensionHooks struct {
	mu sync.RWMutex

	platformPacks map[string]PlatformPack
	bundles       map[string]CommandQueryBundleFactory
}

func NewExtensionHooks() *ExtensionHooks {
	return &ExtensionHooks{
		platformPacks: map[string]PlatformPack{},
		bundles:       map[string]CommandQueryBundleFactory{},
	}
}

func (h *ExtensionHooks) RegisterPlatformPack(pack PlatformPack) error {
	if h == nil {
		return fmt.Errorf("health: extension hooks are nil")
	}
	name := strings.TrimSpace(pack.Name)
	if name == "" {
		return fmt.Errorf("health: platform pack name is required")
	}
	if len(pack.Platforms) == 0 {
		return fmt.Errorf("health: platform pack %q has no platforms", name)
	}
	for _, platform := range pack.Platforms {
		if platform == nil {
			return fmt.Errorf("health: platform pack %q contains nil platform", name)
		}
	}

	normalized := PlatformPack{
		Name:      name,
		Platforms: append([]core.Platform(nil), pack.Platforms...),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.platformPacks[name]; exists {
		return fmt.Errorf("health: platform pack %q already registered", name)
	}
	h.platformPacks[name] = normalized
	return nil
}

func (h *ExtensionHooks) RegisterCommandQueryBundle(
	name string,
	factory CommandQueryBundleFactory,
) error {
	if h == nil {
		return fmt.Errorf("health: extension hooks are nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("health: command/query bundle name is required")
	}
	if factory == nil {
		return fmt.Errorf("health: command/query bundle %q factory is required", name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.bundles[name]; exists {
		return fmt.Errorf("health: command/query bundle %q already registered", name)
	}
	h.bundles[name] = factory
	return nil
}

// ApplyPlatformPacks registers every pack's platforms in pack name order.
func (h *ExtensionHooks) ApplyPlatformPacks(registry core.Registry) error {
	if h == nil {
		return nil
	}
	if registry == nil {
		return fmt.Errorf("health: registry is required")
	}

	for _, pack := range h.PlatformPacks() {
		for _, platform := range pack.Platforms {
			if err := registry.Register(platform); err != nil {
				return fmt.Errorf("health: platform pack %q: %w", pack.Name, err)
			}
		}
	}
	return nil
}

// ServiceOptions turns the registered packs into service options.
func (h *ExtensionHooks) ServiceOptions() []core.Option {
	var platforms []core.Platform
	for _, pack := range h.PlatformPacks() {
		platforms = append(platforms, pack.Platforms...)
	}
	if len(platforms) == 0 {
		return nil
	}
	return []core.Option{core.WithPlatforms(platforms...)}
}

func (h *ExtensionHooks) BuildCommandQueryBundles(
	service CommandQueryService,
) (map[string]any, error) {
	if h == nil {
		return map[string]any{}, nil
	}
	if service == nil {
		return nil, fmt.Errorf("health: command/query service is required")
	}

	h.mu.RLock()
	names := make([]string, 0, len(h.bundles))
	for name := range h.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	factories := make(map[string]CommandQueryBundleFactory, len(h.bundles))
	for name, factory := range h.bundles {
		factories[name] = factory
	}
	h.mu.RUnlock()

	result := make(map[string]any, len(names))
	for _, name := range names {
		bundle, err := factories[name](service)
		if err != nil {
			return nil, err
		}
		result[name] = bundle
	}
	return result, nil
}

func (h *ExtensionHooks) PlatformPacks() []PlatformPack {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.platformPacks))
	for name := range h.platformPacks {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]PlatformPack, 0, len(names))
	for _, name := range names {
		pack := h.platformPacks[name]
		out = append(out, PlatformPack{
			Name:      pack.Name,
			Platforms: append([]core.Platform(nil), pack.Platforms...),
		})
	}
	return out
}

func (h *ExtensionHooks) BundleNames() []string {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.bundles))
	for name := range h.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
