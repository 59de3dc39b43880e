package core

import (
	"context"
	"time"
)

// RegionalPreferences asks the platform for the user's unit preferences and
// falls back to the configured defaults when it cannot answer.
func (s *Service) RegionalPreferences(ctx context.Context) (prefs RegionalPreferences, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["source"] = prefs.Source
		s.observeOperation(ctx, startedAt, "regional_preferences", err, fields)
	}()

	defaults := s.Config().defaultPreferences()
	platform, platformErr := s.ActivePlatform()
	if platformErr != nil {
		return defaults, nil
	}
	fields["platform_id"] = platform.ID()

	source, ok := platform.(RegionalPreferenceSource)
	if !ok {
		return defaults, nil
	}
	resolved, sourceErr := source.RegionalPreferences(ctx)
	if sourceErr != nil {
		s.logWarn(ctx, "regional preferences unavailable, using defaults", map[string]any{
			"platform_id": platform.ID(),
			"error":       sourceErr.Error(),
		})
		return defaults, nil
	}
	if resolved.MeasurementSystem == "" {
		resolved.MeasurementSystem = defaults.MeasurementSystem
	}
	resolved.Source = PreferenceSourcePlatform
	return resolved, nil
}
