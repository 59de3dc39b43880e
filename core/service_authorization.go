package core

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-health/record"
)

func (s *Service) IsAvailable() bool {
	platform, err := s.ActivePlatform()
	if err != nil {
		return false
	}
	return platform.Available()
}

func (s *Service) IsAuthorized(ctx context.Context, read, write []record.DataType) (authorized bool, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"read_types":  dataTypeNames(read),
		"write_types": dataTypeNames(write),
	}
	defer func() {
		fields["authorized"] = authorized
		s.observeOperation(ctx, startedAt, "is_authorized", err, fields)
	}()

	read = record.NormalizeDataTypes(read)
	write = record.NormalizeDataTypes(write)
	if len(read) == 0 && len(write) == 0 {
		return false, badInputError("core: at least one read or write data type is required")
	}

	platform, err := s.ActivePlatform()
	if err != nil {
		return false, err
	}
	fields["platform_id"] = platform.ID()

	decision, err := s.evaluateAccess(ctx, platform, read, write)
	if err != nil {
		return false, err
	}
	if !decision.Allowed {
		fields["reason"] = decision.Reason
	}
	return decision.Allowed, nil
}

// RequestAuthorization short-circuits when the grants are already present,
// otherwise presents the platform permission surface and waits for it.
// A superseded or cancelled request reports false without an error. Types
// the platform cannot handle fail before anything is presented.
func (s *Service) RequestAuthorization(ctx context.Context, read, write []record.DataType) (granted bool, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"read_types":  dataTypeNames(read),
		"write_types": dataTypeNames(write),
	}
	defer func() {
		fields["granted"] = granted
		s.observeOperation(ctx, startedAt, "request_authorization", err, fields)
	}()

	read = record.NormalizeDataTypes(read)
	write = record.NormalizeDataTypes(write)
	if len(read) == 0 && len(write) == 0 {
		return false, badInputError("core: at least one read or write data type is required")
	}

	platform, err := s.ActivePlatform()
	if err != nil {
		return false, err
	}
	fields["platform_id"] = platform.ID()

	unsupportedRead, unsupportedWrite := unsupportedTypes(platform.Capabilities(), read, write)
	if len(unsupportedRead) > 0 || len(unsupportedWrite) > 0 {
		return false, s.unsupported(
			fmt.Sprintf("core: platform %q does not support the requested data types", platform.ID()),
			map[string]any{
				"platform_id": platform.ID(),
				"read_types":  dataTypeNames(unsupportedRead),
				"write_types": dataTypeNames(unsupportedWrite),
			},
		)
	}

	decision, err := s.evaluateAccess(ctx, platform, read, write)
	if err != nil {
		return false, err
	}
	if decision.Allowed {
		fields["short_circuit"] = true
		return true, nil
	}

	presenter, ok := platform.(AuthorizationPresenter)
	if !ok {
		return false, s.unsupported(
			fmt.Sprintf("core: platform %q cannot request authorization", platform.ID()),
			map[string]any{"platform_id": platform.ID()},
		)
	}

	before, beforeErr := platform.AuthorizationStatus(ctx)
	outcome, err := s.bridge.Request(ctx, AuthorizationPrompt{
		Presenter: presenter,
		Request: AuthorizationRequest{
			PlatformID: platform.ID(),
			Read:       read,
			Write:      write,
		},
	})
	if err != nil {
		return false, s.mapError(err)
	}
	fields["outcome"] = outcome.Outcome.String()

	granted, err = outcome.Authorized()
	if err != nil {
		return false, s.mapError(err)
	}
	if granted && beforeErr == nil {
		if after, statusErr := platform.AuthorizationStatus(ctx); statusErr == nil {
			delta := ComputeGrantDelta(before, after)
			fields["grant_event"] = delta.EventType
			fields["grants_added"] = delta.Added
		}
	}
	return granted, nil
}

func (s *Service) IsRevokeAuthorizationSupported() bool {
	platform, err := s.ActivePlatform()
	if err != nil {
		return false
	}
	_, ok := platform.(Revoker)
	return ok
}

func (s *Service) RevokeAuthorization(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observeOperation(ctx, startedAt, "revoke_authorization", err, fields)
	}()

	platform, err := s.ActivePlatform()
	if err != nil {
		return err
	}
	fields["platform_id"] = platform.ID()

	revoker, ok := platform.(Revoker)
	if !ok {
		return s.unsupported(
			fmt.Sprintf("core: platform %q does not support revoking authorization", platform.ID()),
			map[string]any{"platform_id": platform.ID()},
		)
	}
	if err := revoker.RevokeAuthorization(ctx); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *Service) evaluateAccess(ctx context.Context, platform Platform, read, write []record.DataType) (PermissionDecision, error) {
	evaluator := s.permissionEvaluator
	if evaluator == nil {
		evaluator = GrantPermissionEvaluator{}
	}
	decision, err := evaluator.EvaluateAccess(ctx, platform, read, write)
	if err != nil {
		return PermissionDecision{}, s.mapError(err)
	}
	return decision, nil
}

func dataTypeNames(values []record.DataType) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, string(value))
	}
	return out
}
