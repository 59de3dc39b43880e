package core

import (
	"context"
	"fmt"

	"github.com/goliatone/go-health/record"
)

// GrantPermissionEvaluator allows access when the platform supports every
// requested data type and reports all of them as granted.
type GrantPermissionEvaluator struct{}

func (GrantPermissionEvaluator) EvaluateAccess(
	ctx context.Context,
	platform Platform,
	read []record.DataType,
	write []record.DataType,
) (PermissionDecision, error) {
	if platform == nil {
		return PermissionDecision{}, fmt.Errorf("core: platform is required")
	}
	read = record.NormalizeDataTypes(read)
	write = record.NormalizeDataTypes(write)

	unsupportedRead, unsupportedWrite := unsupportedTypes(platform.Capabilities(), read, write)
	if len(unsupportedRead) > 0 || len(unsupportedWrite) > 0 {
		return PermissionDecision{
			Allowed:      false,
			Reason:       "data type is not supported by platform",
			MissingRead:  unsupportedRead,
			MissingWrite: unsupportedWrite,
		}, nil
	}

	status, err := platform.AuthorizationStatus(ctx)
	if err != nil {
		return PermissionDecision{}, err
	}
	missingRead, missingWrite := status.Missing(read, write)
	if len(missingRead) > 0 || len(missingWrite) > 0 {
		return PermissionDecision{
			Allowed:      false,
			Reason:       "required grants are missing",
			MissingRead:  missingRead,
			MissingWrite: missingWrite,
		}, nil
	}
	return PermissionDecision{Allowed: true}, nil
}


// unsupportedTypes lists the requested types missing from the platform
// capabilities.
func unsupportedTypes(capabilities PlatformCapabilities, read, write []record.DataType) ([]record.DataType, []record.DataType) {
	return missingGrants(read, capabilities.ReadTypes), missingGrants(write, capabilities.WriteTypes)
}
