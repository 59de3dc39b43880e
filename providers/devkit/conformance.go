package devkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-health/authbridge"
	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/record"
)

// ValidatePlatformConformance checks the contract every platform adapter
// must honor. For each writable type it writes a fixture at window.Start and
// one at window.End, then expects a read of window to return the first and
// not the second. It also expects a write group holding a foreign record to
// fail. The platform is left holding the written fixtures.
func ValidatePlatformConformance(ctx context.Context, platform core.Platform, window record.TimeRange) error {
	if platform == nil {
		return fmt.Errorf("devkit: platform is required")
	}
	if strings.TrimSpace(platform.ID()) == "" {
		return fmt.Errorf("devkit: platform id is required")
	}
	if err := window.Validate(); err != nil {
		return err
	}
	if !platform.Available() {
		return fmt.Errorf("devkit: platform %q is not available", platform.ID())
	}

	capabilities := platform.Capabilities()
	for _, dataType := range append(append([]record.DataType(nil), capabilities.ReadTypes...), capabilities.WriteTypes...) {
		if !dataType.Valid() {
			return fmt.Errorf("devkit: platform %q advertises unknown data type %q", platform.ID(), dataType)
		}
	}
	if _, err := platform.AuthorizationStatus(ctx); err != nil {
		return fmt.Errorf("devkit: authorization status: %w", err)
	}

	readable := map[record.DataType]bool{}
	for _, dataType := range capabilities.ReadTypes {
		readable[dataType] = true
	}
	for _, dataType := range record.NormalizeDataTypes(capabilities.WriteTypes) {
		if err := checkWriteGroup(ctx, platform, dataType, window, readable[dataType]); err != nil {
			return err
		}
	}
	return nil
}

func checkWriteGroup(ctx context.Context, platform core.Platform, dataType record.DataType, window record.TimeRange, readable bool) error {
	inside, err := SampleRecord(dataType, window.Start)
	if err != nil {
		return err
	}
	outside, err := SampleRecord(dataType, window.End)
	if err != nil {
		return err
	}
	ids, err := platform.Write(ctx, dataType, []record.Record{inside, outside})
	if err != nil {
		return fmt.Errorf("devkit: write %s: %w", dataType, err)
	}
	if len(ids) != 2 {
		return fmt.Errorf("devkit: write %s returned %d ids, expected 2", dataType, len(ids))
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("devkit: write %s returned an empty id", dataType)
		}
	}

	foreignType := record.DataTypeSteps
	if dataType == record.DataTypeSteps {
		foreignType = record.DataTypeWeight
	}
	foreign, err := SampleRecord(foreignType, window.Start)
	if err != nil {
		return err
	}
	if _, err := platform.Write(ctx, dataType, []record.Record{foreign}); err == nil {
		return fmt.Errorf("devkit: write %s accepted a %s record", dataType, foreignType)
	}

	if !readable {
		return nil
	}
	records, err := platform.Read(ctx, core.ReadRequest{Type: dataType, Range: window})
	if err != nil {
		return fmt.Errorf("devkit: read %s: %w", dataType, err)
	}
	foundInside := false
	for _, rec := range records {
		if rec.DataType() != dataType {
			return fmt.Errorf("devkit: read %s returned a %s record", dataType, rec.DataType())
		}
		if rec.StartTime().Equal(window.End) {
			return fmt.Errorf("devkit: read %s returned a record starting at the exclusive range end", dataType)
		}
		if rec.StartTime().Equal(window.Start) {
			foundInside = true
		}
	}
	if !foundInside {
		return fmt.Errorf("devkit: read %s did not return the record written at the range start", dataType)
	}
	return nil
}

// ValidatePresenterConformance drives presenter through a real bridge and
// expects it to settle the ticket with the wanted outcome.
func ValidatePresenterConformance(
	ctx context.Context,
	presenter core.AuthorizationPresenter,
	req core.AuthorizationRequest,
	want authbridge.Outcome,
) error {
	if presenter == nil {
		return fmt.Errorf("devkit: authorization presenter is required")
	}
	bridge := authbridge.New[core.AuthorizationRequest](authbridge.PresenterFunc[core.AuthorizationRequest](
		func(ctx context.Context, ticket *authbridge.Ticket, req core.AuthorizationRequest) error {
			return presenter.PresentAuthorization(ctx, ticket, req)
		},
	))
	decision, err := bridge.Request(ctx, req)
	if err != nil {
		return err
	}
	if decision.Outcome != want {
		return fmt.Errorf("devkit: expected %s outcome, got %s", want, decision.Outcome)
	}
	return nil
}
