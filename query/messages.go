package query

import (
	"github.com/goliatone/go-health/record"
)

const (
	TypeReadRecords         = "health.query.records.read"
	TypeAggregate           = "health.query.records.aggregate"
	TypeAuthorizationStatus = "health.query.authorization.status"
	TypeRegionalPreferences = "health.query.preferences.regional"
)

type ReadRecordsMessage struct {
	DataType record.DataType
	Range    record.TimeRange
}

func (ReadRecordsMessage) Type() string { return TypeReadRecords }

func (m ReadRecordsMessage) Validate() error {
	return validateRangeMessage(m.DataType, m.Range)
}

type AggregateMessage struct {
	DataType record.DataType
	Range    record.TimeRange
}

func (AggregateMessage) Type() string { return TypeAggregate }

func (m AggregateMessage) Validate() error {
	return validateRangeMessage(m.DataType, m.Range)
}

type AuthorizationStatusMessage struct {
	Read  []record.DataType
	Write []record.DataType
}

func (AuthorizationStatusMessage) Type() string { return TypeAuthorizationStatus }

func (m AuthorizationStatusMessage) Validate() error {
	if len(m.Read) == 0 && len(m.Write) == 0 {
		return queryValidationError("read", "at least one read or write data type is required")
	}
	return nil
}

type RegionalPreferencesMessage struct{}

func (RegionalPreferencesMessage) Type() string { return TypeRegionalPreferences }

func (RegionalPreferencesMessage) Validate() error { return nil }

func validateRangeMessage(dataType record.DataType, rng record.TimeRange) error {
	if !dataType.Valid() {
		return queryValidationError("data_type", "data type is unknown")
	}
	if err := rng.Validate(); err != nil {
		return queryWrapValidation(err, "query: range is invalid")
	}
	return nil
}
