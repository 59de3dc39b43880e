package command

import (
	"strings"

	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/record"
)

const (
	TypeWriteRecords         = "health.command.records.write"
	TypeRequestAuthorization = "health.command.authorization.request"
	TypeRevokeAuthorization  = "health.command.authorization.revoke"
	TypeMirror               = "health.command.mirror"
)

type WriteRecordsMessage struct {
	Records []record.Record
}

func (WriteRecordsMessage) Type() string { return TypeWriteRecords }

func (m WriteRecordsMessage) Validate() error {
	if len(m.Records) == 0 {
		return commandValidationError("records", "at least one record is required")
	}
	for _, rec := range m.Records {
		if rec == nil {
			return commandValidationError("records", "records must not contain nil entries")
		}
	}
	return nil
}

type RequestAuthorizationMessage struct {
	Read  []record.DataType
	Write []record.DataType
}

func (RequestAuthorizationMessage) Type() string { return TypeRequestAuthorization }

func (m RequestAuthorizationMessage) Validate() error {
	if len(record.NormalizeDataTypes(m.Read)) == 0 && len(record.NormalizeDataTypes(m.Write)) == 0 {
		return commandValidationError("read", "at least one known read or write data type is required")
	}
	return nil
}

type RevokeAuthorizationMessage struct{}

func (RevokeAuthorizationMessage) Type() string { return TypeRevokeAuthorization }

func (RevokeAuthorizationMessage) Validate() error { return nil }

type MirrorMessage struct {
	Request core.MirrorRequest
}

func (MirrorMessage) Type() string { return TypeMirror }

func (m MirrorMessage) Validate() error {
	if strings.TrimSpace(m.Request.TargetPlatform) == "" {
		return commandValidationError("target_platform", "target platform is required")
	}
	if err := m.Request.Range.Validate(); err != nil {
		return commandWrapValidation(err, "command: mirror range is invalid")
	}
	return nil
}
