package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func recordHandlers() repository.ModelHandlers[*recordRow] {
	return repository.ModelHandlers[*recordRow]{
		NewRecord: func() *recordRow {
			return &recordRow{}
		},
		GetID: func(row *recordRow) uuid.UUID {
			if row == nil {
				return uuid.Nil
			}
			return parseUUID(row.ID)
		},
		SetID: func(row *recordRow, id uuid.UUID) {
			if row == nil {
				return
			}
			row.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(row *recordRow) string {
			if row == nil {
				return ""
			}
			return strings.TrimSpace(row.ID)
		},
	}
}

func grantHandlers() repository.ModelHandlers[*grantRow] {
	return repository.ModelHandlers[*grantRow]{
		NewRecord: func() *grantRow {
			return &grantRow{}
		},
		GetID: func(row *grantRow) uuid.UUID {
			if row == nil {
				return uuid.Nil
			}
			return parseUUID(row.ID)
		},
		SetID: func(row *grantRow, id uuid.UUID) {
			if row == nil {
				return
			}
			row.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(row *grantRow) string {
			if row == nil {
				return ""
			}
			return strings.TrimSpace(row.ID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
