package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-health/core"
	"github.com/goliatone/go-health/record"
)

var (
	_ gocmd.Querier[ReadRecordsMessage, []record.Record]                  = (*ReadRecordsQuery)(nil)
	_ gocmd.Querier[AggregateMessage, record.AggregatedRecord]            = (*AggregateQuery)(nil)
	_ gocmd.Querier[AuthorizationStatusMessage, AuthorizationStatus]      = (*AuthorizationStatusQuery)(nil)
	_ gocmd.Querier[RegionalPreferencesMessage, core.RegionalPreferences] = (*RegionalPreferencesQuery)(nil)
)
