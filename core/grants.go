package core

import (
	"sort"

	"github.com/goliatone/go-health/record"
)

const (
	GrantEventExpanded   = "expanded"
	GrantEventDowngraded = "downgraded"
	GrantEventRevoked    = "revoked"
)

const (
	grantAccessRead  = "read"
	grantAccessWrite = "write"
)

type GrantDelta struct {
	EventType string
	Added     []string
	Removed   []string
}

// ComputeGrantDelta compares two grant sets by "read:<type>" and
// "write:<type>" keys.
func ComputeGrantDelta(previous, current GrantSet) GrantDelta {
	prevSet := toGrantSet(previous)
	currSet := toGrantSet(current)

	added := make([]string, 0, len(currSet))
	removed := make([]string, 0, len(prevSet))
	for grant := range currSet {
		if _, ok := prevSet[grant]; !ok {
			added = append(added, grant)
		}
	}
	for grant := range prevSet {
		if _, ok := currSet[grant]; !ok {
			removed = append(removed, grant)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)

	eventType := ""
	switch {
	case len(removed) > 0 && len(currSet) == 0:
		eventType = GrantEventRevoked
	case len(removed) > 0:
		eventType = GrantEventDowngraded
	case len(added) > 0:
		eventType = GrantEventExpanded
	}
	return GrantDelta{
		EventType: eventType,
		Added:     added,
		Removed:   removed,
	}
}

func NormalizeGrantSet(set GrantSet) GrantSet {
	return GrantSet{
		Read:  record.NormalizeDataTypes(set.Read),
		Write: record.NormalizeDataTypes(set.Write),
	}
}

func (g GrantSet) Keys() []string {
	set := toGrantSet(g)
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Missing returns the requested data types not covered by g.
func (g GrantSet) Missing(read, write []record.DataType) (missingRead, missingWrite []record.DataType) {
	return missingGrants(read, g.Read), missingGrants(write, g.Write)
}

func toGrantSet(set GrantSet) map[string]struct{} {
	normalized := NormalizeGrantSet(set)
	out := make(map[string]struct{}, len(normalized.Read)+len(normalized.Write))
	for _, dataType := range normalized.Read {
		out[grantAccessRead+":"+string(dataType)] = struct{}{}
	}
	for _, dataType := range normalized.Write {
		out[grantAccessWrite+":"+string(dataType)] = struct{}{}
	}
	return out
}

func missingGrants(required, granted []record.DataType) []record.DataType {
	have := make(map[record.DataType]struct{}, len(granted))
	for _, dataType := range record.NormalizeDataTypes(granted) {
		have[dataType] = struct{}{}
	}
	var missing []record.DataType
	for _, dataType := range record.NormalizeDataTypes(required) {
		if _, ok := have[dataType]; !ok {
			missing = append(missing, dataType)
		}
	}
	return missing
}
