// Package record defines the closed set of validated health records, their
// provenance metadata, and the aggregated summaries computed over them.
//
// Every record kind implements exactly one temporal shape: IntervalRecord,
// InstantaneousRecord or SeriesRecord. Kinds are built through validating
// factories such as NewSteps and NewBloodPressure; an invalid record cannot be
// constructed.
package record
