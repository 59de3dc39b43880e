package stitch

import (
	"time"

	"github.com/goliatone/go-health/record"
)

// GroupSleepStages builds one sleep session per maximal run of contiguous
// stages. A stage continues a run when it starts exactly at the previous
// stage's end, or earlier by at most the gap tolerance. An overlapping
// previous stage is cut at the new stage's start.
func GroupSleepStages(stages []record.SleepStage, opts ...Option) ([]record.SleepSession, error) {
	cfg := newConfig(opts)
	grouped := runs(stages,
		func(stage record.SleepStage) time.Time { return stage.Start },
		func(prev, next record.SleepStage) bool {
			if next.Start.After(prev.End) {
				return false
			}
			return prev.End.Sub(next.Start) <= cfg.sleepGapTolerance
		},
	)

	sessions := make([]record.SleepSession, 0, len(grouped))
	for _, run := range grouped {
		run = snapOverlaps(run)
		if len(run) == 0 {
			continue
		}
		session, err := record.NewSleepSession(run[0].Start, run[len(run)-1].End, run, cfg.metadata)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func snapOverlaps(run []record.SleepStage) []record.SleepStage {
	out := make([]record.SleepStage, 0, len(run))
	for _, stage := range run {
		if last := len(out) - 1; last >= 0 && out[last].End.After(stage.Start) {
			out[last].End = stage.Start
			if !out[last].Start.Before(out[last].End) {
				out = out[:last]
			}
		}
		out = append(out, stage)
	}
	return out
}

// FlattenSleepSessions returns the stages of every session in session order.
func FlattenSleepSessions(sessions []record.SleepSession) []record.SleepStage {
	var out []record.SleepStage
	for _, session := range sessions {
		out = append(out, session.Stages()...)
	}
	return out
}
