package pipeline

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/assetbuild/internal/logfields"
	"git.home.luguber.info/inful/assetbuild/internal/metrics"
)

// RunStages executes stages in order, recording timing and stopping on the
// first error. The build state advances to each stage's Next state on success
// and to StateFailed on error.
func RunStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := NewCanceledStageError(st.Name, ctx.Err())
			bs.fail(st.Name, se, StageResultCanceled)
			return se
		default:
		}

		slog.Debug("Stage started", logfields.BuildID(bs.Report.BuildID), logfields.Stage(string(st.Name)))

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		bs.Report.StageDurations[string(st.Name)] = dur
		bs.Recorder.ObserveStageDuration(string(st.Name), dur)

		if err != nil {
			se := classifyStageError(st.Name, err)
			result := StageResultFatal
			if se.Kind == StageErrorCanceled {
				result = StageResultCanceled
			}
			bs.fail(st.Name, se, result)
			return se
		}

		bs.Report.StageResults[string(st.Name)] = StageResultSuccess
		bs.Recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
		bs.setState(st.Next)
		slog.Debug("Stage complete",
			logfields.BuildID(bs.Report.BuildID),
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))
	}

	bs.setState(StateDone)
	return nil
}

func classifyStageError(stage StageName, err error) *StageError {
	var se *StageError
	if stdErrors.As(err, &se) {
		return se
	}
	if stdErrors.Is(err, context.Canceled) || stdErrors.Is(err, context.DeadlineExceeded) {
		return NewCanceledStageError(stage, err)
	}
	return NewFatalStageError(stage, err)
}

func (bs *BuildState) fail(stage StageName, se *StageError, result StageResult) {
	bs.Report.StageResults[string(stage)] = result
	bs.Report.FailedStage = string(stage)
	label := metrics.ResultFatal
	if result == StageResultCanceled {
		label = metrics.ResultCanceled
	}
	bs.Recorder.IncStageResult(string(stage), label)
	bs.setState(StateFailed)
	slog.Debug("Stage failed",
		logfields.BuildID(bs.Report.BuildID),
		logfields.Stage(string(stage)),
		logfields.Error(se))
}
