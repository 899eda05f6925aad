package metrics

const (
	SyncRunsN = "serialtime_sync_runs_total"
	SyncRunsH = "The total number of synchronization attempts by outcome"

	SyncTargetLeadN = "serialtime_sync_target_lead_seconds"
	SyncTargetLeadH = "Distance from the scheduling anchor to the selected second boundary"

	SyncRemainingN = "serialtime_sync_remaining_seconds"
	SyncRemainingH = "Lead time left after the frame was written"

	SyncWakeLatenessN = "serialtime_sync_wake_lateness_seconds"
	SyncWakeLatenessH = "Difference between wake-up time and the target boundary"

	SyncTargetTimeN = "serialtime_sync_target_timestamp_seconds"
	SyncTargetTimeH = "Unix time of the last committed second boundary"

	OutcomeLabel = "outcome"
	OutcomeOK    = "ok"
)
