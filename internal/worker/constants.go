package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job.
const LogMsgWorkerJobFailed = "Worker job failed"

// LogMsgStaminaRegenCompleted is logged after a stamina regeneration
// sweep finishes.
const LogMsgStaminaRegenCompleted = "Stamina regeneration completed"
