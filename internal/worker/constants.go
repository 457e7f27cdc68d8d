package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for retention worker operations
const (
	LogMsgRetentionWorkerStarting = "Starting retention worker"
	LogMsgRetentionWorkerShutdown = "Retention worker shutdown signal received"
	LogMsgRetentionSweepEnqueued  = "Retention sweep enqueued"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
