package roll

// List query bounds
const (
	DefaultListLimit = 50
	MinListLimit     = 1
	MaxListLimit     = 200
)

// CreatedAtLayout is the human-readable rendering of the insert instant,
// stored alongside the epoch timestamp.
const CreatedAtLayout = "2006-01-02 15:04:05"

// Context payload field keys for stat-block rolls
const (
	ContextKeyMethod = "method"
	ContextKeyStats  = "stats"
	ContextKeyTotals = "totals"
)

// Log messages
const (
	LogMsgCampaignResolveFailed = "Failed to resolve active campaign, using default"
	LogMsgRollCreated           = "Roll event recorded"
	LogMsgRollsCleared          = "Roll feed cleared"
	LogMsgCleanupJobStarting    = "Starting roll retention job"
	LogMsgCleanupJobFailed      = "Roll retention job failed"
	LogMsgCleanupJobCompleted   = "Roll retention job completed"
)
