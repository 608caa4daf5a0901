package domain

// PromptKind identifies which recurring prompt a user reply answers.
type PromptKind string

const (
	// PromptDaily asks for the planned profit of the current day.
	PromptDaily PromptKind = "daily"
	// PromptMonthly asks for the actual profit of the month being closed.
	PromptMonthly PromptKind = "monthly"
)

// MaxAmount is the upper bound for a submitted amount, in whole currency units.
const MaxAmount = 1_000_000_000

// Task names used by the recurring scheduler. Each name owns exactly one
// pending timer in steady state.
const (
	TaskDailyPrompt   = "daily_prompt"
	TaskDailyDigest   = "daily_digest"
	TaskFactRequest   = "monthly_fact_request"
	TaskMonthlyReport = "monthly_report"
)
