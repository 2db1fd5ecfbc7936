package notifications

// Status is the conclusion of the workflow run being reported on.
// Values outside the known set are accepted and styled as neutral.
type Status string

const (
	Success        Status = "success"
	Failure        Status = "failure"
	Neutral        Status = "neutral"
	Cancelled      Status = "cancelled"
	Skipped        Status = "skipped"
	TimedOut       Status = "timed_out"
	ActionRequired Status = "action_required"
)

const (
	green  = "#2ea350"
	red    = "#d40200"
	yellow = "#e09c31"
	gray   = "#808080"
)

// cancel is a custom emoji, it has to be uploaded to the workspace
const cancelEmoji = ":cancel:"

func (s Status) Emoji() string {
	switch s {
	case Success:
		return ":heavy_check_mark:"
	case Failure, TimedOut:
		return ":x:"
	case Cancelled, Skipped:
		return cancelEmoji
	case ActionRequired:
		return ":exclamation:"
	default:
		return ":black_medium_square:"
	}
}

func (s Status) Text() string {
	switch s {
	case Success:
		return "was *successful*!"
	case Failure:
		return "*failed*!"
	case Cancelled:
		return "was *cancelled*!"
	case Skipped:
		return "was *skipped*!"
	case TimedOut:
		return "*timed out*!"
	case ActionRequired:
		return "*requires action*!"
	default:
		return "finished."
	}
}

func (s Status) Color() string {
	switch s {
	case Success:
		return green
	case Failure, TimedOut:
		return red
	case ActionRequired:
		return yellow
	default:
		return gray
	}
}
