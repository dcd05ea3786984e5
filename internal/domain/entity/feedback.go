package entity

// FeedbackStatus tracks whether the user has been asked for feedback.
type FeedbackStatus string

const (
	FeedbackEligible FeedbackStatus = "eligible"
	FeedbackHonored  FeedbackStatus = "honored"
)

// FeedbackProgress is a signal emitted by the embedded feedback form.
type FeedbackProgress string

const (
	FeedbackStarted   FeedbackProgress = "started"
	FeedbackCompleted FeedbackProgress = "completed"
)

// FeedbackData is the persisted feedback state.
type FeedbackData struct {
	Status    FeedbackStatus `json:"status"`
	Timestamp int64          `json:"timestamp,omitempty"` // unix millis
	Rating    int            `json:"rating,omitempty"`
}

// ShowFooterClass is the overlay class that reveals the feedback footer.
const ShowFooterClass = "show-footer"

// FeedbackEventName is the telemetry event emitted for feedback interactions.
const FeedbackEventName = "user_feedback"
