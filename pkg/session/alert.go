package session

// AlertLevel classifies a user-visible notification.
type AlertLevel string

const (
	AlertSuccess AlertLevel = "success"
	AlertInfo    AlertLevel = "info"
	AlertError   AlertLevel = "error"
)

// Alert is a notification queued for the editing host.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

// SavedMessage is the alert shown after a successful submit.
const SavedMessage = "Saved!"
