package dispatch

import (
	"mergington-activities/internal/logger"
)

// DeleteButtonClass marks elements whose clicks signal an unregistration.
// The class is a selector hook only; it carries no styling here.
const DeleteButtonClass = "delete-btn"

// emailDataKey is the data-* attribute holding the participant's email.
const emailDataKey = "email"

// UnregisterClickHandler returns the handler for clicks on delete buttons.
// Clicks on elements without the marker class are ignored. On a match it
// reads the participant email off the target and emits one diagnostic line;
// a missing attribute flows through as an empty value rather than an error.
func UnregisterClickHandler(logger *logger.Logger) Handler {
	return func(event Event) {
		if !event.Target.HasClass(DeleteButtonClass) {
			return
		}

		email := event.Target.Data(emailDataKey)
		logger.Infof("Unregistering participant: %s", email)
	}
}
