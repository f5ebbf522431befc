package constants

// MessageStyle is the tone used for reminder messages
type MessageStyle string

const (
	MessageStyleEncourage MessageStyle = "encourage"
	MessageStyleHarsh     MessageStyle = "harsh"
	MessageStylePolite    MessageStyle = "polite"
	MessageStyleWitty     MessageStyle = "witty"

	// Default reminder window and cadence for newly submitted plans
	DefaultReminderStartHour   = 9
	DefaultReminderStartMinute = 0
	DefaultReminderEndHour     = 18
	DefaultReminderEndMinute   = 0
	DefaultReminderInterval    = 1
	DefaultReminderStyle       = MessageStyleEncourage

	MinReminderIntervalHours = 1
	MaxReminderIntervalHours = 3
)

// MessageStyles lists every accepted reminder message style
var MessageStyles = []MessageStyle{
	MessageStyleEncourage,
	MessageStyleHarsh,
	MessageStylePolite,
	MessageStyleWitty,
}
