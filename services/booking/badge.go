package booking

import "servicehub/models"

// Tone is the visual weight of a status badge.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneWarning Tone = "warning"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
)

// Badge is how a status is shown in every role's views.
type Badge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

var badges = map[models.BookingStatus]Badge{
	models.StatusCreated:    {Label: "Booked", Tone: ToneInfo},
	models.StatusAssigned:   {Label: "Assigned", Tone: ToneWarning},
	models.StatusInProgress: {Label: "In Progress", Tone: ToneWarning},
	models.StatusCompleted:  {Label: "Completed", Tone: ToneSuccess},
	models.StatusCancelled:  {Label: "Cancelled", Tone: ToneDanger},
}

// BadgeFor returns the badge for status. Unrecognised values render as a
// neutral badge showing the raw value, or "Unknown" when empty.
func BadgeFor(status models.BookingStatus) Badge {
	if b, ok := badges[status]; ok {
		return b
	}
	label := string(status)
	if label == "" {
		label = "Unknown"
	}
	return Badge{Label: label, Tone: ToneNeutral}
}
