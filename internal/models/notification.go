package models

// Channel selects the notification transport for a dispatch call.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// Valid reports whether the channel is one the dispatcher knows.
func (c Channel) Valid() bool {
	return c == ChannelEmail || c == ChannelWhatsApp
}

// ReportPayload is the channel-agnostic projection of a Student handed to the
// channel adapters. ChapterCompletion is preformatted as "X/Y".
type ReportPayload struct {
	Name              string
	Email             string
	Phone             string
	Status            Status
	ChapterCompletion string
	Marks             int
	MaxMarks          int
	Skipped           int
	OCS1Status        string
	OCS2Status        string
	OCS1Date          string
	OCS2Date          string
}

// RecipientOutcome records how a single send settled.
type RecipientOutcome struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// DispatchResult aggregates one dispatch call. Per-recipient failures are
// captured in Outcomes without failing the call.
type DispatchResult struct {
	Channel   Channel            `json:"channel"`
	Requested int                `json:"requested"`
	Attempted int                `json:"attempted"`
	Sent      int                `json:"sent"`
	Failed    int                `json:"failed"`
	Outcomes  []RecipientOutcome `json:"outcomes"`
}
