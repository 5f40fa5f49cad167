package msgformat

// MessageType is the severity a reporting layer assigns to a failed result.
type MessageType int

const (
	Error MessageType = iota
	Warn
)

func (t MessageType) String() string {
	switch t {
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	}
	return "UNKNOWN"
}

// ValidationMessage is what a reporting layer attaches to a source location.
// Location is opaque to this package and passed through untouched.
type ValidationMessage struct {
	Type     MessageType
	Location any
	Text     string
}

// NewMessage wraps a result into a message, using the detail text when
// useDetail is set and the summary otherwise.
func NewMessage(typ MessageType, location any, res Result, useDetail bool) ValidationMessage {
	text := res.Summary
	if useDetail {
		text = res.Detail
	}
	return ValidationMessage{
		Type:     typ,
		Location: location,
		Text:     text,
	}
}
