package consumer

// MessageParser defines the interface for parsing raw message bytes into
// incoming events
type MessageParser interface {
	Parse(body []byte) (*IncomingEvent, error)
}
