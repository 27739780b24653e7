// Package message defines the repomon notification message exchanged
// with the remote monitor.
//
// The relay core treats Message as an opaque serializable value: it
// constructs one per console input chunk and prints the display form
// of each one received, but never branches on its fields.
package message

import "fmt"

// Category classifies a notification relative to the remote branch.
type Category uint8

const (
	// Info is a free-form informational message.
	Info Category = iota
	// Ahead means the local branch is ahead of its remote.
	Ahead
	// Behind means the local branch is behind its remote.
	Behind
	// UpToDate means local and remote are in sync.
	UpToDate
)

// String returns the lower-case category label.
func (c Category) String() string {
	switch c {
	case Info:
		return "info"
	case Ahead:
		return "ahead"
	case Behind:
		return "behind"
	case UpToDate:
		return "up-to-date"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// Message is one repo-monitor notification.  Immutable by convention:
// it is created once and consumed exactly once.
//
// Integer CBOR keys keep the wire form compact and deterministic.
type Message struct {
	Category Category `cbor:"1,keyasint"`
	Repo     string   `cbor:"2,keyasint,omitempty"`
	Branch   string   `cbor:"3,keyasint,omitempty"`
	Count    int      `cbor:"4,keyasint,omitempty"`
	Text     string   `cbor:"5,keyasint,omitempty"`
}

// NewInfo builds an informational message carrying raw text.
func NewInfo(text string) Message {
	return Message{Category: Info, Text: text}
}

// Display returns the human-readable form written to the console.
func (m Message) Display() string {
	switch m.Category {
	case Ahead, Behind:
		return fmt.Sprintf("%s/%s: %d commits %s", m.Repo, m.Branch, m.Count, m.Category)
	case UpToDate:
		return fmt.Sprintf("%s/%s: up-to-date", m.Repo, m.Branch)
	default:
		if m.Repo != "" {
			return fmt.Sprintf("%s: %s", m.Repo, m.Text)
		}
		return m.Text
	}
}
