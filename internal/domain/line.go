package domain

import "time"

// LineEventType represents the type of webhook event from LINE
type LineEventType string

const (
	// LineEventTypeMessage - Message event
	LineEventTypeMessage LineEventType = "message"
	// LineEventTypeFollow - Follow event
	LineEventTypeFollow LineEventType = "follow"
	// LineEventTypeUnfollow - Unfollow event
	LineEventTypeUnfollow LineEventType = "unfollow"
	// LineEventTypePostback - Postback event
	LineEventTypePostback LineEventType = "postback"
)

// LineMessageType represents the type of message
type LineMessageType string

const (
	// LineMessageTypeText - Text message
	LineMessageTypeText LineMessageType = "text"
	// LineMessageTypeImage - Image message
	LineMessageTypeImage LineMessageType = "image"
	// LineMessageTypeSticker - Sticker message
	LineMessageTypeSticker LineMessageType = "sticker"
	// LineMessageTypeOther - Any message content the gateway does not read
	LineMessageTypeOther LineMessageType = "other"
)

// LineSourceType represents the source type of the event
type LineSourceType string

const (
	// LineSourceTypeUser - User source
	LineSourceTypeUser LineSourceType = "user"
	// LineSourceTypeGroup - Group source
	LineSourceTypeGroup LineSourceType = "group"
	// LineSourceTypeRoom - Room source
	LineSourceTypeRoom LineSourceType = "room"
)

// LineSource represents the source of the event
type LineSource struct {
	Type    LineSourceType
	UserID  string
	GroupID string
	RoomID  string
}

// LineEvent is the closed set of inbound LINE events. Only the variants in
// this file implement it, so dispatch is a type switch over them.
type LineEvent interface {
	EventType() LineEventType
	EventMeta() LineEventMeta
	lineEvent()
}

// LineEventMeta carries the attributes shared by every event variant.
// ReplyToken is single use and empty for events LINE does not allow replies to.
type LineEventMeta struct {
	ID         string
	Timestamp  time.Time
	Source     LineSource
	ReplyToken string
}

// EventMeta returns the shared attributes
func (m LineEventMeta) EventMeta() LineEventMeta { return m }

func (LineEventMeta) lineEvent() {}

// LinePostbackEvent - user tapped an action that carries postback data
type LinePostbackEvent struct {
	LineEventMeta
	Data   string
	Params map[string]string
}

// EventType func
func (LinePostbackEvent) EventType() LineEventType { return LineEventTypePostback }

// LineMessageEvent - user sent a message
type LineMessageEvent struct {
	LineEventMeta
	Message LineMessage
}

// EventType func
func (LineMessageEvent) EventType() LineEventType { return LineEventTypeMessage }

// LineFollowEvent - user added the account as a friend
type LineFollowEvent struct {
	LineEventMeta
}

// EventType func
func (LineFollowEvent) EventType() LineEventType { return LineEventTypeFollow }

// LineUnfollowEvent - user blocked the account
type LineUnfollowEvent struct {
	LineEventMeta
}

// EventType func
func (LineUnfollowEvent) EventType() LineEventType { return LineEventTypeUnfollow }

// LineUnsupportedEvent - any other event kind, kept only for logging
type LineUnsupportedEvent struct {
	LineEventMeta
	Kind string
}

// EventType func
func (e LineUnsupportedEvent) EventType() LineEventType { return LineEventType(e.Kind) }

// LineMessage represents a message from LINE
type LineMessage struct {
	ID        string
	Type      LineMessageType
	Text      string
	PackageID string // For sticker
	StickerID string // For sticker
}

// ReplyMode decides what the gateway does with a user postback
type ReplyMode string

const (
	// ReplyModeStub logs the postback; wallet and balance lookups are not built yet
	ReplyModeStub ReplyMode = "stub"
	// ReplyModeEcho replies to the postback with the sender's user ID
	ReplyModeEcho ReplyMode = "echo"
)
