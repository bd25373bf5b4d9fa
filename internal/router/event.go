// Package router classifies inbound WhatsApp message events, parses the
// command prefix, and dispatches to the registered handler behind a single
// error boundary.
package router

import (
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

// Event is an immutable view of one received chat message, reduced to what
// command handlers need.
type Event struct {
	Chat    types.JID
	Sender  types.JID
	IsGroup bool
	FromMe  bool

	// Text is the display text: the first non-empty of plain body, extended
	// body, image caption, video caption.
	Text string

	// Mentions are the participant JIDs tagged in the message, if any.
	Mentions []types.JID

	Message *waProto.Message
}

// NewEvent builds an Event from a raw whatsmeow message event. It returns
// nil when the event carries no message payload.
func NewEvent(m *events.Message) *Event {
	if m == nil || m.Message == nil {
		return nil
	}
	return &Event{
		Chat:     m.Info.Chat,
		Sender:   m.Info.Sender,
		IsGroup:  m.Info.IsGroup,
		FromMe:   m.Info.IsFromMe,
		Text:     extractText(m.Message),
		Mentions: extractMentions(m.Message),
		Message:  m.Message,
	}
}

func extractText(msg *waProto.Message) string {
	if msg == nil {
		return ""
	}
	if msg.Conversation != nil && *msg.Conversation != "" {
		return *msg.Conversation
	}
	if ext := msg.ExtendedTextMessage; ext != nil && ext.Text != nil && *ext.Text != "" {
		return *ext.Text
	}
	if img := msg.ImageMessage; img != nil && img.Caption != nil && *img.Caption != "" {
		return *img.Caption
	}
	if vid := msg.VideoMessage; vid != nil && vid.Caption != nil && *vid.Caption != "" {
		return *vid.Caption
	}
	return ""
}

func extractMentions(msg *waProto.Message) []types.JID {
	ctx := contextInfo(msg)
	if ctx == nil || len(ctx.MentionedJID) == 0 {
		return nil
	}
	mentions := make([]types.JID, 0, len(ctx.MentionedJID))
	for _, raw := range ctx.MentionedJID {
		jid, err := types.ParseJID(raw)
		if err != nil {
			continue
		}
		mentions = append(mentions, jid)
	}
	return mentions
}

func contextInfo(msg *waProto.Message) *waProto.ContextInfo {
	if msg == nil || msg.ExtendedTextMessage == nil {
		return nil
	}
	return msg.ExtendedTextMessage.ContextInfo
}

// Quoted returns the message this event replies to, or nil.
func (e *Event) Quoted() *waProto.Message {
	ctx := contextInfo(e.Message)
	if ctx == nil {
		return nil
	}
	return ctx.QuotedMessage
}

// MediaMessage returns the message to fetch media from: the quoted message
// when the event is a reply, otherwise the event's own message.
func (e *Event) MediaMessage() *waProto.Message {
	if q := e.Quoted(); q != nil {
		return q
	}
	return e.Message
}

// HasImage reports whether the event's own or quoted message is an image.
func (e *Event) HasImage() bool {
	if q := e.Quoted(); q != nil && q.ImageMessage != nil {
		return true
	}
	return e.Message.ImageMessage != nil
}

// HasSticker reports whether the event's own or quoted message is a sticker.
func (e *Event) HasSticker() bool {
	if q := e.Quoted(); q != nil && q.StickerMessage != nil {
		return true
	}
	return e.Message.StickerMessage != nil
}

// HasAudioOrVideo reports whether the event's own or quoted message carries
// an audio or video attachment.
func (e *Event) HasAudioOrVideo() bool {
	if q := e.Quoted(); q != nil && (q.AudioMessage != nil || q.VideoMessage != nil) {
		return true
	}
	return e.Message.AudioMessage != nil || e.Message.VideoMessage != nil
}
