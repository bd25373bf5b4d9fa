package whatsapp

import (
	"context"
	"fmt"

	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/types"
	"google.golang.org/protobuf/proto"
)

// ParticipantChange is a group-membership mutation action.
type ParticipantChange string

const (
	ParticipantAdd     ParticipantChange = "add"
	ParticipantRemove  ParticipantChange = "remove"
	ParticipantPromote ParticipantChange = "promote"
	ParticipantDemote  ParticipantChange = "demote"
)

// Participant is one group member with their admin rank.
type Participant struct {
	JID     types.JID
	IsAdmin bool
}

// Messenger is the seam between command handlers and the WhatsApp transport.
// Handlers only see this interface, so tests can run against a fake.
type Messenger interface {
	SendText(ctx context.Context, chat types.JID, text string) error
	SendImage(ctx context.Context, chat types.JID, data []byte, mimetype, caption string) error
	SendSticker(ctx context.Context, chat types.JID, webp []byte) error
	SendAudio(ctx context.Context, chat types.JID, data []byte, mimetype string, ptt bool) error
	SendVideo(ctx context.Context, chat types.JID, data []byte, caption string) error
	SendDocument(ctx context.Context, chat types.JID, data []byte, mimetype, filename string) error

	DownloadMedia(ctx context.Context, msg *waProto.Message) ([]byte, error)

	GroupParticipants(ctx context.Context, chat types.JID) ([]Participant, error)
	UpdateParticipants(ctx context.Context, chat types.JID, users []types.JID, change ParticipantChange) error

	OwnJID() types.JID
}

type clientMessenger struct {
	client *whatsmeow.Client
}

// NewMessenger wraps a whatsmeow client in the Messenger interface.
func NewMessenger(client *whatsmeow.Client) Messenger {
	return &clientMessenger{client: client}
}

func (m *clientMessenger) SendText(ctx context.Context, chat types.JID, text string) error {
	_, err := m.client.SendMessage(ctx, chat, &waProto.Message{
		Conversation: proto.String(text),
	})
	return err
}

func (m *clientMessenger) SendImage(ctx context.Context, chat types.JID, data []byte, mimetype, caption string) error {
	up, err := m.client.Upload(ctx, data, whatsmeow.MediaImage)
	if err != nil {
		return fmt.Errorf("image upload failed: %w", err)
	}
	img := &waProto.ImageMessage{
		URL:           proto.String(up.URL),
		DirectPath:    proto.String(up.DirectPath),
		MediaKey:      up.MediaKey,
		FileEncSHA256: up.FileEncSHA256,
		FileSHA256:    up.FileSHA256,
		FileLength:    proto.Uint64(uint64(len(data))),
		Mimetype:      proto.String(mimetype),
	}
	if caption != "" {
		img.Caption = proto.String(caption)
	}
	_, err = m.client.SendMessage(ctx, chat, &waProto.Message{ImageMessage: img})
	return err
}

func (m *clientMessenger) SendSticker(ctx context.Context, chat types.JID, webp []byte) error {
	up, err := m.client.Upload(ctx, webp, whatsmeow.MediaImage)
	if err != nil {
		return fmt.Errorf("sticker upload failed: %w", err)
	}
	_, err = m.client.SendMessage(ctx, chat, &waProto.Message{
		StickerMessage: &waProto.StickerMessage{
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			MediaKey:      up.MediaKey,
			FileEncSHA256: up.FileEncSHA256,
			FileSHA256:    up.FileSHA256,
			FileLength:    proto.Uint64(uint64(len(webp))),
			Mimetype:      proto.String("image/webp"),
		},
	})
	return err
}

func (m *clientMessenger) SendAudio(ctx context.Context, chat types.JID, data []byte, mimetype string, ptt bool) error {
	up, err := m.client.Upload(ctx, data, whatsmeow.MediaAudio)
	if err != nil {
		return fmt.Errorf("audio upload failed: %w", err)
	}
	_, err = m.client.SendMessage(ctx, chat, &waProto.Message{
		AudioMessage: &waProto.AudioMessage{
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			MediaKey:      up.MediaKey,
			FileEncSHA256: up.FileEncSHA256,
			FileSHA256:    up.FileSHA256,
			FileLength:    proto.Uint64(uint64(len(data))),
			Mimetype:      proto.String(mimetype),
			PTT:           proto.Bool(ptt),
		},
	})
	return err
}

func (m *clientMessenger) SendVideo(ctx context.Context, chat types.JID, data []byte, caption string) error {
	up, err := m.client.Upload(ctx, data, whatsmeow.MediaVideo)
	if err != nil {
		return fmt.Errorf("video upload failed: %w", err)
	}
	vid := &waProto.VideoMessage{
		URL:           proto.String(up.URL),
		DirectPath:    proto.String(up.DirectPath),
		MediaKey:      up.MediaKey,
		FileEncSHA256: up.FileEncSHA256,
		FileSHA256:    up.FileSHA256,
		FileLength:    proto.Uint64(uint64(len(data))),
		Mimetype:      proto.String("video/mp4"),
	}
	if caption != "" {
		vid.Caption = proto.String(caption)
	}
	_, err = m.client.SendMessage(ctx, chat, &waProto.Message{VideoMessage: vid})
	return err
}

func (m *clientMessenger) SendDocument(ctx context.Context, chat types.JID, data []byte, mimetype, filename string) error {
	up, err := m.client.Upload(ctx, data, whatsmeow.MediaDocument)
	if err != nil {
		return fmt.Errorf("document upload failed: %w", err)
	}
	_, err = m.client.SendMessage(ctx, chat, &waProto.Message{
		DocumentMessage: &waProto.DocumentMessage{
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			MediaKey:      up.MediaKey,
			FileEncSHA256: up.FileEncSHA256,
			FileSHA256:    up.FileSHA256,
			FileLength:    proto.Uint64(uint64(len(data))),
			Mimetype:      proto.String(mimetype),
			FileName:      proto.String(filename),
		},
	})
	return err
}

// DownloadMedia fetches the bytes of the first downloadable part of msg.
func (m *clientMessenger) DownloadMedia(ctx context.Context, msg *waProto.Message) ([]byte, error) {
	dl := downloadable(msg)
	if dl == nil {
		return nil, fmt.Errorf("message carries no downloadable media")
	}
	return m.client.Download(ctx, dl)
}

func downloadable(msg *waProto.Message) whatsmeow.DownloadableMessage {
	switch {
	case msg == nil:
		return nil
	case msg.ImageMessage != nil:
		return msg.ImageMessage
	case msg.VideoMessage != nil:
		return msg.VideoMessage
	case msg.AudioMessage != nil:
		return msg.AudioMessage
	case msg.StickerMessage != nil:
		return msg.StickerMessage
	case msg.DocumentMessage != nil:
		return msg.DocumentMessage
	default:
		return nil
	}
}

func (m *clientMessenger) GroupParticipants(ctx context.Context, chat types.JID) ([]Participant, error) {
	info, err := m.client.GetGroupInfo(ctx, chat)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group metadata: %w", err)
	}
	participants := make([]Participant, 0, len(info.Participants))
	for _, p := range info.Participants {
		participants = append(participants, Participant{
			JID:     p.JID,
			IsAdmin: p.IsAdmin || p.IsSuperAdmin,
		})
	}
	return participants, nil
}

func (m *clientMessenger) UpdateParticipants(ctx context.Context, chat types.JID, users []types.JID, change ParticipantChange) error {
	var waChange whatsmeow.ParticipantChange
	switch change {
	case ParticipantAdd:
		waChange = whatsmeow.ParticipantChangeAdd
	case ParticipantRemove:
		waChange = whatsmeow.ParticipantChangeRemove
	case ParticipantPromote:
		waChange = whatsmeow.ParticipantChangePromote
	case ParticipantDemote:
		waChange = whatsmeow.ParticipantChangeDemote
	default:
		return fmt.Errorf("unknown participant change %q", change)
	}
	_, err := m.client.UpdateGroupParticipants(ctx, chat, users, waChange)
	return err
}

func (m *clientMessenger) OwnJID() types.JID {
	if m.client.Store.ID == nil {
		return types.EmptyJID
	}
	return *m.client.Store.ID
}
