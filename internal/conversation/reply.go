package conversation

import (
	"context"

	"github.com/oksasatya/superstar-bot/internal/application"
	"github.com/oksasatya/superstar-bot/internal/domain/entity"
)

// Reply describes what to send back for one turn. The transport renders it.
type Reply struct {
	Text     string
	Keyboard [][]string
	// WebAppURL, when set, adds a button opening the web app.
	WebAppURL string
	// DeleteInbound asks the transport to delete the user's message (best effort).
	DeleteInbound bool
	// Silent means nothing is sent.
	Silent bool
	// Err is the classified failure behind this reply, if any. It is for
	// logging and never shown to the user.
	Err error
}

// Event is one inbound chat message.
type Event struct {
	ChatID    int64
	MessageID int
	Text      string
}

// Transport delivers replies to a chat.
type Transport interface {
	Deliver(ctx context.Context, chatID int64, r Reply) error
	// DeleteMessage is best effort; callers ignore its error.
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// Directory is the user directory facade the dialogue depends on.
type Directory interface {
	ExistsByPhone(ctx context.Context, phone string) (*entity.User, error)
	ExistsByChatIdentity(ctx context.Context, chatID int64) (*entity.User, error)
	Create(ctx context.Context, d entity.RegistrationDraft, chatID int64, passwordHash string) (string, error)
	RebindChatIdentity(ctx context.Context, phone string, chatID *int64) error
	GetRecentOrders(ctx context.Context, userID string, limit int) ([]entity.Order, error)
}

// Credentials hashes and verifies passwords and starts password recovery.
type Credentials interface {
	Hash(password string) (string, error)
	Verify(ctx context.Context, phone, password string) (*entity.User, error)
	RequestReset(ctx context.Context, phone string) (*application.ResetRequest, error)
}

var (
	_ Directory   = (*application.DirectoryService)(nil)
	_ Credentials = (*application.CredentialService)(nil)
)
