package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

// ResetTokenBytes gives 256 bits of entropy per token.
const ResetTokenBytes = 32

// KeyConversation is the Redis key holding a chat's in-progress conversation.
func KeyConversation(chatID string) string {
	return "conv:session:" + chatID
}

// GenToken returns n random bytes encoded as unpadded URL-safe base64.
func GenToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
