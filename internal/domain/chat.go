package domain

import "time"

// Chat is a conversation between a tool's owner and an interested
// consumer, scoped to one tool. At most one chat exists per
// (owner, consumer, tool) triple; starting it again returns the
// existing one.
type Chat struct {
	ID         int32     `json:"id"`
	OwnerID    int32     `json:"owner_id"`
	ConsumerID int32     `json:"consumer_id"`
	ToolID     int32     `json:"tool_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Participant reports whether userID is one of the two chat members.
func (c *Chat) Participant(userID int32) bool {
	return c.OwnerID == userID || c.ConsumerID == userID
}

// OtherParty returns the chat member that is not userID.
func (c *Chat) OtherParty(userID int32) int32 {
	if c.OwnerID == userID {
		return c.ConsumerID
	}
	return c.OwnerID
}

// Message is a single chat entry. A nil SenderID marks a system
// message.
type Message struct {
	ID        int32     `json:"id"`
	ChatID    int32     `json:"chat_id"`
	SenderID  *int32    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
