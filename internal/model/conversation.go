// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessages is the maximum number of messages kept in the transcript.
// When exceeded, the oldest messages are pruned.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the transcript. It is owned by the UI goroutine.
type Conversation struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Messages  []*Message `json:"messages"`

	// revision changes on every mutation.
	revision uint64
}

// NewConversation creates a new conversation with a generated ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage adds a message to the conversation.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.pruneOldMessages()
	c.touch()
}

// AddUserMessage adds a user message and returns it.
func (c *Conversation) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddAssistantMessage adds an empty streaming assistant message and returns it.
func (c *Conversation) AddAssistantMessage() *Message {
	msg := NewAssistantMessage()
	c.AddMessage(msg)
	return msg
}

// AddSystemMessage adds a system message and returns it.
func (c *Conversation) AddSystemMessage(content string) *Message {
	msg := NewSystemMessage(content)
	c.AddMessage(msg)
	return msg
}

// GetLastMessage returns the last message, or nil if empty.
func (c *Conversation) GetLastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// GetMessageByID finds a message by its ID.
func (c *Conversation) GetMessageByID(id string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// AppendTo appends a token to the streaming message with the given ID. It
// reports whether the message was found and streaming.
func (c *Conversation) AppendTo(id, token string) bool {
	msg := c.GetMessageByID(id)
	if msg == nil || !msg.IsStreaming {
		return false
	}
	msg.AppendToken(token)
	c.touch()
	return true
}

// Finalize completes the streaming message with the given ID.
func (c *Conversation) Finalize(id string) bool {
	msg := c.GetMessageByID(id)
	if msg == nil || !msg.IsStreaming {
		return false
	}
	msg.FinalizeStream()
	c.touch()
	return true
}

// ClearHistory removes every message.
func (c *Conversation) ClearHistory() {
	c.Messages = make([]*Message, 0)
	c.touch()
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Revision changes whenever the transcript does.
func (c *Conversation) Revision() uint64 {
	return c.revision
}

// IsStreaming reports whether any message is still streaming.
func (c *Conversation) IsStreaming() bool {
	last := c.GetLastMessage()
	return last != nil && last.IsStreaming
}

func (c *Conversation) touch() {
	c.revision++
	c.UpdatedAt = time.Now()
}

// pruneOldMessages keeps the transcript within MaxMessages.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	excess := len(c.Messages) - MaxMessages
	c.Messages = append(c.Messages[:0:0], c.Messages[excess:]...)
}
