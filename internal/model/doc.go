// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the transcript shown above the composer.
//
// # Key Types
//
//   - Conversation: ordered messages with a revision counter for render caching
//   - Message: one message with role, content and streaming state
//   - Role: message role enumeration (user, assistant, system)
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.AddUserMessage("Hello!")
//	reply := conv.AddAssistantMessage()
//	reply.AppendToken("Hi")
//	conv.FinalizeLast()
package model
