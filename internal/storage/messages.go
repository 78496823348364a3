// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chatguru/chatguru-tui/internal/model"
)

// SaveMessage inserts a message. Messages are immutable, so an existing
// id is an error.
func (s *Store) SaveMessage(ctx context.Context, msg model.Message) error {
	return saveMessage(ctx, s.db, msg)
}

func saveMessage(ctx context.Context, ex execer, msg model.Message) error {
	_, err := ex.ExecContext(ctx, `INSERT INTO messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.ChatID, msg.Text, boolInt(msg.IsUser), msg.Timestamp, nullString(msg.ImageURI))
	if err != nil {
		return fmt.Errorf("save message %s: %w", msg.ID, err)
	}
	return nil
}

// MessagesByChat returns the messages of a chat, oldest first. Equal
// timestamps keep insertion order.
func (s *Store) MessagesByChat(ctx context.Context, chatID string) ([]model.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE chat_id = ? ORDER BY timestamp ASC, rowid ASC`, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages of %s: %w", chatID, err)
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var (
			m      model.Message
			isUser int
			image  sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Text, &isUser, &m.Timestamp, &image); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.IsUser = isUser != 0
		m.ImageURI = image.String
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// CountMessages returns the number of messages in a chat.
func (s *Store) CountMessages(ctx context.Context, chatID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE chat_id = ?`, chatID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count messages of %s: %w", chatID, err)
	}
	return n, nil
}
