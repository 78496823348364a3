// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chatguru/chatguru-tui/internal/model"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanChat(row rowScanner) (model.Chat, error) {
	var (
		c                         model.Chat
		screenshot, post, initial sql.NullString
		favorite                  int
	)
	err := row.Scan(&c.ID, &c.Title, &screenshot, &post, &c.LastMessage, &c.Timestamp,
		&favorite, &initial, &c.SelectedLanguage, &c.SelectedTones)
	if err != nil {
		return model.Chat{}, err
	}
	c.ScreenshotURI = screenshot.String
	c.PostText = post.String
	c.InitialImageURI = initial.String
	c.IsFavorite = favorite != 0
	return c, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const upsertChat = `
		INSERT INTO chats (` + chatColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			screenshot_uri = excluded.screenshot_uri,
			post_text = excluded.post_text,
			last_message = excluded.last_message,
			timestamp = excluded.timestamp,
			is_favorite = excluded.is_favorite,
			initial_image_uri = excluded.initial_image_uri,
			selected_language = excluded.selected_language,
			selected_tones = excluded.selected_tones`

func saveChat(ctx context.Context, ex execer, chat model.Chat) error {
	_, err := ex.ExecContext(ctx, upsertChat,
		chat.ID, chat.Title, nullString(chat.ScreenshotURI), nullString(chat.PostText),
		chat.LastMessage, chat.Timestamp, boolInt(chat.IsFavorite),
		nullString(chat.InitialImageURI), chat.SelectedLanguage, chat.SelectedTones)
	if err != nil {
		return fmt.Errorf("save chat %s: %w", chat.ID, err)
	}
	return nil
}

// SaveChat inserts chat, replacing any existing row with the same id.
func (s *Store) SaveChat(ctx context.Context, chat model.Chat) error {
	return saveChat(ctx, s.db, chat)
}

// CreateChat stores a new chat together with its first messages in one
// transaction. Either all rows are written or none are.
func (s *Store) CreateChat(ctx context.Context, chat model.Chat, msgs []model.Message) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := saveChat(ctx, tx, chat); err != nil {
			return err
		}
		for _, m := range msgs {
			if m.ChatID != chat.ID {
				return fmt.Errorf("message %s belongs to chat %q, not %s", m.ID, m.ChatID, chat.ID)
			}
			if err := saveMessage(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateChat overwrites an existing chat row.
func (s *Store) UpdateChat(ctx context.Context, chat model.Chat) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE chats SET
			title = ?, screenshot_uri = ?, post_text = ?, last_message = ?,
			timestamp = ?, is_favorite = ?, initial_image_uri = ?,
			selected_language = ?, selected_tones = ?
		WHERE id = ?`,
		chat.Title, nullString(chat.ScreenshotURI), nullString(chat.PostText),
		chat.LastMessage, chat.Timestamp, boolInt(chat.IsFavorite),
		nullString(chat.InitialImageURI), chat.SelectedLanguage, chat.SelectedTones,
		chat.ID)
	if err != nil {
		return fmt.Errorf("update chat %s: %w", chat.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrChatNotFound, chat.ID)
	}
	return nil
}

// GetChat returns the chat with id, or ErrChatNotFound.
func (s *Store) GetChat(ctx context.Context, id string) (model.Chat, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+chatColumns+` FROM chats WHERE id = ?`, id)
	c, err := scanChat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Chat{}, fmt.Errorf("%w: %s", ErrChatNotFound, id)
	}
	if err != nil {
		return model.Chat{}, fmt.Errorf("get chat %s: %w", id, err)
	}
	return c, nil
}

// ListChats returns every chat, newest first.
func (s *Store) ListChats(ctx context.Context) ([]model.Chat, error) {
	return s.queryChats(ctx, `SELECT `+chatColumns+` FROM chats ORDER BY timestamp DESC, rowid DESC`)
}

// ListFavoriteChats returns favourite chats, newest first.
func (s *Store) ListFavoriteChats(ctx context.Context) ([]model.Chat, error) {
	return s.queryChats(ctx, `SELECT `+chatColumns+` FROM chats WHERE is_favorite = 1 ORDER BY timestamp DESC, rowid DESC`)
}

func (s *Store) queryChats(ctx context.Context, query string, args ...any) ([]model.Chat, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var chats []model.Chat
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// DeleteChat removes a chat and all of its messages. Deleting a missing
// chat is not an error.
func (s *Store) DeleteChat(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE chat_id = ?`, id); err != nil {
			return fmt.Errorf("delete messages of %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete chat %s: %w", id, err)
		}
		return nil
	})
}

// DeleteAllChats removes every chat and message.
func (s *Store) DeleteAllChats(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
			return fmt.Errorf("delete all messages: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM chats`); err != nil {
			return fmt.Errorf("delete all chats: %w", err)
		}
		return nil
	})
}

// CountChats returns the number of stored chats.
func (s *Store) CountChats(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chats`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chats: %w", err)
	}
	return n, nil
}
