// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

// Schema creates the chat tables. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS chats (
    id                TEXT PRIMARY KEY,
    title             TEXT NOT NULL,
    screenshot_uri    TEXT,
    post_text         TEXT,
    last_message      TEXT NOT NULL DEFAULT '',
    timestamp         INTEGER NOT NULL,
    is_favorite       INTEGER NOT NULL DEFAULT 0,
    initial_image_uri TEXT,
    selected_language TEXT NOT NULL DEFAULT 'ENGLISH',
    selected_tones    TEXT NOT NULL DEFAULT 'FRIEND'
);

CREATE INDEX IF NOT EXISTS idx_chats_favorite ON chats(is_favorite, timestamp);
CREATE INDEX IF NOT EXISTS idx_chats_timestamp ON chats(timestamp);

CREATE TABLE IF NOT EXISTS messages (
    id        TEXT PRIMARY KEY,
    chat_id   TEXT NOT NULL,
    text      TEXT NOT NULL,
    is_user   INTEGER NOT NULL,
    timestamp INTEGER NOT NULL,
    image_uri TEXT
);

CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id, timestamp);
`

const chatColumns = `id, title, screenshot_uri, post_text, last_message, timestamp,
    is_favorite, initial_image_uri, selected_language, selected_tones`

const messageColumns = `id, chat_id, text, is_user, timestamp, image_uri`
