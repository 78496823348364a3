// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/chatguru/chatguru-tui/internal/cloud"
	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/throttle"
)

const (
	// HistoryTurns is how many turns a text continuation carries.
	HistoryTurns = 10

	// ImageContextTurns is how many turns are inlined when a reply
	// carries an image.
	ImageContextTurns = 6

	messageNotFound = "Message not found"
)

// GenerateInput starts a new chat. Either ImageRef or Text may be empty.
type GenerateInput struct {
	ImageRef string
	Text     string
	Tones    []model.Tone
	Language model.Language
}

// ContinueInput is a user reply in an existing chat.
type ContinueInput struct {
	ChatID   string
	Reply    string
	ImageRef string
	Language model.Language
}

// RegenerateInput identifies the AI message to answer again.
type RegenerateInput struct {
	ChatID    string
	MessageID string
	Language  model.Language
}

// Reply is the outcome of a successful flow.
type Reply struct {
	ChatID  string
	Comment string
}

// =============================================================================
// GENERATE
// =============================================================================

// Generate requests a first comment and, on success, creates the chat
// with its messages and makes it current. Nothing is stored on failure.
func (o *Orchestrator) Generate(ctx context.Context, in GenerateInput) (Reply, error) {
	o.publish(LoadingState())

	lang := normalizeLanguage(in.Language)
	tones := normalizeTones(in.Tones)

	o.mu.Lock()
	o.session.language = lang
	o.session.tones = tones
	o.session.last = &GenerationParams{
		ImageRef: in.ImageRef,
		Text:     in.Text,
		Tones:    append([]model.Tone(nil), tones...),
	}
	o.session.retryAttempt = 0
	o.mu.Unlock()

	profile := o.Profile()
	comment, err := o.requestComment(ctx, in.ImageRef, cloud.OptionalText(in.Text), tones, lang, profile)
	if err != nil {
		return Reply{}, o.fail("generate", err)
	}

	hasImage := in.ImageRef != ""
	chatID := o.newID()
	chat := model.Chat{
		ID:               chatID,
		Title:            model.DeriveTitle(in.Text, comment, hasImage),
		ScreenshotURI:    in.ImageRef,
		PostText:         in.Text,
		LastMessage:      comment,
		Timestamp:        o.millis(),
		InitialImageURI:  in.ImageRef,
		SelectedLanguage: lang.String(),
		SelectedTones:    model.JoinToneNames(tones),
	}

	var msgs []model.Message
	if hasImage || strings.TrimSpace(in.Text) != "" {
		text := in.Text
		if strings.TrimSpace(text) == "" {
			text = model.ImagePlaceholder
		}
		msgs = append(msgs, model.Message{
			ID:        o.newID(),
			ChatID:    chatID,
			Text:      text,
			IsUser:    true,
			Timestamp: o.millis(),
			ImageURI:  in.ImageRef,
		})
	}
	msgs = append(msgs, o.aiMessage(chatID, comment))

	if err := o.chats.CreateChat(ctx, chat, msgs); err != nil {
		return Reply{}, o.fail("generate", err)
	}

	o.mu.Lock()
	o.session.chatID = chatID
	o.mu.Unlock()

	o.publish(SuccessState(comment, chatID))
	return Reply{ChatID: chatID, Comment: comment}, nil
}

// =============================================================================
// CONTINUE
// =============================================================================

// Continue stores the user's reply, then asks for the AI's answer. The
// reply stays stored even if the request fails.
func (o *Orchestrator) Continue(ctx context.Context, in ContinueInput) (Reply, error) {
	o.publish(LoadingState())

	if _, err := o.chats.GetChat(ctx, in.ChatID); err != nil {
		return Reply{}, o.fail("continue", err)
	}
	lang, tones := o.effectiveSettings(ctx, in.ChatID, in.Language)

	text := in.Reply
	if in.ImageRef != "" && strings.TrimSpace(in.Reply) == "" {
		text = model.ImagePlaceholder
	}
	user := model.Message{
		ID:        o.newID(),
		ChatID:    in.ChatID,
		Text:      text,
		IsUser:    true,
		Timestamp: o.millis(),
		ImageURI:  in.ImageRef,
	}
	if err := o.messages.SaveMessage(ctx, user); err != nil {
		return Reply{}, o.fail("continue", err)
	}

	history, err := o.messages.MessagesByChat(ctx, in.ChatID)
	if err != nil {
		return Reply{}, o.fail("continue", err)
	}

	comment, err := o.replyInContext(ctx, replyRequest{
		chatID:   in.ChatID,
		reply:    in.Reply,
		imageRef: in.ImageRef,
		history:  history,
		language: lang,
		tones:    tones,
		profile:  o.Profile(),
	})
	if err != nil {
		return Reply{}, o.fail("continue", err)
	}

	if err := o.appendAIReply(ctx, in.ChatID, comment); err != nil {
		return Reply{}, o.fail("continue", err)
	}

	o.publish(SuccessState(comment, in.ChatID))
	return Reply{ChatID: in.ChatID, Comment: comment}, nil
}

// =============================================================================
// REGENERATE
// =============================================================================

// Regenerate answers the user turn before MessageID again, using only the
// messages that precede it. The new answer is appended; the old one is
// kept.
func (o *Orchestrator) Regenerate(ctx context.Context, in RegenerateInput) (Reply, error) {
	o.publish(LoadingState())

	all, err := o.messages.MessagesByChat(ctx, in.ChatID)
	if err != nil {
		return Reply{}, o.fail("regenerate", err)
	}

	idx := -1
	for i, m := range all {
		if m.ID == in.MessageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Printf("[conversation] regenerate: message %s not in chat %s", in.MessageID, in.ChatID)
		o.publish(ErrorState(messageNotFound))
		return Reply{}, fmt.Errorf("%w: %s", ErrMessageNotFound, in.MessageID)
	}

	prefix := all[:idx]
	replayText, replayImage := lastUserInput(prefix)
	lang, tones := o.effectiveSettings(ctx, in.ChatID, in.Language)

	comment, err := o.replyInContext(ctx, replyRequest{
		chatID:   in.ChatID,
		reply:    replayText,
		imageRef: replayImage,
		history:  prefix,
		language: lang,
		tones:    tones,
		profile:  o.Profile(),
	})
	if err != nil {
		return Reply{}, o.fail("regenerate", err)
	}

	if err := o.appendAIReply(ctx, in.ChatID, comment); err != nil {
		return Reply{}, o.fail("regenerate", err)
	}

	o.publish(SuccessState(comment, in.ChatID))
	return Reply{ChatID: in.ChatID, Comment: comment}, nil
}

// lastUserInput returns the text and image of the newest user message.
// An image-only message replays with empty text.
func lastUserInput(msgs []model.Message) (text, imageRef string) {
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if !m.IsUser {
			continue
		}
		if m.Text != model.ImagePlaceholder {
			text = m.Text
		}
		return text, m.ImageURI
	}
	return "", ""
}

// =============================================================================
// RETRY
// =============================================================================

// RetryLastGeneration replays the last Generate with the profile's
// current language and appends the answer to the active chat. It does
// nothing when there is no previous Generate or no active chat, and
// fails when the active chat's row is gone.
func (o *Orchestrator) RetryLastGeneration(ctx context.Context) (Reply, error) {
	o.mu.Lock()
	params := o.session.last
	chatID := o.session.chatID
	o.mu.Unlock()
	if params == nil || chatID == "" {
		return Reply{}, nil
	}
	if _, err := o.chats.GetChat(ctx, chatID); err != nil {
		return Reply{}, o.fail("retry", err)
	}

	o.mu.Lock()
	o.session.retryAttempt++
	attempt := o.session.retryAttempt
	p := *params
	o.mu.Unlock()

	o.publish(RetryingState(attempt))

	profile := o.Profile()
	comment, err := o.requestComment(ctx, p.ImageRef, cloud.OptionalText(p.Text), p.Tones, profile.PreferredLanguage, profile)
	if err != nil {
		return Reply{}, o.fail("retry", err)
	}

	if err := o.appendAIReply(ctx, chatID, comment); err != nil {
		return Reply{}, o.fail("retry", err)
	}

	o.publish(SuccessState(comment, chatID))
	return Reply{ChatID: chatID, Comment: comment}, nil
}

// =============================================================================
// REQUESTS
// =============================================================================

type replyRequest struct {
	chatID   string
	reply    string
	imageRef string
	history  []model.Message
	language model.Language
	tones    []model.Tone
	profile  model.UserProfile
}

// replyInContext asks for the next AI turn. With an image the recent
// turns are inlined into a generate request so the image can be sent;
// otherwise the continue endpoint receives the history array.
func (o *Orchestrator) replyInContext(ctx context.Context, r replyRequest) (string, error) {
	if r.imageRef != "" {
		text := ImageContext(r.history, r.reply)
		return o.requestComment(ctx, r.imageRef, &text, r.tones, r.language, r.profile)
	}

	history, err := cloud.EncodeHistory(HistoryLines(r.history, HistoryTurns))
	if err != nil {
		return "", err
	}
	req := cloud.ContinueConversationRequest{
		ChatID:    r.chatID,
		UserReply: r.reply,
		History:   history,
		Language:  r.language.DisplayName(),
	}
	log.Printf("[conversation] continue chat=%s turns=%d lang=%s", r.chatID, min(len(r.history), HistoryTurns), req.Language)
	resp, err := throttle.Do(ctx, o.throttler, func(ctx context.Context) (*cloud.CommentResponse, error) {
		return o.api.ContinueConversation(ctx, req)
	})
	if err != nil {
		return "", err
	}
	return resp.Comment, nil
}

// requestComment encodes the image (if any) and calls generate-comment.
func (o *Orchestrator) requestComment(ctx context.Context, imageRef string, text *string, tones []model.Tone,
	lang model.Language, profile model.UserProfile) (string, error) {
	var encoded string
	if imageRef != "" {
		var err error
		encoded, err = o.images.EncodeBase64(ctx, imageRef)
		if err != nil {
			return "", err
		}
	}

	req := cloud.GenerateCommentRequest{
		Text:        text,
		Tone:        model.JoinToneDisplayNames(tones),
		Language:    lang.DisplayName(),
		Gender:      profile.Gender.DisplayName(),
		Age:         profile.Age,
		ImageBase64: encoded,
	}
	log.Printf("[conversation] generate tone=%q lang=%s image=%t", req.Tone, req.Language, encoded != "")
	resp, err := throttle.Do(ctx, o.throttler, func(ctx context.Context) (*cloud.CommentResponse, error) {
		return o.api.GenerateComment(ctx, req)
	})
	if err != nil {
		return "", err
	}
	return resp.Comment, nil
}

// HistoryLines renders the last n messages, oldest first.
func HistoryLines(msgs []model.Message, n int) []string {
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, m.HistoryLine())
	}
	return lines
}

// ImageContext is the text sent alongside an image in an ongoing chat.
func ImageContext(msgs []model.Message, reply string) string {
	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, line := range HistoryLines(msgs, ImageContextTurns) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if strings.TrimSpace(reply) != "" {
		b.WriteString("\nUser's new message: ")
		b.WriteString(reply)
	}
	return b.String()
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// effectiveSettings returns the language and tones for a follow-up in
// chatID: the session's when it is on that chat, otherwise fallback and
// the tones stored on the chat.
func (o *Orchestrator) effectiveSettings(ctx context.Context, chatID string, fallback model.Language) (model.Language, []model.Tone) {
	o.mu.Lock()
	if o.session.chatID == chatID {
		lang := o.session.language
		tones := append([]model.Tone(nil), o.session.tones...)
		o.mu.Unlock()
		return lang, tones
	}
	o.mu.Unlock()

	lang := fallback
	tones := append([]model.Tone(nil), model.DefaultTones...)
	chat, err := o.chats.GetChat(ctx, chatID)
	if err == nil {
		tones = model.ParseTones(chat.SelectedTones).Value
		if !lang.Valid() {
			lang = model.ParseLanguage(chat.SelectedLanguage).Value
		}
	}
	return normalizeLanguage(lang), tones
}

func (o *Orchestrator) aiMessage(chatID, text string) model.Message {
	return model.Message{
		ID:        o.newID(),
		ChatID:    chatID,
		Text:      text,
		IsUser:    false,
		Timestamp: o.millis(),
	}
}

// appendAIReply stores an AI message and refreshes the chat's cached
// last message. A chat that no longer exists gets nothing written.
func (o *Orchestrator) appendAIReply(ctx context.Context, chatID, text string) error {
	chat, err := o.chats.GetChat(ctx, chatID)
	if err != nil {
		return err
	}
	if err := o.messages.SaveMessage(ctx, o.aiMessage(chatID, text)); err != nil {
		return err
	}
	chat.LastMessage = text
	chat.Timestamp = o.millis()
	return o.chats.UpdateChat(ctx, chat)
}
