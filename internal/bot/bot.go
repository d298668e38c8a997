// Package bot wires the Telegram surface: daily invites, signup callbacks
// and publishing the day's groups.
package bot

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"groupmixer/internal/db"
	"groupmixer/internal/logic"
	"groupmixer/internal/messages"
)

type Bot struct {
	API   *tgbotapi.BotAPI
	Store *db.Store
	// runtime options
	TestMode     bool
	SignupWindow time.Duration
	Restarts     int

	rng *rand.Rand
}

func New(api *tgbotapi.BotAPI, store *db.Store) *Bot {
	return &Bot{
		API:      api,
		Store:    store,
		Restarts: 200,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *Bot) Start(ctx context.Context) {
	updates := b.API.GetUpdatesChan(tgbotapi.UpdateConfig{Timeout: 30})
	for {
		select {
		case <-ctx.Done():
			return
		case upd := <-updates:
			b.handleUpdate(upd)
		}
	}
}

func (b *Bot) handleUpdate(upd tgbotapi.Update) {
	if upd.MyChatMember != nil {
		b.onMyChatMember(*upd.MyChatMember)
		return
	}
	if cb := upd.CallbackQuery; cb != nil {
		b.onCallback(cb)
	}
}

func (b *Bot) onMyChatMember(m tgbotapi.ChatMemberUpdated) {
	status := m.NewChatMember.Status
	if status == "member" || status == "administrator" || status == "creator" {
		b.onAddedToGroup(m.Chat.ID, m.Chat.Title)
	}
}

func (b *Bot) onAddedToGroup(chatID int64, title string) {
	_ = b.Store.UpsertChat(chatID, title)
	msg := tgbotapi.NewMessage(chatID, messages.IntroMessage)
	_, _ = b.API.Send(msg)
	if b.TestMode {
		b.sendInviteToChat(chatID)
	}
}

// SendDailyInvites opens today's signup session in every known chat.
func (b *Bot) SendDailyInvites() {
	chats, err := b.Store.ListChats()
	if err != nil {
		log.Println("daily send error:", err)
		return
	}
	for _, chatID := range chats {
		b.sendInviteToChat(chatID)
	}
}

func (b *Bot) sendInviteToChat(chatID int64) {
	now := time.Now().UTC()
	date := now.Format("2006-01-02")
	// an invite already posted today must not be duplicated
	if id, inviteID, err := b.Store.SessionByChatDate(chatID, date); err == nil && id != 0 && inviteID.Valid {
		return
	}
	window := b.SignupWindow
	if window == 0 {
		window = 30 * time.Minute
	}
	deadline := now.Add(window)
	sessionID, err := b.Store.CreateOrGetSession(chatID, date, deadline)
	if err != nil {
		log.Println("session create error:", err)
		return
	}

	btn := tgbotapi.NewInlineKeyboardButtonData(messages.ImInButton, fmt.Sprintf("join:%d", sessionID))
	kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(btn))
	msg := tgbotapi.NewMessage(chatID, messages.DailyInvite)
	msg.ReplyMarkup = kb
	resp, err := b.API.Send(msg)
	if err == nil {
		_ = b.Store.SetInviteMessageID(sessionID, resp.MessageID)
	}
}

func (b *Bot) onCallback(cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	if !strings.HasPrefix(data, "join:") {
		return
	}
	var sessionID int64
	_, _ = fmt.Sscanf(data, "join:%d", &sessionID)
	user := cb.From
	name := strings.TrimSpace(strings.Join([]string{user.FirstName, user.LastName}, " "))
	if name == "" {
		name = user.UserName
	}
	open, err := b.Store.SessionOpen(sessionID, time.Now())
	if err == nil && !open {
		_, _ = b.API.Request(tgbotapi.NewCallback(cb.ID, messages.SignupClosed))
		return
	}
	in, err := b.Store.IsSessionMember(sessionID, user.ID)
	if err == nil && !in {
		_ = b.Store.AddSessionMember(sessionID, user.ID, user.UserName, name)
		_, _ = b.API.Request(tgbotapi.NewCallback(cb.ID, messages.JoinedAck))
		return
	}
	_, _ = b.API.Request(tgbotapi.NewCallback(cb.ID, messages.AlreadyIn))
}

// CloseAndPublish ends a session, builds today's groups against the chat's
// published history and posts the result.
func (b *Bot) CloseAndPublish(sessionID int64) {
	chatID, _, err := b.Store.SessionInfo(sessionID)
	if err != nil {
		return
	}
	parts, err := b.Store.SessionMembers(sessionID)
	if err != nil {
		return
	}
	if b.TestMode && len(parts) == 1 {
		fakes := []db.SessionMember{
			{UserID: 900001, DisplayName: "Test member 1"},
			{UserID: 900002, DisplayName: "Test member 2"},
			{UserID: 900003, DisplayName: "Test member 3"},
			{UserID: 900004, DisplayName: "Test member 4"},
		}
		for _, fp := range fakes {
			_ = b.Store.AddSessionMember(sessionID, fp.UserID, fp.Username, fp.DisplayName)
		}
		parts, _ = b.Store.SessionMembers(sessionID)
	}
	if len(parts) == 0 {
		_, _ = b.API.Send(tgbotapi.NewMessage(chatID, messages.NoParticipants))
		_ = b.Store.CloseSession(sessionID)
		return
	}

	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, displayName(p))
	}
	past, err := b.Store.ChatGroupHistory(chatID)
	if err != nil {
		log.Println("history load error:", err)
	}
	groups, cost, err := logic.DailyGroups(names, past, b.Restarts, b.rng)
	if err != nil {
		log.Println("grouping error:", err)
		return
	}
	if cost > 0 {
		log.Printf("session %d: %d unavoidable repeat pairing(s)", sessionID, cost)
	}

	var sb strings.Builder
	sb.WriteString(messages.ResultsHeader)
	sb.WriteString("\n")
	for i, g := range groups {
		sb.WriteString(fmt.Sprintf("Group %d: %s\n", i+1, strings.Join(g, ", ")))
	}
	_, _ = b.API.Send(tgbotapi.NewMessage(chatID, sb.String()))

	if err := b.Store.SaveSessionGroups(sessionID, groups); err != nil {
		log.Println("save groups error:", err)
	}
	_ = b.Store.CloseSession(sessionID)
}

func displayName(p db.SessionMember) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Username != "" {
		return "@" + p.Username
	}
	return fmt.Sprintf("id:%d", p.UserID)
}
