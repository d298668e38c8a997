package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"groupmixer/internal/rotation"
)

type SessionMember struct {
	UserID      int64  `db:"user_id"`
	Username    string `db:"username"`
	DisplayName string `db:"display_name"`
}

func (s *Store) UpsertChat(chatID int64, title string) error {
	_, err := s.DB.Exec(
		"INSERT INTO chats (chat_id, title) VALUES (?, ?) ON CONFLICT(chat_id) DO UPDATE SET title=excluded.title",
		chatID, title)
	return err
}

func (s *Store) ListChats() ([]int64, error) {
	var ids []int64
	err := s.DB.Select(&ids, "SELECT chat_id FROM chats ORDER BY chat_id")
	return ids, err
}

// CreateOrGetSession returns the session id for the chat/date, creating it
// with the given signup deadline when absent. Retries on SQLITE_BUSY since
// the bot and the closer loop may race on the single writer.
func (s *Store) CreateOrGetSession(chatID int64, date string, deadline time.Time) (int64, error) {
	deadlineUTC := deadline.UTC()
	const maxAttempts = 5
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		_, err := s.DB.Exec(
			"INSERT OR IGNORE INTO sessions (chat_id, session_date, signup_deadline) VALUES (?, ?, ?)",
			chatID, date, deadlineUTC)
		if err != nil {
			if isLockedError(err) {
				lastErr = err
				time.Sleep(time.Duration(attempt*100) * time.Millisecond)
				continue
			}
			return 0, fmt.Errorf("insert session (chat=%d date=%s): %w", chatID, date, err)
		}
		var id int64
		getErr := s.DB.Get(&id, "SELECT id FROM sessions WHERE chat_id=? AND session_date=?", chatID, date)
		if getErr == nil {
			return id, nil
		}
		if isLockedError(getErr) {
			lastErr = getErr
			time.Sleep(time.Duration(attempt*100) * time.Millisecond)
			continue
		}
		return 0, fmt.Errorf("select session (chat=%d date=%s): %w", chatID, date, getErr)
	}
	return 0, fmt.Errorf("create/get session exhausted retries (chat=%d date=%s): %w", chatID, date, lastErr)
}

func (s *Store) SetInviteMessageID(sessionID int64, msgID int) error {
	_, err := s.DB.Exec("UPDATE sessions SET invite_message_id=? WHERE id=?", msgID, sessionID)
	return err
}

// SessionByChatDate returns the session id and invite message id for a
// chat/date, if any.
func (s *Store) SessionByChatDate(chatID int64, date string) (id int64, inviteMsgID sql.NullInt64, err error) {
	err = s.DB.QueryRowx(
		"SELECT id, invite_message_id FROM sessions WHERE chat_id=? AND session_date=?",
		chatID, date).Scan(&id, &inviteMsgID)
	return
}

func (s *Store) AddSessionMember(sessionID, userID int64, username, display string) error {
	_, err := s.DB.Exec(
		"INSERT INTO session_members (session_id, user_id, username, display_name) VALUES (?, ?, ?, ?) ON CONFLICT(session_id, user_id) DO NOTHING",
		sessionID, userID, username, display)
	return err
}

func (s *Store) IsSessionMember(sessionID, userID int64) (bool, error) {
	var cnt int
	err := s.DB.Get(&cnt, "SELECT COUNT(1) FROM session_members WHERE session_id=? AND user_id=?", sessionID, userID)
	return cnt > 0, err
}

func (s *Store) SessionMembers(sessionID int64) ([]SessionMember, error) {
	var out []SessionMember
	err := s.DB.Select(&out,
		"SELECT user_id, COALESCE(username,'') AS username, COALESCE(display_name,'') AS display_name FROM session_members WHERE session_id=? ORDER BY id",
		sessionID)
	return out, err
}

func (s *Store) OpenSessionsToClose(now time.Time) ([]int64, error) {
	var ids []int64
	err := s.DB.Select(&ids,
		"SELECT id FROM sessions WHERE closed=0 AND signup_deadline <= ?", now.UTC())
	return ids, err
}

func (s *Store) SessionInfo(id int64) (chatID int64, date string, err error) {
	err = s.DB.QueryRowx("SELECT chat_id, session_date FROM sessions WHERE id=?", id).Scan(&chatID, &date)
	return
}

// SessionOpen reports whether signups are still accepted at the given time.
// A session without a deadline stays open until it is closed explicitly.
func (s *Store) SessionOpen(id int64, now time.Time) (bool, error) {
	var closed int
	var deadline sql.NullTime
	err := s.DB.QueryRowx(
		"SELECT closed, signup_deadline FROM sessions WHERE id=?", id).
		Scan(&closed, &deadline)
	if err != nil {
		return false, err
	}
	if closed != 0 {
		return false, nil
	}
	if !deadline.Valid {
		return true, nil
	}
	return !now.UTC().After(deadline.Time.UTC()), nil
}

func (s *Store) CloseSession(id int64) error {
	_, err := s.DB.Exec("UPDATE sessions SET closed=1 WHERE id=?", id)
	return err
}

// SaveSessionGroups stores the published grouping of a closed session so
// later sessions in the same chat can avoid repeating its pairs.
func (s *Store) SaveSessionGroups(sessionID int64, groups []rotation.Group) error {
	for gi, g := range groups {
		for pi, name := range g {
			if _, err := s.DB.Exec(
				"INSERT INTO session_groups (session_id, group_no, position, display_name) VALUES (?, ?, ?, ?)",
				sessionID, gi+1, pi, name); err != nil {
				return fmt.Errorf("insert session group row: %w", err)
			}
		}
	}
	return nil
}

// ChatGroupHistory returns every group ever published in the chat, oldest
// session first. Feeding these through History.Record reconstructs the pair
// history for the chat.
func (s *Store) ChatGroupHistory(chatID int64) ([]rotation.Group, error) {
	rows, err := s.DB.Queryx(
		`SELECT sg.session_id, sg.group_no, sg.display_name
		 FROM session_groups sg JOIN sessions se ON se.id = sg.session_id
		 WHERE se.chat_id=? ORDER BY sg.session_id, sg.group_no, sg.position`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []rotation.Group
	lastSession, lastGroup := int64(0), 0
	for rows.Next() {
		var sessionID int64
		var groupNo int
		var name string
		if err := rows.Scan(&sessionID, &groupNo, &name); err != nil {
			return nil, err
		}
		if sessionID != lastSession || groupNo != lastGroup {
			groups = append(groups, rotation.Group{})
			lastSession, lastGroup = sessionID, groupNo
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], name)
	}
	return groups, rows.Err()
}

func (s *Store) EnsureSettings(defaultTime string) error {
	_, err := s.DB.Exec("INSERT INTO settings (id, daily_time) VALUES (1, ?) ON CONFLICT(id) DO NOTHING", defaultTime)
	return err
}

func (s *Store) GetDailyTime() (string, error) {
	var t string
	err := s.DB.Get(&t, "SELECT daily_time FROM settings WHERE id=1")
	return t, err
}

func (s *Store) SetDailyTime(t string) error {
	if _, err := time.Parse("15:04", t); err != nil {
		return errors.New("db: daily time must be HH:MM")
	}
	_, err := s.DB.Exec("UPDATE settings SET daily_time=? WHERE id=1", t)
	return err
}
