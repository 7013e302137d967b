package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// ChatID looks up a chat by name. The second return reports whether the
// chat exists.
func (db *DB) ChatID(name string) (int64, bool, error) {
	var id int64
	err := db.QueryRow(`SELECT id FROM chats WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup chat %q: %w", name, err)
	}
	return id, true, nil
}

// CreateChat inserts a new chat row and returns its id. Chat names are
// unique; creating an existing name is an error.
func (db *DB) CreateChat(name string) (int64, error) {
	res, err := db.Exec(`INSERT INTO chats (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("create chat %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create chat %q: %w", name, err)
	}
	return id, nil
}

// ListChats returns all chats with their stored message counts, sorted by
// name.
func (db *DB) ListChats() ([]ChatInfo, error) {
	rows, err := db.Query(`
		SELECT c.id, c.name, COUNT(m.id)
		FROM chats c
		LEFT JOIN messages m ON m.chat = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chats []ChatInfo
	for rows.Next() {
		var c ChatInfo
		if err := rows.Scan(&c.ID, &c.Name, &c.Messages); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// DeleteChatMessages removes every message belonging to the chat. Files and
// attachments referenced only by the removed rows are left in place.
func (db *DB) DeleteChatMessages(chatID int64) (int64, error) {
	res, err := db.Exec(`DELETE FROM messages WHERE chat = ?`, chatID)
	if err != nil {
		return 0, fmt.Errorf("delete messages of chat %d: %w", chatID, err)
	}
	return res.RowsAffected()
}
