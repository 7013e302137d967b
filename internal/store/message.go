package store

import "fmt"

// InsertMessage appends a message row and fills in its assigned id.
func (db *DB) InsertMessage(m *Message) error {
	res, err := db.Exec(`
		INSERT INTO messages (date, sender, message, attachment, chat)
		VALUES (?, ?, ?, ?, ?)`,
		m.Date, m.Sender, m.Message, m.Attachment, m.Chat)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	m.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// CountMessages reports how many messages a chat already holds for the
// given date and sender. A nil sender matches only rows whose sender is
// NULL, never a named sender.
func (db *DB) CountMessages(chatID int64, date string, sender *string) (int, error) {
	var count int
	var err error
	if sender == nil {
		err = db.QueryRow(`
			SELECT COUNT(*) FROM messages
			WHERE chat = ? AND date = ? AND sender IS NULL`,
			chatID, date).Scan(&count)
	} else {
		err = db.QueryRow(`
			SELECT COUNT(*) FROM messages
			WHERE chat = ? AND date = ? AND sender = ?`,
			chatID, date, *sender).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}
