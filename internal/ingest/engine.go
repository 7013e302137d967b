// Package ingest merges parsed export messages into the archive store.
package ingest

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pboehm/wakeep/internal/archive"
	"github.com/pboehm/wakeep/internal/export"
	"github.com/pboehm/wakeep/internal/store"
)

// ErrChatExists is returned when importing into an existing chat without
// the force flag. Nothing has been written when it is returned.
var ErrChatExists = errors.New("chat already exists")

// Engine drives one import end to end: parse the export, reconcile each
// message against the configured strategy, resolve attachments, persist.
type Engine struct {
	db     *store.DB
	logger *zap.Logger
}

// New creates an import engine. A nil logger disables logging.
func New(db *store.DB, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{db: db, logger: logger}
}

// ImportChat imports the archive's messages into the named chat and returns
// the number of rows actually inserted. Zero is a successful no-op, not an
// error: an amend pass over an already complete chat inserts nothing.
//
// Importing into an existing chat requires force; a brand-new chat has
// nothing to reconcile against, so every message is inserted regardless of
// the requested strategy.
func (e *Engine) ImportChat(arc archive.Provider, name string, strat Strategy, force bool) (int, error) {
	chatID, exists, err := e.db.ChatID(name)
	if err != nil {
		return 0, err
	}

	amend := false
	switch {
	case !exists:
		if chatID, err = e.db.CreateChat(name); err != nil {
			return 0, err
		}
	case !force:
		return 0, fmt.Errorf("chat %q: %w", name, ErrChatExists)
	case strat == Replace:
		deleted, err := e.db.DeleteChatMessages(chatID)
		if err != nil {
			return 0, err
		}
		e.logger.Info("replacing chat contents",
			zap.String("chat", name),
			zap.Int64("deleted", deleted))
	case strat == Amend:
		amend = true
	}

	raw, err := arc.Chat()
	if err != nil {
		return 0, err
	}

	count := 0
	parser := export.NewParser(raw, e.logger)
	for {
		msg, ok := parser.Next()
		if !ok {
			break
		}
		inserted, err := e.storeMessage(arc, chatID, msg, amend)
		if err != nil {
			return count, err
		}
		if inserted {
			count++
		}
	}

	e.logger.Info("import finished",
		zap.String("chat", name),
		zap.Stringer("strategy", strat),
		zap.Int("inserted", count))
	return count, nil
}

// storeMessage persists one parsed message, honoring the amend skip: a
// message whose (chat, date, sender) is already stored is neither inserted
// nor routed through attachment resolution. A nil sender matches only
// stored rows without a sender.
func (e *Engine) storeMessage(arc archive.Provider, chatID int64, msg export.Message, amend bool) (bool, error) {
	if amend {
		existing, err := e.db.CountMessages(chatID, msg.Date, msg.Sender)
		if err != nil {
			return false, err
		}
		if existing > 0 {
			return false, nil
		}
	}

	attachment, err := e.resolveAttachment(arc, &msg)
	if err != nil {
		return false, err
	}

	row := &store.Message{
		Date:       msg.Date,
		Sender:     msg.Sender,
		Message:    msg.Contents,
		Attachment: attachment,
		Chat:       chatID,
	}
	if err := e.db.InsertMessage(row); err != nil {
		return false, err
	}
	return true, nil
}
