package ingest

import (
	"crypto/sha256"
	"encoding/base64"
	"regexp"

	"go.uber.org/zap"

	"github.com/pboehm/wakeep/internal/archive"
	"github.com/pboehm/wakeep/internal/export"
)

// attachmentRe matches the marker an export embeds where media was sent.
var attachmentRe = regexp.MustCompile(`<attached: ([^>]+)>`)

// fileKey is the content address of a payload: SHA-256, base64, truncated
// to a fixed width. Identical bytes always yield the identical key.
func fileKey(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])[:32]
}

// resolveAttachment detects an attachment marker in the message body,
// strips it, and registers the payload content-addressed in the store: one
// files row per distinct payload, one attachments row per occurrence. It
// returns the attachment id to link onto the message row, or nil when the
// message carries no readable attachment.
//
// Unreadable media is logged and swallowed so one bad attachment never
// loses the surrounding message; the marker stays stripped either way.
// Store failures propagate.
func (e *Engine) resolveAttachment(arc archive.Provider, msg *export.Message) (*int64, error) {
	loc := attachmentRe.FindStringSubmatchIndex(msg.Contents)
	if loc == nil {
		return nil, nil
	}
	name := msg.Contents[loc[2]:loc[3]]
	msg.Contents = msg.Contents[:loc[0]] + msg.Contents[loc[1]:]

	data, err := arc.Media(name)
	if err != nil {
		e.logger.Error("media for attachment not readable, storing message without it",
			zap.String("name", name),
			zap.Error(err))
		return nil, nil
	}

	key := fileKey(data)
	exists, err := e.db.HasFile(key)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := e.db.InsertFile(key, data); err != nil {
			return nil, err
		}
	}

	id, err := e.db.InsertAttachment(name, key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
