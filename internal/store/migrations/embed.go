// Package migrations holds the ordered schema migration steps for the chat
// archive. The list is append-only: released steps are never edited or
// reordered, since the recorded schema version is a position in it.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
