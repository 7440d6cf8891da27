// assets/embed.go
//
// Embedded defaults: the candidate word list (JSON array of strings) and
// the static browser page that drives the board over /api and /ws.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed words.json static
var FS embed.FS

// DefaultWords returns the raw bytes of the embedded word list.
func DefaultWords() ([]byte, error) {
	return FS.ReadFile("words.json")
}

// Static returns the page assets rooted at static/.
func Static() (fs.FS, error) {
	return fs.Sub(FS, "static")
}
