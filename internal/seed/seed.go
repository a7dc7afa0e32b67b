// Package seed embeds the sample ledger records used to fill an empty schema.
package seed

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed data/*.json
var data embed.FS

// FS returns the seed collections, read from dir when it is set and from the
// embedded copies otherwise
func FS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(data, "data")
	if err != nil {
		panic(err)
	}
	return sub
}
