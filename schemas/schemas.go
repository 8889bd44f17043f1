// Package schemas bundles the JSON Schemas for resume documents and score reports.
package schemas

import (
	"embed"
	"io/fs"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the raw schema named name, e.g. "resume.schema.json".
func Load(name string) ([]byte, error) {
	return fs.ReadFile(files, name)
}

// Names lists the bundled schema files.
func Names() []string {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
