// Package assets loads the SVG icons shown in the tech stack strip.
//
// Icons are read once at startup so page renders never touch the disk. A
// missing or unreadable icon becomes an empty placeholder instead of a
// startup failure.
package assets

import (
	"io/fs"
	"log/slog"

	"portfolio-site/internal/models"
)

// ManifestEntry pairs a display name with an icon path relative to the asset root.
type ManifestEntry struct {
	Name string
	Path string
	Spin bool
}

// DefaultManifest is the stack shown on the home page.
var DefaultManifest = []ManifestEntry{
	{Name: "Go", Path: "go.svg"},
	{Name: "Python", Path: "python.svg"},
	{Name: "PostgreSQL", Path: "postgresql.svg"},
	{Name: "Redis", Path: "redis.svg"},
	{Name: "Docker", Path: "docker.svg"},
	{Name: "React", Path: "react.svg", Spin: true},
	{Name: "Linux", Path: "linux.svg"},
}

// Load reads every manifest entry from fsys, preserving manifest order.
func Load(fsys fs.FS, manifest []ManifestEntry) []models.StackEntry {
	entries := make([]models.StackEntry, 0, len(manifest))
	for _, m := range manifest {
		svg, err := fs.ReadFile(fsys, m.Path)
		if err != nil {
			slog.Warn("stack icon unavailable", "name", m.Name, "path", m.Path, "error", err)
			svg = nil
		}
		entries = append(entries, models.StackEntry{
			Name: m.Name,
			SVG:  string(svg),
			Spin: m.Spin,
		})
	}
	return entries
}

// Missing returns the manifest entries whose icon cannot be read from fsys.
func Missing(fsys fs.FS, manifest []ManifestEntry) []ManifestEntry {
	var missing []ManifestEntry
	for _, m := range manifest {
		if _, err := fs.Stat(fsys, m.Path); err != nil {
			missing = append(missing, m)
		}
	}
	return missing
}
