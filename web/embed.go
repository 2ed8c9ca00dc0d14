// Package web embeds the site's templates, static files and blog posts into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static
var static embed.FS

//go:embed content/blog/*.md
var blog embed.FS

// Templates is an fs.FS rooted at web/templates/.
var Templates, _ = fs.Sub(templates, "templates")

// StaticFiles is an fs.FS rooted at web/static/, served under /static/.
var StaticFiles, _ = fs.Sub(static, "static")

// BlogPosts is an fs.FS rooted at web/content/blog/.
var BlogPosts, _ = fs.Sub(blog, "content/blog")
