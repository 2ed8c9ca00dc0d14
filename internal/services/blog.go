package services

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/russross/blackfriday/v2"
	"gopkg.in/yaml.v3"

	"portfolio-site/internal/models"
)

var frontMatterDelim = []byte("---")

type frontMatter struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Summary string `yaml:"summary"`
}

// Blog is the read-only catalogue of markdown posts, built once at startup.
type Blog struct {
	posts  []models.BlogPost
	bySlug map[string]int
}

// NewBlog parses every *.md file at the root of fsys. The file name without
// extension is the post slug.
func NewBlog(fsys fs.FS) (*Blog, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}

	b := &Blog{bySlug: make(map[string]int, len(names))}
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read post %s: %w", name, err)
		}
		post, err := parsePost(strings.TrimSuffix(path.Base(name), ".md"), raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse post %s: %w", name, err)
		}
		b.posts = append(b.posts, post)
	}

	sort.SliceStable(b.posts, func(i, j int) bool {
		if b.posts[i].Date.Equal(b.posts[j].Date) {
			return b.posts[i].Slug < b.posts[j].Slug
		}
		return b.posts[i].Date.After(b.posts[j].Date)
	})
	for i, p := range b.posts {
		b.bySlug[p.Slug] = i
	}
	return b, nil
}

// List returns all posts, newest first.
func (b *Blog) List() []models.BlogPost {
	return b.posts
}

// Get returns the post with the given slug.
func (b *Blog) Get(slug string) (*models.BlogPost, error) {
	i, ok := b.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Message: "Post not found"}
	}
	post := b.posts[i]
	return &post, nil
}

func parsePost(slug string, raw []byte) (models.BlogPost, error) {
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return models.BlogPost{}, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return models.BlogPost{}, fmt.Errorf("invalid front matter: %w", err)
	}
	if fm.Title == "" {
		return models.BlogPost{}, fmt.Errorf("front matter is missing a title")
	}

	var date time.Time
	if fm.Date != "" {
		date, err = time.Parse("2006-01-02", fm.Date)
		if err != nil {
			return models.BlogPost{}, fmt.Errorf("invalid date %q: %w", fm.Date, err)
		}
	}

	html := blackfriday.Run(body)
	return models.BlogPost{
		Slug:    slug,
		Title:   fm.Title,
		Summary: fm.Summary,
		Date:    date,
		Body:    template.HTML(html),
	}, nil
}

// splitFrontMatter separates a leading "---" delimited YAML block from the markdown body.
func splitFrontMatter(raw []byte) (meta, body []byte, err error) {
	raw = bytes.TrimLeft(raw, "\ufeff \t\r\n")
	if !bytes.HasPrefix(raw, frontMatterDelim) {
		return nil, nil, fmt.Errorf("missing front matter")
	}
	rest := raw[len(frontMatterDelim):]
	end := bytes.Index(rest, append([]byte("\n"), frontMatterDelim...))
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated front matter")
	}
	meta = rest[:end]
	body = rest[end+1+len(frontMatterDelim):]
	return meta, bytes.TrimLeft(body, "\r\n"), nil
}
