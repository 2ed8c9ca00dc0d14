package models

import (
	"html/template"
	"time"
)

type BlogPost struct {
	Slug    string
	Title   string
	Summary string
	Date    time.Time
	Body    template.HTML
}
