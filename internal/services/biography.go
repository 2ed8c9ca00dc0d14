package services

import (
	"fmt"
	"os"
	"strings"
)

// SystemInstruction scopes the assistant to questions about the site owner.
const SystemInstruction = "You are a friendly assistant embedded in a personal portfolio website. " +
	"Answer questions about the site owner using only the biography provided in the user message. " +
	"If a question is unrelated to the owner, their work, skills or experience, politely decline " +
	"and steer the visitor back to those topics. Keep answers short, at most three sentences."

// DefaultBiography is used when no biography file is configured.
const DefaultBiography = `Biography:
I am a software engineer who builds backend services and developer tooling.
I work mostly in Go and Python, with PostgreSQL and Redis as my usual data stores,
and I deploy with Docker on Linux. Recent projects include an HTTP API for an
AI study assistant, a small task tracker for coordinating automation agents, and
this portfolio site. Outside of work I write about distributed systems on the blog
and enjoy long-distance running. The best way to reach me is the contact form.`

// LoadBiography returns the biography text from path, or DefaultBiography when
// path is empty. The result is fixed for the lifetime of the process.
func LoadBiography(path string) (string, error) {
	if path == "" {
		return DefaultBiography, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read biography file: %w", err)
	}
	bio := strings.TrimSpace(string(data))
	if bio == "" {
		return "", fmt.Errorf("biography file %s is empty", path)
	}
	return bio, nil
}
