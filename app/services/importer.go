package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"blogview/app/models"

	"gopkg.in/yaml.v3"
)

type frontMatter struct {
	Title    string `yaml:"title"`
	Slug     string `yaml:"slug"`
	Date     string `yaml:"date"`
	Category string `yaml:"category"`
	Excerpt  string `yaml:"excerpt"`
	Image    string `yaml:"image"`
}

// ImportMarkdown builds a posts document from the .md files in dir. Each
// file may start with a YAML front matter block; the rest is the body.
// Files are read in name order, which becomes document order.
func ImportMarkdown(dir string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, errors.New("no markdown files found in " + dir)
	}

	doc := models.Document{Posts: make([]models.Post, 0, len(names))}
	for _, name := range names {
		post, err := readMarkdownPost(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		doc.Posts = append(doc.Posts, post)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return out, nil
}

func readMarkdownPost(path string) (models.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	fm, body := splitFrontMatter(string(data))
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return models.Post{}, fmt.Errorf("parse front matter %s: %w", path, err)
		}
	}

	title := strings.TrimSpace(front.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return models.Post{
		Title:    title,
		Slug:     strings.TrimSpace(front.Slug),
		Date:     models.ParseDate(strings.TrimSpace(front.Date)),
		Category: strings.TrimSpace(front.Category),
		Excerpt:  strings.TrimSpace(front.Excerpt),
		Image:    strings.TrimSpace(front.Image),
		Body:     strings.TrimRight(body, "\n"),
	}, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}
