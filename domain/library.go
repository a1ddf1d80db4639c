package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"cutroom/errors"
)

type Category string

const (
	CategoryRaw   Category = "RAW"
	CategoryFinal Category = "FINAL"
	CategoryRefs  Category = "REFS"
	// CategoryAll is a query-only pseudo category.
	CategoryAll Category = "ALL"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryRaw, CategoryFinal, CategoryRefs:
		return true
	}
	return false
}

type FileVersion struct {
	Version    int
	ContentRef string
	UploadedAt time.Time
}

type UploadedFile struct {
	ID         uuid.UUID
	ProjectID  ProjectID
	Name       string
	Category   Category
	UploadedAt time.Time
	// Versions is append-only and never truncated; a re-upload of the same
	// logical file appends version max+1.
	Versions []FileVersion
}

func (f UploadedFile) clone() UploadedFile {
	out := f
	out.Versions = make([]FileVersion, len(f.Versions))
	copy(out.Versions, f.Versions)
	return out
}

// Library owns the uploaded files of one project: category tagging plus the
// per-file version chain. Content bytes live with the persistence
// collaborator; the library tracks references only.
type Library struct {
	project ProjectID
	files   []*UploadedFile
	byID    map[uuid.UUID]*UploadedFile
}

func NewLibrary(project ProjectID) *Library {
	return &Library{
		project: project,
		byID:    make(map[uuid.UUID]*UploadedFile),
	}
}

// Upload registers a file, seeding its version chain at 1. An empty
// category defaults to RAW.
func (l *Library) Upload(name string, category Category, contentRef string, at time.Time) (UploadedFile, error) {
	if category == "" {
		category = CategoryRaw
	}
	if !category.Valid() {
		return UploadedFile{}, fmt.Errorf("file category %q: %w", category, errors.ErrInvalidStatus)
	}
	file := &UploadedFile{
		ID:         uuid.New(),
		ProjectID:  l.project,
		Name:       name,
		Category:   category,
		UploadedAt: at,
		Versions:   []FileVersion{{Version: 1, ContentRef: contentRef, UploadedAt: at}},
	}
	l.files = append(l.files, file)
	l.byID[file.ID] = file
	return file.clone(), nil
}

func (l *Library) AppendVersion(id uuid.UUID, contentRef string, at time.Time) (UploadedFile, error) {
	file, ok := l.byID[id]
	if !ok {
		return UploadedFile{}, fmt.Errorf("file %s: %w", id, errors.ErrNotFound)
	}
	file.Versions = append(file.Versions, FileVersion{
		Version:    len(file.Versions) + 1,
		ContentRef: contentRef,
		UploadedAt: at,
	})
	return file.clone(), nil
}

// FilesByCategory returns files in upload order. CategoryAll returns every
// file regardless of tag.
func (l *Library) FilesByCategory(category Category) ([]UploadedFile, error) {
	if category != CategoryAll && !category.Valid() {
		return nil, fmt.Errorf("file category %q: %w", category, errors.ErrInvalidStatus)
	}
	var out []UploadedFile
	for _, f := range l.files {
		if category == CategoryAll || f.Category == category {
			out = append(out, f.clone())
		}
	}
	return out, nil
}

func (l *Library) Files() []UploadedFile {
	out := make([]UploadedFile, 0, len(l.files))
	for _, f := range l.files {
		out = append(out, f.clone())
	}
	return out
}

// SuggestCategory sniffs uploaded content to propose a category: footage
// goes to RAW, stills and documents to REFS, everything else keeps the RAW
// default. Callers remain free to override.
func SuggestCategory(name string, content []byte) Category {
	mt := mimetype.Detect(content)
	switch {
	case strings.HasPrefix(mt.String(), "video/"), strings.HasPrefix(mt.String(), "audio/"):
		return CategoryRaw
	case strings.HasPrefix(mt.String(), "image/"), mt.Is("application/pdf"):
		return CategoryRefs
	}
	if strings.Contains(strings.ToLower(name), "final") {
		return CategoryFinal
	}
	return CategoryRaw
}
