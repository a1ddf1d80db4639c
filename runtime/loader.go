// Package runtime wires the collaboration engines to their execution model:
// one worker per project, a moderation stage, and event fanout to sinks. It
// orchestrates without containing domain rules.
package runtime

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"strings"

	"cutroom/errors"
)

// BlacklistData carries the loaded wordlists plus metadata for logging.
type BlacklistData struct {
	Words     []string
	Languages []string
}

// BlacklistLoader reads blacklisted words from embedded per-language files.
type BlacklistLoader struct {
	fs embed.FS
}

func NewBlacklistLoader(f embed.FS) *BlacklistLoader {
	return &BlacklistLoader{fs: f}
}

// LoadAll scans the given directory in the embedded FS, treating each .txt
// file as a language dictionary ("en.txt" -> "en") and deduplicating words
// across languages.
func (l *BlacklistLoader) LoadAll(path string) (*BlacklistData, error) {
	entries, err := fs.ReadDir(l.fs, path)
	if err != nil {
		return nil, err
	}

	var languages []string
	unique := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := l.fs.ReadFile(path + "/" + entry.Name())
		if err != nil {
			return nil, err
		}

		// A scanner handles both \n and \r\n endings.
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				unique[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(unique) == 0 {
		return nil, errors.ErrEmptyWords
	}

	words := make([]string, 0, len(unique))
	for w := range unique {
		words = append(words, w)
	}
	return &BlacklistData{Words: words, Languages: languages}, nil
}
