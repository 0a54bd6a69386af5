// Package dictionary loads the word lists used by word counting: a stop-word
// list and a user dictionary for the segmenter. Watcher reloads a list when
// its file changes.
package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/querytrans/internal/core/domain"
)

// LoadStopWords reads one stop word per line. Lines are kept verbatim except
// for a trailing carriage return; blank lines are skipped.
func LoadStopWords(path string) ([]string, error) {
	var words []string
	err := eachLine(path, func(_ int, line string) error {
		if line != "" {
			words = append(words, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// LoadUserDict reads "word tag" lines. A line without both fields is an
// error; blank lines are skipped and extra fields are ignored.
func LoadUserDict(path string) ([]domain.DictEntry, error) {
	var entries []domain.DictEntry
	err := eachLine(path, func(n int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return fmt.Errorf("%w: %s:%d: bad dict line %q", domain.ErrMalformedDictionary, path, n, line)
		}
		entries = append(entries, domain.DictEntry{Word: fields[0], Tag: fields[1]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func eachLine(path string, fn func(n int, line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		if err := fn(n, strings.TrimSuffix(sc.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}
