package embedding

import (
	"github.com/schemalens/schemalens/internal/port"
)

// WordIndex is a bidirectional word <-> integer mapping. Indices are assigned
// in first-seen order starting at 0 and are never removed, so the mapping is
// bijective over every word inserted. A WordIndex is created per embedding
// request and never persisted.
//
// Not safe for concurrent use; sharing one index across generators requires
// external serialization (single-writer discipline).
type WordIndex struct {
	byWord  map[string]int
	byIndex []string
}

// NewWordIndex creates an empty word index.
func NewWordIndex() *WordIndex {
	return &WordIndex{byWord: make(map[string]int)}
}

// GetOrAdd returns the index of word, assigning the next sequential integer
// if the word has not been seen before.
func (w *WordIndex) GetOrAdd(word string) int {
	if idx, ok := w.byWord[word]; ok {
		return idx
	}
	idx := len(w.byIndex)
	w.byWord[word] = idx
	w.byIndex = append(w.byIndex, word)
	return idx
}

// Word returns the word assigned to index. Looking up an index that was never
// assigned is a programming error and returns port.ErrWordNotFound.
func (w *WordIndex) Word(index int) (string, error) {
	if index < 0 || index >= len(w.byIndex) {
		return "", port.ErrWordNotFound
	}
	return w.byIndex[index], nil
}

// Count returns the number of distinct words ever inserted.
func (w *WordIndex) Count() int {
	return len(w.byIndex)
}
