package editor

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// StagedScheme prefixes handles of media that has been attached in the
// editor but not yet uploaded to persistent storage.
const StagedScheme = "staged://"

// StagedFile is a media file held in memory until the session commits
type StagedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Staging holds media files attached during an editing session, keyed by a
// generated handle. It is created with the session and discarded when the
// session closes or after a successful commit; it is never shared between
// sessions.
type Staging struct {
	mu    sync.Mutex
	files map[string]StagedFile
}

// NewStaging creates an empty staging store
func NewStaging() *Staging {
	return &Staging{
		files: make(map[string]StagedFile),
	}
}

// Put stores a file and returns its staged handle
func (s *Staging) Put(file StagedFile) string {
	handle := StagedScheme + uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[handle] = file
	return handle
}

// Get returns the file for a handle
func (s *Staging) Get(handle string) (StagedFile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.files[handle]
	return file, ok
}

// Remove drops a single staged file
func (s *Staging) Remove(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, handle)
}

// Clear drops all staged files
func (s *Staging) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string]StagedFile)
}

// Len returns the number of staged files
func (s *Staging) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// IsStagedRef reports whether a URL refers to staged, not yet uploaded media
func IsStagedRef(url string) bool {
	return strings.HasPrefix(url, StagedScheme)
}
