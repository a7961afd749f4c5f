package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FeedbackStore {
	t.Helper()
	s, err := NewFeedbackStore(filepath.Join(t.TempDir(), "feedback.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLogFeedback(t *testing.T) {
	s := newTestStore(t)

	id, err := s.LogFeedback(42, "Search Twitter", "1. [service] Search Twitter", "1. [service] Search Twitter", 5)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))
}

func TestLogFeedbackRejectsBadRating(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LogFeedback(42, "p", "g", "f", 0)
	assert.Error(t, err)
	_, err = s.LogFeedback(42, "p", "g", "f", 6)
	assert.Error(t, err)
}

func TestExportCorrections(t *testing.T) {
	s := newTestStore(t)

	// Unedited: not exported
	_, err := s.LogFeedback(1, "Search Twitter", "same message", "same message", 5)
	require.NoError(t, err)

	// Edited: exported with the corrected message as ground truth
	_, err = s.LogFeedback(2, "Scrape Instagram", "1. [service] wrong", "1. [service] corrected", 3)
	require.NoError(t, err)

	pairs, err := s.ExportCorrections()
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "Scrape Instagram", pairs[0].Input)
	assert.Equal(t, "1. [service] corrected", pairs[0].Message)
	assert.Equal(t, "1. [service] wrong", pairs[0].OriginalMessage)
	assert.Equal(t, "user_correction", pairs[0].Source)
	assert.Equal(t, 3, pairs[0].Rating)
}
