package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEventType(t *testing.T) {
	for _, raw := range []string{"view", "like", "comment", "share", "click", "impression"} {
		parsed, err := ParseEventType(raw)
		assert.NoError(t, err)
		assert.Equal(t, EventType(raw), parsed)
	}

	_, err := ParseEventType("retweet")
	assert.ErrorIs(t, err, ErrUnknownEventType)

	_, err = ParseEventType("")
	assert.ErrorIs(t, err, ErrUnknownEventType)

	// Matching is case sensitive.
	_, err = ParseEventType("Like")
	assert.ErrorIs(t, err, ErrUnknownEventType)
}

func TestParsePlatform(t *testing.T) {
	for _, raw := range []string{"facebook", "instagram", "twitter", "linkedin", "tiktok", "youtube"} {
		parsed, err := ParsePlatform(raw)
		assert.NoError(t, err)
		assert.Equal(t, Platform(raw), parsed)
	}

	_, err := ParsePlatform("myspace")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}
