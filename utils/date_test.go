package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateTimeString(t *testing.T) {
	assert.Equal(t, "Jan 2, 2030, 9:05 AM", FormatDateTimeString("2030-01-02T09:05"))
	assert.Equal(t, "Dec 31, 2030, 11:30 PM", FormatDateTimeString("2030-12-31 23:30"))
	assert.Equal(t, "Mar 4, 2030, 12:00 AM", FormatDateTimeString("2030-03-04"))
	assert.Equal(t, "next tuesday", FormatDateTimeString("next tuesday"))
	assert.Equal(t, "", FormatDateTimeString(""))
}

func TestParseDateTime_WithZone(t *testing.T) {
	got, ok := ParseDateTime("2030-01-02T09:05:00Z")
	assert.True(t, ok)
	assert.True(t, got.Equal(time.Date(2030, 1, 2, 9, 5, 0, 0, time.UTC)))
}

func TestFormatDateTime_Zero(t *testing.T) {
	assert.Equal(t, "", FormatDateTime(time.Time{}))
}
