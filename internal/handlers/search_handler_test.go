package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSearchDate(t *testing.T) {
	date, ok := parseSearchDate("2024-05-17")
	assert.True(t, ok)
	assert.Equal(t, 2024, date.Year())
	assert.Equal(t, time.May, date.Month())
	assert.Equal(t, 17, date.Day())
}

func TestParseSearchDateInvalid(t *testing.T) {
	// Некорректная дата игнорируется, а не приводит к ошибке
	_, ok := parseSearchDate("2024-13-40")
	assert.False(t, ok)

	_, ok = parseSearchDate("вчера")
	assert.False(t, ok)

	_, ok = parseSearchDate("")
	assert.False(t, ok)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, clampPage(0, 5))
	assert.Equal(t, 1, clampPage(-3, 5))
	assert.Equal(t, 3, clampPage(3, 5))
	assert.Equal(t, 5, clampPage(9, 5))
	assert.Equal(t, 1, clampPage(2, 0))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, totalPages(0, PageSize))
	assert.Equal(t, 1, totalPages(6, PageSize))
	assert.Equal(t, 2, totalPages(7, PageSize))
	assert.Equal(t, 3, totalPages(13, PageSize))
}
