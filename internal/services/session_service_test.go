package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushRecentOrderAndCap(t *testing.T) {
	var ids []uint
	for _, id := range []uint{5, 3, 5, 9, 1, 2} {
		ids = pushRecent(ids, id, MaxRecentRides)
	}

	// Дубликаты схлопываются к самой свежей позиции, список обрезан до 4
	assert.Equal(t, []uint{2, 1, 9, 5}, ids)
}

func TestPushRecentMovesDuplicateToFront(t *testing.T) {
	ids := []uint{7, 8, 9}
	ids = pushRecent(ids, 9, MaxRecentRides)

	assert.Equal(t, []uint{9, 7, 8}, ids)
	assert.Len(t, ids, 3)
}

func TestPushRecentEmpty(t *testing.T) {
	ids := pushRecent(nil, 42, MaxRecentRides)
	assert.Equal(t, []uint{42}, ids)
}

func TestPushRecentCapExact(t *testing.T) {
	ids := []uint{4, 3, 2, 1}
	ids = pushRecent(ids, 5, MaxRecentRides)

	assert.Equal(t, []uint{5, 4, 3, 2}, ids)
}
