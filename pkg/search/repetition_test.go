package search_test

import (
	"testing"

	"github.com/dkrantz/grendel/pkg/board"
	"github.com/dkrantz/grendel/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestRepetitionTableDetectsPriorHash(t *testing.T) {
	rt := search.NewRepetitionTable(1, 2, 3)

	assert.False(t, rt.Repeated(3)) // 3 is only the last entry, not a prior one
	assert.True(t, rt.Repeated(1))
	assert.True(t, rt.Repeated(2))

	rt.Push(2)
	assert.True(t, rt.Repeated(2)) // now appears at both index 1 and the new last entry

	rt.Pop()
	assert.False(t, rt.Repeated(3))
}

func TestRepetitionTableEmpty(t *testing.T) {
	rt := search.NewRepetitionTable()
	assert.False(t, rt.Repeated(board.ZobristHash(42)))
}
