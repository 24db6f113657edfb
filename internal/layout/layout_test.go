package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallationValid(t *testing.T) {
	topo := Installation()
	require.NoError(t, topo.Validate())
	assert.Equal(t, 23, topo.Zones())
	assert.Equal(t, 689, topo.Count())
}

func TestWalkVisitsEachLedOnce(t *testing.T) {
	topo := Topology{Capacity: 10, Strips: []Strip{{Length: 2, X: 1, Y: 2}, {Length: 3, X: 4, Y: 5}}}

	var got []Position
	topo.Walk(func(p Position) bool {
		got = append(got, p)
		return true
	})

	require.Len(t, got, 5)
	assert.Equal(t, Position{Index: 0, Strip: 0, Offset: 0, Depth: 2, X: 1, Y: 2}, got[0])
	assert.Equal(t, Position{Index: 1, Strip: 0, Offset: 1, Depth: 1, X: 1, Y: 2}, got[1])
	assert.Equal(t, Position{Index: 2, Strip: 1, Offset: 0, Depth: 3, X: 4, Y: 5}, got[2])
	assert.Equal(t, Position{Index: 4, Strip: 1, Offset: 2, Depth: 1, X: 4, Y: 5}, got[4])
}

func TestWalkEarlyStop(t *testing.T) {
	topo := Installation()
	n := 0
	topo.Walk(func(p Position) bool {
		n++
		return p.Index < 9
	})
	assert.Equal(t, 10, n)
}

func TestAtMatchesWalk(t *testing.T) {
	topo := Installation()
	topo.Walk(func(p Position) bool {
		q, ok := topo.At(p.Index)
		require.True(t, ok)
		assert.Equal(t, p, q)
		return true
	})
	_, ok := topo.At(topo.Count())
	assert.False(t, ok)
	_, ok = topo.At(-1)
	assert.False(t, ok)
}

func TestStart(t *testing.T) {
	topo := Installation()
	assert.Equal(t, 0, topo.Start(0))
	assert.Equal(t, 24, topo.Start(1))
	assert.Equal(t, topo.Count(), topo.Start(topo.Zones()))
}

func TestValidateErrors(t *testing.T) {
	assert.ErrorIs(t, Topology{Capacity: 4}.Validate(), ErrNoStrips)
	assert.ErrorIs(t, Topology{Capacity: 4, Strips: []Strip{{Length: 0}}}.Validate(), ErrNonPositiveLen)
	assert.ErrorIs(t, Topology{Capacity: 4, Strips: []Strip{{Length: 3}, {Length: 2}}}.Validate(), ErrCapacity)
}
