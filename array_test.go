package goclone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayOfImmutableElements(t *testing.T) {
	v := [4]int{1, 2, 3, 4}
	copied := DeepCopy(v)
	assert.Equal(t, v, copied)
}

func TestArrayFidelity(t *testing.T) {
	shared := &node{Name: "s"}
	var grid [2][3]*node
	grid[0][0] = &node{Name: "z"}
	grid[0][1] = shared
	grid[1][2] = shared

	copied := DeepCopy(grid)

	// Shape preserved, repeated element shared within the copy, nothing
	// shared with the original.
	require.NotSame(t, grid[0][1], copied[0][1])
	assert.Same(t, copied[0][1], copied[1][2])
	assert.Equal(t, "s", copied[0][1].Name)
	require.NotSame(t, grid[0][0], copied[0][0])
	assert.Equal(t, "z", copied[0][0].Name)
	assert.Nil(t, copied[1][0])
	assert.Nil(t, copied[0][2])
}

func TestArrayOfValueStructs(t *testing.T) {
	type cell struct {
		N     int
		Items []int
	}
	v := [2]cell{
		{N: 1, Items: []int{1}},
		{N: 2, Items: []int{2}},
	}

	copied := DeepCopy(v)
	copied[0].Items[0] = 99
	assert.Equal(t, 1, v[0].Items[0])
	assert.Equal(t, 2, copied[1].N)
}

func TestThreeDimensionalArray(t *testing.T) {
	var cube [2][2][2]*node
	cube[1][0][1] = &node{Name: "deep"}

	copied := DeepCopy(cube)
	require.NotNil(t, copied[1][0][1])
	assert.NotSame(t, cube[1][0][1], copied[1][0][1])
	assert.Equal(t, "deep", copied[1][0][1].Name)
	assert.Nil(t, copied[0][0][0])
}

func TestArrayInsideStruct(t *testing.T) {
	type board struct {
		Cells [3]*node
	}
	shared := &node{Name: "x"}
	b := &board{}
	b.Cells[0] = shared
	b.Cells[2] = shared

	copied := DeepCopy(b)
	assert.NotSame(t, b.Cells[0], copied.Cells[0])
	assert.Same(t, copied.Cells[0], copied.Cells[2])
}

func TestArrayElementSharedWithField(t *testing.T) {
	type mixed struct {
		Direct *node
		Cells  [2]*node
	}
	shared := &node{Name: "both"}
	m := mixed{Direct: shared}
	m.Cells[1] = shared

	copied := DeepCopy(m)
	assert.Same(t, copied.Direct, copied.Cells[1])
	assert.NotSame(t, shared, copied.Direct)
}

func TestSliceOfSlices(t *testing.T) {
	inner := []int{1, 2}
	v := [][]int{inner, inner}

	copied := DeepCopy(v)
	copied[0][0] = 9
	assert.Equal(t, 9, copied[1][0]) // sharing preserved inside the copy
	assert.Equal(t, 1, inner[0])     // original untouched
}
