package uttt

import (
	"encoding/json"
	"fmt"
	"math/bits"
)

// BoardSet is a set of local-board indices.
type BoardSet uint16

const allBoards BoardSet = 1<<BoardSize - 1

// NewBoardSet returns the set holding indices. Out-of-range indices are ignored.
func NewBoardSet(indices ...int) BoardSet {
	var s BoardSet
	for _, i := range indices {
		s = s.With(i)
	}
	return s
}

func (s BoardSet) Has(i int) bool {
	return i >= 0 && i < BoardSize && s&(1<<i) != 0
}

func (s BoardSet) With(i int) BoardSet {
	if i < 0 || i >= BoardSize {
		return s
	}
	return s | 1<<i
}

func (s BoardSet) Len() int {
	return bits.OnesCount16(uint16(s & allBoards))
}

func (s BoardSet) Empty() bool {
	return s&allBoards == 0
}

// Indices returns the members in ascending order. It never returns nil.
func (s BoardSet) Indices() []int {
	indices := make([]int, 0, s.Len())
	for i := 0; i < BoardSize; i++ {
		if s.Has(i) {
			indices = append(indices, i)
		}
	}
	return indices
}

func (s BoardSet) String() string {
	return fmt.Sprint(s.Indices())
}

func (s BoardSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Indices())
}

func (s *BoardSet) UnmarshalJSON(data []byte) error {
	var indices []int
	if err := json.Unmarshal(data, &indices); err != nil {
		return fmt.Errorf("failed to unmarshal board set: %w", err)
	}

	var set BoardSet
	for _, i := range indices {
		if i < 0 || i >= BoardSize {
			return fmt.Errorf("board index %d out of range", i)
		}
		set = set.With(i)
	}

	*s = set

	return nil
}
