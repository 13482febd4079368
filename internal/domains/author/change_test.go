package author

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEqualContentIgnoresBookOrder(t *testing.T) {
	b1, b2 := uuid.New(), uuid.New()

	a := &Author{Name: "Frank Herbert", Age: 65, Nationality: "American", Books: []uuid.UUID{b1, b2}}
	b := &Author{Name: "Frank Herbert", Age: 65, Nationality: "American", Books: []uuid.UUID{b2, b1}}

	assert.True(t, a.EqualContent(b))
}

func TestEqualContentMultisetStrict(t *testing.T) {
	b1, b2 := uuid.New(), uuid.New()

	a := &Author{Name: "n", Books: []uuid.UUID{b1, b1}}
	b := &Author{Name: "n", Books: []uuid.UUID{b1, b2}}
	assert.False(t, a.EqualContent(b), "same length, different members")

	c := &Author{Name: "n", Books: []uuid.UUID{b1}}
	assert.False(t, a.EqualContent(c), "duplicate counts differ")
}

func TestEqualContentScalarDifference(t *testing.T) {
	a := &Author{Name: "Frank Herbert", Age: 65, Nationality: "American"}
	b := &Author{Name: "Frank Herbert", Age: 66, Nationality: "American"}

	assert.False(t, a.EqualContent(b))
}

func TestEqualContentIgnoresVersionAndTimestamps(t *testing.T) {
	a := &Author{Name: "n", Nationality: "x", Version: 1}
	b := &Author{Name: "n", Nationality: "x", Version: 7}

	assert.True(t, a.EqualContent(b))
}
