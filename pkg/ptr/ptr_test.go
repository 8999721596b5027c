package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	p := Ptr("logo.png")

	assert.Equal(t, "logo.png", *p)
}

func TestValue(t *testing.T) {
	assert.Equal(t, 300.0, Value(Ptr(300.0)))
	assert.Equal(t, "", Value[string](nil))
}
