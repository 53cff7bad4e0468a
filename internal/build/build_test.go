package build_test

import (
	"testing"

	"github.com/emdiet/popl/internal/build"
	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	assert.Equal(t, "dev (commit none, built unknown)", build.Info())
}
