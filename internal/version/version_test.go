package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	saved := Version
	defer func() { Version = saved }()

	Version = "v1.0.0"
	assert.Equal(t, "v1.0.0 (commit unknown, built unknown)", String())
}
