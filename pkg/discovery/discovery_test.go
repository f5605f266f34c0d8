package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInstanceID(t *testing.T) {
	assert.Regexp(t, `^parentalcontrol-\d+$`, GenerateInstanceID("parentalcontrol"))
}
