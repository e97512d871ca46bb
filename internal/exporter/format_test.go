package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "13.40", formatFloat(13.4))
	assert.Equal(t, "0.00", formatFloat(0))
	assert.Equal(t, "12345.00", formatFloat(12345))
	assert.Equal(t, "-1.50", formatFloat(-1.5))
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "26000", formatInt(26000))
	assert.Equal(t, "0", formatInt(0))
}
