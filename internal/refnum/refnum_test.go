package refnum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "AP-2024-007", Format("AP", 7, 2024))
	assert.Equal(t, "AP-2025-123", Format("AP", 123, 2025))
	assert.Equal(t, "AP-2024-1000", Format("AP", 1000, 2024))
}

func TestFormatShort(t *testing.T) {
	assert.Equal(t, "INV-007", FormatShort("INV", 7))
	assert.Equal(t, "INV-042", FormatShort("INV", 42))
}

func TestFallback(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef0123456789"

	assert.Equal(t, "AP-A1B2", Fallback("AP", id, 4))
	assert.Equal(t, "AP-A1B2C3", Fallback("AP", id, 6))
}

func TestFallback_ShortID(t *testing.T) {
	assert.Equal(t, "AP-AB", Fallback("AP", "ab", 6))
}
