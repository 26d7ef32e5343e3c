package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNextCode_Secuencia: el sufijo crece numéricamente y se ensancha solo
// al pasar de 99, sin romper la secuencia.
func TestNextCode_Secuencia(t *testing.T) {
	day := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "PN-20240131-01", nextCode("", day))
	assert.Equal(t, "PN-20240131-02", nextCode("PN-20240131-01", day))
	assert.Equal(t, "PN-20240131-100", nextCode("PN-20240131-99", day))
	assert.Equal(t, "PN-20240131-101", nextCode("PN-20240131-100", day))
}

func TestDayPrefix(t *testing.T) {
	day := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "PN-20240131", dayPrefix(day))
}
