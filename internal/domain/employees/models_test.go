package employees

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssembleAddress(t *testing.T) {
	assert.Equal(t, "Rua das Flores 12, Lisboa 1000-100", AssembleAddress("Rua das Flores 12", "Lisboa", "1000-100"))
	assert.Equal(t, "Lisboa 1000-100", AssembleAddress("", "Lisboa", "1000-100"))
	assert.Equal(t, "Rua A", AssembleAddress("Rua A", "", ""))
	assert.Equal(t, "", AssembleAddress("", "", ""))
}

func TestSplitAddress(t *testing.T) {
	street, locality, postal := SplitAddress("Rua das Flores 12, Vila Nova de Gaia 4400-001")
	assert.Equal(t, "Rua das Flores 12", street)
	assert.Equal(t, "Vila Nova de Gaia", locality)
	assert.Equal(t, "4400-001", postal)

	street, locality, postal = SplitAddress("Rua sem número")
	assert.Equal(t, "Rua sem número", street)
	assert.Empty(t, locality)
	assert.Empty(t, postal)
}

func TestSplitFullName(t *testing.T) {
	first, last := SplitFullName("  Ana  Maria Teste ")
	assert.Equal(t, "Ana", first)
	assert.Equal(t, "Maria Teste", last)

	first, last = SplitFullName("Ana")
	assert.Equal(t, "Ana", first)
	assert.Empty(t, last)
}

func TestAgeOn(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 36, AgeOn("1990-01-01", now))
	assert.Equal(t, 35, AgeOn("1990-10-16", now))
	assert.Equal(t, 36, AgeOn("1990-10-15", now))
	assert.Equal(t, 0, AgeOn("not a date", now))
}
