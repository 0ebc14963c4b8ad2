package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicBytes(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7\n...")))
	assert.False(t, IsPDF([]byte("Date,Amount")))
	assert.True(t, IsSpreadsheet([]byte("PK\x03\x04rest")))
	assert.False(t, IsSpreadsheet([]byte("%PDF-1.7")))
	assert.True(t, IsLegacyWorkbook([]byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1, 0x00}))
	assert.False(t, IsLegacyWorkbook([]byte("PK\x03\x04rest")))
}

func TestFlattenText(t *testing.T) {
	got, err := Flatten([]byte("a,b\r\nc,d\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\nc,d\n", got)
}

func TestFlattenRejectsBrokenPDF(t *testing.T) {
	_, err := Flatten([]byte("%PDF-1.7 truncated garbage"))
	assert.Error(t, err)
}

func TestNormalizeSpace(t *testing.T) {
	in := "  03/01/2025   CARD  PAYMENT\t TESCO   -45.50  \n\n\nPage 1 of 1\n"
	assert.Equal(t, "03/01/2025 CARD PAYMENT TESCO -45.50\nPage 1 of 1", NormalizeSpace(in))
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "abc", Prefix("abc", 10))
	assert.Equal(t, "ab", Prefix("abcdef", 2))
	assert.Equal(t, "", Prefix("abc", 0))
	assert.Equal(t, "hél", Prefix("héllo", 3))
}
