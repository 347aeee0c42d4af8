package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	createdAt := time.Date(2024, 6, 15, 10, 30, 45, 123456789, time.UTC)
	rowID := "0f8fad5b-d9cb-469f-a165-70867728950e"

	token := EncodeToken(createdAt, rowID)
	require.NotEmpty(t, token)

	gotTime, gotID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, rowID, gotID)
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := DecodeToken("not-base64-!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := "MjAyNC0wNi0xNVQxMDozMDo0NVo" // base64 of a lone timestamp, no separator
	_, _, err := DecodeToken(token)
	assert.Error(t, err)
}
