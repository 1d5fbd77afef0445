package pagination_test

import (
	"testing"
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	logDate := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, time.June, 3, 18, 42, 15, 123456789, time.UTC)

	token := pagination.EncodeToken(logDate, createdAt)
	gotDate, gotCreated, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, logDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("aGVsbG8=") // valid base64, wrong shape
	assert.Error(t, err)
}
