package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchResult(t *testing.T) {
	ok := FetchResult{Collection: &FeatureCollection{Type: "FeatureCollection"}}
	assert.True(t, ok.OK())

	boom := errors.New("boom")
	failed := FetchFailed(boom)
	assert.False(t, failed.OK())
	assert.Nil(t, failed.Collection)
	assert.ErrorIs(t, failed.Err, boom)

	assert.False(t, FetchResult{}.OK(), "empty result is not a success")
}
