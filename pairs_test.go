package formbind_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formbind"
)

func TestPairsFromValues(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("name=Alice&interests=rust&interests=webdev&empty=")
	require.NoError(t, err)

	pairs := formbind.PairsFromValues(values)
	assert.Len(t, pairs, 4)

	type form struct {
		Name      string   `form:"name"`
		Interests []string `form:"interests"`
	}

	var got form
	require.NoError(t, formbind.BindStruct(&got, pairs))
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, []string{"rust", "webdev"}, got.Interests, "per-key order must survive url.Values")
}

func TestPairsFromValues_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, formbind.PairsFromValues(nil))
	assert.Empty(t, formbind.PairsFromValues(url.Values{}))
}
