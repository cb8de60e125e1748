package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageResponse(t *testing.T) {
	t.Run("nil items become empty slice", func(t *testing.T) {
		resp := NewPageResponse[string](nil, 1, 20, 0)
		assert.NotNil(t, resp.Items)
		assert.Empty(t, resp.Items)
		assert.Equal(t, 0, resp.TotalPages)
	})

	t.Run("total pages rounds up", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2}, 2, 2, 5)
		assert.Equal(t, 3, resp.TotalPages)
		assert.Equal(t, 2, resp.Page)
	})
}
