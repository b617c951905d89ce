package requestid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, FromContext(ctx))

	ctx = NewContext(ctx, "req-1")
	assert.Equal(t, "req-1", FromContext(ctx))

	assert.Equal(t, "req-2", FromContext(NewContext(ctx, "req-2")))
}
