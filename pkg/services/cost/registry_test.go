package cost

import (
	"context"
	"testing"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	src := new(mockSource)
	factory := func(context.Context, domain.CloudContext) (Source, error) { return src, nil }

	require.NoError(t, r.Register("snowflake", factory))
	require.NoError(t, r.Register("aws", factory))

	assert.EqualError(t, r.Register("aws", factory), `platform "aws" is already registered`)
	assert.Error(t, r.Register("", factory))
	assert.Error(t, r.Register("azure", nil))

	assert.Equal(t, []string{"aws", "snowflake"}, r.ListPlatforms())

	got, err := r.Create(context.Background(), "aws", domain.CloudContext{})
	require.NoError(t, err)
	assert.Same(t, src, got)

	_, err = r.Create(context.Background(), "gcp", domain.CloudContext{})
	assert.EqualError(t, err, `platform "gcp" is not registered`)
}
