package directions

import (
	"context"
	"errors"
	"route-distance-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockDirectionsProvider(t *testing.T) {
	p := NewMockDirectionsProvider([]MockRoute{{From: paris, To: lyon, Meters: 465000, Seconds: 16800}})

	fc, err := p.Directions(context.Background(), parisLyon())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Len(t, p.Calls(), 1)

	reversed := parisLyon()
	reversed.Coordinates = []domain.Coordinates{lyon, paris}
	_, err = p.Directions(context.Background(), reversed)
	require.Error(t, err)

	p.Err = errors.New("connection refused")
	_, err = p.Directions(context.Background(), parisLyon())
	assert.EqualError(t, err, "connection refused")
	assert.Len(t, p.Calls(), 3)
}
