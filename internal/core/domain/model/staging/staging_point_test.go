package staging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/staging"
)

func point(t *testing.T, id int, name string, lat, lng float64) staging.Point {
	t.Helper()

	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)

	p, err := staging.NewPoint(id, name, loc)
	require.NoError(t, err)
	return p
}

func londonNetwork(t *testing.T) staging.Network {
	t.Helper()

	n, err := staging.NewNetwork(
		point(t, 1, "Hyde Park Depot", 51.508, -0.165),
		point(t, 2, "Canary Wharf Hub", 51.503, -0.019),
		point(t, 3, "Camden Town Storage", 51.539, -0.142),
	)
	require.NoError(t, err)
	return n
}

func TestNewPoint(t *testing.T) {
	t.Run("valid_point", func(t *testing.T) {
		p := point(t, 1, "Hyde Park Depot", 51.508, -0.165)

		require.NoError(t, p.Validate())
		assert.Equal(t, 1, p.ID())
		assert.Equal(t, "Hyde Park Depot", p.Name())
	})

	t.Run("non_positive_id", func(t *testing.T) {
		loc, _ := kernel.NewLocation(51.508, -0.165)

		_, err := staging.NewPoint(0, "Depot", loc)

		require.Error(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		loc, _ := kernel.NewLocation(51.508, -0.165)

		_, err := staging.NewPoint(1, "", loc)

		require.Error(t, err)
	})

	t.Run("invalid_location", func(t *testing.T) {
		var loc kernel.Location

		_, err := staging.NewPoint(1, "Depot", loc)

		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p staging.Point

		require.ErrorIs(t, p.Validate(), staging.ErrPointIsNotConstructed)
	})
}

func TestNewNetwork(t *testing.T) {
	t.Run("requires_at_least_one_point", func(t *testing.T) {
		_, err := staging.NewNetwork()

		require.Error(t, err)
	})

	t.Run("rejects_unconstructed_points", func(t *testing.T) {
		var p staging.Point

		_, err := staging.NewNetwork(p)

		require.Error(t, err)
	})

	t.Run("preserves_configured_order", func(t *testing.T) {
		n := londonNetwork(t)

		points := n.Points()
		require.Len(t, points, 3)
		assert.Equal(t, "Hyde Park Depot", points[0].Name())
		assert.Equal(t, "Canary Wharf Hub", points[1].Name())
		assert.Equal(t, "Camden Town Storage", points[2].Name())
	})
}

func TestNetwork_Nearest(t *testing.T) {
	t.Run("customer_between_depots_gets_hyde_park", func(t *testing.T) {
		// Customer at (51.506, -0.10) sits between Hyde Park and Canary
		// Wharf but is measurably closer to Hyde Park.
		n := londonNetwork(t)
		customer, _ := kernel.NewLocation(51.506, -0.10)

		nearest, err := n.Nearest(customer)

		require.NoError(t, err)
		assert.Equal(t, "Hyde Park Depot", nearest.Name())
	})

	t.Run("customer_in_docklands_gets_canary_wharf", func(t *testing.T) {
		n := londonNetwork(t)
		customer, _ := kernel.NewLocation(51.505, -0.02)

		nearest, err := n.Nearest(customer)

		require.NoError(t, err)
		assert.Equal(t, "Canary Wharf Hub", nearest.Name())
	})

	t.Run("tie_breaks_to_first_configured", func(t *testing.T) {
		shared, _ := kernel.NewLocation(51.5, -0.1)
		n, err := staging.NewNetwork(
			point(t, 1, "First", 51.5, -0.1),
			point(t, 2, "Second", 51.5, -0.1),
		)
		require.NoError(t, err)

		nearest, err := n.Nearest(shared)

		require.NoError(t, err)
		assert.Equal(t, "First", nearest.Name())
	})

	t.Run("rejects_invalid_location", func(t *testing.T) {
		n := londonNetwork(t)
		var loc kernel.Location

		_, err := n.Nearest(loc)

		require.Error(t, err)
	})
}
