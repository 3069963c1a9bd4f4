package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/migration/components"
)

func TestEventsQueue(t *testing.T) {
	var q Events
	q.Emit(SpawnRequest{Species: components.SpeciesFish})
	q.Emit(FlipOccurred{FlipCount: 1, Direction: North})
	assert.Equal(t, 2, q.Len())
	assert.Len(t, q.Pending(), 2)

	drained := q.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, SpawnRequest{Species: components.SpeciesFish}, drained[0])
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Drain())
}

func TestEventKindsDistinct(t *testing.T) {
	all := []Event{
		SpawnRequest{},
		FlipOccurred{},
		RainStateChanged{},
		CreatureArrivedAtTarget{},
		CuriosityChanged{},
		BabyWhaleDeparted{},
	}
	seen := map[string]bool{}
	for _, ev := range all {
		assert.NotEmpty(t, ev.Kind())
		assert.False(t, seen[ev.Kind()], "duplicate kind %q", ev.Kind())
		seen[ev.Kind()] = true
	}
}

func TestSystemRegistry(t *testing.T) {
	reg := NewSystemRegistry()
	ids := reg.IDs()
	require.NotEmpty(t, ids)
	assert.Equal(t, "player", ids[0])
	assert.Equal(t, "telemetry", ids[len(ids)-1])
	assert.Len(t, reg.All(), len(ids))

	info, ok := reg.Get("flocking")
	require.True(t, ok)
	assert.Equal(t, "behavior", info.Category)
	assert.Equal(t, "Flocking", reg.GetName("flocking"))
	assert.Equal(t, "unknown", reg.GetName("unknown"))

	_, ok = reg.Get("unknown")
	assert.False(t, ok)
}
