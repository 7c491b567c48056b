package aassert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/relationship"
	"github.com/go-arrower/relationship/aassert"
)

type (
	team struct {
		Players relationship.OrderedSet[*player]
		Captain *player
	}

	player struct {
		Team  *team
		Teams []*team
	}
)

func TestLinked(t *testing.T) {
	t.Parallel()

	t.Run("collection and scalar linked", func(t *testing.T) {
		t.Parallel()

		tm, p := &team{}, &player{}
		tm.Players.Insert(p)
		p.Team = tm

		pass := aassert.Linked(new(testing.T), tm, "players", p, "team")
		assert.True(t, pass)
	})

	t.Run("plural fallback", func(t *testing.T) {
		t.Parallel()

		tm, p := &team{}, &player{}
		tm.Players.Insert(p)
		p.Teams = append(p.Teams, tm)

		pass := aassert.Linked(new(testing.T), tm, "player", p, "teams")
		assert.True(t, pass)
	})

	t.Run("only one side", func(t *testing.T) {
		t.Parallel()

		tm, p := &team{}, &player{}
		tm.Players.Insert(p)

		pass := aassert.Linked(new(testing.T), tm, "players", p, "team")
		assert.False(t, pass)
	})

	t.Run("unknown property", func(t *testing.T) {
		t.Parallel()

		pass := aassert.Linked(new(testing.T), &team{}, "coaches", &player{}, "team")
		assert.False(t, pass)
	})
}

func TestNotLinked(t *testing.T) {
	t.Parallel()

	t.Run("not linked", func(t *testing.T) {
		t.Parallel()

		pass := aassert.NotLinked(new(testing.T), &team{}, "captain", &player{}, "team")
		assert.True(t, pass)
	})

	t.Run("inverse still linked", func(t *testing.T) {
		t.Parallel()

		tm, p := &team{}, &player{}
		p.Team = tm

		pass := aassert.NotLinked(new(testing.T), tm, "captain", p, "team")
		assert.False(t, pass)
	})
}

func TestMembers(t *testing.T) {
	t.Parallel()

	tm, p0, p1 := &team{}, &player{}, &player{}
	tm.Players.Insert(p1)
	tm.Players.Insert(p0)

	assert.True(t, aassert.Members(new(testing.T), tm, "players", []any{p0, p1}))
	assert.False(t, aassert.Members(new(testing.T), tm, "players", []any{p0}))
	assert.False(t, aassert.Members(new(testing.T), tm, "captain", []any{p0}), "scalar is not a collection")
}
