package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecker_DefaultPolicy(t *testing.T) {
	c := NewChecker(nil)

	assert.True(t, c.Has("student", "quiz:view"))
	assert.True(t, c.Has("student", "submission:create"))
	assert.False(t, c.Has("student", "quiz:create"))
	assert.False(t, c.Has("student", "submission:grade"))

	assert.True(t, c.Has("instructor", "quiz:create"))
	assert.True(t, c.Has("instructor", "submission:grade"))
	assert.False(t, c.Has("instructor", "submission:create"))

	assert.False(t, c.Has("", "quiz:view"))
	assert.False(t, c.Has("admin", "quiz:view"))
}

func TestChecker_Any(t *testing.T) {
	c := NewChecker(nil)
	assert.True(t, c.Any("student", "submission:grade", "submission:view-own"))
	assert.False(t, c.Any("student", "submission:grade", "quiz:create"))
}

func TestChecker_Wildcards(t *testing.T) {
	c := NewChecker(map[string][]string{
		"root":   {"*"},
		"viewer": {"quiz:*"},
	})
	assert.True(t, c.Has("root", "anything:at-all"))
	assert.True(t, c.Has("viewer", "quiz:view"))
	assert.True(t, c.Has("viewer", "quiz:delete-own"))
	assert.False(t, c.Has("viewer", "submission:grade"))
}

func TestRoleContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RoleFromContext(ctx))

	ctx = WithRole(ctx, "instructor")
	assert.Equal(t, "instructor", RoleFromContext(ctx))
}
