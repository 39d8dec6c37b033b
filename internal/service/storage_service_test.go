package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvatarObjectNameKeepsExtension(t *testing.T) {
	name := AvatarObjectName("holiday.PNG")

	assert.True(t, strings.HasPrefix(name, "avatars/"))
	assert.True(t, strings.HasSuffix(name, ".png"))
}

func TestAvatarObjectNameUniquePerUpload(t *testing.T) {
	first := AvatarObjectName("me.jpg")
	second := AvatarObjectName("me.jpg")

	assert.NotEqual(t, first, second)
}

func TestAvatarObjectNameNoExtension(t *testing.T) {
	name := AvatarObjectName("avatar")

	assert.True(t, strings.HasPrefix(name, "avatars/"))
	assert.False(t, strings.Contains(name[len("avatars/"):], "."))
}
