package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zhangmm/zblog/pkg/internal/render"
)

func TestSlugifyBasic(t *testing.T) {
	assert.Equal(t, "hello-world", render.Slugify("Hello World"))
	assert.Equal(t, "hello-world", render.Slugify("  Hello,  World!  "))
	assert.Equal(t, "2024-year-in-review", render.Slugify("2024: Year in Review"))
}

func TestSlugifyTransliteratesHan(t *testing.T) {
	assert.Equal(t, "zhong-wen", render.Slugify("中文"))
	assert.Equal(t, "hello-shi-jie", render.Slugify("Hello 世界"))
}

func TestSlugifyEmpty(t *testing.T) {
	assert.Equal(t, "", render.Slugify(""))
	assert.Equal(t, "", render.Slugify("!!!"))
}

func TestSlugifyCollisionsAreAllowed(t *testing.T) {
	// Phonetically identical titles map to the same slug on purpose.
	assert.Equal(t, render.Slugify("事实"), render.Slugify("逝世"))
}
