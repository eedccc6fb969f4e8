package models

import (
	"time"

	"github.com/zhangmm/zblog/pkg/internal/render"
)

type Post struct {
	BaseModel

	Title string `json:"title"`
	Slug  string `json:"slug" gorm:"index"`

	// Body is the author-supplied markdown source; BodyHTML is derived from
	// it on every assignment through SetBody and is safe to emit as-is.
	Body     string `json:"body"`
	BodyHTML string `json:"body_html"`
	Language string `json:"language"`

	PublishedAt time.Time `json:"published_at" gorm:"index"`

	Tags []Tag `json:"tags" gorm:"many2many:post_tags"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`
}

// SetBody assigns the markdown source and recomputes the sanitized HTML.
func (v *Post) SetBody(source string) {
	v.Body = source
	v.BodyHTML = render.Markdown(source)
}

// SetTitle assigns the title and recomputes the URL slug.
func (v *Post) SetTitle(title string) {
	v.Title = title
	v.Slug = render.Slugify(title)
}

func (v Post) Summary() string {
	content := v.BodyHTML
	if len(content) == 0 {
		content = v.Body
	}
	if len(content) > 300 {
		return content[:300]
	}
	return content
}

// PostTag is the explicit join row between posts and tags. The composite
// primary key keeps a post from carrying the same tag twice.
type PostTag struct {
	PostID    uint      `json:"post_id" gorm:"primaryKey"`
	TagID     uint      `json:"tag_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
