package models

type Tag struct {
	BaseModel

	Alias string `json:"alias" gorm:"uniqueIndex" validate:"lowercase"`
	Name  string `json:"name"`
	Posts []Post `json:"posts,omitempty" gorm:"many2many:post_tags"`
}
