package dto

type CreateBlogRequest struct {
	Title       string         `json:"title" binding:"required,max=255"`
	Content     string         `json:"content" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Thumbnail   string         `json:"thumbnail" binding:"omitempty,max=1024"`
	Status      string         `json:"status" binding:"required,max=50"`
	Tags        []string       `json:"tags" binding:"omitempty,dive,required,max=50"`
	MetaData    map[string]any `json:"metaData"`
}

type UpdateBlogRequest struct {
	Title       *string        `json:"title" binding:"omitempty,min=1,max=255"`
	Content     *string        `json:"content" binding:"omitempty,min=1"`
	Description *string        `json:"description"`
	Thumbnail   *string        `json:"thumbnail" binding:"omitempty,max=1024"`
	Status      *string        `json:"status" binding:"omitempty,min=1,max=50"`
	Tags        []string       `json:"tags" binding:"omitempty,dive,required,max=50"`
	MetaData    map[string]any `json:"metaData"`
}
