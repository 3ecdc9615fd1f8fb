package schema

// ContentArticleTable represents the 'content.article' table
type ContentArticleTable struct {
	Table     string
	ID        string
	OwnerID   string
	Slug      string
	Title     string
	Content   string
	IsPublic  string
	CreatedAt string
	UpdatedAt string
}

// ContentArticle is the schema definition for content.article
var ContentArticle = ContentArticleTable{
	Table:     "content.article",
	ID:        "id",
	OwnerID:   "ownerid",
	Slug:      "slug",
	Title:     "title",
	Content:   "content",
	IsPublic:  "ispublic",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t ContentArticleTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Slug, t.Title, t.Content,
		t.IsPublic, t.CreatedAt, t.UpdatedAt,
	}
}
