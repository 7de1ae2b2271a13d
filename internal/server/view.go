package server

import (
	"unicode/utf8"

	"capstone-blog/internal/blog"
	"capstone-blog/internal/model"

	"github.com/samber/lo"
)

const (
	dateLayout = "02 Jan 2006, 15:04 MST"
	excerptLen = 200
)

// PostView is a post tailored for presentation in the templates
type PostView struct {
	ID      int64
	URL     string
	Title   string
	Content string
	Excerpt string
	Created string
	Updated string
	Edited  bool
}

// NewPostView creates a view model from a stored post
func NewPostView(p model.Post) PostView {
	return PostView{
		ID:      p.ID,
		URL:     blog.PostPath(p.ID),
		Title:   p.Title,
		Content: p.Content,
		Excerpt: excerpt(p.Content, excerptLen),
		Created: p.CreatedAt.Format(dateLayout),
		Updated: p.UpdatedAt.Format(dateLayout),
		Edited:  p.UpdatedAt.After(p.CreatedAt),
	}
}

type page struct {
	Title string
	Body  any
}

type indexView struct {
	Posts    []PostView
	Error    string
	FormData blog.FormData
}

type editView struct {
	Post  PostView
	Error string
}

// viewData converts an outcome payload into what its template expects.
func viewData(out blog.Outcome) page {
	p := page{Title: out.PageTitle, Body: out.Data}
	switch d := out.Data.(type) {
	case blog.IndexData:
		p.Body = indexView{
			Posts:    lo.Map(d.Posts, func(post model.Post, _ int) PostView { return NewPostView(post) }),
			Error:    d.Error,
			FormData: d.FormData,
		}
	case blog.PostData:
		p.Body = NewPostView(d.Post)
	case blog.EditData:
		p.Body = editView{Post: NewPostView(d.Post), Error: d.Error}
	}
	return p
}

func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
