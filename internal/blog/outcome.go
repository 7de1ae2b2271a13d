package blog

import "capstone-blog/internal/model"

type Kind int

const (
	// KindRender asks the caller to render View with Data.
	KindRender Kind = iota
	// KindRedirect asks the caller to send the client to Location.
	KindRedirect
	// KindNotFound means the addressed post does not exist; the caller
	// falls back to its not-found page.
	KindNotFound
)

type Status int

const (
	StatusOK Status = iota
	StatusClientError
	StatusNotFound
)

const (
	ViewIndex    = "index"
	ViewPost     = "post"
	ViewEdit     = "edit"
	ViewNotFound = "404"
)

const (
	siteTitle       = "My Blog"
	notFoundTitle   = "Not Found"
	notFoundMessage = "The page you are looking for does not exist."
)

// Outcome is the result of handling one request.
type Outcome struct {
	Kind      Kind
	View      string
	PageTitle string
	Status    Status
	Data      any
	Location  string
}

// FormData echoes what the user submitted, untrimmed.
type FormData struct {
	Title   string
	Content string
}

type IndexData struct {
	Posts    []model.Post
	Error    string
	FormData FormData
}

type PostData struct {
	Post model.Post
}

type EditData struct {
	Post  model.Post
	Error string
}

type NotFoundData struct {
	Message string
}

func render(view, title string, status Status, data any) Outcome {
	return Outcome{Kind: KindRender, View: view, PageTitle: title, Status: status, Data: data}
}

func redirect(location string) Outcome {
	return Outcome{Kind: KindRedirect, Status: StatusOK, Location: location}
}

func notFound() Outcome {
	return Outcome{Kind: KindNotFound, Status: StatusNotFound}
}
