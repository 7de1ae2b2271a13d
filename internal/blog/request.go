package blog

import "context"

type Op string

const (
	OpList     Op = "list"
	OpCreate   Op = "create"
	OpRead     Op = "read"
	OpEditForm Op = "edit-form"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
)

// Request is the transport-neutral form of an inbound request.
// Missing title or content arrive as empty strings.
type Request struct {
	Op      Op
	ID      int64
	Title   string
	Content string
}

// Handle dispatches req to the matching operation. Unknown operations
// get the not-found page.
func (s *Service) Handle(ctx context.Context, req Request) (Outcome, error) {
	switch req.Op {
	case OpList:
		return s.List(ctx)
	case OpCreate:
		return s.Create(ctx, req.Title, req.Content)
	case OpRead:
		return s.Show(ctx, req.ID)
	case OpEditForm:
		return s.EditForm(ctx, req.ID)
	case OpUpdate:
		return s.Update(ctx, req.ID, req.Title, req.Content)
	case OpDelete:
		return s.Delete(ctx, req.ID)
	default:
		return s.NotFound(), nil
	}
}
