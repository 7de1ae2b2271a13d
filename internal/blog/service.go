package blog

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"capstone-blog/internal/events"
	"capstone-blog/internal/model"
	"capstone-blog/internal/store"

	"go.uber.org/zap"
)

// Service validates requests, applies them to the store and decides what
// the caller should show next.
type Service struct {
	store     store.Store
	publisher events.Publisher
	logger    *zap.Logger
}

func NewService(st store.Store, pub events.Publisher, logger *zap.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{
		store:     st,
		publisher: pub,
		logger:    logger,
	}
}

// List renders every post, newest first.
func (s *Service) List(ctx context.Context) (Outcome, error) {
	return s.index(ctx, StatusOK, "", FormData{})
}

func (s *Service) Create(ctx context.Context, title, content string) (Outcome, error) {
	in, err := Validate(title, content)
	if err != nil {
		return s.index(ctx, StatusClientError, RequiredMessage, FormData{Title: title, Content: content})
	}

	post, err := s.store.Create(ctx, in.Title, in.Content)
	if err != nil {
		return Outcome{}, fmt.Errorf("create post: %w", err)
	}
	s.publish(ctx, model.EventCreated, post)
	return redirect(PostPath(post.ID)), nil
}

func (s *Service) Show(ctx context.Context, id int64) (Outcome, error) {
	post, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return notFound(), nil
	}
	return render(ViewPost, post.Title, StatusOK, PostData{Post: post}), nil
}

func (s *Service) EditForm(ctx context.Context, id int64) (Outcome, error) {
	post, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return notFound(), nil
	}
	return render(ViewEdit, editTitle(post), StatusOK, EditData{Post: post}), nil
}

func (s *Service) Update(ctx context.Context, id int64, title, content string) (Outcome, error) {
	current, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return notFound(), nil
	}

	in, err := Validate(title, content)
	if err != nil {
		attempted := current
		attempted.Title = title
		attempted.Content = content
		return render(ViewEdit, editTitle(current), StatusClientError, EditData{
			Post:  attempted,
			Error: RequiredMessage,
		}), nil
	}

	post, ok, err := s.store.Update(ctx, id, in.Title, in.Content)
	if err != nil {
		return Outcome{}, fmt.Errorf("update post: %w", err)
	}
	if !ok {
		// deleted between lookup and update
		return notFound(), nil
	}
	s.publish(ctx, model.EventUpdated, post)
	return redirect(PostPath(post.ID)), nil
}

func (s *Service) Delete(ctx context.Context, id int64) (Outcome, error) {
	post, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return notFound(), nil
	}

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return Outcome{}, fmt.Errorf("delete post: %w", err)
	}
	if !removed {
		return notFound(), nil
	}
	s.publish(ctx, model.EventDeleted, post)
	return redirect("/"), nil
}

// NotFound is the page shown for unknown posts and unmatched routes.
func (s *Service) NotFound() Outcome {
	return render(ViewNotFound, notFoundTitle, StatusNotFound, NotFoundData{Message: notFoundMessage})
}

// Count reports how many posts are stored.
func (s *Service) Count(ctx context.Context) (int, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

func (s *Service) index(ctx context.Context, status Status, msg string, form FormData) (Outcome, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("list posts: %w", err)
	}
	SortNewestFirst(posts)
	return render(ViewIndex, siteTitle, status, IndexData{
		Posts:    posts,
		Error:    msg,
		FormData: form,
	}), nil
}

func (s *Service) publish(ctx context.Context, typ model.EventType, post model.Post) {
	if err := s.publisher.Publish(ctx, model.NewPostEvent(typ, post)); err != nil {
		s.logger.Warn("Failed to publish post event",
			zap.String("type", string(typ)),
			zap.Int64("post_id", post.ID),
			zap.Error(err))
	}
}

// SortNewestFirst orders posts by CreatedAt descending. Posts created within
// the same clock tick keep creation order through their ids.
func SortNewestFirst(posts []model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

func PostPath(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10)
}

func editTitle(p model.Post) string {
	return "Edit " + p.Title
}
