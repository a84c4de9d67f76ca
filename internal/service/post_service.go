package service

import (
	"context"
	"strings"
	"time"

	"campusnet/internal/middleware"
	"campusnet/internal/models"
	"campusnet/internal/notifications"
	"campusnet/internal/observability"
	"campusnet/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PostService handles post creation and feed assembly.
type PostService struct {
	posts    repository.PostRepository
	friends  repository.FriendRepository
	notifier notifications.Publisher
}

// NewPostService creates a new PostService. notifier may be nil.
func NewPostService(posts repository.PostRepository, friends repository.FriendRepository, notifier notifications.Publisher) *PostService {
	return &PostService{posts: posts, friends: friends, notifier: notifier}
}

// Create validates and persists a post authored by userID, then fans a
// realtime event out to the author's accepted friends.
func (s *PostService) Create(ctx context.Context, userID uint, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Post content is required")
	}
	if len(content) > models.MaxPostContentLength {
		return nil, models.NewValidationError("Post content is too long")
	}

	post := &models.Post{
		UserID:  userID,
		Content: content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.fanOutNewPost(ctx, post)
	return post, nil
}

func (s *PostService) fanOutNewPost(ctx context.Context, post *models.Post) {
	if s.notifier == nil {
		return
	}
	friendIDs, err := s.friends.GetFriendIDs(ctx, post.UserID)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "failed to resolve friends for fan-out",
			"post_id", post.ID, "error", err)
		return
	}
	for _, id := range friendIDs {
		if err := s.notifier.PublishUser(ctx, id, notifications.EventNewPost,
			map[string]uint{"post_id": post.ID, "author_id": post.UserID}); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to publish post event",
				"post_id", post.ID, "friend_id", id, "error", err)
		}
	}
}

// Feed returns the merged timeline of the viewer's accepted friends,
// newest first.
func (s *PostService) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	span, ctx := observability.NewSpan(ctx, "feed.build")
	defer span.End()
	span.AddAttributes(attribute.Int("feed.limit", limit), attribute.Int("feed.offset", offset))

	start := time.Now()
	posts, err := s.posts.ListFeed(ctx, viewerID, limit, offset)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	middleware.FeedBuildLatency.Observe(time.Since(start).Seconds())
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// ListByAuthor returns a single user's posts, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	posts, err := s.posts.ListByAuthor(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}
