package service

import (
	"context"
	"strings"

	"photogram/internal/models"
	"photogram/internal/repository"
)

var commentUpdateAllowList = []string{"content"}

// CommentService handles comments under a post.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type UpdateCommentInput struct {
	Actor     *models.User
	CommentID uint
	PostID    uint
	Updates   map[string]string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment creates a comment under an existing post. The parent post
// and owner references are checked at creation time.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	comment := &models.Comment{
		Content: content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns all comments of a post, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// GetComment returns a single comment scoped to its parent post.
func (s *CommentService) GetComment(ctx context.Context, commentID, postID uint) (*models.Comment, error) {
	return s.commentRepo.GetForPost(ctx, commentID, postID)
}

// UpdateComment applies an allow-listed update to a comment. The lookup is
// ownership-filtered unless the actor is an admin.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if err := checkAllowList(in.Updates, commentUpdateAllowList); err != nil {
		return nil, err
	}

	comment, err := s.lookupForActor(ctx, in.CommentID, in.PostID, in.Actor)
	if err != nil {
		return nil, err
	}

	if content, ok := in.Updates["content"]; ok {
		content = strings.TrimSpace(content)
		if content == "" {
			return nil, models.NewValidationError("Content is required")
		}
		comment.Content = content
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes a single comment; no cascade is needed. The lookup
// is ownership-filtered unless the actor is an admin.
func (s *CommentService) DeleteComment(ctx context.Context, actor *models.User, commentID, postID uint) (*models.Comment, error) {
	comment, err := s.lookupForActor(ctx, commentID, postID, actor)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *CommentService) lookupForActor(ctx context.Context, commentID, postID uint, actor *models.User) (*models.Comment, error) {
	if actor != nil && actor.IsAdmin() {
		return s.commentRepo.GetForPost(ctx, commentID, postID)
	}
	var actorID uint
	if actor != nil {
		actorID = actor.ID
	}
	return s.commentRepo.GetOwnedForPost(ctx, commentID, postID, actorID)
}
