package service

import (
	"context"
	"log/slog"

	"photogram/internal/models"
	"photogram/internal/repository"
	"photogram/internal/storage"
)

// CascadeService removes the records and assets that depend on a post or
// user being deleted. Deletes run strictly ordered within one parent but
// best-effort overall: a failed step is logged and the cascade moves on,
// so a crash mid-cascade can leave orphans that the next delete attempt
// cleans up. Nothing here is transactional, matching the non-transactional
// design of the API this replaces.
type CascadeService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	assets      *storage.AssetStore
	logger      *slog.Logger
}

func NewCascadeService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	assets *storage.AssetStore,
	logger *slog.Logger,
) *CascadeService {
	return &CascadeService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		assets:      assets,
		logger:      logger,
	}
}

// DeletePost removes a post with its dependents. Comments go first: their
// cleanup is keyed by post id, so they must still be reachable before the
// post row disappears. Like and favorite rows follow, then the image asset,
// then the row.
func (s *CascadeService) DeletePost(ctx context.Context, post *models.Post) error {
	if err := s.commentRepo.DeleteByPost(ctx, post.ID); err != nil {
		s.logger.Error("cascade: failed to delete comments of post",
			slog.Uint64("post_id", uint64(post.ID)),
			slog.String("error", err.Error()),
		)
	}

	if err := s.postRepo.RemoveLikesByPost(ctx, post.ID); err != nil {
		s.logger.Error("cascade: failed to remove likes of post",
			slog.Uint64("post_id", uint64(post.ID)),
			slog.String("error", err.Error()),
		)
	}
	if err := s.postRepo.RemoveFavoritesByPost(ctx, post.ID); err != nil {
		s.logger.Error("cascade: failed to remove favorites of post",
			slog.Uint64("post_id", uint64(post.ID)),
			slog.String("error", err.Error()),
		)
	}

	if err := s.assets.RemoveByURI(post.Image, storage.CollectionPosts); err != nil {
		s.logger.Error("cascade: failed to remove post image",
			slog.Uint64("post_id", uint64(post.ID)),
			slog.String("error", err.Error()),
		)
	}

	return s.postRepo.Delete(ctx, post.ID)
}

// DeleteUser removes a user with everything that references them:
//  1. every owned post, each via the post cascade (comments, asset, row);
//  2. comments the user left on other users' posts;
//  3. the user's like rows on every post;
//  4. the user's favorite rows on every post;
//  5. the user row and its avatar asset, unless the avatar is the shared
//     default.
//
// Steps across different posts are independent; within one post the
// comment cleanup precedes the post removal (see DeletePost).
func (s *CascadeService) DeleteUser(ctx context.Context, user *models.User) error {
	posts, err := s.postRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		s.logger.Error("cascade: failed to list posts of user",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()),
		)
	}
	for _, post := range posts {
		if err := s.DeletePost(ctx, post); err != nil {
			s.logger.Error("cascade: failed to delete post of user",
				slog.Uint64("user_id", uint64(user.ID)),
				slog.Uint64("post_id", uint64(post.ID)),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.commentRepo.DeleteByUser(ctx, user.ID); err != nil {
		s.logger.Error("cascade: failed to delete comments of user",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()),
		)
	}

	if err := s.postRepo.RemoveLikesByUser(ctx, user.ID); err != nil {
		s.logger.Error("cascade: failed to remove likes of user",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()),
		)
	}

	if err := s.postRepo.RemoveFavoritesByUser(ctx, user.ID); err != nil {
		s.logger.Error("cascade: failed to remove favorites of user",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()),
		)
	}

	if !storage.IsDefaultAvatar(user.Avatar) {
		if err := s.assets.RemoveByURI(user.Avatar, storage.CollectionAvatars); err != nil {
			s.logger.Error("cascade: failed to remove avatar of user",
				slog.Uint64("user_id", uint64(user.ID)),
				slog.String("error", err.Error()),
			)
		}
	}

	return s.userRepo.Delete(ctx, user.ID)
}
