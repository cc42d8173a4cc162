package service

import (
	"context"
	"strings"

	"photogram/internal/models"
	"photogram/internal/repository"
	"photogram/internal/storage"
)

// DefaultPageSize is the number of posts returned per page when the
// client does not say otherwise.
const DefaultPageSize = 5

// postUpdateAllowList is the set of fields a post update may touch through
// the request body. The image is replaced through the multipart file, not
// a body field.
var postUpdateAllowList = []string{"title", "description"}

// PostService handles photo posts: creation, listing, field updates under
// the allow-list rule, like/save toggles, and delegation to the cascade on
// delete.
type PostService struct {
	postRepo repository.PostRepository
	cascade  *CascadeService
	assets   *storage.AssetStore
}

type CreatePostInput struct {
	UserID      uint
	Title       string
	Description string
	// Image is the public URI of the already-stored upload.
	Image string
}

type UpdatePostInput struct {
	Actor  *models.User
	PostID uint
	// Updates holds the raw body fields; every key must be allow-listed
	// or the whole update is rejected.
	Updates map[string]string
	// NewImage, when non-empty, is the public URI of a freshly stored
	// replacement upload.
	NewImage string
}

func NewPostService(
	postRepo repository.PostRepository,
	cascade *CascadeService,
	assets *storage.AssetStore,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		cascade:  cascade,
		assets:   assets,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Image == "" {
		return nil, models.NewValidationError("No file selected")
	}

	post := &models.Post{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Image:       in.Image,
		UserID:      in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.GetPost(ctx, post.ID)
}

// GetPost returns a post with its owner and computed like/favorite id sets.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns one page of posts, newest first. pageSize <= 0 falls
// back to DefaultPageSize; page <= 0 means the first page.
func (s *PostService) ListPosts(ctx context.Context, page, pageSize int) ([]*models.Post, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	posts, err := s.postRepo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if err := s.enrich(ctx, post); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// CountPosts returns the total number of posts.
func (s *PostService) CountPosts(ctx context.Context) (int64, error) {
	return s.postRepo.Count(ctx)
}

// UpdatePost applies an allow-listed field update, optionally swapping the
// image asset. The lookup is ownership-filtered unless the actor is an
// admin, so a non-owner sees NotFound rather than Forbidden.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := checkAllowList(in.Updates, postUpdateAllowList); err != nil {
		// The freshly stored replacement must not leak when the update
		// is rejected as a whole.
		if in.NewImage != "" {
			_ = s.assets.RemoveByURI(in.NewImage, storage.CollectionPosts)
		}
		return nil, err
	}

	post, err := s.lookupForActor(ctx, in.PostID, in.Actor)
	if err != nil {
		if in.NewImage != "" {
			_ = s.assets.RemoveByURI(in.NewImage, storage.CollectionPosts)
		}
		return nil, err
	}

	if title, ok := in.Updates["title"]; ok {
		if strings.TrimSpace(title) == "" {
			return nil, models.NewValidationError("Title is required")
		}
		post.Title = strings.TrimSpace(title)
	}
	if description, ok := in.Updates["description"]; ok {
		post.Description = strings.TrimSpace(description)
	}
	if in.NewImage != "" {
		_ = s.assets.RemoveByURI(post.Image, storage.CollectionPosts)
		post.Image = in.NewImage
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.GetPost(ctx, post.ID)
}

// DeletePost removes a post and its dependents through the cascade. The
// lookup is ownership-filtered unless the actor is an admin.
func (s *PostService) DeletePost(ctx context.Context, actor *models.User, postID uint) (*models.Post, error) {
	post, err := s.lookupForActor(ctx, postID, actor)
	if err != nil {
		return nil, err
	}

	if err := s.cascade.DeletePost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// ToggleLike flips the like membership of userID on the post: present
// becomes absent, absent becomes present. Applying it twice restores the
// original state.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if liked {
		err = s.postRepo.Unlike(ctx, userID, postID)
	} else {
		err = s.postRepo.Like(ctx, userID, postID)
	}
	if err != nil {
		return nil, err
	}

	return s.GetPost(ctx, postID)
}

// ToggleFavorite flips the saved-post membership of userID on the post.
func (s *PostService) ToggleFavorite(ctx context.Context, postID, userID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	saved, err := s.postRepo.IsFavorited(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if saved {
		err = s.postRepo.Unfavorite(ctx, userID, postID)
	} else {
		err = s.postRepo.Favorite(ctx, userID, postID)
	}
	if err != nil {
		return nil, err
	}

	return s.GetPost(ctx, postID)
}

func (s *PostService) lookupForActor(ctx context.Context, postID uint, actor *models.User) (*models.Post, error) {
	if actor != nil && actor.IsAdmin() {
		return s.postRepo.GetByID(ctx, postID)
	}
	var actorID uint
	if actor != nil {
		actorID = actor.ID
	}
	return s.postRepo.GetOwned(ctx, postID, actorID)
}

func (s *PostService) enrich(ctx context.Context, post *models.Post) error {
	likes, err := s.postRepo.LikeUserIDs(ctx, post.ID)
	if err != nil {
		return err
	}
	favorites, err := s.postRepo.FavoriteUserIDs(ctx, post.ID)
	if err != nil {
		return err
	}
	post.LikedBy = likes
	post.SavedBy = favorites
	return nil
}

// checkAllowList rejects the entire update when any key falls outside the
// allowed fields: partial application of the valid subset is not performed.
func checkAllowList(updates map[string]string, allowed []string) error {
	for key := range updates {
		found := false
		for _, field := range allowed {
			if key == field {
				found = true
				break
			}
		}
		if !found {
			return models.NewValidationError("Invalid update fields!")
		}
	}
	return nil
}
