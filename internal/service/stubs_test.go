package service

import (
	"context"
	"errors"
	"testing"

	"photogram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	updateFieldsFn  func(context.Context, uint, map[string]interface{}) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, string) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, usernameFilter string) ([]models.User, error) {
	return s.listFn(ctx, usernameFilter)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFieldsFn:  func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _ string) ([]models.User, error) { return nil, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn                func(context.Context, *models.Post) error
	getByIDFn               func(context.Context, uint) (*models.Post, error)
	getOwnedFn              func(context.Context, uint, uint) (*models.Post, error)
	listByOwnerFn           func(context.Context, uint) ([]*models.Post, error)
	listFn                  func(context.Context, int, int) ([]*models.Post, error)
	listSavedByFn           func(context.Context, uint) ([]*models.Post, error)
	countFn                 func(context.Context) (int64, error)
	updateFn                func(context.Context, *models.Post) error
	deleteFn                func(context.Context, uint) error
	isLikedFn               func(context.Context, uint, uint) (bool, error)
	likeFn                  func(context.Context, uint, uint) error
	unlikeFn                func(context.Context, uint, uint) error
	isFavoritedFn           func(context.Context, uint, uint) (bool, error)
	favoriteFn              func(context.Context, uint, uint) error
	unfavoriteFn            func(context.Context, uint, uint) error
	likeUserIDsFn           func(context.Context, uint) ([]uint, error)
	favoriteUserIDsFn       func(context.Context, uint) ([]uint, error)
	removeLikesByUserFn     func(context.Context, uint) error
	removeFavoritesByUserFn func(context.Context, uint) error
	removeLikesByPostFn     func(context.Context, uint) error
	removeFavoritesByPostFn func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetOwned(ctx context.Context, id, ownerID uint) (*models.Post, error) {
	return s.getOwnedFn(ctx, id, ownerID)
}
func (s *postRepoStub) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Post, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) ListSavedBy(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listSavedByFn(ctx, userID)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) IsFavorited(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isFavoritedFn(ctx, userID, postID)
}
func (s *postRepoStub) Favorite(ctx context.Context, userID, postID uint) error {
	return s.favoriteFn(ctx, userID, postID)
}
func (s *postRepoStub) Unfavorite(ctx context.Context, userID, postID uint) error {
	return s.unfavoriteFn(ctx, userID, postID)
}
func (s *postRepoStub) LikeUserIDs(ctx context.Context, postID uint) ([]uint, error) {
	return s.likeUserIDsFn(ctx, postID)
}
func (s *postRepoStub) FavoriteUserIDs(ctx context.Context, postID uint) ([]uint, error) {
	return s.favoriteUserIDsFn(ctx, postID)
}
func (s *postRepoStub) RemoveLikesByUser(ctx context.Context, userID uint) error {
	return s.removeLikesByUserFn(ctx, userID)
}
func (s *postRepoStub) RemoveFavoritesByUser(ctx context.Context, userID uint) error {
	return s.removeFavoritesByUserFn(ctx, userID)
}
func (s *postRepoStub) RemoveLikesByPost(ctx context.Context, postID uint) error {
	return s.removeLikesByPostFn(ctx, postID)
}
func (s *postRepoStub) RemoveFavoritesByPost(ctx context.Context, postID uint) error {
	return s.removeFavoritesByPostFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:                func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:               func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		getOwnedFn:              func(_ context.Context, _, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listByOwnerFn:           func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		listFn:                  func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		listSavedByFn:           func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		countFn:                 func(_ context.Context) (int64, error) { return 0, nil },
		updateFn:                func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:                func(_ context.Context, _ uint) error { return nil },
		isLikedFn:               func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:                  func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:                func(_ context.Context, _, _ uint) error { return nil },
		isFavoritedFn:           func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		favoriteFn:              func(_ context.Context, _, _ uint) error { return nil },
		unfavoriteFn:            func(_ context.Context, _, _ uint) error { return nil },
		likeUserIDsFn:           func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		favoriteUserIDsFn:       func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		removeLikesByUserFn:     func(_ context.Context, _ uint) error { return nil },
		removeFavoritesByUserFn: func(_ context.Context, _ uint) error { return nil },
		removeLikesByPostFn:     func(_ context.Context, _ uint) error { return nil },
		removeFavoritesByPostFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn          func(context.Context, *models.Comment) error
	getByIDFn         func(context.Context, uint) (*models.Comment, error)
	getForPostFn      func(context.Context, uint, uint) (*models.Comment, error)
	getOwnedForPostFn func(context.Context, uint, uint, uint) (*models.Comment, error)
	listByPostFn      func(context.Context, uint) ([]*models.Comment, error)
	updateFn          func(context.Context, *models.Comment) error
	deleteFn          func(context.Context, uint) error
	deleteByPostFn    func(context.Context, uint) error
	deleteByUserFn    func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetForPost(ctx context.Context, id, postID uint) (*models.Comment, error) {
	return s.getForPostFn(ctx, id, postID)
}
func (s *commentRepoStub) GetOwnedForPost(ctx context.Context, id, postID, ownerID uint) (*models.Comment, error) {
	return s.getOwnedForPostFn(ctx, id, postID, ownerID)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) DeleteByPost(ctx context.Context, postID uint) error {
	return s.deleteByPostFn(ctx, postID)
}
func (s *commentRepoStub) DeleteByUser(ctx context.Context, userID uint) error {
	return s.deleteByUserFn(ctx, userID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:          func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:         func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		getForPostFn:      func(_ context.Context, _, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		getOwnedForPostFn: func(_ context.Context, _, _, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn:      func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:          func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		deleteByPostFn:    func(_ context.Context, _ uint) error { return nil },
		deleteByUserFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}
