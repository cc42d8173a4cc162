package service

import (
	"context"
	"strings"

	"photogram/internal/models"
	"photogram/internal/repository"
	"photogram/internal/storage"
	"photogram/internal/validation"
)

// userUpdateAllowList is the set of profile fields a user update may touch.
// Password and avatar have their own endpoints and are never part of it.
var userUpdateAllowList = []string{"fullname", "username", "email", "website", "bio", "phone", "genre"}

// UserService handles profile reads and updates, avatar replacement, and
// user deletion through the cascade.
type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	cascade  *CascadeService
	assets   *storage.AssetStore
}

type UpdateProfileInput struct {
	TargetID uint
	// Updates holds the raw body fields; every key must be allow-listed
	// or the whole update is rejected.
	Updates map[string]string
}

func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	cascade *CascadeService,
	assets *storage.AssetStore,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
		cascade:  cascade,
		assets:   assets,
	}
}

// ListUsers returns all users, optionally filtered by a username substring.
func (s *UserService) ListUsers(ctx context.Context, usernameFilter string) ([]models.User, error) {
	return s.userRepo.List(ctx, usernameFilter)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByUsername returns the user with their owned posts and saved
// posts loaded by reverse lookup.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}

	owned, err := s.postRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Posts = make([]models.Post, 0, len(owned))
	for _, post := range owned {
		user.Posts = append(user.Posts, *post)
	}

	saved, err := s.postRepo.ListSavedBy(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.SavedPosts = make([]models.Post, 0, len(saved))
	for _, post := range saved {
		user.SavedPosts = append(user.SavedPosts, *post)
	}

	return user, nil
}

// UpdateProfile applies an allow-listed profile update. Self-service
// authorization (owner or admin) is enforced by the route layer.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if err := checkAllowList(in.Updates, userUpdateAllowList); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{}, len(in.Updates))
	for key, value := range in.Updates {
		value = strings.TrimSpace(value)
		switch key {
		case "username":
			if err := validation.ValidateUsername(value); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
		case "email":
			value = strings.ToLower(value)
			if err := validation.ValidateEmail(value); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
		case "phone":
			if value != "" {
				if err := validation.ValidatePhone(value); err != nil {
					return nil, models.NewValidationError(err.Error())
				}
			}
		}
		fields[key] = value
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, user.ID, fields); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, user.ID)
}

// ChangeAvatar swaps the user's avatar for a freshly stored upload,
// removing the previous asset unless it is the shared default.
func (s *UserService) ChangeAvatar(ctx context.Context, userID uint, newAvatar string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !storage.IsDefaultAvatar(user.Avatar) {
		_ = s.assets.RemoveByURI(user.Avatar, storage.CollectionAvatars)
	}

	user.Avatar = newAvatar
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes the user and everything referencing them through the
// cascade.
func (s *UserService) DeleteUser(ctx context.Context, targetID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.cascade.DeleteUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
