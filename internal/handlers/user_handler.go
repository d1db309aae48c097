package handlers

import (
	"net/http"
	"strings"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/models"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile and user discovery requests
type UserHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		postRepository: postRepo,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(public *echo.Group) {
	public.GET("/users/search", h.SearchUsers)
	public.GET("/users/popular", h.PopularUsers)
	public.GET("/users/:username", h.GetProfile)
}

// GetProfile returns a user's public profile with graph counts and the
// caller's follow state.
func (h *UserHandler) GetProfile(c echo.Context) error {
	caller := getCaller(c)
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByUsername(ctx, c.Param("username"))
	if err != nil {
		return httpError(err)
	}

	isFollowing := false
	if caller != nil {
		for _, f := range user.Followers {
			if f.Hex() == caller.ID {
				isFollowing = true
				break
			}
		}
	}

	includeHidden := caller.IsAdmin() || (caller != nil && caller.ID == user.ID.Hex())
	postsCount, err := h.postRepository.CountPostsByUserID(ctx, user.ID.Hex(), includeHidden)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":             user.ID.Hex(),
			"username":       user.Username,
			"followersCount": len(user.Followers),
			"followingCount": len(user.Following),
			"postsCount":     postsCount,
			"isFollowing":    isFollowing,
			"createdAt":      user.CreatedAt,
		},
	})
}

// SearchUsers searches users by username substring
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return c.JSON(http.StatusOK, echo.Map{"users": []models.User{}})
	}

	users, err := h.userRepository.SearchUsers(c.Request().Context(), query, 20)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"users": compactUsers(users)})
}

// PopularUsers returns users ordered by follower count
func (h *UserHandler) PopularUsers(c echo.Context) error {
	users, err := h.userRepository.GetPopularUsers(c.Request().Context(), 10)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"users": compactUsers(users)})
}

func compactUsers(users []models.User) []echo.Map {
	out := make([]echo.Map, len(users))
	for i, u := range users {
		out[i] = echo.Map{
			"id":             u.ID.Hex(),
			"username":       u.Username,
			"followersCount": len(u.Followers),
		}
	}
	return out
}
