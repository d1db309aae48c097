package handlers

import (
	"math"
	"net/http"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/models"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/repositories"
	"github.com/labstack/echo/v4"
)

// followingFeedLimit caps the reverse-chronological following feed.
const followingFeedLimit = 50

// FeedHandler composes the public and following post listings
type FeedHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(public, protected *echo.Group) {
	public.GET("/posts", h.ListPosts)
	protected.GET("/posts/following", h.FollowingFeed)
}

// ListPosts returns a sorted, paginated page of visible posts annotated with
// the caller's upvote state. Hidden posts are excluded; reported posts stay
// visible.
func (h *FeedHandler) ListPosts(c echo.Context) error {
	caller := getCaller(c)
	ctx := c.Request().Context()

	page, limit := parsePagination(c, 20, 50)
	sortBy := c.QueryParam("sortBy")
	switch sortBy {
	case models.SortNewest, models.SortOldest, models.SortPopular:
	default:
		sortBy = models.SortNewest
	}

	skip := int64((page - 1) * limit)

	posts, err := h.postRepository.ListVisiblePosts(ctx, sortBy, skip, int64(limit))
	if err != nil {
		return httpError(err)
	}

	totalItems, err := h.postRepository.CountVisiblePosts(ctx)
	if err != nil {
		return httpError(err)
	}

	refs, err := authorRefs(ctx, h.userRepository, posts)
	if err != nil {
		return httpError(err)
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"posts": postViews(posts, refs, callerObjectID(caller)),
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      totalItems,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

// FollowingFeed returns the latest posts authored by users the caller
// follows, reverse-chronological, capped at a fixed size.
func (h *FeedHandler) FollowingFeed(c echo.Context) error {
	caller := getCaller(c)
	ctx := c.Request().Context()

	current, err := h.userRepository.GetUserByID(ctx, caller.ID)
	if err != nil {
		return httpError(err)
	}

	if len(current.Following) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"posts":   []models.PostView{},
			"message": "You are not following anyone yet. Discover users to follow!",
		})
	}

	posts, err := h.postRepository.GetPostsByAuthorIDs(ctx, current.Following, followingFeedLimit)
	if err != nil {
		return httpError(err)
	}

	refs, err := authorRefs(ctx, h.userRepository, posts)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts": postViews(posts, refs, callerObjectID(caller)),
	})
}
