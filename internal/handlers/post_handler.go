package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/models"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/repositories"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/blobstore"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/logger"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/sanitize"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxImageSize = 10 * 1024 * 1024 // 10MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
	blobStore         blobstore.BlobStore
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository, store blobstore.BlobStore) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
		userRepository:    userRepo,
		blobStore:         store,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(public, protected *echo.Group) {
	public.GET("/posts/:id", h.GetPost)
	public.GET("/users/:username/posts", h.GetUserPosts)
	protected.POST("/posts", h.CreatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
	protected.POST("/posts/:id/upvote", h.ToggleUpvote)
}

// CreatePost handles a multipart image upload and creates the post
func (h *PostHandler) CreatePost(c echo.Context) error {
	caller := getCaller(c)
	ctx := c.Request().Context()

	title := sanitize.Text(strings.TrimSpace(c.FormValue("title")))
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title is required")
	}
	if len(title) > 100 {
		return echo.NewHTTPError(http.StatusBadRequest, "Title must be less than 100 characters")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image is required")
	}
	if fileHeader.Size > maxImageSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File size too large. Maximum size is 10MB")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid file type. Please upload JPEG, PNG, GIF, or WebP images only")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	obj, err := h.blobStore.Store(ctx, data, contentType, "rjilat/posts")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	authorID, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid caller ID")
	}

	post := &models.Post{
		Title:           title,
		ImageURL:        obj.URL,
		ImageStorageKey: obj.StorageKey,
		UserID:          authorID,
		Status:          models.StatusActive,
	}

	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return httpError(err)
	}

	logger.Sugar.Infow("post created", "post_id", post.ID.Hex(), "user_id", caller.ID)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Post created successfully",
		"post": echo.Map{
			"id":        post.ID.Hex(),
			"title":     post.Title,
			"imageUrl":  post.ImageURL,
			"createdAt": post.CreatedAt,
		},
	})
}

// GetPost returns a single post by id. Hidden posts stay retrievable by
// their author and admins but are invisible to everyone else.
func (h *PostHandler) GetPost(c echo.Context) error {
	caller := getCaller(c)
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	if post.Status == models.StatusHidden {
		isOwner := caller != nil && caller.ID == post.UserID.Hex()
		if !isOwner && !caller.IsAdmin() {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
	}

	refs, err := authorRefs(ctx, h.userRepository, []models.Post{*post})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post": post.View(refs[post.UserID.Hex()], callerObjectID(caller)),
	})
}

// GetUserPosts lists a user's posts; hidden ones are visible to the owner
// and admins only.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	caller := getCaller(c)
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByUsername(ctx, c.Param("username"))
	if err != nil {
		return httpError(err)
	}

	includeHidden := caller.IsAdmin() || (caller != nil && caller.ID == user.ID.Hex())

	page, limit := parsePagination(c, 20, 50)
	skip := int64((page - 1) * limit)

	posts, err := h.postRepository.GetPostsByUserID(ctx, user.ID.Hex(), includeHidden, skip, int64(limit))
	if err != nil {
		return httpError(err)
	}

	ref := models.AuthorRef{ID: user.ID.Hex(), Username: user.Username}
	refs := map[string]models.AuthorRef{user.ID.Hex(): ref}

	return c.JSON(http.StatusOK, echo.Map{
		"posts": postViews(posts, refs, callerObjectID(caller)),
	})
}

// DeletePost lets a post's author remove it, cascading every comment and the
// stored image. Each step is idempotent against already-gone targets, so the
// whole cascade is safe to retry after a partial failure.
func (h *PostHandler) DeletePost(c echo.Context) error {
	caller := getCaller(c)
	postID := c.Param("id")
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return httpError(err)
	}

	if post.UserID.Hex() != caller.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	removed, err := h.commentRepository.DeleteByPostID(ctx, postID)
	if err != nil {
		return httpError(err)
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil {
		return httpError(err)
	}

	if err := h.blobStore.Delete(ctx, post.ImageStorageKey); err != nil {
		logger.Sugar.Warnw("failed to delete image", "storage_key", post.ImageStorageKey, "error", err)
	}

	logger.Sugar.Infow("post deleted", "post_id", postID, "comments_removed", removed)

	return c.JSON(http.StatusOK, echo.Map{
		"message":         "Post deleted successfully",
		"commentsRemoved": removed,
	})
}

// ToggleUpvote flips the caller's membership in the post's upvote set.
// Authors may never upvote their own posts. Two consecutive calls restore
// the original state, which is the only idempotence this operation offers.
func (h *PostHandler) ToggleUpvote(c echo.Context) error {
	caller := getCaller(c)
	postID := c.Param("id")
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return httpError(err)
	}

	if post.UserID.Hex() == caller.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Cannot upvote your own post")
	}

	callerID := callerObjectID(caller)
	hasUpvoted := post.HasUpvoted(callerID)

	if hasUpvoted {
		err = h.postRepository.RemoveUpvote(ctx, postID, caller.ID)
	} else {
		err = h.postRepository.AddUpvote(ctx, postID, caller.ID)
	}
	if err != nil {
		return httpError(err)
	}

	count := len(post.Upvotes)
	if hasUpvoted {
		count--
	} else {
		count++
	}

	return c.JSON(http.StatusOK, echo.Map{
		"hasUpvoted":   !hasUpvoted,
		"upvotesCount": count,
	})
}
