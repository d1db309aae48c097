package handlers

import (
	"context"
	"net/http"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/apperr"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/models"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/repositories"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/sanitize"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
	}
}

// RegisterCommentRoutes registers public comment routes
func (h *CommentHandler) RegisterCommentRoutes(public, protected *echo.Group) {
	public.GET("/posts/:id/comments", h.GetComments)
	protected.POST("/posts/:id/comments", h.CreateComment)
}

// GetComments returns the nested comment forest for a post
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID := c.Param("id")
	ctx := c.Request().Context()

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		return httpError(err)
	}

	comments, err := h.commentRepository.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return httpError(err)
	}

	authors, err := h.commentAuthors(ctx, comments)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"comments": models.BuildCommentTree(comments, authors),
	})
}

// CreateComment creates a root comment or a reply on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	caller := getCaller(c)
	postID := c.Param("id")
	ctx := c.Request().Context()

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	req.Content = sanitize.Text(req.Content)

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		return httpError(err)
	}

	// A reply's parent must exist and belong to the same post; anything else
	// would let a reply be injected into a foreign thread.
	var parentID *primitive.ObjectID
	if req.ParentCommentID != "" {
		parent, err := h.commentRepository.GetCommentByID(ctx, req.ParentCommentID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
			}
			return httpError(err)
		}
		if parent.PostID.Hex() != postID {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		parentID = &parent.ID
	}

	authorID, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid caller ID")
	}
	postObjID, _ := primitive.ObjectIDFromHex(postID)

	comment := &models.Comment{
		Content:         req.Content,
		UserID:          authorID,
		PostID:          postObjID,
		ParentCommentID: parentID,
		Status:          models.StatusActive,
	}

	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return httpError(err)
	}

	// Only root comments join the post's comment list; the displayed comment
	// count is the root count.
	if comment.IsRoot() {
		if err := h.postRepository.AddRootComment(ctx, postID, comment.ID.Hex()); err != nil {
			return httpError(err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Comment created successfully",
		"comment": echo.Map{
			"id":        comment.ID.Hex(),
			"content":   comment.Content,
			"createdAt": comment.CreatedAt,
		},
	})
}

func (h *CommentHandler) commentAuthors(ctx context.Context, comments []models.Comment) (map[string]string, error) {
	seen := make(map[primitive.ObjectID]bool)
	ids := make([]primitive.ObjectID, 0, len(comments))
	for _, cm := range comments {
		if !seen[cm.UserID] {
			seen[cm.UserID] = true
			ids = append(ids, cm.UserID)
		}
	}

	users, err := h.userRepository.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	authors := make(map[string]string, len(users))
	for _, u := range users {
		authors[u.ID.Hex()] = u.Username
	}
	return authors, nil
}

// deleteCommentSubtrees removes every comment in ids together with all
// transitive replies, returning the total number removed. Children are
// discovered level by level, so existence is recomputed before each
// recursive step; a batch containing both an ancestor and its descendant
// deletes each comment exactly once.
func deleteCommentSubtrees(ctx context.Context, comments repositories.CommentRepository, ids []string) (int64, error) {
	children, err := comments.GetCommentsByParentIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	var removed int64
	if len(children) > 0 {
		childIDs := make([]string, len(children))
		for i, child := range children {
			childIDs[i] = child.ID.Hex()
		}
		removed, err = deleteCommentSubtrees(ctx, comments, childIDs)
		if err != nil {
			return removed, err
		}
	}

	n, err := comments.DeleteByIDs(ctx, ids)
	return removed + n, err
}
