package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/models"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/repositories"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/blobstore"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// AdminHandler implements the moderation surface: single and bulk
// hide/show/delete across posts and comments, user removal, and the
// append-only action log written as a side effect of every operation.
type AdminHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
	logRepository     repositories.AdminLogRepository
	blobStore         blobstore.BlobStore
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	logRepo repositories.AdminLogRepository,
	store blobstore.BlobStore,
) *AdminHandler {
	return &AdminHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
		userRepository:    userRepo,
		logRepository:     logRepo,
		blobStore:         store,
	}
}

// RegisterAdminRoutes registers admin-only routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.DELETE("/posts/:id", h.DeletePost)
	g.PATCH("/posts/:id/status", h.SetPostStatus)
	g.POST("/posts/bulk", h.BulkPosts)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.PATCH("/comments/:id/status", h.SetCommentStatus)
	g.POST("/comments/bulk", h.BulkComments)
	g.DELETE("/users/:id", h.DeleteUser)
	g.GET("/posts", h.ListPosts)
	g.GET("/comments", h.ListComments)
	g.GET("/logs", h.ListLogs)
}

// DeletePost removes a post and every comment at any depth. Comments are
// deleted by post id in one pass, which takes all levels of every subtree
// at once; then the post record and its image go.
func (h *AdminHandler) DeletePost(c echo.Context) error {
	postID := c.Param("id")
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return httpError(err)
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

	h.log(c, models.ActionDeletePost, models.TargetPost, postID, "", post.Title,
		fmt.Sprintf("deleted post %q and %d comments", post.Title, removed))

	return c.JSON(http.StatusOK, echo.Map{
		"message":         "Post deleted successfully",
		"commentsRemoved": removed,
	})
}

// DeleteComment removes a comment and its whole reply subtree, detaching it
// from the post's root list first.
func (h *AdminHandler) DeleteComment(c echo.Context) error {
	commentID := c.Param("id")
	ctx := c.Request().Context()

	comment, err := h.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		return httpError(err)
	}

	// Detach from the post's root list; a no-op for replies.
	if err := h.postRepository.RemoveRootComment(ctx, comment.PostID.Hex(), commentID); err != nil {
		return httpError(err)
	}

	removed, err := deleteCommentSubtrees(ctx, h.commentRepository, []string{commentID})
	if err != nil {
		return httpError(err)
	}

	h.log(c, models.ActionDeleteComment, models.TargetComment, commentID, "", "",
		fmt.Sprintf("deleted comment and %d replies", removed-1))

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Comment deleted successfully",
		"deletedCount": removed,
	})
}

// SetPostStatus performs a single status transition on a post
func (h *AdminHandler) SetPostStatus(c echo.Context) error {
	postID := c.Param("id")
	ctx := c.Request().Context()

	var req models.SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		return httpError(err)
	}

	if err := h.postRepository.SetStatus(ctx, postID, status); err != nil {
		return httpError(err)
	}

	h.log(c, statusAction(models.TargetPost, status), models.TargetPost, postID, "", "",
		fmt.Sprintf("set post status to %s", status))

	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated", "status": status})
}

// SetCommentStatus performs a single status transition on a comment
func (h *AdminHandler) SetCommentStatus(c echo.Context) error {
	commentID := c.Param("id")
	ctx := c.Request().Context()

	var req models.SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		return httpError(err)
	}

	if err := h.commentRepository.SetStatus(ctx, commentID, status); err != nil {
		return httpError(err)
	}

	h.log(c, statusAction(models.TargetComment, status), models.TargetComment, commentID, "", "",
		fmt.Sprintf("set comment status to %s", status))

	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated", "status": status})
}

// BulkPosts applies delete, hide or show to a batch of posts. Deletion
// cascades every comment of every post. Exactly one log entry is written
// for the whole batch.
func (h *AdminHandler) BulkPosts(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.BulkActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	switch req.Action {
	case "delete":
		// Fetch first for the storage keys; unknown ids are skipped.
		posts, err := h.postRepository.GetPostsByIDs(ctx, req.IDs)
		if err != nil {
			return httpError(err)
		}

		commentsRemoved, err := h.commentRepository.DeleteByPostIDs(ctx, req.IDs)
		if err != nil {
			return httpError(err)
		}

		deleted, err := h.postRepository.DeleteMany(ctx, req.IDs)
		if err != nil {
			return httpError(err)
		}

		for _, p := range posts {
			if err := h.blobStore.Delete(ctx, p.ImageStorageKey); err != nil {
				logger.Sugar.Warnw("failed to delete image", "storage_key", p.ImageStorageKey, "error", err)
			}
		}

		h.log(c, models.ActionBulkDeletePosts, models.TargetPost, "", "", "",
			fmt.Sprintf("deleted %d posts and %d comments", deleted, commentsRemoved))

		return c.JSON(http.StatusOK, echo.Map{
			"message":         fmt.Sprintf("Successfully deleted %d posts and their comments", deleted),
			"deletedCount":    deleted,
			"commentsRemoved": commentsRemoved,
		})

	case "hide", "show":
		status := models.StatusHidden
		action := models.ActionBulkHidePosts
		if req.Action == "show" {
			status = models.StatusActive
			action = models.ActionBulkShowPosts
		}

		updated, err := h.postRepository.SetStatusMany(ctx, req.IDs, status)
		if err != nil {
			return httpError(err)
		}

		h.log(c, action, models.TargetPost, "", "", "",
			fmt.Sprintf("set status of %d posts to %s", updated, status))

		return c.JSON(http.StatusOK, echo.Map{
			"message":      fmt.Sprintf("Successfully updated %d posts", updated),
			"updatedCount": updated,
		})
	}

	return echo.NewHTTPError(http.StatusBadRequest, "Invalid action")
}

// BulkComments applies delete, hide or show to a batch of comments. Deletion
// cascades subtrees; a batch holding both an ancestor and its descendant is
// safe because the recursion recomputes existence level by level. One log
// entry covers the whole batch.
func (h *AdminHandler) BulkComments(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.BulkActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	switch req.Action {
	case "delete":
		// Detach roots from their posts before the subtrees go.
		targets, err := h.commentRepository.GetCommentsByIDs(ctx, req.IDs)
		if err != nil {
			return httpError(err)
		}
		for _, cm := range targets {
			if cm.IsRoot() {
				if err := h.postRepository.RemoveRootComment(ctx, cm.PostID.Hex(), cm.ID.Hex()); err != nil {
					return httpError(err)
				}
			}
		}

		removed, err := deleteCommentSubtrees(ctx, h.commentRepository, req.IDs)
		if err != nil {
			return httpError(err)
		}

		h.log(c, models.ActionBulkDeleteComments, models.TargetComment, "", "", "",
			fmt.Sprintf("deleted %d comments including replies", removed))

		return c.JSON(http.StatusOK, echo.Map{
			"message":      fmt.Sprintf("Successfully deleted %d comments and their replies", removed),
			"deletedCount": removed,
		})

	case "hide", "show":
		status := models.StatusHidden
		action := models.ActionBulkHideComments
		if req.Action == "show" {
			status = models.StatusActive
			action = models.ActionBulkShowComments
		}

		updated, err := h.commentRepository.SetStatusMany(ctx, req.IDs, status)
		if err != nil {
			return httpError(err)
		}

		h.log(c, action, models.TargetComment, "", "", "",
			fmt.Sprintf("set status of %d comments to %s", updated, status))

		return c.JSON(http.StatusOK, echo.Map{
			"message":      fmt.Sprintf("Successfully updated %d comments", updated),
			"updatedCount": updated,
		})
	}

	return echo.NewHTTPError(http.StatusBadRequest, "Invalid action")
}

// DeleteUser removes a user and all dependent data: their posts with every
// comment on them, their comments elsewhere, their graph edges in other
// users' sets, and their upvotes.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID := c.Param("id")
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return httpError(err)
	}

	posts, err := h.postRepository.GetPostsByUserID(ctx, userID, true, 0, 0)
	if err != nil {
		return httpError(err)
	}

	postIDs := make([]string, len(posts))
	ownPosts := make(map[string]bool, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID.Hex()
		ownPosts[postIDs[i]] = true
	}

	// The user's comments on other posts take their reply subtrees with
	// them, and their roots leave those posts' comment lists so the counts
	// stay right. Comments on the user's own posts go with the posts.
	stray, err := h.commentRepository.GetCommentsByUserID(ctx, userID)
	if err != nil {
		return httpError(err)
	}
	strayIDs := make([]string, 0, len(stray))
	for _, cm := range stray {
		if ownPosts[cm.PostID.Hex()] {
			continue
		}
		if cm.IsRoot() {
			if err := h.postRepository.RemoveRootComment(ctx, cm.PostID.Hex(), cm.ID.Hex()); err != nil {
				return httpError(err)
			}
		}
		strayIDs = append(strayIDs, cm.ID.Hex())
	}
	if len(strayIDs) > 0 {
		if _, err := deleteCommentSubtrees(ctx, h.commentRepository, strayIDs); err != nil {
			return httpError(err)
		}
	}

	if _, err := h.commentRepository.DeleteByPostIDs(ctx, postIDs); err != nil {
		return httpError(err)
	}
	if _, err := h.commentRepository.DeleteByUserID(ctx, userID); err != nil {
		return httpError(err)
	}
	if _, err := h.postRepository.DeleteMany(ctx, postIDs); err != nil {
		return httpError(err)
	}
	if err := h.userRepository.PruneUserEdges(ctx, userID); err != nil {
		return httpError(err)
	}
	if err := h.postRepository.PullUpvotesByUser(ctx, userID); err != nil {
		return httpError(err)
	}
	if err := h.userRepository.DeleteUser(ctx, userID); err != nil {
		return httpError(err)
	}

	for _, p := range posts {
		if err := h.blobStore.Delete(ctx, p.ImageStorageKey); err != nil {
			logger.Sugar.Warnw("failed to delete image", "storage_key", p.ImageStorageKey, "error", err)
		}
	}

	h.log(c, models.ActionDeleteUser, models.TargetUser, userID, user.Username, "",
		fmt.Sprintf("deleted user %q with %d posts", user.Username, len(posts)))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User and all associated data deleted successfully",
	})
}

// ListPosts returns a page of all posts, hidden ones included, for the
// moderation view
func (h *AdminHandler) ListPosts(c echo.Context) error {
	ctx := c.Request().Context()
	page, limit := parsePagination(c, 50, 100)
	skip := int64((page - 1) * limit)

	posts, err := h.postRepository.ListPosts(ctx, skip, int64(limit))
	if err != nil {
		return httpError(err)
	}
	total, err := h.postRepository.CountPosts(ctx)
	if err != nil {
		return httpError(err)
	}

	refs, err := authorRefs(ctx, h.userRepository, posts)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts": postViews(posts, refs, callerObjectID(getCaller(c))),
		"meta": echo.Map{
			"currentPage": page,
			"totalItems":  total,
		},
	})
}

// ListComments returns a page of all comments for the moderation view
func (h *AdminHandler) ListComments(c echo.Context) error {
	ctx := c.Request().Context()
	page, limit := parsePagination(c, 50, 100)
	skip := int64((page - 1) * limit)

	comments, err := h.commentRepository.ListComments(ctx, skip, int64(limit))
	if err != nil {
		return httpError(err)
	}
	total, err := h.commentRepository.CountComments(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"comments": comments,
		"meta": echo.Map{
			"currentPage": page,
			"totalItems":  total,
		},
	})
}

// ListLogs returns a page of the moderation audit log
func (h *AdminHandler) ListLogs(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	logs, total, err := h.logRepository.ListLogs(c.QueryParam("action"), c.QueryParam("adminId"), page, 50)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"logs": logs,
		"meta": echo.Map{
			"currentPage": page,
			"totalItems":  total,
		},
	})
}

// log appends one audit entry. Failures are reported but never fail the
// moderation action itself.
func (h *AdminHandler) log(c echo.Context, action, targetType, targetID, targetUsername, targetTitle, details string) {
	caller := getCaller(c)

	entry := &models.AdminActionLog{
		AdminID:        caller.ID,
		Action:         action,
		TargetType:     targetType,
		TargetID:       targetID,
		TargetUsername: targetUsername,
		TargetTitle:    targetTitle,
		Details:        details,
		IPAddress:      c.RealIP(),
		UserAgent:      c.Request().UserAgent(),
	}

	if err := h.logRepository.Create(entry); err != nil {
		logger.Sugar.Errorw("failed to write admin log", "action", action, "error", err)
		return
	}

	logger.Sugar.Infow("admin action", "action", action, "admin_id", caller.ID, "details", details)
}

func statusAction(targetType string, status models.Status) string {
	verb := "show"
	switch status {
	case models.StatusHidden:
		verb = "hide"
	case models.StatusReported:
		verb = "report"
	}
	return fmt.Sprintf("%s_%s", verb, targetType)
}
