package handlers

import (
	"net/http"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/repositories"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/logger"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	userRepository repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{userRepository: userRepo}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:username/follow", h.ToggleFollow)
}

// ToggleFollow flips the follow edge between the caller and the target user.
// The two edge sets are updated with atomic set operations; if the second
// write fails the first is compensated, so followers and following never
// stay mutually inconsistent.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	caller := getCaller(c)
	ctx := c.Request().Context()

	target, err := h.userRepository.GetUserByUsername(ctx, c.Param("username"))
	if err != nil {
		return httpError(err)
	}

	if target.ID.Hex() == caller.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Cannot follow yourself")
	}

	current, err := h.userRepository.GetUserByID(ctx, caller.ID)
	if err != nil {
		return httpError(err)
	}

	targetID := target.ID.Hex()
	isFollowing := current.IsFollowing(target.ID)

	if isFollowing {
		if err := h.userRepository.RemoveFollowing(ctx, caller.ID, targetID); err != nil {
			return httpError(err)
		}
		if err := h.userRepository.RemoveFollower(ctx, targetID, caller.ID); err != nil {
			// Roll the first write back rather than leave a one-sided edge.
			if rbErr := h.userRepository.AddFollowing(ctx, caller.ID, targetID); rbErr != nil {
				logger.Sugar.Errorw("follow rollback failed", "user_id", caller.ID, "target_id", targetID, "error", rbErr)
			}
			return httpError(err)
		}
	} else {
		if err := h.userRepository.AddFollowing(ctx, caller.ID, targetID); err != nil {
			return httpError(err)
		}
		if err := h.userRepository.AddFollower(ctx, targetID, caller.ID); err != nil {
			if rbErr := h.userRepository.RemoveFollowing(ctx, caller.ID, targetID); rbErr != nil {
				logger.Sugar.Errorw("follow rollback failed", "user_id", caller.ID, "target_id", targetID, "error", rbErr)
			}
			return httpError(err)
		}
	}

	followersCount := len(target.Followers)
	if isFollowing {
		followersCount--
	} else {
		followersCount++
	}

	return c.JSON(http.StatusOK, echo.Map{
		"isFollowing":    !isFollowing,
		"followersCount": followersCount,
	})
}
