package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/apperr"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/middleware"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/models"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// httpError maps a typed core error onto the HTTP status taxonomy:
// validation 400, not-found 404, forbidden 403, everything else 500.
func httpError(err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperr.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperr.KindForbidden:
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func getCaller(c echo.Context) *models.Caller {
	return middleware.CallerFromContext(c)
}

// callerObjectID returns the caller's id as an ObjectID, or the zero id for
// anonymous requests.
func callerObjectID(caller *models.Caller) primitive.ObjectID {
	if caller == nil {
		return primitive.NilObjectID
	}
	objID, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return primitive.NilObjectID
	}
	return objID
}

// parsePagination reads page/limit query params with the usual bounds.
func parsePagination(c echo.Context, defaultLimit, maxLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}

// authorRefs fetches the AuthorRef for every distinct author of posts.
func authorRefs(ctx context.Context, users repositories.UserRepository, posts []models.Post) (map[string]models.AuthorRef, error) {
	seen := make(map[primitive.ObjectID]bool)
	ids := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}

	authors, err := users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	refs := make(map[string]models.AuthorRef, len(authors))
	for _, u := range authors {
		refs[u.ID.Hex()] = models.AuthorRef{ID: u.ID.Hex(), Username: u.Username}
	}
	return refs, nil
}

// postViews annotates posts with author info and the caller's upvote state.
func postViews(posts []models.Post, refs map[string]models.AuthorRef, callerID primitive.ObjectID) []models.PostView {
	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		views[i] = p.View(refs[p.UserID.Hex()], callerID)
	}
	return views
}
