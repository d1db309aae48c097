package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/apperr"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/models"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/blobstore"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes mirroring the Mongo/Postgres implementations
// closely enough to exercise handler semantics: set-valued fields behave as
// sets, deletes are idempotent, and list operations replicate the stored
// sort orders.

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, m := range set {
		if m == id {
			return set
		}
	}
	return append(set, id)
}

func pullFromSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, m := range set {
		if m != id {
			out = append(out, m)
		}
	}
	return out
}

func containsID(set []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, m := range set {
		if m == id {
			return true
		}
	}
	return false
}

type fakeUserRepo struct {
	users []*models.User

	failAddFollower    bool
	failRemoveFollower bool
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{} }

func (r *fakeUserRepo) find(id primitive.ObjectID) *models.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid user ID format")
	}
	if u := r.find(objID); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, apperr.NotFound("user not found")
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (r *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		if containsID(ids, u.ID) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SearchUsers(_ context.Context, query string, limit int64) ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(query)) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) GetPopularUsers(_ context.Context, limit int64) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Followers) > len(out[j].Followers) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) edge(userID, otherID string, apply func(u *models.User, other primitive.ObjectID)) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperr.Validation("invalid user ID format")
	}
	otherObjID, err := primitive.ObjectIDFromHex(otherID)
	if err != nil {
		return apperr.Validation("invalid user ID format")
	}
	u := r.find(objID)
	if u == nil {
		return apperr.NotFound("user not found")
	}
	apply(u, otherObjID)
	return nil
}

func (r *fakeUserRepo) AddFollowing(_ context.Context, userID, targetID string) error {
	return r.edge(userID, targetID, func(u *models.User, other primitive.ObjectID) {
		u.Following = addToSet(u.Following, other)
	})
}

func (r *fakeUserRepo) RemoveFollowing(_ context.Context, userID, targetID string) error {
	return r.edge(userID, targetID, func(u *models.User, other primitive.ObjectID) {
		u.Following = pullFromSet(u.Following, other)
	})
}

func (r *fakeUserRepo) AddFollower(_ context.Context, userID, followerID string) error {
	if r.failAddFollower {
		return apperr.Storage(errors.New("follower write failed"))
	}
	return r.edge(userID, followerID, func(u *models.User, other primitive.ObjectID) {
		u.Followers = addToSet(u.Followers, other)
	})
}

func (r *fakeUserRepo) RemoveFollower(_ context.Context, userID, followerID string) error {
	if r.failRemoveFollower {
		return apperr.Storage(errors.New("follower write failed"))
	}
	return r.edge(userID, followerID, func(u *models.User, other primitive.ObjectID) {
		u.Followers = pullFromSet(u.Followers, other)
	})
}

func (r *fakeUserRepo) PruneUserEdges(_ context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperr.Validation("invalid user ID format")
	}
	for _, u := range r.users {
		u.Followers = pullFromSet(u.Followers, objID)
		u.Following = pullFromSet(u.Following, objID)
	}
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid user ID format")
	}
	for i, u := range r.users {
		if u.ID == objID {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakePostRepo struct {
	posts []*models.Post
}

func newFakePostRepo() *fakePostRepo { return &fakePostRepo{} }

func (r *fakePostRepo) find(id primitive.ObjectID) *models.Post {
	for _, p := range r.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.Upvotes == nil {
		post.Upvotes = []primitive.ObjectID{}
	}
	if post.CommentIDs == nil {
		post.CommentIDs = []primitive.ObjectID{}
	}
	if post.Status == "" {
		post.Status = models.StatusActive
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	stored := *post
	r.posts = append(r.posts, &stored)
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid post ID format")
	}
	if p := r.find(objID); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, apperr.NotFound("post not found")
}

func (r *fakePostRepo) GetPostsByIDs(_ context.Context, ids []string) ([]models.Post, error) {
	out := []models.Post{}
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if p := r.find(objID); p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) GetPostsByUserID(_ context.Context, userID string, includeHidden bool, skip, limit int64) ([]models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user ID format")
	}
	out := []models.Post{}
	for _, p := range r.posts {
		if p.UserID != objID {
			continue
		}
		if !includeHidden && p.Status == models.StatusHidden {
			continue
		}
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, skip, limit), nil
}

func (r *fakePostRepo) ListVisiblePosts(_ context.Context, sortBy string, skip, limit int64) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range r.posts {
		if p.Status != models.StatusHidden {
			out = append(out, *p)
		}
	}
	switch sortBy {
	case models.SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			if len(out[i].Upvotes) != len(out[j].Upvotes) {
				return len(out[i].Upvotes) > len(out[j].Upvotes)
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case models.SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return page(out, skip, limit), nil
}

func (r *fakePostRepo) ListPosts(_ context.Context, skip, limit int64) ([]models.Post, error) {
	out := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, skip, limit), nil
}

func (r *fakePostRepo) CountPosts(_ context.Context) (int64, error) {
	return int64(len(r.posts)), nil
}

func (r *fakePostRepo) CountPostsByUserID(_ context.Context, userID string, includeHidden bool) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, apperr.Validation("invalid user ID format")
	}
	var n int64
	for _, p := range r.posts {
		if p.UserID != objID {
			continue
		}
		if !includeHidden && p.Status == models.StatusHidden {
			continue
		}
		n++
	}
	return n, nil
}

func (r *fakePostRepo) CountVisiblePosts(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.posts {
		if p.Status != models.StatusHidden {
			n++
		}
	}
	return n, nil
}

func (r *fakePostRepo) GetPostsByAuthorIDs(_ context.Context, authorIDs []primitive.ObjectID, limit int64) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range r.posts {
		if p.Status == models.StatusHidden {
			continue
		}
		if containsID(authorIDs, p.UserID) {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, 0, limit), nil
}

func (r *fakePostRepo) updateSet(postID, memberID string, apply func(p *models.Post, m primitive.ObjectID)) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return apperr.Validation("invalid post ID format")
	}
	memberObjID, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return apperr.Validation("invalid ID format")
	}
	p := r.find(objID)
	if p == nil {
		return apperr.NotFound("post not found")
	}
	apply(p, memberObjID)
	return nil
}

func (r *fakePostRepo) AddUpvote(_ context.Context, postID, userID string) error {
	return r.updateSet(postID, userID, func(p *models.Post, m primitive.ObjectID) {
		p.Upvotes = addToSet(p.Upvotes, m)
	})
}

func (r *fakePostRepo) RemoveUpvote(_ context.Context, postID, userID string) error {
	return r.updateSet(postID, userID, func(p *models.Post, m primitive.ObjectID) {
		p.Upvotes = pullFromSet(p.Upvotes, m)
	})
}

func (r *fakePostRepo) AddRootComment(_ context.Context, postID, commentID string) error {
	return r.updateSet(postID, commentID, func(p *models.Post, m primitive.ObjectID) {
		p.CommentIDs = addToSet(p.CommentIDs, m)
	})
}

func (r *fakePostRepo) RemoveRootComment(_ context.Context, postID, commentID string) error {
	return r.updateSet(postID, commentID, func(p *models.Post, m primitive.ObjectID) {
		p.CommentIDs = pullFromSet(p.CommentIDs, m)
	})
}

func (r *fakePostRepo) SetStatus(_ context.Context, postID string, status models.Status) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return apperr.Validation("invalid post ID format")
	}
	p := r.find(objID)
	if p == nil {
		return apperr.NotFound("post not found")
	}
	p.Status = status
	return nil
}

func (r *fakePostRepo) SetStatusMany(_ context.Context, ids []string, status models.Status) (int64, error) {
	var n int64
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if p := r.find(objID); p != nil {
			p.Status = status
			n++
		}
	}
	return n, nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid post ID format")
	}
	for i, p := range r.posts {
		if p.ID == objID {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePostRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if r.find(objID) != nil {
			_ = r.DeletePost(ctx, id)
			n++
		}
	}
	return n, nil
}

func (r *fakePostRepo) PullUpvotesByUser(_ context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperr.Validation("invalid user ID format")
	}
	for _, p := range r.posts {
		p.Upvotes = pullFromSet(p.Upvotes, objID)
	}
	return nil
}

type fakeCommentRepo struct {
	comments []*models.Comment
	clock    time.Time
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{clock: time.Now()}
}

func (r *fakeCommentRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Millisecond)
	return r.clock
}

func (r *fakeCommentRepo) find(id primitive.ObjectID) *models.Comment {
	for _, cm := range r.comments {
		if cm.ID == id {
			return cm
		}
	}
	return nil
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	if comment.Status == "" {
		comment.Status = models.StatusActive
	}
	comment.CreatedAt = r.tick()
	comment.UpdatedAt = comment.CreatedAt
	stored := *comment
	r.comments = append(r.comments, &stored)
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid comment ID format")
	}
	if cm := r.find(objID); cm != nil {
		cp := *cm
		return &cp, nil
	}
	return nil, apperr.NotFound("comment not found")
}

func (r *fakeCommentRepo) GetCommentsByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperr.Validation("invalid post ID format")
	}
	out := []models.Comment{}
	for _, cm := range r.comments {
		if cm.PostID == objID {
			out = append(out, *cm)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommentRepo) GetCommentsByIDs(_ context.Context, ids []string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if cm := r.find(objID); cm != nil {
			out = append(out, *cm)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) GetCommentsByParentIDs(_ context.Context, parentIDs []string) ([]models.Comment, error) {
	parents := map[primitive.ObjectID]bool{}
	for _, id := range parentIDs {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		parents[objID] = true
	}
	out := []models.Comment{}
	for _, cm := range r.comments {
		if cm.ParentCommentID != nil && parents[*cm.ParentCommentID] {
			out = append(out, *cm)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) GetCommentsByUserID(_ context.Context, userID string) ([]models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user ID format")
	}
	out := []models.Comment{}
	for _, cm := range r.comments {
		if cm.UserID == objID {
			out = append(out, *cm)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) ListComments(_ context.Context, skip, limit int64) ([]models.Comment, error) {
	out := make([]models.Comment, 0, len(r.comments))
	for _, cm := range r.comments {
		out = append(out, *cm)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, skip, limit), nil
}

func (r *fakeCommentRepo) CountComments(_ context.Context) (int64, error) {
	return int64(len(r.comments)), nil
}

func (r *fakeCommentRepo) SetStatus(_ context.Context, id string, status models.Status) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid comment ID format")
	}
	cm := r.find(objID)
	if cm == nil {
		return apperr.NotFound("comment not found")
	}
	cm.Status = status
	return nil
}

func (r *fakeCommentRepo) SetStatusMany(_ context.Context, ids []string, status models.Status) (int64, error) {
	var n int64
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if cm := r.find(objID); cm != nil {
			cm.Status = status
			n++
		}
	}
	return n, nil
}

func (r *fakeCommentRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	doomed := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		doomed[objID] = true
	}
	return r.deleteWhere(func(cm *models.Comment) bool { return doomed[cm.ID] }), nil
}

func (r *fakeCommentRepo) DeleteByPostID(_ context.Context, postID string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return 0, apperr.Validation("invalid post ID format")
	}
	return r.deleteWhere(func(cm *models.Comment) bool { return cm.PostID == objID }), nil
}

func (r *fakeCommentRepo) DeleteByPostIDs(_ context.Context, postIDs []string) (int64, error) {
	doomed := map[primitive.ObjectID]bool{}
	for _, id := range postIDs {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		doomed[objID] = true
	}
	return r.deleteWhere(func(cm *models.Comment) bool { return doomed[cm.PostID] }), nil
}

func (r *fakeCommentRepo) DeleteByUserID(_ context.Context, userID string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, apperr.Validation("invalid user ID format")
	}
	return r.deleteWhere(func(cm *models.Comment) bool { return cm.UserID == objID }), nil
}

func (r *fakeCommentRepo) deleteWhere(match func(*models.Comment) bool) int64 {
	var n int64
	kept := r.comments[:0]
	for _, cm := range r.comments {
		if match(cm) {
			n++
			continue
		}
		kept = append(kept, cm)
	}
	r.comments = kept
	return n
}

type fakeLogRepo struct {
	entries []models.AdminActionLog
}

func newFakeLogRepo() *fakeLogRepo { return &fakeLogRepo{} }

func (r *fakeLogRepo) Create(entry *models.AdminActionLog) error {
	entry.ID = uint(len(r.entries) + 1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeLogRepo) ListLogs(action, adminID string, page, limit int) ([]models.AdminActionLog, int64, error) {
	out := []models.AdminActionLog{}
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if action != "" && e.Action != action {
			continue
		}
		if adminID != "" && e.AdminID != adminID {
			continue
		}
		out = append(out, e)
	}
	total := int64(len(out))
	start := (page - 1) * limit
	if start > len(out) {
		start = len(out)
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

type fakeBlobStore struct {
	stored  map[string][]byte
	deleted []string
	seq     int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{stored: map[string][]byte{}}
}

func (s *fakeBlobStore) Store(_ context.Context, data []byte, _ string, folder string) (*blobstore.Object, error) {
	s.seq++
	key := fmt.Sprintf("%s/blob-%d", folder, s.seq)
	s.stored[key] = data
	return &blobstore.Object{
		URL:        "https://storage.example.com/" + key,
		StorageKey: key,
	}, nil
}

func (s *fakeBlobStore) Delete(_ context.Context, storageKey string) error {
	s.deleted = append(s.deleted, storageKey)
	delete(s.stored, storageKey)
	return nil
}

func page[T any](items []T, skip, limit int64) []T {
	if skip > int64(len(items)) {
		skip = int64(len(items))
	}
	items = items[skip:]
	if limit > 0 && int64(len(items)) > limit {
		items = items[:limit]
	}
	return items
}

// Request plumbing shared by the handler tests.

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func newTestContext(req *http.Request, caller *models.Caller) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if caller != nil {
		c.Set("caller", caller)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func requireHTTPStatus(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}

// Seeding helpers. Timestamps are assigned explicitly so sort orders are
// deterministic.

func seedUser(repo *fakeUserRepo, username, role string) *models.User {
	u := &models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Role:      role,
		Followers: []primitive.ObjectID{},
		Following: []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}
	repo.users = append(repo.users, u)
	return u
}

func callerFor(u *models.User) *models.Caller {
	return &models.Caller{ID: u.ID.Hex(), Username: u.Username, Role: u.Role}
}

func seedPost(repo *fakePostRepo, author primitive.ObjectID, title string, at time.Time) *models.Post {
	p := &models.Post{
		ID:              primitive.NewObjectID(),
		Title:           title,
		ImageURL:        "https://storage.example.com/rjilat/posts/" + title,
		ImageStorageKey: "rjilat/posts/" + title,
		UserID:          author,
		Upvotes:         []primitive.ObjectID{},
		CommentIDs:      []primitive.ObjectID{},
		Status:          models.StatusActive,
		CreatedAt:       at,
	}
	repo.posts = append(repo.posts, p)
	return p
}

func seedComment(repo *fakeCommentRepo, post, author primitive.ObjectID, parent *primitive.ObjectID, content string) *models.Comment {
	cm := &models.Comment{
		ID:              primitive.NewObjectID(),
		Content:         content,
		UserID:          author,
		PostID:          post,
		ParentCommentID: parent,
		Status:          models.StatusActive,
		CreatedAt:       repo.tick(),
	}
	repo.comments = append(repo.comments, cm)
	return cm
}
