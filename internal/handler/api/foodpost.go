package api

import (
	"context"
	"errors"
	"net/http"

	"food-rescue/internal/domain/foodpost"
	reqdto "food-rescue/internal/handler/dto/request"
	resdto "food-rescue/internal/handler/dto/response"
	"food-rescue/internal/handler/httperr"
	"food-rescue/internal/handler/middleware"
	"food-rescue/internal/pkg/errs"
	"food-rescue/internal/usecase/commands"
	"food-rescue/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errMissingUser   = errors.New("authenticated user missing from context")
	errInvalidPostID = errors.New("invalid food post id")
)

type PostHandler struct {
	engine  commands.LifecycleEngine
	queries queries.PostQueries
}

func NewPostHandler(engine commands.LifecycleEngine, postQueries queries.PostQueries) *PostHandler {
	return &PostHandler{
		engine:  engine,
		queries: postQueries,
	}
}

// @Summary Create food post
// @Description Publish surplus food. duration_minutes defaults to 90.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePostRequest true "Food post"
// @Success 201 {object} resdto.PostResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	donorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUser, "Internal server error", nil)
		return
	}

	var req reqdto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	draft, err := req.ToDomain(donorID)
	if err != nil {
		abortWithPostError(c, err)
		return
	}

	post, err := h.engine.CreatePost(c.Request.Context(), draft)
	if err != nil {
		abortWithPostError(c, err)
		return
	}

	h.respondPost(c, http.StatusCreated, queries.NewPostView(post))
}

// @Summary List available food posts
// @Description Available, unexpired posts newest first, optionally within radius_km of near=lat,lng.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param near query string false "lat,lng"
// @Param radius_km query number false "Search radius in km"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.FeedResponse
// @Failure 400 {object} httperr.Response
// @Router /api/posts [get]
func (h *PostHandler) Feed(c *gin.Context) {
	var req reqdto.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	filter, err := req.ToFilter()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid near parameter", nil)
		return
	}

	page, err := h.queries.Feed(c.Request.Context(), filter)
	if err != nil {
		if errs.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		abortWithPostError(c, err)
		return
	}

	res, err := resdto.FromPage(page)
	if err != nil {
		abortWithPostError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List my food posts
// @Description Donors get their own posts; recipients get the posts they hold.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PostResponse
// @Router /api/posts/mine [get]
func (h *PostHandler) Mine(c *gin.Context) {
	userID, okID := middleware.GetUserID(c)
	role, okRole := middleware.GetUserRole(c)
	if !okID || !okRole {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUser, "Internal server error", nil)
		return
	}

	views, err := h.queries.Mine(c.Request.Context(), userID, role)
	if err != nil {
		abortWithPostError(c, err)
		return
	}

	res, err := resdto.FromPostViews(views)
	if err != nil {
		abortWithPostError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get food post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Food post ID"
// @Success 200 {object} resdto.PostResponse
// @Failure 404 {object} httperr.Response
// @Router /api/posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), postID)
	if err != nil {
		abortWithPostError(c, err)
		return
	}
	h.respondPost(c, http.StatusOK, view)
}

// @Summary Cancel food post
// @Description Withdraw an available or reserved post. Repeating the call is harmless.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Food post ID"
// @Success 200 {object} resdto.PostResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/posts/{id}/cancel [post]
func (h *PostHandler) Cancel(c *gin.Context) {
	h.transition(c, h.engine.Cancel)
}

// @Summary Reserve food post
// @Description Hold an available post for a short window before accepting it.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Food post ID"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 409 {object} httperr.Response
// @Router /api/posts/{id}/reservation [post]
func (h *PostHandler) Reserve(c *gin.Context) {
	recipientID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUser, "Internal server error", nil)
		return
	}
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	reservation, err := h.engine.TryReserve(c.Request.Context(), postID, recipientID)
	if err != nil {
		abortWithPostError(c, err)
		return
	}

	res, err := resdto.FromReservation(reservation)
	if err != nil {
		abortWithPostError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Release reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Food post ID"
// @Success 200 {object} resdto.PostResponse
// @Failure 409 {object} httperr.Response
// @Router /api/posts/{id}/reservation [delete]
func (h *PostHandler) CancelReservation(c *gin.Context) {
	h.transition(c, h.engine.CancelReservation)
}

// @Summary Accept reserved food post
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Food post ID"
// @Success 200 {object} resdto.PostResponse
// @Failure 409 {object} httperr.Response
// @Router /api/posts/{id}/acceptance [post]
func (h *PostHandler) Accept(c *gin.Context) {
	h.transition(c, h.engine.ConfirmAccept)
}

type actorTransition func(ctx context.Context, postID, actorID uuid.UUID) (foodpost.FoodPost, error)

func (h *PostHandler) transition(c *gin.Context, fn actorTransition) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUser, "Internal server error", nil)
		return
	}
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := fn(c.Request.Context(), postID, actorID)
	if err != nil {
		abortWithPostError(c, err)
		return
	}
	h.respondPost(c, http.StatusOK, queries.NewPostView(post))
}

func (h *PostHandler) respondPost(c *gin.Context, status int, view *queries.PostView) {
	res, err := resdto.FromPostView(view)
	if err != nil {
		abortWithPostError(c, err)
		return
	}
	c.JSON(status, res)
}

func parsePostID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidPostID, "Invalid food post ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
