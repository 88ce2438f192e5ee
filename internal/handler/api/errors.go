package api

import (
	"net/http"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/handler/httperr"
	"food-rescue/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortWithPostError maps lifecycle errors onto HTTP statuses.
func abortWithPostError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, foodpost.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid food post data", err.Error())
	case errs.Is(err, foodpost.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Food post not found", nil)
	case errs.Is(err, foodpost.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to act on this food post", nil)
	case errs.Is(err, foodpost.ErrExpired):
		httperr.AbortWithError(c, http.StatusConflict, err, "Food post has expired", nil)
	case errs.Is(err, foodpost.ErrNotReserved):
		httperr.AbortWithError(c, http.StatusConflict, err, "Food post is not reserved by you", nil)
	case errs.IsAny(err, foodpost.ErrConflict, foodpost.ErrVersionConflict, foodpost.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Food post is no longer available", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
