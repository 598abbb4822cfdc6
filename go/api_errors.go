package usersserver

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	userapp "github.com/Apurer/shop-users-api/internal/domains/users/application"
	apierrors "github.com/Apurer/shop-users-api/internal/shared/errors"
	"github.com/Apurer/shop-users-api/internal/shared/links"
)

// userPathParams are the route parameters that address a single user.
var userPathParams = []string{"id", "userId"}

// userErrorMapper translates application errors into problem details.
// Not-found problems point at the canonical URL of the user that was asked for.
func userErrorMapper(builder *links.Builder) apierrors.ErrorMapper {
	return func(c *gin.Context, err error) (apierrors.ProblemDetail, bool) {
		switch {
		case errors.Is(err, userapp.ErrUserNotFound):
			id, ok := requestedUserID(c)
			if !ok {
				return apierrors.ErrNotFound.WithDetail(err.Error()), true
			}
			return apierrors.NewNotFoundProblem("User", id).WithInstance(builder.User(id)), true
		case errors.Is(err, userapp.ErrInvalidActivationToken):
			return apierrors.ErrInvalidActivationToken.WithDetail("the activation link is not valid for this account"), true
		case errors.Is(err, userapp.ErrInvalidInput):
			return apierrors.ErrValidation.WithDetail(err.Error()), true
		}
		return apierrors.ProblemDetail{}, false
	}
}

func requestedUserID(c *gin.Context) (int64, bool) {
	for _, param := range userPathParams {
		if raw := c.Param(param); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			return id, err == nil
		}
	}
	return 0, false
}

// respondBindingError reports field-level validation failures, or a plain bad request for unparsable input.
func respondBindingError(c *gin.Context, responder *apierrors.ChainedResponder, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		responder.ValidationFailed(c, fields)
		return
	}
	responder.BadRequest(c, err.Error())
}
