package usersserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/shop-users-api/internal/domains/users/adapters/http/mapper"
	userapp "github.com/Apurer/shop-users-api/internal/domains/users/application"
	userdomain "github.com/Apurer/shop-users-api/internal/domains/users/domain"
	userports "github.com/Apurer/shop-users-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/shop-users-api/internal/shared/errors"
	"github.com/Apurer/shop-users-api/internal/shared/links"
	"github.com/Apurer/shop-users-api/internal/shared/paging"
)

// UserAPI implements the users resource.
type UserAPI struct {
	service   userports.Service
	links     *links.Builder
	responder *apierrors.ChainedResponder
}

// NewUserAPI wires dependencies.
func NewUserAPI(service userports.Service, builder *links.Builder) UserAPI {
	return UserAPI{service: service, links: builder, responder: apierrors.NewChainedResponder("", userErrorMapper(builder))}
}

func toTransportUser(payload UserPayload) userhttpmapper.User {
	return userhttpmapper.User{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
	}
}

func (api *UserAPI) fromTransportUser(user userhttpmapper.User) User {
	return User{
		Id:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Active:    user.Active,
		Links:     Links{Self: Link{Href: api.links.User(user.ID)}},
	}
}

func (api *UserAPI) fromDomainUser(user *userdomain.User) User {
	return api.fromTransportUser(userhttpmapper.FromDomainUser(user))
}

// Post /users
// Create user. Invalid payloads get a bare 400.
func (api *UserAPI) AddUser(c *gin.Context) {
	var payload UserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	user, err := userhttpmapper.ToDomainUser(toTransportUser(payload))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	saved, err := api.service.AddUser(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, userapp.ErrInvalidInput) {
			c.Status(http.StatusBadRequest)
			return
		}
		api.responder.RespondError(c, err)
		return
	}
	c.Header("Location", api.links.User(saved.ID))
	c.Status(http.StatusCreated)
}

// Get /users/not-active/:userId?token=
// Activate a pending account from the emailed link.
func (api *UserAPI) ActivateUser(c *gin.Context) {
	id, ok := api.pathID(c, "userId")
	if !ok {
		return
	}
	token, present := c.GetQuery("token")
	if !present || token == "" {
		api.responder.BadRequest(c, "token query parameter is required")
		return
	}
	if err := api.service.ActivateUser(c.Request.Context(), id, token); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /users/:id
// Get user by identifier
func (api *UserAPI) GetUser(c *gin.Context) {
	id, ok := api.pathID(c, "id")
	if !ok {
		return
	}
	user, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.fromDomainUser(user))
}

// Get /users?lastNameFragment=&pageNumber=&pageSize=
// Search users by last name fragment
func (api *UserAPI) GetUsersByLastName(c *gin.Context) {
	query := userSearchQuery{PageNumber: paging.DefaultPageNumber, PageSize: paging.DefaultPageSize}
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, api.responder, err)
		return
	}
	result, err := api.service.GetByLastName(c.Request.Context(), *query.LastNameFragment, query.PageNumber, query.PageSize)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	page := paging.Map(result, api.fromDomainUser)
	c.JSON(http.StatusOK, UserPage{
		Items:      page.Items,
		PageNumber: page.PageNumber,
		TotalPages: page.TotalPages,
	})
}

func (api *UserAPI) pathID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		api.responder.BadRequest(c, param+" must be an integer")
		return 0, false
	}
	return id, true
}
