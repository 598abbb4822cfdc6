package usersserver

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/Apurer/shop-users-api/internal/shared/links"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI, relative to the API prefix.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers mounted by the router.
type ApiHandleFunctions struct {
	UserAPI UserAPI
}

var registerOnce sync.Once

// registerValidations installs the custom binding rules on gin's validator.
func registerValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("notblank", validators.NotBlank)
		}
	})
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, prefix string) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, prefix)
}

// NewRouterWithGinEngine adds the API routes to an existing gin engine under prefix.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, prefix string) *gin.Engine {
	registerValidations()
	group := router.Group(links.NormalizePrefix(prefix))
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		group.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	api := handleFunctions.UserAPI
	return []Route{
		{
			"AddUser",
			http.MethodPost,
			"/users",
			api.AddUser,
		},
		{
			"ActivateUser",
			http.MethodGet,
			"/users/not-active/:userId",
			api.ActivateUser,
		},
		{
			"GetUser",
			http.MethodGet,
			"/users/:id",
			api.GetUser,
		},
		{
			"GetUsersByLastName",
			http.MethodGet,
			"/users",
			api.GetUsersByLastName,
		},
	}
}
