package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/signage-lite/backend/internal/db"
	"github.com/signage-lite/backend/internal/http/api"
	"github.com/signage-lite/backend/internal/http/api/admin/packets"
)

type UserController struct {
	store db.Store
}

func NewUserController(store db.Store) *UserController {
	return &UserController{store: store}
}

func UserModule(store db.Store) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		ctl := NewUserController(store)

		c.Group.GET("/tenants/:id/users", api.ResolveEndpoint(ctl.listUsers))
		c.Group.POST("/tenants/:id/users", api.ResolveEndpointCreated(ctl.createUser))
		c.Group.DELETE("/users/:id", api.ResolveEndpoint(ctl.deleteUser))
	})
}

func (u *UserController) listUsers(ctx *gin.Context) (any, *api.Error) {
	tenantID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid tenant id"}
	}

	users, err := u.store.ListUsers(tenantID)
	if err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("[user] list: could not list users")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return users, nil
}

// createUser stores a tenant user; the password is bcrypt-hashed before it
// ever touches the store.
func (u *UserController) createUser(ctx *gin.Context) (any, *api.Error) {
	tenantID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid tenant id"}
	}

	var req packets.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "email and password are required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("[user] create: could not hash password")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}

	user, err := u.store.CreateUser(tenantID, req.Email, string(hash), req.Name)
	if err != nil {
		log.Error().Err(err).Msg("[user] create: could not create user")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return user, nil
}

func (u *UserController) deleteUser(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid user id"}
	}

	if err := u.store.DeleteUser(id); err != nil {
		if err == db.ErrNotFound {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "user not found"}
		}
		log.Error().Err(err).Int("user_id", id).Msg("[user] delete: failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return gin.H{"ok": true}, nil
}
