package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/signage-lite/backend/internal/db"
	"github.com/signage-lite/backend/internal/http/api"
	"github.com/signage-lite/backend/internal/http/api/admin/packets"
)

type TenantController struct {
	store db.Store
}

func NewTenantController(store db.Store) *TenantController {
	return &TenantController{store: store}
}

func TenantModule(store db.Store) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		ctl := NewTenantController(store)

		c.Group.GET("/tenants", api.ResolveEndpoint(ctl.listTenants))
		c.Group.POST("/tenants", api.ResolveEndpointCreated(ctl.createTenant))
		c.Group.DELETE("/tenants/:id", api.ResolveEndpoint(ctl.deleteTenant))
	})
}

func (t *TenantController) listTenants(ctx *gin.Context) (any, *api.Error) {
	tenants, err := t.store.ListTenants()
	if err != nil {
		log.Error().Err(err).Msg("[tenant] list: could not list tenants")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return tenants, nil
}

func (t *TenantController) createTenant(ctx *gin.Context) (any, *api.Error) {
	var req packets.CreateTenantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "name is required"}
	}

	tenant, err := t.store.CreateTenant(req.Name)
	if err != nil {
		log.Error().Err(err).Msg("[tenant] create: could not create tenant")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return tenant, nil
}

// deleteTenant cascades through every entity the tenant owns in one
// transaction, innermost first.
func (t *TenantController) deleteTenant(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid tenant id"}
	}

	if err := t.store.DeleteTenant(id); err != nil {
		if err == db.ErrNotFound {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "tenant not found"}
		}
		log.Error().Err(err).Int("tenant_id", id).Msg("[tenant] delete: cascade failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
	return gin.H{"ok": true}, nil
}
