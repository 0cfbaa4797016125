package http

import (
	"github.com/gin-gonic/gin"
)

// Register wires the user routes. authn must run before any guarded route;
// owner and admin are the access guards built in bootstrap.
func (h *Handler) Register(r gin.IRoutes, authn, owner, admin gin.HandlerFunc) {
	r.POST("/users", authn, h.Upsert)
	r.GET("/users", h.List)
	r.GET("/users/:email", h.GetByEmail)
	r.PATCH("/users/:email", authn, owner, h.UpdateProfile)
	r.GET("/users/profile/:email", authn, h.Profile)
	r.GET("/guides/random", h.RandomGuides)

	r.GET("/admin/users", authn, admin, h.AdminList)
	r.PATCH("/admin/users/:id", authn, admin, h.UpdateRoleByID)
	r.PATCH("/admin/updateRole/:email", authn, admin, h.UpdateRoleByEmail)
	r.GET("/admin/users-by-role", authn, admin, h.UsersByRole)
}
