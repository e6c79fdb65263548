package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/middleware"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes, guarded by the bearer token check when a secret is configured
	v1 := router.Group("/api/v1", middleware.Auth(authCfg))
	{
		v1.GET("/properties", handler.ListProperties)
		v1.POST("/properties", handler.CreateProperty)
		v1.GET("/properties/:id", handler.GetProperty)
		v1.PATCH("/properties/:id", handler.UpdateProperty)
		v1.POST("/properties/:id/values", handler.AddPropertyValue)

		v1.GET("/owners", handler.ListOwners)
		v1.POST("/owners", handler.CreateOwner)
		v1.GET("/owners/:id", handler.GetOwner)

		v1.GET("/tenants", handler.ListTenants)
		v1.POST("/tenants", handler.CreateTenant)
		v1.GET("/tenants/:id", handler.GetTenant)

		v1.GET("/agencies", handler.ListAgencies)
		v1.POST("/agencies", handler.CreateAgency)
		v1.GET("/agencies/:id", handler.GetAgency)

		v1.GET("/leases", handler.ListLeases)
		v1.POST("/leases", handler.CreateLease)
		v1.GET("/leases/:id", handler.GetLease)

		v1.GET("/users", handler.ListUsers)
		v1.GET("/users/:id", handler.GetUser)

		v1.GET("/property-types", handler.ListPropertyTypes)
		v1.POST("/property-types", handler.CreatePropertyType)
		v1.GET("/property-types/:id", handler.GetPropertyType)

		// Soft delete and restore
		for path, entity := range map[string]store.Entity{
			"properties":     store.EntityProperty,
			"owners":         store.EntityOwner,
			"tenants":        store.EntityTenant,
			"agencies":       store.EntityAgency,
			"leases":         store.EntityLease,
			"users":          store.EntityUser,
			"property-types": store.EntityPropertyType,
		} {
			v1.DELETE("/"+path+"/:id", handler.Delete(entity))
			v1.PATCH("/"+path+"/:id/restore", handler.Restore(entity))
		}

		v1.GET("/dashboard", handler.GetDashboard)
	}
}
