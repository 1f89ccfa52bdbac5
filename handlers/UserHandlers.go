package handlers

import (
	"net/http"

	"dispatch/models"
	"dispatch/services"

	"github.com/gin-gonic/gin"
)

// GetUsersHandler lists users
// @Summary List users
// @Description Every account of the Login sheet; passwords are never returned
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 500 {object} models.ErrorResponse
// @Router /api/users [get]
func GetUsersHandler(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch users")
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// CreateUserHandler creates a user
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UserForm true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /api/users [post]
func CreateUserHandler(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form models.UserForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		user, err := svc.CreateUser(c.Request.Context(), actorFrom(c), form)
		if err != nil {
			respondError(c, err, "Failed to create user")
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// UpdateUserHandler edits a user
// @Summary Update user
// @Description An empty password keeps the stored one
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Param request body models.UserForm true "User"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{row} [put]
func UpdateUserHandler(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, ok := rowParam(c)
		if !ok {
			return
		}
		var form models.UserForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		if err := svc.UpdateUser(c.Request.Context(), actorFrom(c), row, form); err != nil {
			respondError(c, err, "Failed to update user")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
	}
}

// DeleteUserHandler deletes a user
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param row path int true "Sheet row index"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{row} [delete]
func DeleteUserHandler(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, ok := rowParam(c)
		if !ok {
			return
		}
		if err := svc.DeleteUser(c.Request.Context(), actorFrom(c), row); err != nil {
			respondError(c, err, "Failed to delete user")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
