package handlers

import (
	"net/http"

	services "github.com/EO-DataHub/eodhp-user-services/api/services"
)

// GetUsers godoc
// @Summary List users
// @Description Retrieve every user in the collection, in store order.
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} models.Message
// @Router /users [get]
func GetUsers(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetUsersService(svc, w, r)
	}
}

// GetUser godoc
// @Summary Get a user
// @Description Retrieve a single user by ID.
// @Tags users
// @Produce json
// @Param user-id path string true "User ID" example(64b7f0c2a1b2c3d4e5f60718)
// @Success 200 {object} models.User
// @Failure 400 {string} string
// @Failure 404 {object} models.Message
// @Failure 500 {object} models.Message
// @Router /users/{user-id} [get]
func GetUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetUserService(svc, w, r)
	}
}

// CreateUser godoc
// @Summary Create a user
// @Description Insert a new user. Fields missing from the body are stored as null.
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserRequest true "User"
// @Success 201 {object} models.InsertResult
// @Failure 400 {string} string
// @Failure 500 {object} models.Message
// @Router /users [post]
func CreateUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.CreateUserService(svc, w, r)
	}
}

// UpdateUser godoc
// @Summary Replace a user
// @Description Replace every field of an existing user. Omitted fields become null.
// @Tags users
// @Accept json
// @Param user-id path string true "User ID" example(64b7f0c2a1b2c3d4e5f60718)
// @Param user body models.UserRequest true "User"
// @Success 204
// @Failure 400 {string} string
// @Failure 500 {object} models.Message
// @Router /users/{user-id} [put]
func UpdateUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.UpdateUserService(svc, w, r)
	}
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Param user-id path string true "User ID" example(64b7f0c2a1b2c3d4e5f60718)
// @Success 204
// @Failure 400 {string} string
// @Failure 500 {object} models.Message
// @Router /users/{user-id} [delete]
func DeleteUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.DeleteUserService(svc, w, r)
	}
}
