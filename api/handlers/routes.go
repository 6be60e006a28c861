package handlers

import (
	"net/http"

	services "github.com/EO-DataHub/eodhp-user-services/api/services"
	"github.com/gorilla/mux"
)

// RegisterUserRoutes attaches the user CRUD routes to r.
func RegisterUserRoutes(r *mux.Router, svc *services.Service) {
	userPath := "/users/{" + services.UserIDVar + "}"

	r.HandleFunc("/users", GetUsers(svc)).Methods(http.MethodGet)
	r.HandleFunc("/users", CreateUser(svc)).Methods(http.MethodPost)
	r.HandleFunc(userPath, GetUser(svc)).Methods(http.MethodGet)
	r.HandleFunc(userPath, UpdateUser(svc)).Methods(http.MethodPut)
	r.HandleFunc(userPath, DeleteUser(svc)).Methods(http.MethodDelete)
}
