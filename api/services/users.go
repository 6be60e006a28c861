package services

import (
	"fmt"
	"net/http"

	"github.com/EO-DataHub/eodhp-user-services/models"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const (
	invalidIDFind   = "Must use a valid user id to find a user."
	invalidIDUpdate = "Must use a valid user id to update a user."
	invalidIDDelete = "Must use a valid user id to delete a user."

	userNotFound = "User not found."

	createFailed = "Some error occurred while creating the user."
	updateFailed = "Some error occurred while updating the user."
	deleteFailed = "Some error occurred while deleting the user."
)

// GetUsersService retrieves every user in the collection.
func GetUsersService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	users, err := svc.DB.GetUsers(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve users from database")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	// Ensure users is not nil, return an empty slice if no users are found
	if users == nil {
		users = []models.User{}
	}

	logger.Info().Int("user_count", len(users)).Msg("Successfully retrieved users")
	WriteResponse(w, http.StatusOK, users)
}

// GetUserService retrieves a single user by the ID in the URL path.
func GetUserService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	userID, err := models.ParseUserID(mux.Vars(r)[UserIDVar])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid user id")
		http.Error(w, invalidIDFind, http.StatusBadRequest)
		return
	}

	user, err := svc.DB.GetUser(r.Context(), userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID.Hex()).Msg("Database error retrieving user")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	// Handle non-existent user
	if user == nil {
		logger.Warn().Str("user_id", userID.Hex()).Msg("User not found")
		WriteResponse(w, http.StatusNotFound, models.Message{Message: userNotFound})
		return
	}

	logger.Info().Str("user_id", userID.Hex()).Msg("Successfully retrieved user")
	WriteResponse(w, http.StatusOK, *user)
}

// CreateUserService inserts a user built from the request payload.
func CreateUserService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	payload, err := decodeUserRequest(r)
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	res, err := svc.DB.CreateUser(r.Context(), payload.ToUser())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create user in database")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	if !res.Acknowledged {
		logger.Error().Msg("User insert was not acknowledged")
		WriteResponse(w, http.StatusInternalServerError, createFailed)
		return
	}

	logger.Info().Str("user_id", res.InsertedID.Hex()).Msg("User created successfully")

	var location = fmt.Sprintf("%s/%s", r.URL.Path, res.InsertedID.Hex())
	WriteResponse(w, http.StatusCreated, *res, location)
}

// UpdateUserService replaces the whole user document with the request payload.
// A replacement that modifies nothing, including one aimed at a missing user,
// is reported as a server error.
func UpdateUserService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	userID, err := models.ParseUserID(mux.Vars(r)[UserIDVar])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid user id")
		http.Error(w, invalidIDUpdate, http.StatusBadRequest)
		return
	}

	payload, err := decodeUserRequest(r)
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid update request payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	res, err := svc.DB.ReplaceUser(r.Context(), userID, payload.ToUser())
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID.Hex()).Msg("Database error updating user")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	if res.ModifiedCount == 0 {
		logger.Error().Str("user_id", userID.Hex()).Int64("matched", res.MatchedCount).Msg("User update modified nothing")
		WriteResponse(w, http.StatusInternalServerError, updateFailed)
		return
	}

	logger.Info().Str("user_id", userID.Hex()).Msg("User updated successfully")
	WriteNoContent(w)
}

// DeleteUserService deletes the user specified by the ID in the URL path.
func DeleteUserService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	userID, err := models.ParseUserID(mux.Vars(r)[UserIDVar])
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid user id")
		http.Error(w, invalidIDDelete, http.StatusBadRequest)
		return
	}

	res, err := svc.DB.DeleteUser(r.Context(), userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID.Hex()).Msg("Database error deleting user")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	if res.DeletedCount == 0 {
		logger.Error().Str("user_id", userID.Hex()).Msg("User delete removed nothing")
		WriteResponse(w, http.StatusInternalServerError, deleteFailed)
		return
	}

	logger.Info().Str("user_id", userID.Hex()).Msg("User deleted successfully")
	WriteNoContent(w)
}
