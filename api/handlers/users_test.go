package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	services "github.com/EO-DataHub/eodhp-user-services/api/services"
	"github.com/EO-DataHub/eodhp-user-services/models"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRouter(mockDB *services.MockUserDB) *mux.Router {
	r := mux.NewRouter()
	RegisterUserRoutes(r.PathPrefix("/api").Subrouter(), &services.Service{DB: mockDB})
	return r
}

func TestRoutes_CreateThenGet(t *testing.T) {
	mockDB := new(services.MockUserDB)
	router := newTestRouter(mockDB)

	id := primitive.NewObjectID()
	stored := &models.User{ID: id, FirstName: "Jane", LastName: "Doe", Email: "jane@doe.com", FavoriteColor: "blue", Birthday: "1990-05-05"}

	mockDB.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(&models.InsertResult{Acknowledged: true, InsertedID: id}, nil)
	mockDB.On("GetUser", mock.Anything, id).Return(stored, nil)

	body := []byte(`{"firstName":"Jane","lastName":"Doe","email":"jane@doe.com","favoriteColor":"blue","birthday":"1990-05-05"}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, true, created["acknowledged"])
	assert.Equal(t, id.Hex(), created["insertedId"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/"+id.Hex(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got models.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "Doe", got.LastName)
	assert.Equal(t, "jane@doe.com", got.Email)
	assert.Equal(t, "blue", got.FavoriteColor)
	assert.Equal(t, "1990-05-05", got.Birthday)

	mockDB.AssertExpectations(t)
}

func TestRoutes_MethodDispatch(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		method string
		path   string
		setup  func(m *services.MockUserDB)
		status int
	}{
		{http.MethodGet, "/api/users", func(m *services.MockUserDB) {
			m.On("GetUsers", mock.Anything).Return([]models.User{}, nil)
		}, http.StatusOK},
		{http.MethodPut, "/api/users/" + id.Hex(), func(m *services.MockUserDB) {
			m.On("ReplaceUser", mock.Anything, id, mock.Anything).Return(&models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
		}, http.StatusNoContent},
		{http.MethodDelete, "/api/users/" + id.Hex(), func(m *services.MockUserDB) {
			m.On("DeleteUser", mock.Anything, id).Return(&models.DeleteResult{DeletedCount: 1}, nil)
		}, http.StatusNoContent},
		{http.MethodGet, "/api/users/not-an-id", func(m *services.MockUserDB) {}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			mockDB := new(services.MockUserDB)
			tt.setup(mockDB)

			w := httptest.NewRecorder()
			newTestRouter(mockDB).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, bytes.NewReader([]byte(`{}`))))

			assert.Equal(t, tt.status, w.Code)
			mockDB.AssertExpectations(t)
		})
	}
}
