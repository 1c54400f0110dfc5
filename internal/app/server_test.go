package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GoArmGo/EstateApp/internal/config"
	"github.com/GoArmGo/EstateApp/internal/database/storage"
	"github.com/GoArmGo/EstateApp/internal/domain"
	"github.com/GoArmGo/EstateApp/internal/handler"
	"github.com/GoArmGo/EstateApp/internal/metrics"
	"github.com/GoArmGo/EstateApp/internal/schema"
	"github.com/GoArmGo/EstateApp/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// метрики регистрируются в глобальном реестре prometheus один раз на процесс
var testMetrics = metrics.NewHTTPMetrics()

func newTestServer(t *testing.T) *httptest.Server {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Estate{}, &domain.Room{}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := schema.NewValidator()

	estateStorage := storage.NewEstateStorage(db, logger)
	roomStorage := storage.NewRoomStorage(db, logger)
	userStorage := storage.NewUserStorage(db, logger)

	estateUC := usecase.NewEstateUseCase(estateStorage, roomStorage, validator, logger)
	userUC := usecase.NewUserUseCase(userStorage, validator, logger)

	h := handler.NewEstateHandler(estateUC, userUC, logger)
	cfg := &config.Config{ServerPort: "0", RequestTimeout: 10 * time.Second}

	srv := httptest.NewServer(NewRouter(cfg, h, logger, testMetrics))
	t.Cleanup(srv.Close)
	return srv
}

// call выполняет запрос и декодирует JSON-ответ в карту
func call(t *testing.T, srv *httptest.Server, method, path string, body any) (int, map[string]any) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	result := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &result))
	}
	return resp.StatusCode, result
}

// callList выполняет запрос, ответ на который — JSON-массив
func callList(t *testing.T, srv *httptest.Server, path string) []map[string]any {
	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func register(t *testing.T, srv *httptest.Server, surname, name string) string {
	code, body := call(t, srv, http.MethodPost, "/register",
		map[string]any{"surname": surname, "name": name, "bday": "11-03-1998"})
	require.Equal(t, http.StatusOK, code)
	token, _ := body["token"].(string)
	require.Len(t, token, 80)
	return token
}

// TestAPIScenario воспроизводит сквозной сценарий работы с API:
// два пользователя, объекты в Париже, проверка прав, комнаты, удаление.
func TestAPIScenario(t *testing.T) {
	srv := newTestServer(t)

	token1 := register(t, srv, "Morin", "Louis")

	// добавление объекта с невалидным токеном запрещено
	estateBody := map[string]any{
		"token":   "anInvalidToken",
		"name":    "first house",
		"re_type": "house",
		"rooms":   []map[string]any{{"name": "master"}},
		"city":    "Paris",
	}
	code, _ := call(t, srv, http.MethodPost, "/add_estate", estateBody)
	assert.Equal(t, http.StatusUnauthorized, code)

	estateBody["token"] = token1
	code, body := call(t, srv, http.MethodPost, "/add_estate", estateBody)
	require.Equal(t, http.StatusOK, code)
	estateID := int64(body["estate_id"].(float64))
	require.NotZero(t, estateID)

	token2 := register(t, srv, "MorDeux", "Louis")
	require.NotEqual(t, token1, token2)

	// один объект в Париже
	assert.Len(t, callList(t, srv, "/search/Paris"), 1)

	// второй пользователь добавляет объект, город в нижнем регистре
	code, body = call(t, srv, http.MethodPost, "/add_estate", map[string]any{
		"token":   token2,
		"name":    "user2 house",
		"re_type": "house",
		"rooms":   []map[string]any{{"name": "master"}},
		"city":    "paris",
	})
	require.Equal(t, http.StatusOK, code)
	secondEstateID := int64(body["estate_id"].(float64))

	// поиск нечувствителен к регистру
	assert.Len(t, callList(t, srv, "/search/Paris"), 2)
	assert.Len(t, callList(t, srv, "/search/paris"), 2)

	// чужой токен не дает редактировать объект
	editBody := map[string]any{
		"token":   token2,
		"name":    "now a flat",
		"re_type": "flat",
		"rooms":   []map[string]any{},
	}
	code, _ = call(t, srv, http.MethodPut, fmt.Sprintf("/update_estate/%d", estateID), editBody)
	assert.Equal(t, http.StatusUnauthorized, code)

	// владелец — может
	editBody["token"] = token1
	code, body = call(t, srv, http.MethodPut, fmt.Sprintf("/update_estate/%d", estateID), editBody)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, estateID, int64(body["estate_id"].(float64)))

	estates := callList(t, srv, "/search/Paris")
	var names []string
	for _, e := range estates {
		names = append(names, e["name"].(string))
	}
	assert.Contains(t, names, "now a flat")

	// пустой rooms в обновлении не удалил существующую комнату
	code, body = call(t, srv, http.MethodGet, fmt.Sprintf("/estate/%d", estateID), nil)
	require.Equal(t, http.StatusOK, code)
	rooms := body["rooms"].([]any)
	assert.Len(t, rooms, 1)

	// добавляем комнату
	code, body = call(t, srv, http.MethodPost, "/add_room", map[string]any{
		"token": token1, "name": "guest room", "id_estate": estateID,
	})
	require.Equal(t, http.StatusOK, code)
	roomID := int64(body["new_room"].(float64))
	require.NotZero(t, roomID)

	// кто угодно может обновить пользователя, но только существующего
	code, _ = call(t, srv, http.MethodPut, "/update_user/1", map[string]any{"name": "Camille"})
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, srv, http.MethodPut, "/update_user/99", map[string]any{"name": "Camille"})
	assert.Equal(t, http.StatusBadRequest, code)

	// обновление комнаты владельцем объекта
	code, body = call(t, srv, http.MethodPut, fmt.Sprintf("/update_room/%d", roomID), map[string]any{
		"token": token1, "description": "cool kids room",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, roomID, int64(body["room_id"].(float64)))

	// удаление объекта второго пользователя: сначала чужим токеном
	code, _ = call(t, srv, http.MethodDelete, fmt.Sprintf("/delete_estate/%d", secondEstateID),
		map[string]any{"token": token1})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = call(t, srv, http.MethodDelete, fmt.Sprintf("/delete_estate/%d", secondEstateID),
		map[string]any{"token": token2})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["deleted"])

	assert.Len(t, callList(t, srv, "/search/Paris"), 1)
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "RESTful API")
}

func TestGetEstate_NotFound(t *testing.T) {
	srv := newTestServer(t)

	code, _ := call(t, srv, http.MethodGet, "/estate/42", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, srv, http.MethodGet, "/estate/notanumber", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAddEstate_ValidationErrorMap(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "Morin", "Louis")

	// контракт: ошибки валидации возвращаются со статусом 200
	// в виде карты поле→сообщение
	code, body := call(t, srv, http.MethodPost, "/add_estate", map[string]any{
		"token": token,
		"name":  "house without required fields",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "re_type")
	assert.Contains(t, body, "city")
	assert.NotContains(t, body, "estate_id")
}

func TestAddRoom_BadEstateRef(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "Morin", "Louis")

	code, body := call(t, srv, http.MethodPost, "/add_room", map[string]any{
		"token": token, "name": "guest room", "id_estate": 99,
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "error")
	assert.NotContains(t, body, "new_room")
}

func TestMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Post(srv.URL+"/register", "application/json",
		strings.NewReader("surname=Morin&name=Louis"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateRoom_NotFound(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "Morin", "Louis")

	// отсутствующая комната дает 400 до проверки владельца
	code, _ := call(t, srv, http.MethodPut, "/update_room/42", map[string]any{
		"token": token, "description": "x",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
