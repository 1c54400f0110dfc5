package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/EstateApp/internal/domain"
	"github.com/GoArmGo/EstateApp/internal/schema"
	"github.com/GoArmGo/EstateApp/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// EstateHandler — обработчик HTTP-запросов REST API недвижимости.
type EstateHandler struct {
	estateUseCase usecase.EstateUseCase
	userUseCase   usecase.UserUseCase
	logger        *slog.Logger
}

// NewEstateHandler создаёт новый экземпляр EstateHandler.
func NewEstateHandler(
	estateUC usecase.EstateUseCase,
	userUC usecase.UserUseCase,
	logger *slog.Logger,
) *EstateHandler {
	return &EstateHandler{
		estateUseCase: estateUC,
		userUseCase:   userUC,
		logger:        logger,
	}
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// decodeBody — декодирует JSON-тело запроса.
// Неизвестные поля игнорируются, любой сбой разбора дает 400.
func (h *EstateHandler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Warn("failed to decode request body", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusBadRequest, "Тело запроса должно быть корректным JSON", h.logger)
		return false
	}
	return true
}

// parseID — разбирает числовой id из параметра пути.
// Нечисловой id не соответствует ни одной записи, поэтому 400.
func (h *EstateHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Warn("invalid id parameter", "id", raw)
		respondWithError(w, http.StatusBadRequest, "Некорректный id", h.logger)
		return 0, false
	}
	return id, true
}

// respondUseCaseError — переводит доменные ошибки в контракт API:
// 401 для чужого токена, 400 для отсутствующей записи,
// 200 с картой полей для ошибок валидации,
// 200 с полем error для ссылочной ошибки.
func (h *EstateHandler) respondUseCaseError(w http.ResponseWriter, err error) {
	var verrs schema.Errors
	switch {
	case errors.As(err, &verrs):
		respondWithJSON(w, http.StatusOK, verrs, h.logger)
	case errors.Is(err, domain.ErrNotOwner):
		respondWithError(w, http.StatusUnauthorized,
			"Вы должны быть владельцем объекта, используйте правильный токен", h.logger)
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusBadRequest, "Запись не найдена", h.logger)
	case errors.Is(err, domain.ErrEstateRef):
		respondWithJSON(w, http.StatusOK,
			map[string]string{"error": "Указанный id не соответствует существующему объекту"}, h.logger)
	default:
		h.logger.Error("unexpected usecase error", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера", h.logger)
	}
}

// resolveOwner разрешает токен в id владельца.
// Сбой хранилища — это 500, а не 401: ошибка уже отправлена клиенту,
// вызывающий обработчик просто выходит.
func (h *EstateHandler) resolveOwner(w http.ResponseWriter, r *http.Request, token string) (int64, error) {
	owner, err := h.userUseCase.ResolveOwner(r.Context(), token)
	if err != nil {
		h.logger.Error("failed to resolve token", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера", h.logger)
		return domain.NoOwner, err
	}
	return owner, nil
}

// Index — GET /, подсказка по использованию API.
func (h *EstateHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("This is a RESTful API, please use the appropriate endpoints"))
}

// SearchByCity — GET /search/{city}, все объекты в городе.
// Поиск нечувствителен к регистру: город канонизируется в верхний регистр.
func (h *EstateHandler) SearchByCity(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	h.logger.Info("processing request", "endpoint", "SearchByCity", "city", city)

	estates, err := h.estateUseCase.SearchByCity(r.Context(), city)
	if err != nil {
		h.logger.Error("failed to search estates", "city", city, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Ошибка поиска объектов", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, estates, h.logger)
}

// GetEstate — GET /estate/{id}, полная информация об объекте с комнатами.
func (h *EstateHandler) GetEstate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	h.logger.Info("processing request", "endpoint", "GetEstate", "estate_id", id)

	estate, err := h.estateUseCase.GetEstate(r.Context(), id)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, estate, h.logger)
}

// AddEstate — POST /add_estate, создает объект с вложенными комнатами.
// Требуется валидный токен, владельцем становится его пользователь.
func (h *EstateHandler) AddEstate(w http.ResponseWriter, r *http.Request) {
	var payload schema.EstatePayload
	if !h.decodeBody(w, r, &payload) {
		return
	}

	owner, err := h.resolveOwner(w, r, payload.Token)
	if err != nil {
		return
	}
	if owner == domain.NoOwner {
		respondWithError(w, http.StatusUnauthorized,
			"Для добавления объекта нужен валидный токен, используйте /register", h.logger)
		return
	}

	h.logger.Info("processing request", "endpoint", "AddEstate", "owner_id", owner)

	estateID, err := h.estateUseCase.AddEstate(r.Context(), owner, &payload)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"estate_id": estateID}, h.logger)
}

// DeleteEstate — DELETE /delete_estate/{id}, только для владельца.
// Комнаты удаляются каскадно.
func (h *EstateHandler) DeleteEstate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var payload schema.UserPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}

	owner, err := h.resolveOwner(w, r, payload.Token)
	if err != nil {
		return
	}

	h.logger.Info("processing request", "endpoint", "DeleteEstate", "estate_id", id)

	if err := h.estateUseCase.DeleteEstate(r.Context(), id, owner); err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true}, h.logger)
}

// UpdateEstate — PUT /update_estate/{id}, частичное обновление.
// Поле rooms отбрасывается: комнаты меняются через add_room/update_room.
func (h *EstateHandler) UpdateEstate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var payload schema.EstatePayload
	if !h.decodeBody(w, r, &payload) {
		return
	}

	owner, err := h.resolveOwner(w, r, payload.Token)
	if err != nil {
		return
	}

	h.logger.Info("processing request", "endpoint", "UpdateEstate", "estate_id", id)

	estateID, err := h.estateUseCase.UpdateEstate(r.Context(), id, owner, &payload)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"estate_id": estateID}, h.logger)
}

// AddRoom — POST /add_room, создает комнату для существующего объекта.
// Вызывающий должен владеть объектом из id_estate.
func (h *EstateHandler) AddRoom(w http.ResponseWriter, r *http.Request) {
	var payload schema.RoomPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}

	owner, err := h.resolveOwner(w, r, payload.Token)
	if err != nil {
		return
	}

	h.logger.Info("processing request", "endpoint", "AddRoom")

	roomID, err := h.estateUseCase.AddRoom(r.Context(), owner, &payload)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"new_room": roomID}, h.logger)
}

// UpdateRoom — PUT /update_room/{id}, частичное обновление комнаты.
// Права проверяются по владельцу родительского объекта.
func (h *EstateHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var payload schema.RoomPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}

	owner, err := h.resolveOwner(w, r, payload.Token)
	if err != nil {
		return
	}

	h.logger.Info("processing request", "endpoint", "UpdateRoom", "room_id", id)

	roomID, err := h.estateUseCase.UpdateRoom(r.Context(), id, owner, &payload)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"room_id": roomID}, h.logger)
}

// Register — POST /register, создает пользователя и возвращает токен.
// Токен генерируется сервером, клиентское значение игнорируется.
func (h *EstateHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload schema.UserPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}

	h.logger.Info("processing request", "endpoint", "Register")

	token, err := h.userUseCase.Register(r.Context(), &payload)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"token": token}, h.logger)
}

// UpdateUser — PUT /update_user/{id}, частичное обновление пользователя.
// Токен не требуется: любой может обновить любого пользователя,
// но поля token и estate не меняются никогда.
func (h *EstateHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var payload schema.UserPayload
	if !h.decodeBody(w, r, &payload) {
		return
	}

	h.logger.Info("processing request", "endpoint", "UpdateUser", "user_id", id)

	userID, err := h.userUseCase.UpdateUser(r.Context(), id, &payload)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"user_id": userID}, h.logger)
}
