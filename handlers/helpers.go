package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/club-management/services"
	"github.com/go-chi/chi/v5"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // Ошибка программиста: передан не указатель
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		return err
	}

	return nil
}

func getIDFromURL(r *http.Request, param string) (int, error) {
	idStr := chi.URLParam(r, param)
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", param)
	}
	return id, nil
}

// queryPage читает номер страницы из query-параметра, по умолчанию 1.
func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func totalPages(total int) int {
	const perPage = 15
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	err := writeJSON(w, status, env, nil)
	if err != nil {
		fmt.Printf("Error writing error JSON response: %v\n", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	// Внутренние детали не отдаются клиенту: логируем и отвечаем общо.
	fmt.Printf("Internal server error: %v\n", err)
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse отдаёт полную карту поле -> сообщения одним
// ответом, чтобы клиент мог показать все нарушения сразу.
func failedValidationResponse(w http.ResponseWriter, r *http.Request, fields map[string][]string) {
	errorResponse(w, r, http.StatusUnprocessableEntity, fields)
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *services.ValidationError
	var sportNotFoundErr *services.SportNotFoundError

	switch {
	// Нарушения бизнес-правил: всегда полным набором, по полям
	case errors.As(err, &validationErr):
		failedValidationResponse(w, r, validationErr.Fields)

	// Неизвестный спорт в поиске доступности: подсказываем список
	case errors.As(err, &sportNotFoundErr):
		env := jsonResponse{
			"error":            sportNotFoundErr.Error(),
			"available_sports": sportNotFoundErr.Available,
		}
		if writeErr := writeJSON(w, http.StatusNotFound, env, nil); writeErr != nil {
			serverErrorResponse(w, r, writeErr)
		}

	// Общие ошибки "не найдено"
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrSportNotFound),
		errors.Is(err, services.ErrCourtNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrReservationNotFound),
		errors.Is(err, services.ErrNoCourtsForSport),
		errors.Is(err, services.ErrNoHoursAvailable):
		notFoundResponse(w, r)

	// Конфликты
	case errors.Is(err, services.ErrSportNameConflict),
		errors.Is(err, services.ErrMemberEmailConflict),
		errors.Is(err, services.ErrUserEmailConflict),
		errors.Is(err, services.ErrAuthEmailTaken),
		errors.Is(err, services.ErrSportInUse),
		errors.Is(err, services.ErrCourtInUse),
		errors.Is(err, services.ErrMemberInUse):
		conflictResponse(w, r, err.Error())

	// Невалидные данные
	case errors.Is(err, services.ErrInvalidSearchDate),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrSportNameRequired),
		errors.Is(err, services.ErrCourtNameRequired),
		errors.Is(err, services.ErrCourtSportRequired),
		errors.Is(err, services.ErrMemberNameRequired),
		errors.Is(err, services.ErrMemberInvalidStatus),
		errors.Is(err, services.ErrMemberInvalidDate),
		errors.Is(err, services.ErrInvalidLogoType):
		badRequestResponse(w, r, err)

	// Ошибки аутентификации
	case errors.Is(err, services.ErrAuthInvalidCredentials):
		unauthorizedResponse(w, r, err.Error())

	// Непредвиденные ошибки / ошибки по умолчанию
	default:
		serverErrorResponse(w, r, err)
	}
}
