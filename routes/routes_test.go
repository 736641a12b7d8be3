package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/club-management/handlers"
)

func testRouter() http.Handler {
	return SetupRoutes(Handlers{
		Auth:        handlers.NewAuthHandler(nil, "secret"),
		Sport:       handlers.NewSportHandler(nil),
		Court:       handlers.NewCourtHandler(nil, nil),
		Member:      handlers.NewMemberHandler(nil),
		Reservation: handlers.NewReservationHandler(nil),
		WebSocket:   handlers.NewWebSocketHandler(nil, nil),
	}, "secret")
}

// Кроме регистрации и входа, все маршруты закрыты токеном.
func TestRoutesRequireAuthentication(t *testing.T) {
	router := testRouter()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/sports"},
		{http.MethodGet, "/sports/1"},
		{http.MethodGet, "/courts"},
		{http.MethodPost, "/courts/search"},
		{http.MethodGet, "/members"},
		{http.MethodGet, "/reservations"},
		{http.MethodGet, "/ws/courts/1"},
	}

	for _, c := range cases {
		req := httptest.NewRequest(c.method, c.path, nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without token, got %d", c.method, c.path, recorder.Code)
		}
	}
}

func TestAuthRoutesArePublic(t *testing.T) {
	router := testRouter()

	for _, path := range []string{"/auth/register", "/auth/login"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(""))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		// Пустое тело отклоняется самим handler-ом, а не токен-методом.
		if recorder.Code == http.StatusUnauthorized {
			t.Errorf("POST %s: must be reachable without a token", path)
		}
	}
}
