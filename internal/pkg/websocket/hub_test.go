package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehimebase/babybase/internal/pkg/auth"
)

func newTestServer(t *testing.T) (*Hub, *auth.JWTService, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	jwtSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	handler := NewHandler(hub, jwtSvc, []string{"*"}, zerolog.Nop())

	r := gin.New()
	r.GET("/ws/notifications", handler.HandleConnection)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, jwtSvc, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications?token=" + token
}

func TestNotificationDeliveredToUser(t *testing.T) {
	hub, jwtSvc, srv := newTestServer(t)

	userID := uuid.New()
	token, _, err := jwtSvc.GenerateAccessToken(userID, "student@example.jp", "student")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(userID) == 1 }, 2*time.Second, 10*time.Millisecond)

	// Another user's notification must not arrive
	hub.Notify(uuid.New(), KindScout, map[string]string{"organization": "other"})
	hub.Notify(userID, KindApplicationStatus, map[string]string{"status": "screening"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, KindApplicationStatus, got.Type)
	assert.Equal(t, "screening", got.Payload["status"])
}

func TestConnectionRequiresValidToken(t *testing.T) {
	_, _, srv := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv, "a.b.c"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestClientUnregisteredOnClose(t *testing.T) {
	hub, jwtSvc, srv := newTestServer(t)

	userID := uuid.New()
	token, _, err := jwtSvc.GenerateAccessToken(userID, "a@example.jp", "student")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount(userID) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool { return hub.ClientCount(userID) == 0 }, 2*time.Second, 10*time.Millisecond)
}
