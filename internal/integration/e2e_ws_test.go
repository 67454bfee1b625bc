package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hazard_duel/internal/config"
	httpserver "hazard_duel/internal/http"
	"hazard_duel/internal/http/handlers"
	"hazard_duel/internal/repository"
	"hazard_duel/internal/service"
	"hazard_duel/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/google/uuid"
)

func TestE2E_CreateJoinWatch(t *testing.T) {
	db := connectDB(t)
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		APIRateLimit:  1000,
		APIRateWindow: 60,
		JWT:           config.JWTSettings{SecretKey: "test-secret", TokenKey: "token", ExpireHours: 1},
	}

	gameRepo := repository.NewGameRepository(db)
	historyRepo := repository.NewGameHistoryRepository(db)
	matches := service.NewMatchService(gameRepo, repository.NewSnapshotCache(nil, time.Minute), historyRepo)
	tokens := service.NewTokenService(cfg.JWT)
	players := service.NewPlayerService(repository.NewPlayerRepository(db))

	auditRepo := repository.NewAuditRepository(db)
	h := handlers.NewHandler(players, matches, tokens, historyRepo)
	h.Audit = service.NewAuditService(auditRepo)

	r := gin.New()
	httpserver.RegisterRoutes(r, httpserver.Deps{
		Handler: h,
		Health:  handlers.NewHealthHandler(db, nil, "test"),
		Hub:     ws.NewHub(matches),
	}, cfg)

	srv := httptest.NewServer(r)
	defer srv.Close()

	login := func(name string) string {
		body, _ := json.Marshal(map[string]string{"name": name})
		res, err := http.Post(srv.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		defer res.Body.Close()
		var out struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(res.Body).Decode(&out); err != nil || out.Token == "" {
			t.Fatalf("login %s: status %d, %v", name, res.StatusCode, err)
		}
		return out.Token
	}
	post := func(path, token string, out any) {
		req, _ := http.NewRequest(http.MethodPost, srv.URL+path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		defer res.Body.Close()
		if res.StatusCode >= 300 {
			t.Fatalf("POST %s: status %d", path, res.StatusCode)
		}
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}

	suffix := uuid.NewString()[:8]
	tokenA := login("e2e-a-" + suffix)
	tokenB := login("e2e-b-" + suffix)

	var created handlers.GameResponse
	post("/api/v1/games", tokenA, &created)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/games/" + created.ID + "?token=" + tokenA
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() ws.StatusPayload {
		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		var msg struct {
			Type    string           `json:"type"`
			Payload ws.StatusPayload `json:"payload"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		return msg.Payload
	}

	if p := read(); p.Status.String() != "WaitingForOpponent" {
		t.Fatalf("initial status = %s", p.Status)
	}

	var joined handlers.GameResponse
	post("/api/v1/games/"+created.ID+"/join", tokenB, &joined)

	want := []string{"Joining", "Starting", joined.Status.String()}
	for _, w := range want {
		if p := read(); p.Status.String() != w {
			t.Fatalf("status = %s; want %s", p.Status, w)
		}
	}

	claimsA, err := tokens.Parse(tokenA)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims, err := tokens.Parse(tokenB)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	mover := claimsA.Subject
	if joined.Status.String() == "Player2Turn" {
		mover = claims.Subject
	}
	v, err := matches.Move(context.Background(), created.ID, mover, 4)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if p := read(); p.Status != v.Status {
		t.Fatalf("status after move = %s; want %s", p.Status, v.Status)
	}
	logs, err := auditRepo.GetByPlayer(context.Background(), claims.Subject, 10)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(logs) != 2 || logs[0].Action != "game_join" || logs[1].Action != "login" {
		t.Fatalf("unexpected audit trail: %+v", logs)
	}
}
