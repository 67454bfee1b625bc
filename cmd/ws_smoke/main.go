package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Smoke test against a running server: two players log in, create and join a
// game, and the first one watches the status stream.
func main() {
	base := flag.String("addr", "http://127.0.0.1:8080", "server base url")
	flag.Parse()

	tokenA := login(*base, "smokeA")
	tokenB := login(*base, "smokeB")

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	post(*base+"/api/v1/games", tokenA, &created)
	log.Printf("created game %s (%s)", created.ID, created.Status)

	wsURL := "ws" + strings.TrimPrefix(*base, "http") + "/ws/games/" + created.ID + "?token=" + tokenA
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readStatus(conn, "initial")

	var joined struct {
		Status string `json:"status"`
	}
	post(*base+"/api/v1/games/"+created.ID+"/join", tokenB, &joined)
	log.Printf("joined, status %s", joined.Status)

	// Joining, Starting, first turn
	for i := 0; i < 3; i++ {
		readStatus(conn, fmt.Sprintf("transition %d", i+1))
	}

	log.Println("smoke test finished")
}

func login(base, name string) string {
	body, _ := json.Marshal(map[string]string{"name": name})
	res, err := http.Post(base+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("login %s: %v", name, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		log.Fatalf("login %s: status %d", name, res.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		log.Fatalf("decode login: %v", err)
	}
	return out.Token
}

func post(url, token string, out any) {
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("POST %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		log.Fatalf("POST %s: status %d", url, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		log.Fatalf("decode %s: %v", url, err)
	}
}

func readStatus(conn *websocket.Conn, label string) {
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		log.Fatalf("%s: read error: %v", label, err)
	}
	log.Printf("%s: %s", label, msg)
}
