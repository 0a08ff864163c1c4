// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/Thermoquad/skyhook/internal/config"
	"github.com/Thermoquad/skyhook/pkg/wire"
)

func TestWebSocketConnection_Read(t *testing.T) {
	ping := mustEncode(t, &wire.Ping{SystemTime: 99})
	state := mustEncode(t, &wire.State{Flight: wire.FlightReady, Orientation: wire.OrientationNormal, Battery: 50})

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "pilot" || pass != "secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		c.WriteMessage(websocket.TextMessage, []byte("log line"))
		c.WriteMessage(websocket.BinaryMessage, ping[:3])
		c.WriteMessage(websocket.BinaryMessage, append(append([]byte{}, ping[3:]...), state...))
		c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	defer srv.Close()

	cfg := config.ConnectionConfig{URL: "ws" + strings.TrimPrefix(srv.URL, "http"), Username: "pilot"}
	conn, err := OpenWebSocketConnection(context.Background(), cfg, "secret")
	if err != nil {
		t.Fatalf("OpenWebSocketConnection: %v", err)
	}
	defer conn.Close()

	want := append(append([]byte{}, ping...), state...)
	got := make([]byte, len(want))
	if _, err := io.ReadFull(conn, got); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("read % X, want % X", got, want)
	}

	if _, err := conn.Read(make([]byte, 8)); !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("Read after close = %v, want ErrConnectionClosed", err)
	}
}

func TestOpenWebSocketConnection_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := config.ConnectionConfig{URL: "ws" + strings.TrimPrefix(srv.URL, "http")}
	_, err := OpenWebSocketConnection(context.Background(), cfg, "")
	if err == nil || !strings.Contains(err.Error(), "HTTP 401") {
		t.Errorf("error = %v, want HTTP 401", err)
	}
}

func TestGetPassword_Env(t *testing.T) {
	t.Setenv(EnvPassword, "from-env")
	pw, err := GetPassword()
	if err != nil || pw != "from-env" {
		t.Errorf("GetPassword() = %q, %v", pw, err)
	}
}
