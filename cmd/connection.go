// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.bug.st/serial"
	"golang.org/x/term"

	"github.com/Thermoquad/skyhook/internal/config"
)

// EnvPassword holds the WebSocket basic auth password
const EnvPassword = "SKYHOOK_PASSWORD"

const dialTimeout = 15 * time.Second

// ErrConnectionClosed is returned once the WebSocket has failed or closed
var ErrConnectionClosed = errors.New("websocket connection closed")

// Connection is a byte stream to the link, serial or WebSocket
type Connection interface {
	io.ReadWriteCloser
}

// WebSocketConnection reads the payload of binary messages as one byte
// stream. Text messages are skipped.
type WebSocketConnection struct {
	conn    *websocket.Conn
	message io.Reader
	err     error
}

func (w *WebSocketConnection) Read(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	for {
		if w.message != nil {
			n, err := w.message.Read(p)
			if err == io.EOF {
				w.message = nil
				if n > 0 {
					return n, nil
				}
				continue
			}
			return n, err
		}

		kind, r, err := w.conn.NextReader()
		if err != nil {
			w.err = fmt.Errorf("%w: %v", ErrConnectionClosed, err)
			return 0, w.err
		}
		if kind == websocket.BinaryMessage {
			w.message = r
		}
	}
}

func (w *WebSocketConnection) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *WebSocketConnection) Close() error {
	return w.conn.Close()
}

// OpenSerialConnection opens portName as 8N1 at baud
func OpenSerialConnection(portName string, baud int) (Connection, error) {
	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}
	return port, nil
}

// OpenWebSocketConnection dials c.URL. A password is sent as basic auth
// together with c.Username.
func OpenWebSocketConnection(ctx context.Context, c config.ConnectionConfig, password string) (Connection, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
		TLSClientConfig:  &tls.Config{InsecureSkipVerify: c.NoSSLVerify},
	}

	header := http.Header{}
	if c.Username != "" && password != "" {
		req := http.Request{Header: header}
		req.SetBasicAuth(c.Username, password)
	}

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, c.URL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial %s: HTTP %d: %w", c.URL, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial %s: %w", c.URL, err)
	}
	return &WebSocketConnection{conn: conn}, nil
}

// GetPassword returns $SKYHOOK_PASSWORD, or prompts on stderr. Input that is
// not a terminal is read as one line.
func GetPassword() (string, error) {
	if pw := os.Getenv(EnvPassword); pw != "" {
		return pw, nil
	}

	fd := int(os.Stdin.Fd())
	fmt.Fprint(os.Stderr, "Password: ")
	defer fmt.Fprintln(os.Stderr)

	if term.IsTerminal(fd) {
		pw, err := term.ReadPassword(fd)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// OpenConnection opens the link named by the resolved settings and returns a
// one-line description of it.
func OpenConnection(ctx context.Context) (Connection, string, error) {
	c := settings.Connection
	switch {
	case c.URL != "":
		var password string
		if c.Username != "" {
			var err error
			if password, err = GetPassword(); err != nil {
				return nil, "", err
			}
		}
		conn, err := OpenWebSocketConnection(ctx, c, password)
		if err != nil {
			return nil, "", err
		}
		logger.Info().Str("url", c.URL).Msg("websocket connected")
		return conn, "WebSocket: " + c.URL, nil

	case c.Port != "":
		conn, err := OpenSerialConnection(c.Port, c.Baud)
		if err != nil {
			return nil, "", err
		}
		logger.Info().Str("port", c.Port).Int("baud", c.Baud).Msg("serial port opened")
		return conn, fmt.Sprintf("Serial: %s @ %d baud", c.Port, c.Baud), nil
	}
	return nil, "", errors.New("either --port or --url must be specified")
}
