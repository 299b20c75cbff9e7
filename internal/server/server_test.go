package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureListener struct {
	inner net.Listener
	addr  chan string
}

func (l *captureListener) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := net.Listen(protocol, addr)
	if err != nil {
		return nil, err
	}
	l.inner = ln
	l.addr <- ln.Addr().String()
	return ln, nil
}

func TestHTTPServer_StartAndStop(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := NewHTTPServer(handler, "127.0.0.1:0")
	layer := &captureListener{addr: make(chan string, 1)}

	done := make(chan error, 1)
	go func() {
		done <- srv.Start(layer)
	}()

	var addr string
	select {
	case addr = <-layer.addr:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start listening")
	}

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHTTPServer_Address(t *testing.T) {
	srv := NewHTTPServer(http.NewServeMux(), ":8080")
	assert.Equal(t, ":8080", srv.Address())
}
