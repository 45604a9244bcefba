package netcheck

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func TestProbe_ReachableListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	p := New(ln.Addr().String(), time.Second)
	if !p.IsConnected() {
		t.Fatalf("IsConnected() = false, want true")
	}
}

func TestProbe_ClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	p := New(addr, time.Second)
	if p.IsConnected() {
		t.Fatalf("IsConnected() = true for closed port, want false")
	}
}

func TestProbe_EmptyAddressDisablesCheck(t *testing.T) {
	p := New("", 0)
	if !p.IsConnected() {
		t.Fatalf("IsConnected() = false with empty address, want true")
	}
}

type fakeDialer struct {
	gotAddr string
	gotTTL  bool
	err     error
}

func (f *fakeDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	f.gotAddr = address
	_, f.gotTTL = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	client, server := net.Pipe()
	server.Close()
	return client, nil
}

func TestProbe_UsesDialerWithDeadline(t *testing.T) {
	d := &fakeDialer{}
	p := New("api.themoviedb.org:443", 0, WithDialer(d))

	if !p.IsConnected() {
		t.Fatalf("IsConnected() = false, want true")
	}
	if d.gotAddr != "api.themoviedb.org:443" {
		t.Fatalf("dialed %q, want %q", d.gotAddr, "api.themoviedb.org:443")
	}
	if !d.gotTTL {
		t.Fatalf("dial context had no deadline")
	}
}

func TestProbe_DialerError(t *testing.T) {
	p := New("example.invalid:443", time.Second, WithDialer(&fakeDialer{err: errors.New("no route to host")}))
	if p.IsConnected() {
		t.Fatalf("IsConnected() = true, want false")
	}
}
