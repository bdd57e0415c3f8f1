package transport

import (
	"bufio"
	"net"
	"testing"
	"time"
)

func TestTCPSendWritesLineWithTerminator(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	tc := newTCP(client)
	defer tc.Close()

	done := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(server).ReadString('\n')
		done <- line
	}()

	if err := tc.Send("PING :token"); err != nil {
		t.Fatal(err)
	}

	select {
	case line := <-done:
		if line != "PING :token\r\n" {
			t.Errorf("server read %q, want %q", line, "PING :token\r\n")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for write")
	}
}

func TestTCPIncomingDecodesLines(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	tc := newTCP(client)
	defer tc.Close()

	go server.Write([]byte(":irc.example.org 001 nick :Welcome\r\n"))

	select {
	case line := <-tc.Incoming():
		want := ":irc.example.org 001 nick :Welcome"
		if line != want {
			t.Errorf("Incoming() = %q, want %q", line, want)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for incoming line")
	}
}

func TestTCPCloseClosesIncoming(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	tc := newTCP(client)
	tc.Close()

	select {
	case _, ok := <-tc.Incoming():
		if ok {
			t.Error("Incoming() should be closed after Close")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Incoming to close")
	}
}
