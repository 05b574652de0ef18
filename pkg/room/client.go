package room

import (
	"github.com/gorilla/websocket"
	"ratscrew/pkg/playable"
)

// Client receives every state change the dealer broadcasts
// Clients are read-only, player input goes through Dealer.Submit.
type Client struct {
	// Conn is the underlying websocket connection, nil for the local terminal
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan *playable.Response

	// Close receives the reason the dealer stopped
	Close chan string

	name string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, name string) *Client {
	return &Client{
		send:  make(chan *playable.Response, 256),
		Close: make(chan string, 1),
		Conn:  conn,
		name:  name,
	}
}

// Send sends a message to the client without blocking
// false is returned if the client is not keeping up and the message was dropped.
func (c *Client) Send(msg *playable.Response) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close tells the client the dealer is gone without blocking
func (c *Client) close(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan *playable.Response {
	return c.send
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return c.name
}
