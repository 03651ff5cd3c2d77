/*
Package server implements the msgpack batch mode of wordcheck.

Batch mode drives the same dispatcher as the interactive menu, but reads
requests from stdin and writes one msgpack response per finished task to
stdout. There is no menu and no confirmation: every decoded request is a
confirmed task.

# IPC

Clients write a stream of msgpack maps:

	{"id": "req_001", "d": "notes.txt", "r": "words.txt"}

The server first writes a ready frame:

	{"id": "", "s": "ready"}

and then, in completion order, one response per request:

	{"id": "req_001", "d": "notes.txt", "r": "words.txt", "s": "done",
	 "m": [{"w": "helo", "c": "hello", "f": 3}], "n": 4}

A task that fails answers with status "error" and a message in "e".
Requests without an id get a generated one, echoed in the response.

Closing stdin drains all running tasks without cancelling them. SIGINT or
SIGTERM cancels them; canceled tasks produce no response.
*/
package server

// Response statuses.
const (
	StatusReady = "ready"
	StatusDone  = "done"
	StatusError = "error"
)

// CheckRequest asks for one document to be checked against one reference list.
type CheckRequest struct {
	ID        string `msgpack:"id"`
	Document  string `msgpack:"d"`
	Reference string `msgpack:"r"`
}

// Mismatch is one ranked entry of a response.
type Mismatch struct {
	Word       string `msgpack:"w"`
	Correction string `msgpack:"c"`
	Frequency  int    `msgpack:"f"`
}

// CheckResponse reports a finished task, or the server status for the ready frame.
type CheckResponse struct {
	ID         string     `msgpack:"id"`
	Document   string     `msgpack:"d,omitempty"`
	Reference  string     `msgpack:"r,omitempty"`
	Mismatches []Mismatch `msgpack:"m,omitempty"`
	Total      int        `msgpack:"n,omitempty"`
	Error      string     `msgpack:"e,omitempty"`
	Status     string     `msgpack:"s"`
}
