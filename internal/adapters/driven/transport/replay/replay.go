// Package replay implements a transport that answers requests from a
// recorded cassette file.
//
// A cassette lists interactions: a method, its parameters and either a
// response object or a server error. Requests are matched by method and
// canonical parameters. Repeated identical requests consume matching
// interactions in order and the last one keeps answering.
package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/custodia-labs/tgcore/internal/adapters/driven/transport"
	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driven"
	"github.com/custodia-labs/tgcore/internal/logger"
	"github.com/custodia-labs/tgcore/internal/wire"
)

// Ensure Transport implements the interface.
var _ driven.Transport = (*Transport)(nil)

type cassetteFile struct {
	Interactions []struct {
		Method   string          `json:"method"`
		Params   json.RawMessage `json:"params"`
		Response json.RawMessage `json:"response"`
		Error    *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"interactions"`
}

type interaction struct {
	response domain.RawVariant
	err      error
}

// Transport replays a cassette. It is safe for concurrent use.
type Transport struct {
	path string

	mu    sync.Mutex
	tapes map[string][]interaction
	used  map[string]int
}

// Open loads the cassette at path.
func Open(path string) (*Transport, error) {
	t := &Transport{path: path}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// New creates a transport from cassette JSON.
func New(data []byte) (*Transport, error) {
	tapes, err := parse(data)
	if err != nil {
		return nil, err
	}
	return &Transport{tapes: tapes, used: make(map[string]int)}, nil
}

// Path returns the cassette path, empty for in-memory cassettes.
func (t *Transport) Path() string {
	return t.path
}

// Reload rereads the cassette file and rewinds every interaction.
func (t *Transport) Reload() error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return fmt.Errorf("read cassette: %w", err)
	}
	tapes, err := parse(data)
	if err != nil {
		return fmt.Errorf("cassette %s: %w", t.path, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.tapes = tapes
	t.used = make(map[string]int)
	return nil
}

func parse(data []byte) (map[string][]interaction, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var file cassetteFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse cassette: %w: %v", domain.ErrInvalidInput, err)
	}

	tapes := make(map[string][]interaction)
	for i, rec := range file.Interactions {
		if rec.Method == "" {
			return nil, fmt.Errorf("interaction %d: missing method: %w", i, domain.ErrInvalidInput)
		}
		params, err := wire.DecodeParams(rec.Params)
		if err != nil {
			return nil, fmt.Errorf("interaction %d params: %w", i, err)
		}
		key, err := requestKey(rec.Method, params)
		if err != nil {
			return nil, err
		}

		var it interaction
		switch {
		case rec.Error != nil:
			it.err = transport.NewError(rec.Error.Code, rec.Error.Message)
		case len(rec.Response) > 0:
			if it.response, err = wire.Decode(rec.Response); err != nil {
				return nil, fmt.Errorf("interaction %d response: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("interaction %d: no response or error: %w", i, domain.ErrInvalidInput)
		}
		tapes[key] = append(tapes[key], it)
	}
	return tapes, nil
}

func requestKey(method string, params map[string]any) (string, error) {
	canonical, err := wire.Canonical(params)
	if err != nil {
		return "", err
	}
	return method + " " + canonical, nil
}

// Invoke answers a request from the cassette.
func (t *Transport) Invoke(ctx context.Context, req domain.Request) (*domain.RawEnvelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := requestKey(req.Method, req.Params)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	tape := t.tapes[key]
	n := t.used[key]
	if len(tape) > 0 {
		t.used[key] = n + 1
	}
	t.mu.Unlock()

	if len(tape) == 0 {
		logger.Debug("replay: no interaction for %s", key)
		return nil, transport.NewError(400, "REPLAY_NO_MATCH "+req.Method)
	}
	it := tape[min(n, len(tape)-1)]
	if it.err != nil {
		return nil, it.err
	}
	return domain.NewEnvelope(it.response), nil
}

// Len returns the number of recorded interactions.
func (t *Transport) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, tape := range t.tapes {
		n += len(tape)
	}
	return n
}
