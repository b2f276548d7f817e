package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/desertthunder/vidshelf/internal/shared"
)

// maxLineSize bounds a single request line.
const maxLineSize = 4 << 20

// Serve reads requests from r until EOF or ctx is done and writes one response line per request to w.
//
// Requests run concurrently, so responses may come back in a different order than the requests.
// Serve returns after every dispatched request has been answered.
func (b *Bridge) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		werr   error
		reader = bufio.NewScanner(r)
	)
	reader.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	write := func(resp Response) {
		data, err := shared.MarshalJSON(resp, false)
		if err != nil {
			data, _ = shared.MarshalJSON(Response{ID: resp.ID, Error: err.Error()}, false)
		}

		mu.Lock()
		defer mu.Unlock()
		if werr != nil {
			return
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			werr = fmt.Errorf("failed to write response: %w", err)
		}
	}

	b.logger.Info("bridge serving", "channels", len(b.channels), "methods", len(b.handlers))

	for reader.Scan() {
		if ctx.Err() != nil {
			break
		}

		line := reader.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			write(Response{ID: shared.GenerateID(), Error: fmt.Errorf("%w: %v", shared.ErrInvalidInput, err).Error()})
			continue
		}

		wg.Add(1)
		go func(req Request) {
			defer wg.Done()
			write(b.Invoke(ctx, &req))
		}(req)
	}

	wg.Wait()

	if err := reader.Err(); err != nil {
		return fmt.Errorf("failed to read requests: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return werr
}
