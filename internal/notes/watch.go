package notes

import (
	"context"
	"encoding/json"
	"fmt"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/sharenote/internal/model"
)

// Watch subscribes to the store's change feed at url and calls fn for every
// event until ctx is cancelled or the connection drops. An error from fn
// stops the watch and is returned.
func Watch(ctx context.Context, url string, fn func(model.Event) error) error {
	conn, _, err := ws.Dial(ctx, url, nil)
	if err != nil {
		return &NetworkError{Op: "watch", Err: err}
	}
	defer conn.CloseNow()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				conn.Close(ws.StatusNormalClosure, "")
				return nil
			}
			if ws.CloseStatus(err) == ws.StatusNormalClosure {
				return nil
			}
			return &NetworkError{Op: "watch", Err: err}
		}

		var ev model.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			return fmt.Errorf("watch: %w: %v", ErrMalformed, err)
		}
		if err := fn(ev); err != nil {
			conn.Close(ws.StatusNormalClosure, "")
			return err
		}
	}
}
