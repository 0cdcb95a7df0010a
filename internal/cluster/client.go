package cluster

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/goccy/go-json"
)

// SendTask abre una conexión TCP, manda la tarea y espera la respuesta.
// El deadline de ctx se aplica a toda la conversación.
func SendTask(ctx context.Context, addr string, task *ShardTask) (*ShardResponse, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	enc := json.NewEncoder(conn)
	if err := enc.Encode(task); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bufio.NewReader(conn))
	var resp ShardResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("node %s shard %d: %w", resp.NodeID, resp.ShardID, errors.New(resp.Error))
	}
	return &resp, nil
}
