package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/iudanet/familyhub/pkg/api"
)

// WatchStream представляет открытую подписку на изменения документов
// семьи. События приходят at-least-once, дедупликация по ревизии
// лежит на принимающей стороне.
type WatchStream struct {
	conn *websocket.Conn
}

// Watch открывает WebSocket подписку на изменения документов семьи.
// since больше или равный нулю запрашивает повтор пропущенных
// изменений с этой ревизии, отрицательный since подписывает только
// на новые события.
func (c *Client) Watch(ctx context.Context, familyID string, since int64) (*WatchStream, error) {
	wsURL, err := c.watchURL(familyID, since)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if token := c.AccessToken(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: watch dial rejected", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to dial watch endpoint: %w", err)
	}
	if resp != nil {
		_ = resp.Body.Close()
	}

	return &WatchStream{conn: conn}, nil
}

// Next блокируется до следующего события подписки.
// Возвращает ошибку при закрытии соединения.
func (s *WatchStream) Next() (*api.WatchEvent, error) {
	var event api.WatchEvent
	if err := s.conn.ReadJSON(&event); err != nil {
		return nil, fmt.Errorf("failed to read watch event: %w", err)
	}
	return &event, nil
}

// Close закрывает подписку
func (s *WatchStream) Close() error {
	return s.conn.Close()
}

// watchURL строит ws:// или wss:// адрес watch-эндпоинта
func (c *Client) watchURL(familyID string, since int64) (string, error) {
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	switch parsed.Scheme {
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported base URL scheme %q", parsed.Scheme)
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/") + fmt.Sprintf("/api/v1/families/%s/watch", familyID)
	if since >= 0 {
		query := parsed.Query()
		query.Set("since", strconv.FormatInt(since, 10))
		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}
