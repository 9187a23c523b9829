package rpcclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Service is the one collaborator the RPC core needs from its
// transport: a single request/response round trip carrying opaque
// UTF-8 JSON in both directions. The core never imports a concrete
// transport package directly; a host application supplies one (or
// uses the default HTTP implementation New builds).
type Service interface {
	PerformIO(ctx context.Context, request []byte) ([]byte, error)
}

// httpService is the default Service, posting each request body to a
// single HTTP(S) JSON-RPC endpoint.
type httpService struct {
	client   *http.Client
	endpoint string
}

func newHTTPService(endpoint string, dialTimeout time.Duration) *httpService {
	return &httpService{
		client:   &http.Client{Timeout: dialTimeout},
		endpoint: endpoint,
	}
}

// PerformIO implements the Service interface.
func (s *httpService) PerformIO(ctx context.Context, request []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(request))
	if err != nil {
		return nil, fmt.Errorf("rpcclient: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpcclient: performing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rpcclient: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpcclient: unexpected HTTP status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}
