package bridge

import (
	"io"
	"net/http"

	// Packages
	client "github.com/mutablelogic/go-client"
	transport "github.com/mutablelogic/go-client/pkg/transport"
	toolbridge "github.com/mutablelogic/go-toolbridge"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// do performs a single request with a client scoped to this call, and
// returns the status code and raw body. The client owns its connections,
// which are closed on every exit path.
func (b *Bridge) do(req *http.Request) (int, string, error) {
	endpoint := req.URL.Scheme + "://" + req.URL.Host
	conn := http.DefaultTransport.(*http.Transport).Clone()
	defer conn.CloseIdleConnections()

	// Client options. Transport middleware is layered with the first
	// option outermost, so the connection pool is innermost.
	opts := []client.ClientOpt{client.OptEndpoint(endpoint), client.OptTimeout(b.timeout)}
	opts = append(opts, b.clientopts...)
	if b.traced {
		opts = append(opts, client.OptTransport(func(parent http.RoundTripper) http.RoundTripper {
			return transport.NewTransport(b.tracer, parent)
		}))
	}
	opts = append(opts, client.OptTransport(func(http.RoundTripper) http.RoundTripper {
		return conn
	}))

	// Create the client
	c, err := client.New(opts...)
	if err != nil {
		return 0, "", toolbridge.ErrInternalServerError.With(err)
	}

	// Use the underlying *http.Client so the status and body are available
	// regardless of the content type
	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, "", toolbridge.ErrTransport.Withf("error: %v", err)
	}
	defer resp.Body.Close()

	// Read the body, and one byte more to detect an oversized response
	data, err := io.ReadAll(io.LimitReader(resp.Body, b.maxResponse+1))
	if err != nil {
		return resp.StatusCode, "", toolbridge.ErrTransport.Withf("error: %v", err)
	}
	if int64(len(data)) > b.maxResponse {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			data = data[:b.maxResponse]
		} else {
			return resp.StatusCode, "", toolbridge.ErrResponseFormat.Withf("response exceeds %d bytes", b.maxResponse)
		}
	}

	// Return success
	return resp.StatusCode, string(data), nil
}
