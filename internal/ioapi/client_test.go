package ioapi

import (
	"context"
	"testing"

	"github.com/gnames/gnoccur/pkg/config"
	"github.com/jarcoal/httpmock"
)

// newTestClient builds a client whose transport is intercepted by
// httpmock. Caching is off unless a test re-enables it.
func newTestClient(t *testing.T, opts ...config.Option) *Client {
	t.Helper()

	opts = append([]config.Option{config.OptAPICacheTTL(0)}, opts...)
	cfg := config.New()
	cfg.Update(opts)

	c := New(cfg)
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(func() {
		httpmock.DeactivateAndReset()
		c.Close()
	})
	return c
}

func ctxTest() context.Context {
	return context.Background()
}
