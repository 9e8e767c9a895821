package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	"github.com/taskdeck/backend/internal/infrastructure/monitor"
)

func TestHealthCheck_DegradedWhenStoresOffline(t *testing.T) {
	// A monitor with no backing stores reports everything offline.
	mon := monitor.New(nil, nil, nil, time.Minute, nil)
	h := NewHealthHandler(mon, nil, nil)

	ctx := &fasthttp.RequestCtx{}
	h.Check(ctx)

	assert.Equal(t, fasthttp.StatusServiceUnavailable, ctx.Response.StatusCode())
	envelope := decodeEnvelope(t, ctx)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, "DEGRADED", envelope.Code)
}
