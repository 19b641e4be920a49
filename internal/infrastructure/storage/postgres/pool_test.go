package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"inventory/pkg/logger"
)

func TestSlowQueryTracer(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := logger.WithLogger(context.Background(), &logger.Logger{SugaredLogger: zap.New(core).Sugar()})

	slow := slowQueryTracer{threshold: 0}
	qctx := slow.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	slow.TraceQueryEnd(qctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})

	fast := slowQueryTracer{threshold: time.Hour}
	qctx = fast.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT 2"})
	fast.TraceQueryEnd(qctx, nil, pgx.TraceQueryEndData{})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "slow query", entries[0].Message)
		assert.Equal(t, "SELECT 1", entries[0].ContextMap()["sql"])
	}
}
