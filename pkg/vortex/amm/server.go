// Package amm processes vortex pool instructions against the data layer.
// Each operation verifies signatures over a canonical instruction message,
// takes a per-pool lock, and commits its writes in a single DB transaction.
package amm

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	rate_util "github.com/ritikbhatt20/vortex/pkg/rate"
	sync_util "github.com/ritikbhatt20/vortex/pkg/sync"
	vortex_data "github.com/ritikbhatt20/vortex/pkg/vortex/data"
)

type Server struct {
	log  *logrus.Entry
	conf *conf

	data vortex_data.Provider

	poolLocks *sync_util.StripedLock

	createPoolLimiter rate_util.Limiter

	// Virtual slot sequence for store updates. Seeded from wall clock time
	// so it stays monotonic across process restarts.
	slot uint64
}

func NewServer(data vortex_data.Provider, configProvider ConfigProvider) *Server {
	ctx := context.Background()

	conf := configProvider()

	stripedLockParallelization := uint(conf.stripedLockParallelization.Get(ctx))

	return &Server{
		log:  logrus.StandardLogger().WithField("type", "vortex/amm/server"),
		conf: conf,

		data: data,

		poolLocks: sync_util.NewStripedLock(stripedLockParallelization),

		createPoolLimiter: rate_util.NewLocalRateLimiter(rate.Limit(conf.createPoolRateLimit.Get(ctx))),

		slot: uint64(time.Now().UnixMilli()),
	}
}

func (s *Server) nextSlot() uint64 {
	return atomic.AddUint64(&s.slot, 1)
}
