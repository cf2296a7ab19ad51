package amm

import (
	"github.com/ritikbhatt20/vortex/pkg/config"
	"github.com/ritikbhatt20/vortex/pkg/config/env"
	"github.com/ritikbhatt20/vortex/pkg/config/memory"
	"github.com/ritikbhatt20/vortex/pkg/config/wrapper"
)

const (
	envConfigPrefix = "AMM_SERVICE_"

	DisablePoolCreationConfigEnvName = envConfigPrefix + "DISABLE_POOL_CREATION"
	defaultDisablePoolCreation       = false

	StripedLockParallelizationConfigEnvName = envConfigPrefix + "STRIPED_LOCK_PARALLELIZATION"
	defaultStripedLockParallelization       = 64

	CreatePoolRateLimitConfigEnvName = envConfigPrefix + "CREATE_POOL_RATE_LIMIT"
	defaultCreatePoolRateLimit       = 5
)

type conf struct {
	disablePoolCreation        config.Bool
	stripedLockParallelization config.Uint64
	createPoolRateLimit        config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			disablePoolCreation:        env.NewBoolConfig(DisablePoolCreationConfigEnvName, defaultDisablePoolCreation),
			stripedLockParallelization: env.NewUint64Config(StripedLockParallelizationConfigEnvName, defaultStripedLockParallelization),
			createPoolRateLimit:        env.NewUint64Config(CreatePoolRateLimitConfigEnvName, defaultCreatePoolRateLimit),
		}
	}
}

type testOverrides struct {
	disablePoolCreation bool
	createPoolRateLimit uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		createPoolRateLimit := overrides.createPoolRateLimit
		if createPoolRateLimit == 0 {
			createPoolRateLimit = defaultCreatePoolRateLimit
		}

		return &conf{
			disablePoolCreation:        wrapper.NewBoolConfig(memory.NewConfig(overrides.disablePoolCreation), defaultDisablePoolCreation),
			stripedLockParallelization: wrapper.NewUint64Config(memory.NewConfig(uint64(defaultStripedLockParallelization)), defaultStripedLockParallelization),
			createPoolRateLimit:        wrapper.NewUint64Config(memory.NewConfig(createPoolRateLimit), defaultCreatePoolRateLimit),
		}
	}
}
