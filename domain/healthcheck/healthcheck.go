package healthcheck

import (
	"github.com/x-xyz/collectibles/base/ctx"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) error
}

// HealthCheckRepo pings every backend the service depends on
type HealthCheckRepo interface {
	Ping(context ctx.Ctx) error
}
