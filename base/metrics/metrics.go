/*
Package metrics wraps datadog-go to record process metrics.
Naming convention:
- Internal process time: *.time
- Error: *.err
- Anything counted: plain noun, e.g. coordinator.orphan
*/
package metrics

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/x-xyz/collectibles/base/env"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	ddTags := []string{
		// an empty host tag drops the host tags attached by the agent
		"host:",
		"env:" + firstNonEmpty(viper.GetString("env_name"), env.EnvName()),
		"app:" + firstNonEmpty(viper.GetString("app_name"), env.AppName()),
	}
	if pod := env.PodName(); pod != "" {
		ddTags = append(ddTags, "pod:"+pod)
	}
	return &Metrics{
		pkgName: pkgName,
		datadog: DDMetrics{ddTags: ddTags},
	}
}

// Metrics prefixes keys with the package name and forwards them to datadog.
type Metrics struct {
	pkgName string
	datadog DDMetrics
}

func (mt *Metrics) bumpSumPanic(key, tag string) {
	mt.datadog.BumpSum(key, 1, 1, "tag", tag)
}

func (mt *Metrics) recoverBump(kind, key string, tags []string) {
	if err := recover(); err != nil {
		mt.bumpSumPanic(kind+".panic", mt.pkgName+`.`+key+"#"+strings.Join(tags, "#"))
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverBump("bumpavg", key, tags)
	mt.datadog.BumpAvg(mt.pkgName+`.`+key, val, 1, tags...)
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverBump("bumpsum", key, tags)
	mt.datadog.BumpSum(mt.pkgName+`.`+key, val, 1, tags...)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverBump("bumphistogram", key, tags)
	mt.datadog.BumpHistogram(mt.pkgName+`.`+key, val, 1, tags...)
}

// BumpTime starts a timer and returns a value whose End() records it:
//
//	defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	ddEnd := mt.datadog.BumpTime(mt.pkgName+`.`+key, 1, tags...)
	return &timeTracker{
		ddEnd: ddEnd,
		panicHandler: func() {
			mt.bumpSumPanic("bumptime.panic", mt.pkgName+`.`+key+"#"+strings.Join(tags, "#"))
		},
	}
}

type timeTracker struct {
	ddEnd        Ender
	panicHandler func()
}

func (t *timeTracker) End() {
	defer func() {
		if err := recover(); err != nil {
			t.panicHandler()
		}
	}()
	t.ddEnd.End()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
