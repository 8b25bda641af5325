package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/collectibles/base/log"
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type options struct {
	name        string
	onRecovered func(panic interface{}, stack []byte)
}

type Option func(*options)

// WithName tags the panic log of the goroutine
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithAfterRecovered runs f after a panic was recovered and logged
func WithAfterRecovered(f func(panic interface{}, stack []byte)) Option {
	return func(o *options) {
		o.onRecovered = f
	}
}

// RecoverableGo runs f on its own goroutine. The returned channel receives a
// PanicEvent if f panicked and is closed when f returned normally, so it can
// be used to wait for f either way.
func RecoverableGo(f func(), opts ...Option) chan *PanicEvent {
	o := options{name: "anonymous"}
	for _, opt := range opts {
		opt(&o)
	}

	done := make(chan *PanicEvent, 1)
	go func() {
		defer func() {
			p := recover()
			if p == nil {
				close(done)
				return
			}

			stack := debug.Stack()
			log.Log().WithFields(log.Fields{
				"goroutine": o.name,
				"err":       p,
				"stack":     string(stack),
			}).Error("goroutine panicked")
			if o.onRecovered != nil {
				o.onRecovered(p, stack)
			}
			done <- &PanicEvent{p, stack}
		}()

		f()
	}()
	return done
}
