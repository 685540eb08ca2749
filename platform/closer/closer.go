package closer

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type closeFn struct {
	name string
	fn   func(ctx context.Context) error
}

type closer struct {
	mu     sync.Mutex
	fns    []closeFn
	logger Logger
	closed bool
}

var global = &closer{}

func SetLogger(l Logger) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.logger = l
}

func Add(fn func(ctx context.Context) error) {
	AddNamed("", fn)
}

func AddNamed(name string, fn func(ctx context.Context) error) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.fns = append(global.fns, closeFn{name: name, fn: fn})
}

// CloseAll закрывает все зарегистрированные ресурсы в обратном порядке.
func CloseAll(ctx context.Context) error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.closed {
		return nil
	}
	global.closed = true

	var errs []error
	for i := len(global.fns) - 1; i >= 0; i-- {
		c := global.fns[i]

		if err := c.fn(ctx); err != nil {
			if global.logger != nil {
				global.logger.Error(ctx, "Failed to close resource",
					zap.String("name", c.name),
					zap.Error(err),
				)
			}
			errs = append(errs, err)
			continue
		}

		if global.logger != nil && c.name != "" {
			global.logger.Info(ctx, "Closed", zap.String("name", c.name))
		}
	}
	global.fns = nil

	return errors.Join(errs...)
}
