package fn

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"

	"github.com/on-the-ground/functools/configkeys"
	"github.com/on-the-ground/functools/log"
	"github.com/on-the-ground/functools/shared/helper"
)

// TraceFlags selects what a traced Func logs. Flags combine with |.
type TraceFlags uint8

const TraceNone TraceFlags = 0

const (
	TraceArguments TraceFlags = 1 << iota
	TraceReceiver
	TraceReturn
	TraceTime
	TraceStack

	TraceAll = TraceArguments | TraceReceiver | TraceReturn | TraceTime | TraceStack
)

var traceFlagNames = map[string]TraceFlags{
	"none":      TraceNone,
	"arguments": TraceArguments,
	"receiver":  TraceReceiver,
	"return":    TraceReturn,
	"time":      TraceTime,
	"stack":     TraceStack,
	"all":       TraceAll,
}

// ParseTraceFlags reads a list such as "arguments|return" or "time,stack".
func ParseTraceFlags(s string) (TraceFlags, error) {
	var flags TraceFlags
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		flag, ok := traceFlagNames[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return TraceNone, fmt.Errorf("unknown trace flag %q", part)
		}
		flags |= flag
	}
	return flags, nil
}

// TraceConfig configures Traced.
type TraceConfig struct {
	// Name labels log lines; empty means f.Name().
	Name  string
	Flags TraceFlags
	Level log.Level
}

// DefaultTraceConfig logs arguments and return values at debug level.
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		Flags: TraceArguments | TraceReturn,
		Level: log.LevelDebug,
	}
}

// LoadTraceConfig overrides DefaultTraceConfig with the trace keys found in
// bindings. Flags may be bound as TraceFlags, an int or a flag list string.
func LoadTraceConfig(bindings map[string]any) (TraceConfig, error) {
	cfg := DefaultTraceConfig()

	name, found, err := helper.BindingOf[string](bindings, configkeys.ConfigFnTraceName)
	if err != nil {
		return cfg, err
	} else if found {
		cfg.Name = name
	}

	level, found, err := helper.BindingOf[string](bindings, configkeys.ConfigFnTraceLevel)
	if err != nil {
		return cfg, err
	} else if found {
		cfg.Level = log.ParseLevel(level)
	}

	if raw, found := bindings[configkeys.ConfigFnTraceFlags]; found {
		switch v := raw.(type) {
		case TraceFlags:
			cfg.Flags = v
		case int:
			cfg.Flags = TraceFlags(v)
		case string:
			if cfg.Flags, err = ParseTraceFlags(v); err != nil {
				return cfg, err
			}
		default:
			return cfg, fmt.Errorf("%w: binding %q holds %T", helper.ErrUnexpectedType, configkeys.ConfigFnTraceFlags, raw)
		}
	}
	return cfg, nil
}

// Traced returns a Func logging each call of f to logger according to cfg.
//
// The call is announced before f runs and its outcome after; both lines
// share a call_id. With TraceNone only the announcement is logged. Errors
// are logged and returned unchanged; panics are logged and re-raised.
func (f *Func) Traced(logger *zap.Logger, cfg TraceConfig) *Func {
	if logger == nil {
		logger = log.Nop()
	}
	name := cfg.Name
	if name == "" {
		name = f.Name()
	}
	title := "called anonymous function"
	if name != "" {
		title = fmt.Sprintf("called %q", name)
	}

	return f.Wrap(func(recv any, base *Func, args []any) (res any, err error) {
		callID := zap.String("call_id", uuid.New().String())
		if cfg.Flags == TraceNone {
			log.Emit(logger, cfg.Level, title, callID)
			return base.Apply(recv, args)
		}

		fields := []zap.Field{callID}
		if cfg.Flags&TraceArguments != 0 {
			fields = append(fields, zap.Any("args", args))
		}
		if cfg.Flags&TraceReceiver != 0 {
			fields = append(fields, zap.Any("recv", recv))
		}
		log.Emit(logger, cfg.Level, title, fields...)

		start := time.Now()
		done := false
		defer func() {
			if done {
				return
			}
			r := recover()
			if r == nil {
				return
			}
			logger.Error(title+" panicked", append(traceOutcome(cfg.Flags, callID, start), zap.Any("panic", r))...)
			panic(r)
		}()

		res, err = base.Apply(recv, args)
		done = true

		outcome := traceOutcome(cfg.Flags, callID, start)
		if cfg.Flags&TraceReturn != 0 && err != nil {
			logger.Error(title+" failed", append(outcome, zap.Error(err))...)
			return res, err
		}
		if cfg.Flags&TraceReturn != 0 {
			outcome = append(outcome, zap.Any("return", res))
		}
		log.Emit(logger, cfg.Level, title+" returned", outcome...)
		return res, err
	})
}

func traceOutcome(flags TraceFlags, callID zap.Field, start time.Time) []zap.Field {
	fields := []zap.Field{callID}
	if flags&TraceTime != 0 {
		span := timespan.BetweenTimes(start, time.Now())
		fields = append(fields, zap.Time("started", span.Start()), zap.Duration("elapsed", span.Duration()))
	}
	if flags&TraceStack != 0 {
		fields = append(fields, zap.Stack("stack"))
	}
	return fields
}
