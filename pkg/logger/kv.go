package logger

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var bufferpool = buffer.NewPool()

const (
	ansiReset   = "\x1b[0m"
	timeLayout  = "2006-01-02 15:04:05"
	kvSeparator = " "
)

// kvCore writes entries as
//
//	[2006-01-02 15:04:05] [INFO] render/manager.go:88 Exported document format=html render_id=...
//
// Fields attached with With are kept on the core so child loggers keep their context.
type kvCore struct {
	zapcore.LevelEnabler
	out    zapcore.WriteSyncer
	color  bool
	fields []zapcore.Field
}

func newKVCore(out zapcore.WriteSyncer, level zapcore.LevelEnabler, color bool) *kvCore {
	return &kvCore{LevelEnabler: level, out: out, color: color}
}

func (c *kvCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

func (c *kvCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *kvCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf := c.encode(ent, fields)
	defer buf.Free()

	if _, err := c.out.Write(buf.Bytes()); err != nil {
		return err
	}
	if ent.Level > zapcore.ErrorLevel {
		return c.out.Sync()
	}
	return nil
}

func (c *kvCore) Sync() error {
	return c.out.Sync()
}

func (c *kvCore) encode(ent zapcore.Entry, fields []zapcore.Field) *buffer.Buffer {
	buf := bufferpool.Get()

	buf.AppendString("[" + ent.Time.Format(timeLayout) + "]")
	buf.AppendString(kvSeparator)

	level := "[" + ent.Level.CapitalString() + "]"
	if c.color {
		level = levelColor(ent.Level) + level + ansiReset
	}
	buf.AppendString(level)
	buf.AppendString(kvSeparator)

	if ent.Caller.Defined {
		buf.AppendString(ent.Caller.TrimmedPath())
		buf.AppendString(kvSeparator)
	}

	buf.AppendString(ent.Message)

	for _, f := range c.fields {
		appendField(buf, f)
	}
	for _, f := range fields {
		appendField(buf, f)
	}

	if ent.Stack != "" {
		buf.AppendByte('\n')
		buf.AppendString(ent.Stack)
	}
	buf.AppendString(zapcore.DefaultLineEnding)
	return buf
}

func levelColor(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return "\x1b[35m"
	case zapcore.InfoLevel:
		return "\x1b[34m"
	case zapcore.WarnLevel:
		return "\x1b[33m"
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return "\x1b[31m"
	default:
		return ansiReset
	}
}

func appendField(buf *buffer.Buffer, field zapcore.Field) {
	if field.Type == zapcore.SkipType {
		return
	}
	buf.AppendString(kvSeparator)
	buf.AppendString(field.Key)
	buf.AppendByte('=')

	switch field.Type {
	case zapcore.StringType:
		buf.AppendString(field.String)
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		buf.AppendInt(field.Integer)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		buf.AppendUint(uint64(field.Integer))
	case zapcore.Float64Type:
		buf.AppendFloat(math.Float64frombits(uint64(field.Integer)), 64)
	case zapcore.Float32Type:
		buf.AppendFloat(float64(math.Float32frombits(uint32(field.Integer))), 32)
	case zapcore.BoolType:
		buf.AppendBool(field.Integer == 1)
	case zapcore.DurationType:
		buf.AppendString(time.Duration(field.Integer).String())
	case zapcore.TimeType:
		t := time.Unix(0, field.Integer)
		if loc, ok := field.Interface.(*time.Location); ok && loc != nil {
			t = t.In(loc)
		}
		buf.AppendString(t.Format(time.RFC3339))
	case zapcore.TimeFullType:
		if t, ok := field.Interface.(time.Time); ok {
			buf.AppendString(t.Format(time.RFC3339))
		}
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok && err != nil {
			buf.AppendString(err.Error())
		} else {
			buf.AppendString("<nil>")
		}
	case zapcore.StringerType:
		if stringer, ok := field.Interface.(fmt.Stringer); ok {
			buf.AppendString(stringer.String())
		}
	case zapcore.ByteStringType, zapcore.BinaryType:
		if b, ok := field.Interface.([]byte); ok {
			buf.AppendString(string(b))
		}
	default:
		if field.Interface != nil {
			buf.AppendString(fmt.Sprint(field.Interface))
		}
	}
}
