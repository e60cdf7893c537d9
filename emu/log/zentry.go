package log

import (
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

// LogContext lets a caller inject ambient fields (e.g. a connection id) into
// every EntryZ emitted while it is registered, without threading the value
// through every call site.
type LogContext interface {
	AddLogContext(e *EntryZ)
}

var contexts []LogContext

// AddLogContext registers a context whose fields are attached to every
// subsequent EntryZ log line. There is no matching remove; contexts are
// meant to be process-lifetime (e.g. a hostname, an instance id).
func AddLogContext(c LogContext) {
	contexts = append(contexts, c)
}

const maxZFields = 8

// EntryZ is a fluent, allocation-light log builder. A nil *EntryZ is valid
// and every chained call on it is a no-op, so callers write:
//
//	mod.InfoZ("accepted client").String("addr", addr.String()).End()
//
// and pay no cost when the module/level combination is disabled.
type EntryZ struct {
	lvl   Level
	msg   string
	mod   Module
	zfbuf [maxZFields]ZField
	zfidx int
}

func NewEntryZ() *EntryZ {
	return &EntryZ{}
}

func (e *EntryZ) add(f ZField) *EntryZ {
	if e == nil {
		return nil
	}
	if e.zfidx < len(e.zfbuf) {
		e.zfbuf[e.zfidx] = f
		e.zfidx++
	}
	return e
}

func (e *EntryZ) String(key, val string) *EntryZ {
	return e.add(ZField{Type: FieldTypeString, Key: key, String: val})
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	return e.add(ZField{Type: FieldTypeBool, Key: key, Boolean: val})
}

func (e *EntryZ) Uint(key string, val uint64) *EntryZ {
	return e.add(ZField{Type: FieldTypeUint, Key: key, Integer: val})
}

func (e *EntryZ) Hex32(key string, val uint32) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex32, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.add(ZField{Type: FieldTypeError, Key: key, Error: err})
}

func (e *EntryZ) Stringer(key string, val interface{ String() string }) *EntryZ {
	return e.add(ZField{Type: FieldTypeStringer, Key: key, Interface: val})
}

func (e *EntryZ) Duration(key string, val time.Duration) *EntryZ {
	return e.add(ZField{Type: FieldTypeDuration, Key: key, Duration: val})
}

// End flushes the built entry to the logging backend.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	for _, c := range contexts {
		c.AddLogContext(e)
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = modNames[e.mod]
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}

	entry := logrus.StandardLogger().WithFields(fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}
}
