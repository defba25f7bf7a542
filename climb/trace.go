package climb

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// tickTrace collects the values computed during a tick in the order they were produced. The zero
// value is disabled and discards everything set on it.
type tickTrace struct {
	*orderedmap.OrderedMap[string, any]
}

func newTickTrace() tickTrace {
	return tickTrace{orderedmap.NewOrderedMap[string, any]()}
}

func (t tickTrace) enabled() bool {
	return t.OrderedMap != nil
}

// Set records v under key if the trace is enabled.
func (t tickTrace) Set(key string, v any) {
	if t.enabled() {
		t.OrderedMap.Set(key, v)
	}
}

// debugEnabled reports whether log would emit debug entries. Loggers of unknown type are assumed to.
func debugEnabled(log logrus.FieldLogger) bool {
	switch l := log.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	default:
		return true
	}
}

func (t tickTrace) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for index, key := range t.Keys() {
		v, _ := t.Get(key)
		switch v := v.(type) {
		case mgl32.Vec3:
			fmt.Fprintf(&sb, "%s=(%.3f %.3f %.3f)", key, v[0], v[1], v[2])
		case float32:
			fmt.Fprintf(&sb, "%s=%.4f", key, v)
		default:
			fmt.Fprintf(&sb, "%s=%v", key, v)
		}
		if index != t.Len()-1 {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
