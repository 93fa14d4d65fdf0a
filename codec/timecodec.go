package codec

import (
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/binschema/cursor"
)

const isoLayout = "2006-01-02T15:04:05"

// maxEpochSeconds is 2^32, the first second NOT representable by the
// wire's 32-bit unsigned epoch field; the representable range is
// [0, maxEpochSeconds-1].
const maxEpochSeconds = int64(1) << 32

type timeCodec struct{}

// NewTime returns the time primitive codec: a 32-bit unsigned
// seconds-since-Unix-epoch wire value, an ISO-8601-without-timezone string
// at the object boundary.
func NewTime() Codec { return &timeCodec{} }

func (c *timeCodec) Required() bool { return true }

func (c *timeCodec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: "time"}
	}

	var seconds int64
	switch v := value.(type) {
	case time.Time:
		seconds = v.Unix()
	case float64:
		seconds = int64(v) / 1000
	case int64:
		seconds = v / 1000
	case int:
		seconds = int64(v) / 1000
	case string:
		s := strings.TrimSuffix(v, "Z")
		t, err := time.ParseInLocation(isoLayout, s, time.UTC)
		if err != nil {
			return nil, &FormatError{TypeName: "time", Detail: fmt.Sprintf("invalid ISO-8601 timestamp %q: %v", v, err)}
		}
		seconds = t.Unix()
	default:
		return nil, &FormatError{TypeName: "time", Detail: fmt.Sprintf("unsupported value %v", value)}
	}

	if seconds < 0 {
		return nil, &FormatError{TypeName: "time", Detail: fmt.Sprintf("timestamp %v is before the Unix epoch", value)}
	}
	if seconds >= maxEpochSeconds {
		return nil, &OverflowError{TypeName: "time", Value: value}
	}
	return uint32(seconds), nil
}

func (c *timeCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return time.Unix(0, 0).UTC().Format(isoLayout), nil
		}
		return nil, &RequiredError{Path: "time"}
	}
	seconds := int64(internal.(uint32))
	return time.Unix(seconds, 0).UTC().Format(isoLayout), nil
}

func (c *timeCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	w.WriteUint32(internal.(uint32))
	return nil
}

func (c *timeCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return v, nil
}
