package schema

import (
	"regexp"
	"strconv"

	"github.com/anthropics/binschema/codec"
)

var fixedBytesPattern = regexp.MustCompile(`^fixed_bytes(\d+)$`)
var fixedStringPattern = regexp.MustCompile(`^fixed_string(\d+)$`)

// resolvePrimitive looks up name in the Type Factory catalog, falling
// back to the parametric fixed_bytesN/fixed_stringN families (§4.1),
// whose width is encoded in the name itself rather than a separate
// catalog entry.
func (c *compiler) resolvePrimitive(name string) (codec.Codec, bool) {
	if p, ok := c.primitives[name]; ok {
		return p, true
	}
	if m := fixedBytesPattern.FindStringSubmatch(name); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return nil, false
		}
		return codec.NewFixedBytes(n), true
	}
	if m := fixedStringPattern.FindStringSubmatch(name); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return nil, false
		}
		return codec.NewFixedString(n), true
	}
	return nil, false
}
