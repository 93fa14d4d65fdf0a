package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/anthropics/binschema/cursor"
)

// symbolInternal is the internal representation of a symbol value: a
// fixed-point ledger amount, its decimal precision, and a short ticker —
// the "asset" idiom `original_source` (an EOSIO buffer/schema library)
// exercises through exactly this kind of custom type.
type symbolInternal struct {
	Amount    int64
	Precision uint8
	Ticker    string
}

type symbolCodec struct{}

// NewSymbolCodec returns a custom codec for fixed-point ledger amounts,
// e.g. "8.0000 SYS". Object form is that single formatted string; wire
// form is an 8-byte little-endian amount, a precision byte, and a 7-byte
// zero-padded ticker — demonstrating that CustomTypes is just sugar for
// "a name the Schema Compiler resolves to a caller-supplied Codec" with
// no special wire privileges over a built-in.
func NewSymbolCodec() Codec { return &symbolCodec{} }

// NewSymbolCustomTypeFactory adapts NewSymbolCodec to the
// CustomTypeFactory shape so it can be registered under Config.CustomTypes
// (the opts argument is unused; the symbol format takes no parameters).
func NewSymbolCustomTypeFactory() CustomTypeFactory {
	return func(opts interface{}) (Codec, error) {
		return NewSymbolCodec(), nil
	}
}

func (c *symbolCodec) Required() bool { return true }

func (c *symbolCodec) FromObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, &RequiredError{Path: "symbol"}
	}
	s, ok := value.(string)
	if !ok {
		return nil, &FormatError{TypeName: "symbol", Detail: fmt.Sprintf("expected string, got %v", value)}
	}
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return nil, &FormatError{TypeName: "symbol", Detail: fmt.Sprintf("expected \"<amount> <TICKER>\", got %q", s)}
	}
	amountStr, ticker := fields[0], fields[1]
	if len(ticker) == 0 || len(ticker) > 7 {
		return nil, &FormatError{TypeName: "symbol", Detail: fmt.Sprintf("ticker %q must be 1-7 characters", ticker)}
	}
	for _, r := range ticker {
		if r < 'A' || r > 'Z' {
			return nil, &FormatError{TypeName: "symbol", Detail: fmt.Sprintf("ticker %q must be uppercase A-Z", ticker)}
		}
	}

	dot := strings.IndexByte(amountStr, '.')
	precision := 0
	digits := amountStr
	if dot >= 0 {
		precision = len(amountStr) - dot - 1
		digits = amountStr[:dot] + amountStr[dot+1:]
	}
	if precision > 255 {
		return nil, &OverflowError{TypeName: "symbol", Value: value}
	}
	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, &FormatError{TypeName: "symbol", Detail: fmt.Sprintf("invalid amount %q: %v", amountStr, err)}
	}

	return symbolInternal{Amount: amount, Precision: uint8(precision), Ticker: ticker}, nil
}

func (c *symbolCodec) ToObject(internal interface{}, config *Config) (interface{}, error) {
	if internal == nil {
		if config != nil && config.Defaults {
			return "0 SYM", nil
		}
		return nil, &RequiredError{Path: "symbol"}
	}
	v := internal.(symbolInternal)
	amount := math.Abs(float64(v.Amount))
	scaled := amount / math.Pow10(int(v.Precision))
	sign := ""
	if v.Amount < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s %s", sign, strconv.FormatFloat(scaled, 'f', int(v.Precision), 64), v.Ticker), nil
}

func (c *symbolCodec) AppendBytes(w *cursor.Writer, internal interface{}) error {
	v := internal.(symbolInternal)
	w.WriteUint64(uint64(v.Amount))
	w.WriteByte(v.Precision)
	ticker := make([]byte, 7)
	copy(ticker, v.Ticker)
	w.WriteFixed(ticker)
	return nil
}

func (c *symbolCodec) FromBytes(r *cursor.Reader) (interface{}, error) {
	amount, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	precision, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	tickerBytes, err := r.ReadFixed(7)
	if err != nil {
		return nil, err
	}
	n := len(tickerBytes)
	for n > 0 && tickerBytes[n-1] == 0 {
		n--
	}
	return symbolInternal{Amount: int64(amount), Precision: precision, Ticker: string(tickerBytes[:n])}, nil
}
