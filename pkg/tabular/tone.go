package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ssargent/rdtcsv/pkg/codec"
	"github.com/ssargent/rdtcsv/pkg/crc"
	"github.com/ssargent/rdtcsv/pkg/field"
)

// FormatTone renders a tone value: CTCSS as "127.3", DCS as "D023N" or
// "D023I". Enumerators are tried first; no tone is the empty string.
func FormatTone(d *field.Descriptor, v codec.Numeric) string {
	if e, ok := d.ByValue(v); ok {
		return e.Name
	}
	if v == codec.InvalidBCD {
		return ""
	}

	value := v & codec.ToneValueMask
	switch v & codec.ToneKindMask {
	case codec.ToneDCSNormal:
		return fmt.Sprintf("D%03dN", value)
	case codec.ToneDCSInverted:
		return fmt.Sprintf("D%03dI", value)
	}
	return fmt.Sprintf("%d.%d", value/10, value%10)
}

// ParseTone reads what FormatTone writes.
func ParseTone(d *field.Descriptor, token string) (codec.Numeric, error) {
	if e, ok := d.ByHash(crc.StringLower(token)); ok {
		return e.Value, nil
	}
	if token == "" {
		return codec.InvalidBCD, nil
	}

	upper := strings.ToUpper(token)
	if len(upper) == 5 && upper[0] == 'D' {
		kind := codec.Numeric(0)
		switch upper[4] {
		case 'N':
			kind = codec.ToneDCSNormal
		case 'I':
			kind = codec.ToneDCSInverted
		default:
			return 0, invalidValue(d, token)
		}
		v, err := strconv.ParseUint(upper[1:4], 10, 16)
		if err != nil || v == 0 {
			return 0, invalidValue(d, token)
		}
		return kind | codec.Numeric(v), nil
	}

	whole, frac, found := strings.Cut(token, ".")
	if !found {
		frac = "0"
	}
	w, err := strconv.ParseUint(whole, 10, 16)
	if err != nil || len(frac) != 1 || frac[0] < '0' || frac[0] > '9' {
		return 0, invalidValue(d, token)
	}
	v := codec.Numeric(w)*10 + codec.Numeric(frac[0]-'0')
	if v == 0 || v > codec.MaxToneValue {
		return 0, invalidValue(d, token)
	}
	return v, nil
}
