package selections

import (
	"strconv"

	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

type stringFunc int

const (
	fnUpper stringFunc = iota
	fnLower
	fnSubstring
	fnReplace
	fnConcat
)

// StringFunction is one of UPPER, LOWER, SUBSTRING, REPLACE or CONCAT.
type StringFunction struct {
	fn           stringFunc
	args         []ValueWhere
	from, length uint16
}

// Upper renders `UPPER(x)`.
func Upper(x any) StringFunction {
	return StringFunction{fn: fnUpper, args: []ValueWhere{ValueOf(x)}}
}

// Lower renders `LOWER(x)`.
func Lower(x any) StringFunction {
	return StringFunction{fn: fnLower, args: []ValueWhere{ValueOf(x)}}
}

// Substring renders `SUBSTRING(x FROM from FOR length)`.
func Substring(x any, from, length uint16) StringFunction {
	return StringFunction{fn: fnSubstring, args: []ValueWhere{ValueOf(x)}, from: from, length: length}
}

// Replace renders `REPLACE(x, old, repl)`.
func Replace(x, old, repl any) StringFunction {
	return StringFunction{fn: fnReplace, args: []ValueWhere{ValueOf(x), ValueOf(old), ValueOf(repl)}}
}

// Concat renders `CONCAT(a,b,...)`.
func Concat(xs ...any) StringFunction {
	return StringFunction{fn: fnConcat, args: valuesOf(xs)}
}

// ToSQL renders the function call.
func (s StringFunction) ToSQL(r resolvers.ArgsResolver) (string, error) {
	switch s.fn {
	case fnUpper, fnLower:
		v, err := s.args[0].ToSQL(r)
		if err != nil {
			return "", err
		}
		if s.fn == fnUpper {
			return "UPPER(" + v + ")", nil
		}
		return "LOWER(" + v + ")", nil
	case fnSubstring:
		v, err := s.args[0].ToSQL(r)
		if err != nil {
			return "", err
		}
		return "SUBSTRING(" + v + " FROM " + strconv.Itoa(int(s.from)) + " FOR " + strconv.Itoa(int(s.length)) + ")", nil
	case fnReplace:
		args, err := renderJoined(r, s.args, ", ")
		if err != nil {
			return "", err
		}
		return "REPLACE(" + args + ")", nil
	default:
		args, err := renderJoined(r, s.args, ",")
		if err != nil {
			return "", err
		}
		return "CONCAT(" + args + ")", nil
	}
}

func (s StringFunction) collectTables(set tableSet) {
	for _, a := range s.args {
		a.collectTables(set)
	}
}

func (StringFunction) isValueWhere() {}
