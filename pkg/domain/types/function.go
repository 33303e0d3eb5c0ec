package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Function represents one of the six top-level CSF 2.0 functions
type Function string

const (
	FunctionGovern   Function = "GV"
	FunctionIdentify Function = "ID"
	FunctionProtect  Function = "PR"
	FunctionDetect   Function = "DE"
	FunctionRespond  Function = "RS"
	FunctionRecover  Function = "RC"
)

// AllFunctions returns all valid CSF functions in framework order
func AllFunctions() []Function {
	return []Function{
		FunctionGovern,
		FunctionIdentify,
		FunctionProtect,
		FunctionDetect,
		FunctionRespond,
		FunctionRecover,
	}
}

// IsValid checks if the function is valid
func (f Function) IsValid() bool {
	switch f {
	case FunctionGovern,
		FunctionIdentify,
		FunctionProtect,
		FunctionDetect,
		FunctionRespond,
		FunctionRecover:
		return true
	default:
		return false
	}
}

// String returns the string representation of the function
func (f Function) String() string {
	return string(f)
}

// FullName returns the full name of the function
func (f Function) FullName() string {
	switch f {
	case FunctionGovern:
		return "GOVERN"
	case FunctionIdentify:
		return "IDENTIFY"
	case FunctionProtect:
		return "PROTECT"
	case FunctionDetect:
		return "DETECT"
	case FunctionRespond:
		return "RESPOND"
	case FunctionRecover:
		return "RECOVER"
	default:
		return ""
	}
}

// Prerequisites returns the functions that should be established before this
// one. The ordering is advisory: GV has no prerequisites, ID builds on GV,
// PR on GV and ID, DE on ID and PR, RS on DE and PR, RC on RS and PR.
func (f Function) Prerequisites() []Function {
	switch f {
	case FunctionIdentify:
		return []Function{FunctionGovern}
	case FunctionProtect:
		return []Function{FunctionGovern, FunctionIdentify}
	case FunctionDetect:
		return []Function{FunctionIdentify, FunctionProtect}
	case FunctionRespond:
		return []Function{FunctionDetect, FunctionProtect}
	case FunctionRecover:
		return []Function{FunctionRespond, FunctionProtect}
	default:
		return nil
	}
}

// ParseFunction parses a string into a Function. Both the two-letter code
// and the full name are accepted.
func ParseFunction(s string) (Function, error) {
	upper := strings.ToUpper(s)
	for _, f := range AllFunctions() {
		if string(f) == upper || f.FullName() == upper {
			return f, nil
		}
	}
	return "", goerr.New("invalid CSF function", goerr.V("value", s))
}
