package types

import "github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"

// Success wraps data in a successful result
func Success(data map[string]interface{}) *Result {
	return &Result{Success: true, Data: data}
}

// Failure converts err into a failed result tagged with its kind
func Failure(err error) *Result {
	msg := err.Error()
	return &Result{Success: false, Error: &msg, Kind: errs.Kind(err)}
}
