package model

import "errors"

var (
	ErrValidation         = errors.New("validation error")    // 400
	ErrTaskNotFound       = errors.New("task not found")      // 404
	ErrVehicleNotFound    = errors.New("vehicle not found")   // 404
	ErrOdometerRollback   = errors.New("odometer rollback")   // 422
	ErrBadGateway         = errors.New("bad gateway")         // 502
	ErrServiceUnavailable = errors.New("service unavailable") // 503
)
