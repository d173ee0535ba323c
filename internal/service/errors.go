package service

// InferenceError wraps a failure raised by the model during prediction
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return "Prediction failed: " + e.Err.Error()
}

func (e *InferenceError) Unwrap() error { return e.Err }
