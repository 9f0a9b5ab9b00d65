package command

// Result is the uniform envelope returned for every dispatched command.
// Exactly one of the success/failure halves is populated.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Code    string         `json:"code,omitempty"`
	Error   string         `json:"error,omitempty"`
	Detail  string         `json:"detail,omitempty"`
	CallID  string         `json:"call_id,omitempty"`
}

// Ok wraps handler data into a success envelope.
func Ok(data map[string]any) *Result {
	if data == nil {
		data = map[string]any{}
	}
	return &Result{Success: true, Data: data}
}

// Fail converts an error into a failure envelope.
func Fail(err error) *Result {
	cerr := Classify(err)
	if cerr == nil {
		cerr = &Error{Code: CodeUnknown, Message: "unspecified failure"}
	}
	return &Result{
		Success: false,
		Code:    string(cerr.Code),
		Error:   cerr.Message,
		Detail:  cerr.Detail,
	}
}
