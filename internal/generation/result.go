package generation

// Result is the outcome of one generation attempt: either a subject/body
// pair (Success true) or a bounded diagnostic explaining why no pair could
// be recovered (Success false). There are no partial states; a Result is
// always safe to return to the caller.
type Result struct {
	Subject    string
	Body       string
	Success    bool
	Diagnostic string
}

// SuccessResult builds a successful Result.
func SuccessResult(subject, body string) Result {
	return Result{Subject: subject, Body: body, Success: true}
}

// FailureResult builds a failed Result carrying a diagnostic safe to log
// or display.
func FailureResult(diagnostic string) Result {
	return Result{Success: false, Diagnostic: diagnostic}
}
