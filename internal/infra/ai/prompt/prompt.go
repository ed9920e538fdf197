package prompt

// Mode selects which request kind a prompt is built for.
type Mode string

const (
	ModeFullAnalysis Mode = "full-analysis"
	ModeChat         Mode = "chat"
)

// Request is the transient value object describing one outbound call.
// CodeSnippet may be empty for pure chat. Never stored; built and consumed
// within a single request cycle.
type Request struct {
	CodeSnippet string
	UserText    string
	Mode        Mode
}

// Build turns a Request into the {system, user} pair sent to the provider.
// Pure string construction; blank-input validation is the caller's job.
func Build(req Request) (system, user string) {
	if req.Mode == ModeChat {
		return buildChat(req.UserText, req.CodeSnippet)
	}
	return buildFullAnalysis(req.CodeSnippet)
}
