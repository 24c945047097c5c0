package types

// Envelope is the uniform command response returned to the desktop shell.
// Exactly one of Data or Error is set; Message is optional on either path.
type Envelope struct {
	Data    any     `json:"data,omitempty"`
	Error   *string `json:"error,omitempty"`
	Message *string `json:"message,omitempty"`
}
