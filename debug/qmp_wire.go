package debug

import "encoding/json"

type qmpGreeting struct {
	QMP qmpGreetingBody `json:"QMP"`
}

type qmpGreetingBody struct {
	Version      qmpVersion `json:"version"`
	Capabilities []string   `json:"capabilities"`
}

type qmpVersion struct {
	Qemu    qmpQemuVersion `json:"qemu"`
	Package string         `json:"package"`
}

type qmpQemuVersion struct {
	Micro int `json:"micro"`
	Minor int `json:"minor"`
	Major int `json:"major"`
}

// Greeting returns the QMP handshake message sent immediately after
// accept, CRLF-terminated as the wire format requires.
func Greeting() []byte {
	g := qmpGreeting{
		QMP: qmpGreetingBody{
			Version:      qmpVersion{Qemu: qmpQemuVersion{Micro: 0, Minor: 0, Major: 0}, Package: "xtdbg"},
			Capabilities: []string{"oob"},
		},
	}
	body, _ := json.Marshal(g)
	return append(body, '\r', '\n')
}

func successReply(ret any) []byte {
	if ret == nil {
		ret = map[string]any{}
	}
	body, _ := json.Marshal(map[string]any{"return": ret})
	return append(body, '\r', '\n')
}

func errorReply(err *QMPError) []byte {
	body, _ := json.Marshal(map[string]any{
		"error": map[string]any{
			"class": string(err.Class),
			"desc":  err.Desc,
		},
	})
	return append(body, '\r', '\n')
}
