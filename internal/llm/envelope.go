package llm

import (
	"encoding/json"
	"strings"

	"github.com/quentinmartel/recipe-ingest/internal/common"
)

// The inference service answers in one of two envelope shapes depending on
// the model family behind the endpoint:
//
//	output-message style: {"output":{"message":{"content":[{"text":"..."}]}}}
//	content-array style:  {"content":[{"type":"text","text":"..."} , ...]}
//
// The shape is resolved once, structurally, by whichever top-level field is
// present; everything downstream operates on the extracted text.

type novaEnvelope struct {
	Output *struct {
		Message struct {
			Content []contentItem `json:"content"`
		} `json:"message"`
	} `json:"output"`
}

type claudeEnvelope struct {
	Content []contentItem `json:"content"`
}

type contentItem struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
}

// DecodeContent pulls the first textual content item out of whichever
// envelope shape the response carries. It fails with a protocol error when
// neither shape yields text.
func DecodeContent(raw []byte) (string, error) {
	var nova novaEnvelope
	if err := json.Unmarshal(raw, &nova); err == nil && nova.Output != nil {
		if txt := firstText(nova.Output.Message.Content); txt != "" {
			return txt, nil
		}
		return "", common.NewAppError("BACKEND_PROTOCOL", "output message carries no text content", common.ErrBackendProtocol)
	}

	var claude claudeEnvelope
	if err := json.Unmarshal(raw, &claude); err == nil && claude.Content != nil {
		if txt := firstText(claude.Content); txt != "" {
			return txt, nil
		}
		return "", common.NewAppError("BACKEND_PROTOCOL", "content array carries no text item", common.ErrBackendProtocol)
	}

	return "", common.NewAppError("BACKEND_PROTOCOL", "unrecognized response envelope", common.ErrBackendProtocol)
}

func firstText(items []contentItem) string {
	for _, it := range items {
		if it.Type != "" && it.Type != "text" {
			continue
		}
		if s := strings.TrimSpace(it.Text); s != "" {
			return s
		}
	}
	return ""
}
