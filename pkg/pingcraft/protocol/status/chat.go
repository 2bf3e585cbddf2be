package status

import (
	"encoding/json"
	"strings"
)

// Chat is the chat component used in the server description. Historically
// servers encode the description either as a plain JSON string or as a
// nested component object; Chat unmarshals from both forms.
type Chat struct {
	Text          string `json:"text"`
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Underlined    bool   `json:"underlined,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Obfuscated    bool   `json:"obfuscated,omitempty"`
	Color         string `json:"color,omitempty"`
	// Extra components inherit this component's styling but carry their
	// own text.
	Extra []Chat `json:"extra,omitempty"`
}

func (c *Chat) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*c = Chat{Text: text}
		return nil
	}

	// Alias type to dodge recursing into this method.
	type chat Chat
	var cc chat
	if err := json.Unmarshal(data, &cc); err != nil {
		return err
	}
	*c = Chat(cc)
	return nil
}

// Flatten concatenates the text of this component and of all its extra
// components, depth-first, in document order.
func (c Chat) Flatten() string {
	var sb strings.Builder
	c.flatten(&sb)
	return sb.String()
}

func (c Chat) flatten(sb *strings.Builder) {
	sb.WriteString(c.Text)
	for _, extra := range c.Extra {
		extra.flatten(sb)
	}
}

func (c Chat) String() string {
	return c.Flatten()
}
