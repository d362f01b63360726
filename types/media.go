package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The media blob holds the optional attachment and the metadata block side
// by side in one JSON object. Both the local store and the remote goals.media
// column use this shape.

var nullJSON = json.RawMessage("null")

type attachmentKeys struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	DataURL string `json:"dataUrl"`
}

func EncodeMedia(attachment *Attachment, meta *Meta) (json.RawMessage, error) {
	if attachment == nil && meta == nil {
		return nullJSON, nil
	}

	fields := map[string]json.RawMessage{}
	if meta != nil {
		type plain Meta
		encoded, err := json.Marshal(plain(withEmptyLists(*meta)))
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata: %w", err)
		}
		if err := json.Unmarshal(encoded, &fields); err != nil {
			return nil, fmt.Errorf("failed to encode metadata: %w", err)
		}
	}
	if attachment != nil {
		for key, value := range map[string]string{
			"name":    attachment.Name,
			"type":    attachment.Type,
			"dataUrl": attachment.DataURL,
		} {
			encoded, _ := json.Marshal(value)
			fields[key] = encoded
		}
	}

	return json.Marshal(fields)
}

func DecodeMedia(raw json.RawMessage) (*Attachment, *Meta, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullJSON) {
		return nil, nil, nil
	}
	if trimmed[0] != '{' {
		return nil, nil, fmt.Errorf("media must be a JSON object")
	}

	var keys attachmentKeys
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return nil, nil, fmt.Errorf("failed to decode attachment: %w", err)
	}

	var meta Meta
	if err := json.Unmarshal(trimmed, &meta); err != nil {
		return nil, nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	var attachment *Attachment
	if keys.DataURL != "" || keys.Name != "" {
		attachment = &Attachment{Name: keys.Name, Type: keys.Type, DataURL: keys.DataURL}
	}
	return attachment, &meta, nil
}

// withEmptyLists replaces nil lists so the blob always carries [] for them.
func withEmptyLists(m Meta) Meta {
	if m.Subtasks == nil {
		m.Subtasks = []Subtask{}
	}
	if m.ConsistencyHistory == nil {
		m.ConsistencyHistory = []string{}
	}
	if m.Journal == nil {
		m.Journal = []JournalEntry{}
	}
	return m
}
