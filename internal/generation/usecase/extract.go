package usecase

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceMarkers = regexp.MustCompile("(?m)^```json|```$")
	fencedBlock  = regexp.MustCompile("```json\\n([\\s\\S]*?)\\n```")
)

// ExtractJSON strips code fence markers from model output and validates the rest as JSON
func ExtractJSON(output string) (json.RawMessage, error) {
	cleaned := strings.TrimSpace(fenceMarkers.ReplaceAllString(output, ""))
	if !json.Valid([]byte(cleaned)) {
		return nil, ErrNoJSON
	}
	return json.RawMessage(cleaned), nil
}

// ExtractFencedJSON requires a ```json block and unescapes it before validating
func ExtractFencedJSON(output string) (json.RawMessage, error) {
	match := fencedBlock.FindStringSubmatch(output)
	if match == nil {
		return nil, ErrNoJSON
	}
	cleaned := strings.NewReplacer(`\\`, `\`, `\"`, `"`).Replace(match[1])
	if !json.Valid([]byte(cleaned)) {
		return nil, ErrNoJSON
	}
	return json.RawMessage(cleaned), nil
}
