package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/yourusername/matchedge/internal/models"
)

// DecodeInput reads one MatchInput document. Unknown fields are rejected so a
// misspelled key surfaces as an error instead of silently missing data.
func DecodeInput(r io.Reader) (*models.MatchInput, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var in models.MatchInput
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("decode match input: %w", err)
	}
	return &in, nil
}

// ReadInputFile decodes the MatchInput stored at path
func ReadInputFile(path string) (*models.MatchInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	defer f.Close()

	in, err := DecodeInput(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// WriteEvaluation encodes an evaluation as indented JSON
func WriteEvaluation(w io.Writer, eval *models.Evaluation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(eval); err != nil {
		return fmt.Errorf("encode evaluation %s: %w", eval.MatchID, err)
	}
	return nil
}
