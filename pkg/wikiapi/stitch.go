package wikiapi

import (
	"encoding/json"
	"fmt"
)

// Stitcher merges the value arrays of successive pagesbatch bodies into one
// JSON array. Each batch is decoded structurally and its elements kept as raw
// messages; the result is serialized once at the end, so batch boundaries can
// never corrupt the output.
type Stitcher struct {
	elements []json.RawMessage
	batches  int
}

// NewStitcher returns an empty Stitcher.
func NewStitcher() *Stitcher {
	return &Stitcher{}
}

// Add decodes one batch body and appends its value elements. A body without a
// value array fails with ErrMalformedResponse.
func (s *Stitcher) Add(body []byte) error {
	var envelope struct {
		Value *[]json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decoding batch %d: %w", s.batches+1, err)
	}
	if envelope.Value == nil {
		return fmt.Errorf("batch %d: %w", s.batches+1, ErrMalformedResponse)
	}

	s.elements = append(s.elements, *envelope.Value...)
	s.batches++
	return nil
}

// Len returns the number of accumulated elements.
func (s *Stitcher) Len() int {
	return len(s.elements)
}

// Batches returns the number of bodies added so far.
func (s *Stitcher) Batches() int {
	return s.batches
}

// Finish serializes the accumulated elements as a single JSON array.
func (s *Stitcher) Finish() ([]byte, error) {
	if len(s.elements) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(s.elements)
}
