package wikiapi

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStitcher_SingleBatch(t *testing.T) {
	s := NewStitcher()
	if err := s.Add([]byte(`{"count":1,"value":[{"id":1,"path":"/A"}]}`)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	out, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	want := `[{"id":1,"path":"/A"}]`
	if string(out) != want {
		t.Errorf("Finish() = %s, want %s", out, want)
	}
}

func TestStitcher_ElementCountAcrossBatches(t *testing.T) {
	batches := [][]byte{
		[]byte(`{"value":[{"id":1},{"id":2}]}`),
		[]byte(`{"value":[{"id":3}]}`),
		[]byte(`{"value":[{"id":4},{"id":5},{"id":6}]}`),
	}

	s := NewStitcher()
	for i, b := range batches {
		if err := s.Add(b); err != nil {
			t.Fatalf("Add() batch %d error = %v", i+1, err)
		}
	}

	if s.Batches() != 3 {
		t.Errorf("Batches() = %d, want 3", s.Batches())
	}

	out, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	var elements []map[string]int
	if err := json.Unmarshal(out, &elements); err != nil {
		t.Fatalf("stitched output is not valid JSON: %v", err)
	}
	if len(elements) != 6 {
		t.Errorf("stitched element count = %d, want 6", len(elements))
	}
	if elements[0]["id"] != 1 || elements[5]["id"] != 6 {
		t.Errorf("stitched elements out of order: %v", elements)
	}
}

func TestStitcher_EmptyBatchValue(t *testing.T) {
	s := NewStitcher()
	if err := s.Add([]byte(`{"value":[]}`)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	out, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if string(out) != "[]" {
		t.Errorf("Finish() = %s, want []", out)
	}
}

func TestStitcher_NoBatches(t *testing.T) {
	out, err := NewStitcher().Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if string(out) != "[]" {
		t.Errorf("Finish() = %s, want []", out)
	}
}

func TestStitcher_MissingValue(t *testing.T) {
	s := NewStitcher()
	err := s.Add([]byte(`{"count":5}`))
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("Add() error = %v, want ErrMalformedResponse", err)
	}
}

func TestStitcher_InvalidJSON(t *testing.T) {
	s := NewStitcher()
	if err := s.Add([]byte(`{"value": [`)); err == nil {
		t.Error("Add() error = nil, want decode error")
	}
}
