package entities

import (
	"fmt"
	"testing"
)

func makeTerms(n int) []Term {
	terms := make([]Term, 0, n)
	for i := 0; i < n; i++ {
		terms = append(terms, Term{
			TermID:   fmt.Sprintf("term-%d", i),
			Text:     fmt.Sprintf("subject %d", i),
			Position: i,
		})
	}
	return terms
}

func TestPartitionTermsBatchCount(t *testing.T) {
	cases := []struct {
		terms    int
		pageSize int
		batches  int
	}{
		{terms: 10, pageSize: 5, batches: 2},
		{terms: 11, pageSize: 5, batches: 3},
		{terms: 4, pageSize: 5, batches: 1},
		{terms: 5, pageSize: 1, batches: 5},
		{terms: 50, pageSize: 50, batches: 1},
	}
	for _, tc := range cases {
		batches := PartitionTerms(makeTerms(tc.terms), tc.pageSize)
		if len(batches) != tc.batches {
			t.Fatalf("%d terms / %d per quiz: expected %d batches, got %d", tc.terms, tc.pageSize, tc.batches, len(batches))
		}
		if got := QuizCount(tc.terms, tc.pageSize); got != tc.batches {
			t.Fatalf("QuizCount(%d, %d) = %d, want %d", tc.terms, tc.pageSize, got, tc.batches)
		}
		total := 0
		for i, batch := range batches {
			if i < len(batches)-1 && len(batch) != tc.pageSize {
				t.Fatalf("batch %d has %d terms, want full page of %d", i, len(batch), tc.pageSize)
			}
			total += len(batch)
		}
		if total != tc.terms {
			t.Fatalf("batches cover %d terms, want %d", total, tc.terms)
		}
	}
}

func TestPartitionTermsPreservesOrder(t *testing.T) {
	terms := makeTerms(7)
	batches := PartitionTerms(terms, 3)

	seen := 0
	for _, batch := range batches {
		for _, term := range batch {
			if term.TermID != terms[seen].TermID {
				t.Fatalf("position %d: got %s, want %s", seen, term.TermID, terms[seen].TermID)
			}
			seen++
		}
	}
}

func TestPartitionTermsIsDeterministic(t *testing.T) {
	terms := makeTerms(13)
	first := PartitionTerms(terms, 4)
	second := PartitionTerms(terms, 4)

	if len(first) != len(second) {
		t.Fatalf("batch counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if len(first[i]) != len(second[i]) {
			t.Fatalf("batch %d sizes differ", i)
		}
		for j := range first[i] {
			if first[i][j].TermID != second[i][j].TermID {
				t.Fatalf("batch %d term %d differs between runs", i, j)
			}
		}
	}
}

func TestPartitionTermsDegenerateInputs(t *testing.T) {
	if got := PartitionTerms(nil, 5); got != nil {
		t.Fatalf("expected nil batches for no terms, got %v", got)
	}
	if got := PartitionTerms(makeTerms(3), 0); got != nil {
		t.Fatalf("expected nil batches for zero page size, got %v", got)
	}
	if got := QuizCount(0, 5); got != 0 {
		t.Fatalf("QuizCount(0, 5) = %d, want 0", got)
	}
}
