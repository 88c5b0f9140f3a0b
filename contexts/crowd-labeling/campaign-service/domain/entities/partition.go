package entities

// PartitionTerms slices a campaign's terms into quiz batches of at most
// pageSize terms, preserving term order. Batch boundaries depend only on the
// inputs, so re-submission after a partial failure reproduces the same
// batches. An empty term list yields zero batches.
//
// pageSize <= 0 is a configuration error rejected at campaign-creation
// validation; the nil return here is a contract backstop, not an API.
func PartitionTerms(terms []Term, pageSize int) [][]Term {
	if pageSize <= 0 || len(terms) == 0 {
		return nil
	}
	batches := make([][]Term, 0, (len(terms)+pageSize-1)/pageSize)
	for start := 0; start < len(terms); start += pageSize {
		end := start + pageSize
		if end > len(terms) {
			end = len(terms)
		}
		batches = append(batches, terms[start:end])
	}
	return batches
}

// QuizCount is the number of batches PartitionTerms will produce.
func QuizCount(termCount, pageSize int) int {
	if pageSize <= 0 || termCount <= 0 {
		return 0
	}
	return (termCount + pageSize - 1) / pageSize
}
