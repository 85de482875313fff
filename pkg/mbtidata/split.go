package mbtidata

import (
	"golang.org/x/exp/rand"
)

// Split shuffles cleaned records with the given seed and carves off the
// trailing testFrac fraction as the test set. The same seed always produces
// the same split.
func Split(cleaned []CleanedRecord, testFrac float64, seed uint64) (train, test []CleanedRecord) {
	shuffled := make([]CleanedRecord, len(cleaned))
	copy(shuffled, cleaned)

	r := rand.New(rand.NewSource(seed))
	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	testRows := int(float64(len(shuffled)) * testFrac)
	trainRows := len(shuffled) - testRows
	return shuffled[:trainRows], shuffled[trainRows:]
}
