package usecase

import (
	"context"
	"log"

	"github.com/saunafinder/backend/internal/domain"
)

const defaultInsertBatchSize = 25

// Importer writes new pipeline records to the venue store in batches
type Importer struct {
	venues    domain.VenueRepository
	batchSize int
}

// NewImporter creates an importer; batchSize <= 0 uses the default of 25
func NewImporter(venues domain.VenueRepository, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = defaultInsertBatchSize
	}
	return &Importer{venues: venues, batchSize: batchSize}
}

// Import inserts the records batch by batch. A failing batch is logged and
// skipped; the stored venues come back paired with the candidate they were built from.
func (im *Importer) Import(ctx context.Context, records []domain.NewVenue) ([]domain.InsertedVenue, error) {
	inserted := make([]domain.InsertedVenue, 0, len(records))

	for start := 0; start < len(records); start += im.batchSize {
		select {
		case <-ctx.Done():
			return inserted, ctx.Err()
		default:
		}

		end := min(start+im.batchSize, len(records))
		batch := records[start:end]

		rows := make([]domain.ClassifiedVenue, len(batch))
		for i, r := range batch {
			rows[i] = r.Record
		}

		stored, err := im.venues.InsertBatch(ctx, rows)
		if err != nil {
			log.Printf("[STORE] batch %d-%d failed: %v", start+1, end, err)
			continue
		}

		for i, v := range stored {
			if i >= len(batch) {
				break
			}
			inserted = append(inserted, domain.InsertedVenue{ID: v.ID, Name: v.Name, Candidate: batch[i].Candidate})
		}
		log.Printf("[STORE] inserted batch %d-%d (%d rows)", start+1, end, len(stored))
	}

	return inserted, nil
}
