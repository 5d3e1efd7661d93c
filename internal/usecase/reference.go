package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const (
	referencePrefix   = "RB"
	referenceDay      = "20060102"
	maxDailySequence  = 9999
	referenceTemplate = "%s%s%04d"
)

var referencePattern = regexp.MustCompile(`^RB\d{12}$`)

// ReferenceAllocator hands out human-readable order references of the form RB{YYYYMMDD}{NNNN}.
// The sequence restarts every UTC day and is backed by an atomic counter in the store.
type ReferenceAllocator struct {
	sequences repository.SequenceRepository
	now       func() time.Time
}

// NewReferenceAllocator constructs ReferenceAllocator.
func NewReferenceAllocator(sequences repository.SequenceRepository) *ReferenceAllocator {
	return &ReferenceAllocator{sequences: sequences, now: time.Now}
}

// Allocate returns the next reference for the current UTC day.
func (a *ReferenceAllocator) Allocate(ctx context.Context) (string, error) {
	day := a.now().UTC().Format(referenceDay)

	seq, err := a.sequences.Next(ctx, day)
	if err != nil {
		return "", err
	}
	if seq < 1 || seq > maxDailySequence {
		return "", fmt.Errorf("%w: %s reached %d", domainErrors.ErrSequenceExhausted, day, seq)
	}

	return fmt.Sprintf(referenceTemplate, referencePrefix, day, seq), nil
}

// NormalizeReference brings user input to the stored uppercase form.
func NormalizeReference(reference string) string {
	return strings.ToUpper(strings.TrimSpace(reference))
}

// ValidReference reports whether reference is a well-formed, normalized order reference.
func ValidReference(reference string) bool {
	return referencePattern.MatchString(reference)
}
