package policy

import (
	"math"
	"math/bits"
)

const (
	storageBaseCost         = 20
	storageBasicQuota       = 3 // seconds
	storagePenaltyThreshold = 12
	storagePenalty          = 1
)

// Storage bills a flat base plus 1.5 per GB-second above the basic quota,
// rounded down, and a flat penalty once usage passes the penalty threshold.
type Storage struct {
	GB uint32
}

// NewStorage is the Constructor for resource.Storage.
func NewStorage(capacity uint32) Policy {
	return &Storage{GB: capacity}
}

func (s *Storage) Cost(usageTime uint32) int64 {
	cost := int64(storageBaseCost)
	if usageTime > storageBasicQuota {
		gbSeconds := uint64(usageTime-storageBasicQuota) * uint64(s.GB)
		// floor(n * 1.5) without floating point
		billed, carry := bits.Add64(gbSeconds, gbSeconds/2, 0)
		if carry != 0 {
			return math.MaxInt64
		}
		cost = AddCost(cost, toCost(billed))
	}
	return cost
}

func (s *Storage) Penalty(usageTime uint32) int64 {
	if usageTime > storagePenaltyThreshold {
		return storagePenalty
	}
	return 0
}
