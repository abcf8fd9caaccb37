package billing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/fluxcost/model/resource"
	"github.com/viant/fluxcost/policy"
)

type ledgerEntry struct {
	kind      resource.Kind
	capacity  uint32
	usageTime uint32
}

func newAllocation(t *testing.T, registry *policy.Registry, s ledgerEntry) *Allocation {
	p, err := registry.Create(s.kind, s.capacity)
	require.NoError(t, err)
	allocation, err := NewAllocation(resource.New(s.kind, s.capacity), s.usageTime, p)
	require.NoError(t, err)
	return allocation
}

func TestProcess_Summary(t *testing.T) {
	testCases := []struct {
		name     string
		ledger   []ledgerEntry
		expected Summary
	}{
		{
			name:     "empty ledger",
			expected: Summary{PID: 7},
		},
		{
			name: "cpu and memory",
			ledger: []ledgerEntry{
				{kind: resource.CPU, capacity: 4, usageTime: 3},
				{kind: resource.Memory, capacity: 2048, usageTime: 2},
			},
			expected: Summary{PID: 7, Cost: 4186},
		},
		{
			name: "cpu memory and storage",
			ledger: []ledgerEntry{
				{kind: resource.CPU, capacity: 4, usageTime: 3},
				{kind: resource.Memory, capacity: 2048, usageTime: 2},
				{kind: resource.Storage, capacity: 100, usageTime: 14},
			},
			expected: Summary{PID: 7, Cost: 5856, Penalty: 1},
		},
	}

	registry := policy.Default()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			process := NewProcess(7)
			for _, s := range tc.ledger {
				process.AddAllocation(newAllocation(t, registry, s))
			}
			assert.Equal(t, len(tc.ledger), process.Len())
			assert.Equal(t, tc.expected, process.Summary())
			// reads are side-effect free
			assert.Equal(t, tc.expected, process.Summary())
		})
	}
}

func TestProcess_Allocations(t *testing.T) {
	registry := policy.Default()
	process := NewProcess(1)
	first := newAllocation(t, registry, ledgerEntry{kind: resource.CPU, capacity: 2, usageTime: 1})
	second := newAllocation(t, registry, ledgerEntry{kind: resource.Storage, capacity: 10, usageTime: 13})
	process.AddAllocation(first)
	process.AddAllocation(nil)
	process.AddAllocation(second)

	ledger := process.Allocations()
	assert.Equal(t, []*Allocation{first, second}, ledger)
	ledger[0] = nil
	assert.Equal(t, first, process.Allocations()[0])

	assert.Equal(t, resource.New(resource.Storage, 10), second.Resource())
	assert.EqualValues(t, 13, second.UsageTime())
	assert.EqualValues(t, 1, second.Penalty())
	assert.Equal(t, "storage(10) for 13s", second.String())
}

func TestNewAllocation_NoPolicy(t *testing.T) {
	_, err := NewAllocation(resource.New(resource.CPU, 1), 1, nil)
	assert.Error(t, err)
}

func TestTotal(t *testing.T) {
	report := []Summary{{PID: 2, Cost: 4186}, {PID: 0, Cost: 5856, Penalty: 1}}
	assert.Equal(t, Totals{Processes: 2, Cost: 10042, Penalty: 1}, Total(report))
	assert.Equal(t, []Summary{{PID: 0, Cost: 5856, Penalty: 1}, {PID: 2, Cost: 4186}}, SortByPID(report))
}

func TestProcess_CostSaturates(t *testing.T) {
	registry := policy.Default()
	process := NewProcess(1)
	huge := ledgerEntry{kind: resource.Memory, capacity: math.MaxUint32, usageTime: math.MaxUint32}
	process.AddAllocation(newAllocation(t, registry, huge))
	process.AddAllocation(newAllocation(t, registry, huge))
	assert.Equal(t, Summary{PID: 1, Cost: math.MaxInt64}, process.Summary())

	totals := Total([]Summary{process.Summary(), {PID: 2, Cost: 1}})
	assert.EqualValues(t, math.MaxInt64, totals.Cost)
}
