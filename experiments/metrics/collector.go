package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth          int // requested depth
	CompletedDepth int // deepest fully searched depth
	Duration       time.Duration
	Nodes          int
	Leaves         int
}

type MoveMetric struct {
	Step   int
	Player int // seat index
	Action string
	Score  int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         string // player name, "" if the game was cut off
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Rounds         int
}

type AgentConfig struct {
	ID       int
	Type     string // player type
	Depth    int
	Deadline time.Duration // zero searches to Depth unconditionally
}

type Collector interface {
	Start(depth int)
	AddNode()
	AddLeaf()
	CompleteDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	depth          int
	startTime      time.Time
	nodes          atomic.Int64
	leaves         atomic.Int64
	completedDepth atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.startTime = time.Now()
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.completedDepth.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) CompleteDepth(depth int) {
	m.completedDepth.Store(int32(depth))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:          m.depth,
		CompletedDepth: int(m.completedDepth.Load()),
		Duration:       time.Since(m.startTime),
		Nodes:          int(m.nodes.Load()),
		Leaves:         int(m.leaves.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)         {}
func (m *dummyCollector) AddNode()                {}
func (m *dummyCollector) AddLeaf()                {}
func (m *dummyCollector) CompleteDepth(depth int) {}
func (m *dummyCollector) Complete() SearchMetric  { return SearchMetric{} }
