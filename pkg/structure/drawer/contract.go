package drawer

import (
	"github.com/pkg/errors"
)

// ErrDuplicateNode is returned when two nodes of the structure graph share an ID.
var ErrDuplicateNode = errors.New("duplicate node")

// NodeKind tells how a node of the structure graph is drawn.
type NodeKind string

const (
	RootNode     NodeKind = "root"
	MemberNode   NodeKind = "member"
	MetaNode     NodeKind = "meta"
	PlainNode    NodeKind = "plain"
	VotingNode   NodeKind = "voting"
	StackingNode NodeKind = "stacking"
)

// Node is a vertex of the structure graph.
type Node struct {
	ID     string
	Label  string
	Detail string
	Kind   NodeKind
}

// Link is an edge of the structure graph.
type Link struct {
	From  string
	To    string
	Label string
	// Share is the weight of a voting member relative to the heaviest sibling, in [0, 1].
	Share    float64
	Weighted bool
	Dashed   bool
}

// Drawer is an interface that defines the methods for drawing a model structure.
type Drawer interface {
	// AddNode adds a node to the drawer.
	AddNode(node Node) error
	// AddLink adds a link between two nodes.
	AddLink(link Link) error
	// Draw writes the graph.
	Draw() error
}
