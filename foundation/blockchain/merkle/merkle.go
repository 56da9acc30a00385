// Package merkle provides the merkle root aggregation for the transactions
// of a block.
//
// The tree is reduced as a FIFO queue rather than level by level. The leaf
// hashes are placed in a queue, with the last leaf duplicated once when the
// count is odd. Then the first two entries are removed, the hash of their
// concatenated string form is appended to the back, and this repeats until a
// single hash is left. For six leaves that means (1,2) (3,4) (5,6) produce
// a b c, then (a,b) produces d and finally (c,d) produces the root.
package merkle

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/blockledger/foundation/blockchain/hash"
)

// ErrNoContent is returned when a tree is requested for no values.
var ErrNoContent = errors.New("cannot construct tree with no content")

// =============================================================================

// Tree represents a merkle tree over an ordered set of values of type T.
type Tree[T any] struct {
	Root         *Node[T]
	Leafs        []*Node[T]
	MerkleRoot   string
	hashStrategy func(value any) string
}

// WithHashStrategy is used to change the default hash strategy of using the
// compact sha256 rendering when constructing a new tree.
func WithHashStrategy[T any](hashStrategy func(value any) string) func(t *Tree[T]) {
	return func(t *Tree[T]) {
		t.hashStrategy = hashStrategy
	}
}

// NewTree constructs a new merkle tree for the specified values.
func NewTree[T any](values []T, options ...func(t *Tree[T])) (*Tree[T], error) {
	t := Tree[T]{
		hashStrategy: hash.Hash,
	}

	for _, option := range options {
		option(&t)
	}

	if err := t.Generate(values); err != nil {
		return nil, err
	}

	return &t, nil
}

// Generate constructs the leafs and nodes of the tree from the specified
// data. If the tree has been generated previously, the tree is re-generated
// from scratch.
func (t *Tree[T]) Generate(values []T) error {
	if len(values) == 0 {
		return ErrNoContent
	}

	leafs := make([]*Node[T], 0, len(values)+1)
	for _, value := range values {
		leafs = append(leafs, &Node[T]{
			Tree:  t,
			Hash:  t.hashStrategy(value),
			Value: value,
			leaf:  true,
		})
	}

	// Only the leaf level is ever padded. The queue reduction takes care of
	// any odd count further up.
	if len(leafs)%2 == 1 {
		last := leafs[len(leafs)-1]
		leafs = append(leafs, &Node[T]{
			Tree:  t,
			Hash:  last.Hash,
			Value: last.Value,
			leaf:  true,
			dup:   true,
		})
	}

	t.Root = reduce(leafs, t)
	t.Leafs = leafs
	t.MerkleRoot = t.Root.Hash

	return nil
}

// Rebuild is a helper function that will rebuild the tree reusing only the
// data that it currently holds in the leaves.
func (t *Tree[T]) Rebuild() error {
	return t.Generate(t.Values())
}

// Proof returns the set of hashes and the order of concatenating those
// hashes for proving a value is in the tree. An order of 0 means the proof
// hash comes first in the concatenation, 1 means it comes second.
//
//	h := hash(value)
//	for i := range proof {
//	    if order[i] == 0 { h = hash(proof[i] + h) } else { h = hash(h + proof[i]) }
//	}
//
// The final h should match the merkle root.
func (t *Tree[T]) Proof(value T) ([]string, []int64, error) {
	target := t.hashStrategy(value)

	for _, node := range t.Leafs {
		if node.Hash != target {
			continue
		}

		var proof []string
		var order []int64
		for parent := node.Parent; parent != nil; parent = parent.Parent {
			if parent.Left == node {
				proof = append(proof, parent.Right.Hash)
				order = append(order, 1)
			} else {
				proof = append(proof, parent.Left.Hash)
				order = append(order, 0)
			}
			node = parent
		}

		return proof, order, nil
	}

	return nil, nil, errors.New("unable to find value in tree")
}

// Verify recalculates every hash from the leaf values up and checks the
// result matches the recorded merkle root.
func (t *Tree[T]) Verify() error {
	calculated := t.Root.verify()
	if calculated != t.MerkleRoot {
		return fmt.Errorf("merkle root invalid, got %s, exp %s", calculated, t.MerkleRoot)
	}

	return nil
}

// Values returns the values stored in the tree in their original order,
// without the padding duplicate.
func (t *Tree[T]) Values() []T {
	values := make([]T, 0, len(t.Leafs))
	for _, node := range t.Leafs {
		if node.dup {
			continue
		}
		values = append(values, node.Value)
	}

	return values
}

// String returns a string representation of the tree. Only leaf nodes are
// included in the output.
func (t *Tree[T]) String() string {
	s := ""

	for _, l := range t.Leafs {
		s += fmt.Sprint(l)
		s += "\n"
	}

	return s
}

// =============================================================================

// VerifyProof checks the proof produced by Tree.Proof for the leaf hash
// against the expected merkle root.
func VerifyProof(leafHash string, proof []string, order []int64, merkleRoot string, hashFn func(value any) string) bool {
	if len(proof) != len(order) {
		return false
	}

	h := leafHash
	for i := range proof {
		switch order[i] {
		case 0:
			h = hashFn(proof[i] + h)
		default:
			h = hashFn(h + proof[i])
		}
	}

	return h == merkleRoot
}

// =============================================================================

// Node represents a node, root, or leaf in the tree.
type Node[T any] struct {
	Tree   *Tree[T]
	Parent *Node[T]
	Left   *Node[T]
	Right  *Node[T]
	Hash   string
	Value  T
	leaf   bool
	dup    bool
}

// verify walks down the tree until hitting a leaf, calculating the hash at
// each level and returning the resulting hash of the node.
func (n *Node[T]) verify() string {
	if n.leaf {
		return n.Tree.hashStrategy(n.Value)
	}

	return n.Tree.hashStrategy(n.Left.verify() + n.Right.verify())
}

// String returns a string representation of the node.
func (n *Node[T]) String() string {
	return fmt.Sprintf("%t %t %s %v", n.leaf, n.dup, n.Hash, n.Value)
}

// =============================================================================

// reduce drains the queue of nodes two at a time, pushing the combined node
// onto the back, until the root is the only node left.
func reduce[T any](leafs []*Node[T], t *Tree[T]) *Node[T] {
	queue := make([]*Node[T], len(leafs))
	copy(queue, leafs)

	for len(queue) > 1 {
		left, right := queue[0], queue[1]
		queue = queue[2:]

		n := Node[T]{
			Tree:  t,
			Left:  left,
			Right: right,
			Hash:  t.hashStrategy(left.Hash + right.Hash),
		}
		left.Parent = &n
		right.Parent = &n

		queue = append(queue, &n)
	}

	return queue[0]
}
