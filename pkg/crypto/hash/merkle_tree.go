package hash

import (
	"errors"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// MerkleTreeNode is a single node of a MerkleTree.
type MerkleTreeNode struct {
	Hash       util.Uint256
	parent     *MerkleTreeNode
	leftChild  *MerkleTreeNode
	rightChild *MerkleTreeNode
}

// IsLeaf returns true when n has no children.
func (n *MerkleTreeNode) IsLeaf() bool {
	return n.leftChild == nil && n.rightChild == nil
}

// IsRoot returns true when n has no parent.
func (n *MerkleTreeNode) IsRoot() bool {
	return n.parent == nil
}

// MerkleTree is a hash tree where every non-leaf node's hash is derived
// from its two children, used to commit to a block's transaction set.
type MerkleTree struct {
	root  *MerkleTreeNode
	depth int
}

// NewMerkleTree builds a MerkleTree over hashes, erroring if hashes is
// empty.
func NewMerkleTree(hashes []util.Uint256) (*MerkleTree, error) {
	if len(hashes) == 0 {
		return nil, errors.New("hash: empty hash list")
	}

	nodes := make([]*MerkleTreeNode, len(hashes))
	for i, h := range hashes {
		nodes[i] = &MerkleTreeNode{Hash: h}
	}

	root := buildMerkleTree(nodes)
	return &MerkleTree{root: root, depth: 1}, nil
}

// Root returns the tree's root hash.
func (t *MerkleTree) Root() util.Uint256 {
	return t.root.Hash
}

func buildMerkleTree(leaves []*MerkleTreeNode) *MerkleTreeNode {
	if len(leaves) == 0 {
		panic("hash: buildMerkleTree called with no leaves")
	}
	if len(leaves) == 1 {
		return leaves[0]
	}

	parents := make([]*MerkleTreeNode, (len(leaves)+1)/2)
	for i := range parents {
		parents[i] = &MerkleTreeNode{}
		parents[i].leftChild = leaves[i*2]
		leaves[i*2].parent = parents[i]

		if i*2+1 == len(leaves) {
			parents[i].rightChild = parents[i].leftChild
		} else {
			parents[i].rightChild = leaves[i*2+1]
			leaves[i*2+1].parent = parents[i]
		}

		b1 := parents[i].leftChild.Hash.BytesBE()
		b2 := parents[i].rightChild.Hash.BytesBE()
		b1 = append(b1, b2...)
		parents[i].Hash = DoubleSha256(b1)
	}

	return buildMerkleTree(parents)
}

// CalcMerkleRoot computes the Merkle root of hashes directly, without
// retaining the intermediate tree.
func CalcMerkleRoot(hashes []util.Uint256) util.Uint256 {
	if len(hashes) == 0 {
		return util.Uint256{}
	}
	if len(hashes) == 1 {
		return hashes[0]
	}

	level := make([]util.Uint256, len(hashes))
	copy(level, hashes)

	for len(level) > 1 {
		next := make([]util.Uint256, (len(level)+1)/2)
		for i := range next {
			left := level[i*2]
			var right util.Uint256
			if i*2+1 == len(level) {
				right = left
			} else {
				right = level[i*2+1]
			}
			b := append(left.BytesBE(), right.BytesBE()...)
			next[i] = DoubleSha256(b)
		}
		level = next
	}

	return level[0]
}
