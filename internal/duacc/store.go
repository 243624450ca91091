package duacc

// storeEntry is one node of the ResultStore's ALL table.
type storeEntry struct {
	name       string
	filesByUID map[uint32]int64
	sizeByUID  map[uint32]int64
	counted    bool // set true exactly once during roll-up
}

// ResultStore holds the parent->children tree (TREE) and the per-inode
// tallies (ALL) collected from DirResult messages.
type ResultStore struct {
	all  map[uint64]*storeEntry
	tree map[uint64][]uint64
}

// NewResultStore returns an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		all:  make(map[uint64]*storeEntry),
		tree: make(map[uint64][]uint64),
	}
}

// Add records one DirResult: its inode becomes a key in ALL and is
// appended, in arrival order, under TREE[ParentInode].
func (s *ResultStore) Add(r DirResult) {
	s.all[r.Inode] = &storeEntry{
		name:       r.Name,
		filesByUID: r.FilesByUID,
		sizeByUID:  r.SizeByUID,
	}
	s.tree[r.ParentInode] = append(s.tree[r.ParentInode], r.Inode)
}

// Roots returns the child inodes of the synthetic parent 0, i.e. the
// traversal's injected root directories, in arrival order.
func (s *ResultStore) Roots() []uint64 {
	return s.tree[0]
}
