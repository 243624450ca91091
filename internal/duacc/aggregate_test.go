package duacc

import "testing"

func buildStore(entries map[uint64]DirResult) *ResultStore {
	s := NewResultStore()
	for _, e := range entries {
		s.Add(e)
	}

	return s
}

func TestAggregateEmptyRootEmitsOneZeroRow(t *testing.T) {
	store := buildStore(map[uint64]DirResult{
		1: {Name: "R", ParentInode: 0, Inode: 1, FilesByUID: map[uint32]int64{}, SizeByUID: map[uint32]int64{}},
	})

	opts := DefaultOptions()
	rows := Aggregate(store, opts)

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1: %v", len(rows), rows)
	}

	if rows[0].Path != "R" || rows[0].Files != 0 || rows[0].Size != 0 {
		t.Fatalf("got row %+v, want {Path: R, Files: 0, Size: 0}", rows[0])
	}
}

func TestAggregateRollsUpSubtree(t *testing.T) {
	// R/sub/c (10B), R/sub/d (20B): max-depth 1 lists both R and R/sub.
	store := buildStore(map[uint64]DirResult{
		1: {Name: "R", ParentInode: 0, Inode: 1,
			FilesByUID: map[uint32]int64{1000: 1}, SizeByUID: map[uint32]int64{1000: 4096}}, // sub dir inode entry
		2: {Name: "sub", ParentInode: 1, Inode: 2,
			FilesByUID: map[uint32]int64{1000: 2}, SizeByUID: map[uint32]int64{1000: 30}},
	})

	opts := DefaultOptions()
	opts.MaxDepth = 1

	rows := Aggregate(store, opts)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(rows), rows)
	}

	byPath := map[string]Row{}
	for _, r := range rows {
		byPath[r.Path] = r
	}

	sub, ok := byPath["R/sub"]
	if !ok || sub.Files != 2 || sub.Size != 30 {
		t.Fatalf("got R/sub row %+v, want {Files: 2, Size: 30}", sub)
	}

	root, ok := byPath["R"]
	if !ok || root.Files != 1+2 || root.Size != 4096+30 {
		t.Fatalf("got R row %+v, want rolled-up totals", root)
	}
}

func TestAggregateMaxDepthCapsOutput(t *testing.T) {
	store := buildStore(map[uint64]DirResult{
		1: {Name: "R", ParentInode: 0, Inode: 1, FilesByUID: map[uint32]int64{1: 1}, SizeByUID: map[uint32]int64{1: 1}},
		2: {Name: "sub", ParentInode: 1, Inode: 2, FilesByUID: map[uint32]int64{1: 1}, SizeByUID: map[uint32]int64{1: 1}},
	})

	opts := DefaultOptions()
	opts.MaxDepth = 0

	rows := Aggregate(store, opts)
	for _, r := range rows {
		if r.Depth > 0 {
			t.Fatalf("got row at depth %d, want max depth 0", r.Depth)
		}
	}

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (only the root)", len(rows))
	}
}

func TestAggregateExcludeSubdirsSkipsRollup(t *testing.T) {
	store := buildStore(map[uint64]DirResult{
		1: {Name: "R", ParentInode: 0, Inode: 1, FilesByUID: map[uint32]int64{1: 1}, SizeByUID: map[uint32]int64{1: 100}},
		2: {Name: "sub", ParentInode: 1, Inode: 2, FilesByUID: map[uint32]int64{1: 5}, SizeByUID: map[uint32]int64{1: 500}},
	})

	opts := DefaultOptions()
	opts.ExcludeSubdirs = true

	rows := Aggregate(store, opts)

	byPath := map[string]Row{}
	for _, r := range rows {
		byPath[r.Path] = r
	}

	if root := byPath["R"]; root.Files != 1 || root.Size != 100 {
		t.Fatalf("got R row %+v, want direct-only {Files: 1, Size: 100}", root)
	}
}

func TestAggregateFileAndSizeLimitsGateEmission(t *testing.T) {
	store := buildStore(map[uint64]DirResult{
		1: {Name: "R", ParentInode: 0, Inode: 1, FilesByUID: map[uint32]int64{1: 2}, SizeByUID: map[uint32]int64{1: 10}},
	})

	opts := DefaultOptions()
	opts.FileLimit = 3

	if rows := Aggregate(store, opts); len(rows) != 0 {
		t.Fatalf("expected no rows below file limit, got %v", rows)
	}

	opts.FileLimit = 2
	opts.SizeLimit = 10

	if rows := Aggregate(store, opts); len(rows) != 1 {
		t.Fatalf("expected exactly-at-limit row to be emitted, got %v", rows)
	}
}

func TestAggregatePerUserRowsAndGating(t *testing.T) {
	store := buildStore(map[uint64]DirResult{
		1: {
			Name: "R", ParentInode: 0, Inode: 1,
			FilesByUID: map[uint32]int64{1000: 2, 1001: 1},
			SizeByUID:  map[uint32]int64{1000: 3, 1001: 0},
		},
	})

	opts := DefaultOptions()
	opts.PerUser = true

	rows := Aggregate(store, opts)

	byUID := map[uint32]Row{}
	for _, r := range rows {
		byUID[r.UID] = r
	}

	if r, ok := byUID[1000]; !ok || r.Files != 2 || r.Size != 3 {
		t.Fatalf("got uid 1000 row %+v", r)
	}

	if r, ok := byUID[1001]; !ok || r.Files != 1 {
		t.Fatalf("got uid 1001 row %+v, want files=1", r)
	}
}

func TestAggregateOmitsBranchWithMissingInode(t *testing.T) {
	// TREE structurally lists inode 2 as a child of root 1, but 2 was never
	// Add()-ed to ALL (its directory errored); that branch must be trimmed
	// rather than crash or contribute to the root's roll-up.
	store := NewResultStore()
	store.Add(DirResult{Name: "R", ParentInode: 0, Inode: 1, FilesByUID: map[uint32]int64{1: 1}, SizeByUID: map[uint32]int64{1: 1}})
	store.tree[1] = append(store.tree[1], 2)

	rows := Aggregate(store, DefaultOptions())
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (root only, orphan child trimmed): %v", len(rows), rows)
	}

	if rows[0].Files != 1 || rows[0].Size != 1 {
		t.Fatalf("got row %+v, want root's own direct tally unaffected by the missing child", rows[0])
	}
}
