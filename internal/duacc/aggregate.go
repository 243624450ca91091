package duacc

// Row is one line of the final report: either a whole-directory tally or,
// in per-user mode, one row per UID that cleared the limits.
type Row struct {
	UID    uint32
	HasUID bool
	Files  int64
	Size   int64
	Path   string
	Depth  int
}

type stackFrame struct {
	inode uint64
	depth int
}

// Aggregate performs a depth-first post-order roll-up of file counts and
// byte totals over every root in store, using an explicit stack so
// pathologically deep trees never recurse on the Go call stack.
func Aggregate(store *ResultStore, opts Options) []Row {
	var rows []Row

	for _, rootInode := range store.Roots() {
		rows = append(rows, aggregateTree(store, rootInode, opts)...)
	}

	return rows
}

func aggregateTree(store *ResultStore, rootInode uint64, opts Options) []Row {
	if _, ok := store.all[rootInode]; !ok {
		// Root itself errored (no DirResult was ever added for it); omit the branch.
		return nil
	}

	pathOf := map[uint64]string{rootInode: store.all[rootInode].name}

	var stack1 []stackFrame

	stack1 = append(stack1, stackFrame{inode: rootInode, depth: 0})

	var postorder []stackFrame

	for len(stack1) > 0 {
		n := stack1[len(stack1)-1]
		stack1 = stack1[:len(stack1)-1]
		postorder = append(postorder, n)

		for _, childInode := range store.tree[n.inode] {
			childEntry, ok := store.all[childInode]
			if !ok {
				continue // errored child branch, omitted
			}

			pathOf[childInode] = pathOf[n.inode] + "/" + childEntry.name
			stack1 = append(stack1, stackFrame{inode: childInode, depth: n.depth + 1})
		}
	}

	var rows []Row

	for i := len(postorder) - 1; i >= 0; i-- {
		frame := postorder[i]
		entry := store.all[frame.inode]

		if !opts.ExcludeSubdirs {
			for _, childInode := range store.tree[frame.inode] {
				childEntry, ok := store.all[childInode]
				if !ok || childEntry.counted {
					continue
				}

				addInto(entry, childEntry)
				childEntry.counted = true
			}
		}

		sumFiles, sumSize := sumUID(entry)
		path := pathOf[frame.inode]

		if sumFiles == 0 && sumSize == 0 && pathIsFiltered(path, opts) {
			continue
		}

		if frame.depth > opts.MaxDepth {
			continue
		}

		rows = append(rows, emitRows(entry, path, frame.depth, opts)...)
	}

	return rows
}

func pathIsFiltered(path string, opts Options) bool {
	if opts.Exclude != nil && opts.Exclude.MatchString(path) {
		return true
	}

	if opts.Include != nil && !opts.Include.MatchString(path) {
		return true
	}

	return false
}

func addInto(dst, src *storeEntry) {
	for uid, n := range src.filesByUID {
		dst.filesByUID[uid] += n
	}

	for uid, n := range src.sizeByUID {
		dst.sizeByUID[uid] += n
	}
}

func sumUID(e *storeEntry) (files int64, size int64) {
	for _, n := range e.filesByUID {
		files += n
	}

	for _, n := range e.sizeByUID {
		size += n
	}

	return files, size
}

func emitRows(e *storeEntry, path string, depth int, opts Options) []Row {
	if opts.PerUser {
		var rows []Row

		for uid, files := range e.filesByUID {
			size := e.sizeByUID[uid]
			if files > opts.FileLimit || size > opts.SizeLimit {
				rows = append(rows, Row{UID: uid, HasUID: true, Files: files, Size: size, Path: path, Depth: depth})
			}
		}

		return rows
	}

	sumFiles, sumSize := sumUID(e)
	if sumFiles >= opts.FileLimit && sumSize >= opts.SizeLimit {
		return []Row{{Files: sumFiles, Size: sumSize, Path: path, Depth: depth}}
	}

	return nil
}
