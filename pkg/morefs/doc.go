/*
Package morefs copies, moves and removes files and directory trees, reporting failures with the path(s)
and the logical operation involved.

	+-------------+      +-------------+
	|  Move*      | ---> |  CopyTree*  |
	+-------------+      +------+------+
	                            |
	                     +------+------+
	                     |   Walker    |  (parent before child)
	                     +------+------+
	                            |
	                     +------+------+
	                     |   Remap     |  (from root -> to root)
	                     +------+------+
	                            |
	                     +------+------+
	                     | Copy/Create |  (afero.Fs)
	                     +-------------+

🎯 Purpose:
- Thin wrappers around single filesystem calls that never return a bare I/O error
- Recursive tree copy, sequential or on a bounded worker pool
- Moves composed as copy then remove

🔄 Parallel copies:
The walk is collected into a slice before any work is dispatched. Workers then run with no ordering
between entries; the destination stays consistent because directory creation always succeeds when the
directory already exists and every file copy creates its own missing parents. There are no locks on the
destination tree.

⚠️ Errors:
Every error is one of *PathError, *LinkError, *StripPrefixError, *NotDirectoryError, *WalkError or
*RecoverError, and unwraps to the underlying cause, so errors.Is(err, fs.ErrNotExist) works at any layer.

🔍 Example:

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	if _, err := morefs.CopyTreeParallel(ctx, "from_directory", "to_directory"); err != nil {
		// remove whatever was left behind; a failed cleanup is reported next to the original error
		return morefs.Recover(err, func() error {
			return morefs.RemoveTree(ctx, "to_directory")
		})
	}
*/
package morefs
